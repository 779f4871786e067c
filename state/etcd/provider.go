/*
 * MIT License
 *
 * Copyright (c) 2022-2025  Arsene Tochemey Gandote
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package etcd implements a state.Provider on top of an etcd v3 cluster.
//
// Every actor state is stored under "<namespace><actorType>||<actorID>||<stateName>".
// An Apply is a single etcd transaction.
package etcd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flowchartsman/retry"
	clientv3 "go.etcd.io/etcd/client/v3"
	"go.uber.org/atomic"

	gerrors "github.com/tochemey/actorhost/errors"
	"github.com/tochemey/actorhost/state"
)

// Provider implements state.Provider using etcd.
//
// Any provided context is wrapped with the configured per-operation timeout.
type Provider struct {
	config    *Config
	kv        clientv3.KV
	closeFunc func() error
	closed    *atomic.Bool
}

// enforce compilation error
var _ state.Provider = (*Provider)(nil)

// New connects to the etcd cluster described by config.
// The first endpoint is probed with bounded retries before returning.
func New(config *Config) (*Provider, error) {
	if config == nil {
		return nil, errors.New("state/etcd: config is nil")
	}

	config.Sanitize()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := clientv3.New(clientv3.Config{
		Endpoints:   config.Endpoints,
		DialTimeout: config.DialTimeout,
		TLS:         config.TLS,
		Username:    config.Username,
		Password:    config.Password,
		Context:     config.Context,
	})
	if err != nil {
		return nil, fmt.Errorf("state/etcd: failed to create client: %w", err)
	}

	retrier := retry.NewRetrier(config.MaxRetries, 100*time.Millisecond, config.DialTimeout)
	if err := retrier.Run(func() error {
		ctx, cancel := context.WithTimeout(config.Context, config.DialTimeout)
		defer cancel()
		_, err := client.Status(ctx, config.Endpoints[0])
		return err
	}); err != nil {
		if cerr := client.Close(); cerr != nil {
			return nil, errors.Join(err, fmt.Errorf("failed to close etcd client: %w", cerr))
		}
		return nil, fmt.Errorf("state/etcd: failed to connect to etcd: %w", err)
	}

	config.Logger.Infof("etcd state provider connected to (%v)", config.Endpoints)
	return newProvider(config, client.KV, client.Close), nil
}

// NewWithKV creates a Provider on an existing etcd KV. The caller keeps
// ownership of the underlying client; Close does not release it.
func NewWithKV(config *Config, kv clientv3.KV) (*Provider, error) {
	if config == nil || kv == nil {
		return nil, errors.New("state/etcd: config and kv are required")
	}
	config.Sanitize()
	return newProvider(config, kv, func() error { return nil }), nil
}

func newProvider(config *Config, kv clientv3.KV, closeFunc func() error) *Provider {
	return &Provider{
		config:    config,
		kv:        kv,
		closeFunc: closeFunc,
		closed:    atomic.NewBool(false),
	}
}

// Load implements state.Provider.
func (x *Provider) Load(ctx context.Context, actorType, actorID, stateName string) ([]byte, bool, error) {
	if err := x.ensureOpen(); err != nil {
		return nil, false, err
	}

	ctx, cancel := x.withTimeout(ctx)
	defer cancel()

	resp, err := x.kv.Get(ctx, x.key(actorType, actorID, stateName))
	if err != nil {
		return nil, false, fmt.Errorf("state/etcd: failed to load state=(%s): %w", stateName, err)
	}

	if len(resp.Kvs) == 0 {
		return nil, false, nil
	}
	return resp.Kvs[0].Value, true, nil
}

// Contains implements state.Provider.
func (x *Provider) Contains(ctx context.Context, actorType, actorID, stateName string) (bool, error) {
	if err := x.ensureOpen(); err != nil {
		return false, err
	}

	ctx, cancel := x.withTimeout(ctx)
	defer cancel()

	resp, err := x.kv.Get(ctx, x.key(actorType, actorID, stateName), clientv3.WithCountOnly())
	if err != nil {
		return false, fmt.Errorf("state/etcd: failed to probe state=(%s): %w", stateName, err)
	}
	return resp.Count > 0, nil
}

// Apply implements state.Provider.
func (x *Provider) Apply(ctx context.Context, actorType, actorID string, operations []state.Operation) error {
	if err := x.ensureOpen(); err != nil {
		return err
	}

	if err := state.ValidateAll(operations); err != nil {
		return err
	}

	if len(operations) > x.config.MaxOpsPerTxn {
		return fmt.Errorf("state/etcd: %d operations exceed the transaction limit of %d: %w",
			len(operations), x.config.MaxOpsPerTxn, gerrors.ErrInvalidArgument)
	}

	if len(operations) == 0 {
		return ctx.Err()
	}

	ops := make([]clientv3.Op, 0, len(operations))
	for _, operation := range operations {
		key := x.key(actorType, actorID, operation.Request.Key)
		switch operation.Operation {
		case state.Upsert:
			ops = append(ops, clientv3.OpPut(key, string(operation.Request.Value)))
		case state.Delete:
			ops = append(ops, clientv3.OpDelete(key))
		}
	}

	ctx, cancel := x.withTimeout(ctx)
	defer cancel()

	if _, err := x.kv.Txn(ctx).Then(ops...).Commit(); err != nil {
		return fmt.Errorf("state/etcd: failed to apply %d operations on actor=(%s/%s): %w", len(ops), actorType, actorID, err)
	}
	return nil
}

// Close releases the etcd client. Close is idempotent.
func (x *Provider) Close() error {
	if x.closed.Swap(true) {
		return nil
	}
	return x.closeFunc()
}

func (x *Provider) key(actorType, actorID, stateName string) string {
	return x.config.Namespace + state.Key(actorType, actorID, stateName)
}

func (x *Provider) ensureOpen() error {
	if x.closed.Load() {
		return gerrors.ErrProviderClosed
	}
	return nil
}

func (x *Provider) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, x.config.Timeout)
}
