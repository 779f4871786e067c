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

// Package redis implements a state.Provider on top of Redis.
//
// Every actor state is a plain string key. An Apply is sent as a single
// MULTI/EXEC block so Redis executes the batch atomically.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flowchartsman/retry"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/atomic"

	gerrors "github.com/tochemey/actorhost/errors"
	"github.com/tochemey/actorhost/state"
)

// Provider implements state.Provider using github.com/redis/go-redis.
type Provider struct {
	config *Config
	client goredis.UniversalClient
	closed *atomic.Bool
}

// enforce compilation error
var _ state.Provider = (*Provider)(nil)

// New connects to the Redis server described by config.
// The server is pinged with bounded retries before returning.
func New(config *Config) (*Provider, error) {
	if config == nil {
		return nil, errors.New("state/redis: config is nil")
	}

	config.Sanitize()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:         config.Addr,
		Username:     config.Username,
		Password:     config.Password,
		DB:           config.DB,
		TLSConfig:    config.TLS,
		DialTimeout:  config.DialTimeout,
		ReadTimeout:  config.Timeout,
		WriteTimeout: config.Timeout,
	})

	retrier := retry.NewRetrier(config.MaxRetries, 100*time.Millisecond, config.DialTimeout)
	if err := retrier.Run(func() error {
		ctx, cancel := context.WithTimeout(config.Context, config.DialTimeout)
		defer cancel()
		return client.Ping(ctx).Err()
	}); err != nil {
		if cerr := client.Close(); cerr != nil {
			return nil, errors.Join(err, fmt.Errorf("failed to close redis client: %w", cerr))
		}
		return nil, fmt.Errorf("state/redis: failed to connect to redis: %w", err)
	}

	config.Logger.Infof("redis state provider connected to (%s)", config.Addr)
	return &Provider{config: config, client: client, closed: atomic.NewBool(false)}, nil
}

// NewWithClient creates a Provider on an existing client.
// Close releases the given client.
func NewWithClient(config *Config, client goredis.UniversalClient) (*Provider, error) {
	if config == nil || client == nil {
		return nil, errors.New("state/redis: config and client are required")
	}
	config.Sanitize()
	return &Provider{config: config, client: client, closed: atomic.NewBool(false)}, nil
}

// Load implements state.Provider.
func (x *Provider) Load(ctx context.Context, actorType, actorID, stateName string) ([]byte, bool, error) {
	if err := x.ensureOpen(); err != nil {
		return nil, false, err
	}

	ctx, cancel := x.withTimeout(ctx)
	defer cancel()

	value, err := x.client.Get(ctx, x.key(actorType, actorID, stateName)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("state/redis: failed to load state=(%s): %w", stateName, err)
	}
	return value, true, nil
}

// Contains implements state.Provider.
func (x *Provider) Contains(ctx context.Context, actorType, actorID, stateName string) (bool, error) {
	if err := x.ensureOpen(); err != nil {
		return false, err
	}

	ctx, cancel := x.withTimeout(ctx)
	defer cancel()

	count, err := x.client.Exists(ctx, x.key(actorType, actorID, stateName)).Result()
	if err != nil {
		return false, fmt.Errorf("state/redis: failed to probe state=(%s): %w", stateName, err)
	}
	return count > 0, nil
}

// Apply implements state.Provider.
func (x *Provider) Apply(ctx context.Context, actorType, actorID string, operations []state.Operation) error {
	if err := x.ensureOpen(); err != nil {
		return err
	}

	if err := state.ValidateAll(operations); err != nil {
		return err
	}

	if len(operations) == 0 {
		return ctx.Err()
	}

	ctx, cancel := x.withTimeout(ctx)
	defer cancel()

	if _, err := x.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		for _, operation := range operations {
			key := x.key(actorType, actorID, operation.Request.Key)
			switch operation.Operation {
			case state.Upsert:
				pipe.Set(ctx, key, operation.Request.Value, 0)
			case state.Delete:
				pipe.Del(ctx, key)
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("state/redis: failed to apply %d operations on actor=(%s/%s): %w", len(operations), actorType, actorID, err)
	}
	return nil
}

// Close releases the Redis client. Close is idempotent.
func (x *Provider) Close() error {
	if x.closed.Swap(true) {
		return nil
	}
	return x.client.Close()
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
