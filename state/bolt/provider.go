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

// Package bolt implements a state.Provider on top of an embedded bbolt database.
//
// Every actor state is a key of a single bucket. An Apply is one bbolt write
// transaction, so a batch either commits entirely or not at all.
package bolt

import (
	"context"
	"errors"
	"fmt"
	"slices"

	bbolt "go.etcd.io/bbolt"
	"go.uber.org/atomic"

	gerrors "github.com/tochemey/actorhost/errors"
	"github.com/tochemey/actorhost/state"
)

// Provider implements state.Provider using go.etcd.io/bbolt.
//
// bbolt provides single-writer/multi-reader semantics. Only the close state
// is guarded here.
type Provider struct {
	config *Config
	db     *bbolt.DB
	bucket []byte
	closed *atomic.Bool
}

// enforce compilation error
var _ state.Provider = (*Provider)(nil)

// New opens (or creates) the database described by config
func New(config *Config) (*Provider, error) {
	if config == nil {
		return nil, errors.New("state/bolt: config is nil")
	}

	config.Sanitize()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	db, err := bbolt.Open(config.Path, config.FileMode, &bbolt.Options{
		Timeout:    config.Timeout,
		NoGrowSync: true,
		NoSync:     config.NoSync,
	})
	if err != nil {
		return nil, fmt.Errorf("state/bolt: opening database: %w", err)
	}

	bucket := []byte(config.Bucket)
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, e := tx.CreateBucketIfNotExists(bucket)
		return e
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("state/bolt: initializing bucket: %w", err)
	}

	config.Logger.Infof("bbolt state provider opened at (%s)", config.Path)
	return &Provider{
		config: config,
		db:     db,
		bucket: bucket,
		closed: atomic.NewBool(false),
	}, nil
}

// Load implements state.Provider.
func (x *Provider) Load(ctx context.Context, actorType, actorID, stateName string) ([]byte, bool, error) {
	if err := x.check(ctx); err != nil {
		return nil, false, err
	}

	var value []byte
	err := x.db.View(func(tx *bbolt.Tx) error {
		bucket, err := x.lookupBucket(tx)
		if err != nil {
			return err
		}
		// values are only valid for the life of the transaction
		value = slices.Clone(bucket.Get([]byte(state.Key(actorType, actorID, stateName))))
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return value, value != nil, nil
}

// Contains implements state.Provider.
func (x *Provider) Contains(ctx context.Context, actorType, actorID, stateName string) (bool, error) {
	if err := x.check(ctx); err != nil {
		return false, err
	}

	var exists bool
	err := x.db.View(func(tx *bbolt.Tx) error {
		bucket, err := x.lookupBucket(tx)
		if err != nil {
			return err
		}
		exists = bucket.Get([]byte(state.Key(actorType, actorID, stateName))) != nil
		return nil
	})
	return exists, err
}

// Apply implements state.Provider.
func (x *Provider) Apply(ctx context.Context, actorType, actorID string, operations []state.Operation) error {
	if err := x.check(ctx); err != nil {
		return err
	}

	if err := state.ValidateAll(operations); err != nil {
		return err
	}

	if len(operations) == 0 {
		return nil
	}

	return x.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := x.lookupBucket(tx)
		if err != nil {
			return err
		}

		for _, operation := range operations {
			key := []byte(state.Key(actorType, actorID, operation.Request.Key))
			switch operation.Operation {
			case state.Upsert:
				value := operation.Request.Value
				if value == nil {
					value = []byte{}
				}
				if err := bucket.Put(key, value); err != nil {
					return err
				}
			case state.Delete:
				if err := bucket.Delete(key); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// Close releases the database. Close is idempotent.
func (x *Provider) Close() error {
	if x.closed.Swap(true) {
		return nil
	}
	x.config.Logger.Infof("closing bbolt state provider at (%s)", x.config.Path)
	return x.db.Close()
}

func (x *Provider) check(ctx context.Context) error {
	if x.closed.Load() {
		return gerrors.ErrProviderClosed
	}
	return ctx.Err()
}

func (x *Provider) lookupBucket(tx *bbolt.Tx) (*bbolt.Bucket, error) {
	bucket := tx.Bucket(x.bucket)
	if bucket == nil {
		return nil, fmt.Errorf("state/bolt: bucket %q missing", x.bucket)
	}
	return bucket, nil
}
