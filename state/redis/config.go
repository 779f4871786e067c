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

package redis

import (
	"context"
	"crypto/tls"
	"strings"
	"time"

	"github.com/tochemey/actorhost/internal/validation"
	"github.com/tochemey/actorhost/log"
)

const (
	defaultNamespace  = "actorhost:states:"
	defaultTimeout    = 5 * time.Second
	defaultMaxRetries = 5
)

// Config holds the configuration of the Redis state provider.
type Config struct {
	// Context specifies the execution context used while connecting.
	// If nil, context.Background() will be used.
	Context context.Context
	// Addr is the Redis "host:port" address.
	Addr string
	// Username sets the Redis ACL user (optional).
	Username string
	// Password sets the Redis password (optional).
	Password string
	// DB selects the Redis database.
	DB int
	// TLS configures client TLS (optional).
	TLS *tls.Config
	// Namespace prefixes every state key. Defaults to actorhost:states:.
	Namespace string
	// DialTimeout sets the timeout for establishing connections.
	DialTimeout time.Duration
	// Timeout sets the timeout for Redis operations.
	Timeout time.Duration
	// MaxRetries bounds the connection probe attempts.
	MaxRetries int
	// Logger is the provider logger. Defaults to log.DefaultLogger.
	Logger log.Logger
}

var _ validation.Validator = (*Config)(nil)

// Validate implements validation.Validator.
func (c *Config) Validate() error {
	return validation.New(validation.FailFast()).
		AddValidator(validation.NewEmptyStringValidator("Addr", c.Addr)).
		AddAssertion(c.DB >= 0, "DB must not be negative").
		AddAssertion(c.DialTimeout > 0, "DialTimeout must be greater than 0").
		AddAssertion(c.Timeout > 0, "Timeout must be greater than 0").
		AddAssertion(c.MaxRetries > 0, "MaxRetries must be greater than 0").
		Validate()
}

// Sanitize fills in the defaults
func (c *Config) Sanitize() {
	if c.Context == nil {
		c.Context = context.Background()
	}

	if strings.TrimSpace(c.Namespace) == "" {
		c.Namespace = defaultNamespace
	}

	if c.DialTimeout == 0 {
		c.DialTimeout = defaultTimeout
	}

	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}

	if c.MaxRetries == 0 {
		c.MaxRetries = defaultMaxRetries
	}

	if c.Logger == nil {
		c.Logger = log.DefaultLogger
	}
}
