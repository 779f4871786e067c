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

package bolt

import (
	"os"
	"strings"
	"time"

	"github.com/tochemey/actorhost/internal/validation"
	"github.com/tochemey/actorhost/log"
)

const (
	defaultBucket   = "actor_states"
	defaultTimeout  = 5 * time.Second
	defaultFileMode = os.FileMode(0o600)
)

// Config holds the configuration of the bbolt state provider.
type Config struct {
	// Path is the database file. It is created when missing.
	Path string
	// Bucket holds the actor states. Defaults to actor_states.
	Bucket string
	// Timeout bounds how long opening waits for the file lock.
	Timeout time.Duration
	// FileMode is used when creating the database file.
	FileMode os.FileMode
	// NoSync skips fsync after each commit. Only use it for tests.
	NoSync bool
	// Logger is the provider logger. Defaults to log.DefaultLogger.
	Logger log.Logger
}

var _ validation.Validator = (*Config)(nil)

// Validate implements validation.Validator.
func (c *Config) Validate() error {
	return validation.New(validation.FailFast()).
		AddValidator(validation.NewEmptyStringValidator("Path", c.Path)).
		AddValidator(validation.NewEmptyStringValidator("Bucket", c.Bucket)).
		AddAssertion(c.Timeout > 0, "Timeout must be greater than 0").
		Validate()
}

// Sanitize fills in the defaults
func (c *Config) Sanitize() {
	if strings.TrimSpace(c.Bucket) == "" {
		c.Bucket = defaultBucket
	}

	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}

	if c.FileMode == 0 {
		c.FileMode = defaultFileMode
	}

	if c.Logger == nil {
		c.Logger = log.DefaultLogger
	}
}
