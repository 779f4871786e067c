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

package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type validationTestSuite struct {
	suite.Suite
}

// In order for 'go test' to run this suite, we need to create
// a normal test function and pass our suite to suite.Run
func TestValidation(t *testing.T) {
	suite.Run(t, new(validationTestSuite))
}

func (s *validationTestSuite) TestNewChain() {
	s.Run("new chain without option", func() {
		chain := New()
		s.Assert().NotNil(chain)
		s.Assert().False(chain.failFast)
	})
	s.Run("new chain with options", func() {
		chain := New(FailFast())
		s.Assert().True(chain.failFast)
		chain2 := New(AllErrors())
		s.Assert().False(chain2.failFast)
	})
}

func (s *validationTestSuite) TestValidate() {
	s.Run("with single validator", func() {
		err := New().AddValidator(NewEmptyStringValidator("field", "")).Validate()
		s.Assert().EqualError(err, "the [field] is required")
	})
	s.Run("with multiple validators and FailFast option", func() {
		err := New(FailFast()).
			AddValidator(NewEmptyStringValidator("field", "  ")).
			AddAssertion(false, "this is false").
			Validate()
		s.Assert().EqualError(err, "the [field] is required")
	})
	s.Run("with multiple validators and AllErrors option", func() {
		chain := New(AllErrors()).
			AddValidator(NewEmptyStringValidator("field", "")).
			AddAssertion(false, "this is false")
		err := chain.Validate()
		s.Assert().EqualError(err, "the [field] is required; this is false")
		// validating twice does not accumulate
		s.Assert().EqualError(chain.Validate(), "the [field] is required; this is false")
	})
	s.Run("with passing validators", func() {
		err := New().
			AddValidator(NewEmptyStringValidator("field", "value")).
			AddAssertion(true, "").
			Validate()
		s.Assert().NoError(err)
	})
}

func (s *validationTestSuite) TestNameValidator() {
	s.Run("happy path", func() {
		s.Assert().NoError(NewNameValidator("actor id", "valid-id").Validate())
		s.Assert().NoError(NewNameValidator("actor id", "2d4b8f0e-7f3c-4cc1-9a51-5bb2f8c1e001").Validate())
		s.Assert().NoError(NewNameValidator("actor type", "bank.Account").Validate())
	})
	s.Run("with empty value", func() {
		s.Assert().EqualError(NewNameValidator("actor id", "").Validate(), "the [actor id] is required")
	})
	s.Run("with invalid length", func() {
		s.Assert().Error(NewNameValidator("actor id", strings.Repeat("a", 300)).Validate())
	})
	s.Run("with invalid characters", func() {
		s.Assert().Error(NewNameValidator("actor id", "$omeN@me").Validate())
		s.Assert().Error(NewNameValidator("actor id", "a||b").Validate())
		s.Assert().Error(NewNameValidator("actor id", "-leading").Validate())
	})
}
