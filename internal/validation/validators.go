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
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// maxNameLength bounds actor ids and actor type names.
const maxNameLength = 255

// namePattern accepts word characters plus non-leading '-', '_', '.', ':' and '@'.
var namePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9\-_.:@]*$`)

// booleanValidator returns an error message when the condition is false.
type booleanValidator struct {
	boolCheck  bool
	errMessage string
}

// NewBooleanValidator creates a new boolean validator that returns an error message if condition is false
// This validator will come handy when dealing with conditional validation
func NewBooleanValidator(boolCheck bool, errMessage string) Validator {
	return booleanValidator{boolCheck: boolCheck, errMessage: errMessage}
}

// Validate returns an error if boolean check is false
func (v booleanValidator) Validate() error {
	if !v.boolCheck {
		return errors.New(v.errMessage)
	}
	return nil
}

// emptyStringValidator rejects blank values.
type emptyStringValidator struct {
	field string
	value string
}

// NewEmptyStringValidator creates a validator that fails when value is blank.
func NewEmptyStringValidator(field, value string) Validator {
	return emptyStringValidator{field: field, value: value}
}

// Validate executes the validation
func (v emptyStringValidator) Validate() error {
	if strings.TrimSpace(v.value) == "" {
		return fmt.Errorf("the [%s] is required", v.field)
	}
	return nil
}

// patternValidator matches an expression against a compiled pattern.
type patternValidator struct {
	pattern    *regexp.Regexp
	expression string
	customErr  error
}

// NewPatternValidator creates a validator matching expression against pattern.
// customErr is returned on mismatch when set.
func NewPatternValidator(pattern *regexp.Regexp, expression string, customErr error) Validator {
	return patternValidator{
		pattern:    pattern,
		expression: expression,
		customErr:  customErr,
	}
}

// Validate executes the validation
func (v patternValidator) Validate() error {
	if !v.pattern.MatchString(v.expression) {
		if v.customErr != nil {
			return v.customErr
		}
		return errors.New("invalid expression")
	}
	return nil
}

// NewNameValidator validates actor ids and actor type names: required, at most
// 255 characters and restricted to the name pattern.
func NewNameValidator(field, value string) Validator {
	return New(FailFast()).
		AddValidator(NewEmptyStringValidator(field, value)).
		AddAssertion(len(value) <= maxNameLength, fmt.Sprintf("the [%s] is too long. Maximum length is %d", field, maxNameLength)).
		AddValidator(NewPatternValidator(namePattern, value,
			fmt.Errorf("the [%s] must contain only word characters (i.e. [a-zA-Z0-9] plus non-leading '-', '_', '.', ':' or '@')", field)))
}
