// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package validation

import (
	"fmt"
	"regexp"
)

// patternValidator checks an expression against a compiled regular expression.
type patternValidator struct {
	pattern    *regexp.Regexp
	expression string
	customErr  error
}

var _ Validator = (*patternValidator)(nil)

// NewPatternValidator creates a validator matching expression against pattern.
// customErr, when set, is returned as is on mismatch.
func NewPatternValidator(pattern *regexp.Regexp, expression string, customErr error) Validator {
	return &patternValidator{
		pattern:    pattern,
		expression: expression,
		customErr:  customErr,
	}
}

// Validate executes the validation
func (x *patternValidator) Validate() error {
	if x.pattern != nil && x.pattern.MatchString(x.expression) {
		return nil
	}
	if x.customErr != nil {
		return x.customErr
	}
	return fmt.Errorf("invalid expression=(%s)", x.expression)
}
