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
	"strings"
)

const maxIDLength = 255

var (
	idPattern   = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*$`)
	namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// idValidator checks extension IDs: at most 255 characters, starting with an
// alphanumeric character followed by alphanumerics, '-' or '_'.
type idValidator struct {
	id        string
	customErr error
}

var _ Validator = (*idValidator)(nil)

// NewIDValidator creates a validator for an extension ID. When customErr is not nil
// it is wrapped into the violation.
func NewIDValidator(id string, customErr error) Validator {
	return &idValidator{id: id, customErr: customErr}
}

// Validate executes the validation
func (x *idValidator) Validate() error {
	if strings.TrimSpace(x.id) == "" || len(x.id) > maxIDLength || !idPattern.MatchString(x.id) {
		if x.customErr != nil {
			return fmt.Errorf("id=(%s) %w", x.id, x.customErr)
		}
		return fmt.Errorf("invalid id=(%s)", x.id)
	}
	return nil
}

// NewNameValidator validates a namespace member or namespace segment name.
func NewNameValidator(name string, customErr error) Validator {
	return NewPatternValidator(namePattern, name, wrapName(name, customErr))
}

func wrapName(name string, customErr error) error {
	if customErr == nil {
		return nil
	}
	return fmt.Errorf("name=(%s) %w", name, customErr)
}
