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

package extension

import (
	"strings"

	gerrors "github.com/tochemey/ensemble/errors"
)

// Environment is a deployment mode gating conditional extensions.
type Environment string

const (
	Production  Environment = "production"
	Test        Environment = "test"
	Development Environment = "development"
)

// Environments lists the known environments in their canonical order.
func Environments() []Environment {
	return []Environment{Production, Test, Development}
}

// String returns the environment tag
func (e Environment) String() string {
	return string(e)
}

// IsValid reports whether e is one of production, test or development.
func (e Environment) IsValid() bool {
	switch e {
	case Production, Test, Development:
		return true
	default:
		return false
	}
}

// ParseEnvironment maps a tag (case-insensitive) to an Environment.
func ParseEnvironment(tag string) (Environment, error) {
	env := Environment(strings.ToLower(strings.TrimSpace(tag)))
	if !env.IsValid() {
		return "", gerrors.ErrInvalidEnvironment
	}
	return env, nil
}
