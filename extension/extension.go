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
	gerrors "github.com/tochemey/ensemble/errors"
	"github.com/tochemey/ensemble/internal/validation"
)

// Extension is a unit of behavior that can be attached to a class.
//
// What an extension does is up to its author: the composition engine only decides
// which extensions a class carries. Extensions are identified by ID, and two
// extensions with the same ID are treated as the same capability when a class
// collects its extensions.
//
// The identifier must:
//   - Be no more than 255 characters long.
//   - Start with an alphanumeric character [a-zA-Z0-9].
//   - Contain only alphanumeric characters, hyphens (-), or underscores (_) thereafter.
type Extension interface {
	// ID returns the unique identifier for the extension.
	ID() string
}

// Registrar is implemented by extensions that need to act on the host they are
// registered with, for instance to install environment specific settings.
//
// Registered is called once per host, right after the extension has been attached.
type Registrar interface {
	Extension
	Registered(host Host) error
}

// Host is the class-like target extensions are attached to. The composition
// engine calls exactly these two methods.
type Host interface {
	// Register attaches the extension to the host.
	Register(ext Extension) error
	// Configure records fn to run when the host is built for env.
	Configure(env Environment, fn func(host Host) error) error
}

// ValidateID checks the extension ID against the ID constraints.
func ValidateID(ext Extension) error {
	if ext == nil {
		return gerrors.ErrUndefinedExtension
	}
	return validation.NewIDValidator(ext.ID(), gerrors.ErrInvalidExtensionID).Validate()
}
