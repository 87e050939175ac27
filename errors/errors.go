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

package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnresolvedExtension is returned when an extension identifier cannot be mapped
	// to a registered extension.
	ErrUnresolvedExtension = errors.New("unresolved extension")

	// ErrInvalidDirective is returned when a composition directive is malformed or uses a key
	// other than production, test, development or except.
	ErrInvalidDirective = errors.New("invalid directive")

	// ErrAmbiguousCapability is returned by loaders that find more than one candidate
	// for a hint. It is reported as an ErrUnresolvedExtension as well.
	ErrAmbiguousCapability = errors.New("ambiguous capability reference")

	// ErrInvalidExtensionID is returned when an extension ID does not satisfy the ID constraints.
	ErrInvalidExtensionID = errors.New("invalid extension ID, must contain only word characters (i.e. [a-zA-Z0-9] plus non-leading '-' or '_')")

	// ErrInvalidName is returned when a namespace member or namespace name is not a valid identifier.
	ErrInvalidName = errors.New("invalid name, must start with a letter or '_' and contain only [a-zA-Z0-9_]")

	// ErrExtensionExists is returned when a namespace already defines a different extension under a name.
	ErrExtensionExists = errors.New("extension already defined")

	// ErrUndefinedExtension is returned when a nil extension is registered.
	ErrUndefinedExtension = errors.New("extension is not defined")

	// ErrLoaderNotSet is returned when an autoload entry is hit but the namespace has no loader.
	ErrLoaderNotSet = errors.New("namespace loader is not set")

	// ErrInvalidEnvironment is returned when an environment name is not one of production, test or development.
	ErrInvalidEnvironment = errors.New("invalid environment, must be one of: 'production', 'test' or 'development'")

	// ErrInvalidManifest is returned when a manifest document cannot be decoded into directives.
	ErrInvalidManifest = errors.New("invalid manifest")
)

// NewErrUnresolvedExtension formats an ErrUnresolvedExtension for the given identifier.
func NewErrUnresolvedExtension(identifier string) error {
	return fmt.Errorf("extension=(%s) %w", identifier, ErrUnresolvedExtension)
}

// NewErrInvalidDirective formats an ErrInvalidDirective with the offending key or reason.
func NewErrInvalidDirective(reason string) error {
	return fmt.Errorf("(%s) %w", reason, ErrInvalidDirective)
}

// NewErrAmbiguousCapability formats an ErrAmbiguousCapability listing the candidates.
// The returned error also matches ErrUnresolvedExtension.
func NewErrAmbiguousCapability(name string, candidates []string) error {
	return fmt.Errorf("extension=(%s) candidates=(%s) %w: %w", name, strings.Join(candidates, ", "), ErrAmbiguousCapability, ErrUnresolvedExtension)
}

// NewErrExtensionExists formats an ErrExtensionExists for the given qualified name.
func NewErrExtensionExists(name string) error {
	return fmt.Errorf("name=(%s) %w", name, ErrExtensionExists)
}

// NewErrInvalidExtensionID formats an ErrInvalidExtensionID for the given ID.
func NewErrInvalidExtensionID(id string) error {
	return fmt.Errorf("id=(%s) %w", id, ErrInvalidExtensionID)
}

// NewErrInvalidManifest wraps a decoding error with ErrInvalidManifest.
func NewErrInvalidManifest(err error) error {
	return errors.Join(ErrInvalidManifest, err)
}

// LoadError reports that a loader failed to resolve an autoload hint.
type LoadError struct {
	path string
	err  error
}

// enforce compilation error
var _ error = (*LoadError)(nil)

// NewLoadError creates an instance of LoadError
func NewLoadError(path string, err error) *LoadError {
	return &LoadError{path: path, err: err}
}

// Error implements the standard error interface
func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.path, e.err)
}

// Path returns the conventional path the loader was asked for.
func (e *LoadError) Path() string {
	return e.path
}

func (e *LoadError) Unwrap() error {
	return e.err
}
