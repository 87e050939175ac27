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

package composer

import (
	"fmt"

	goset "github.com/deckarep/golang-set/v2"

	gerrors "github.com/tochemey/ensemble/errors"
	"github.com/tochemey/ensemble/extension"
	"github.com/tochemey/ensemble/internal/validation"
)

// Blueprint is the immutable set of extensions a class carries in a given environment.
type Blueprint struct {
	name       string
	env        extension.Environment
	extensions []extension.Extension
	index      map[string]extension.Extension
}

// Name returns the name of the class the blueprint was built from
func (b *Blueprint) Name() string {
	return b.name
}

// Environment returns the environment the blueprint was built for
func (b *Blueprint) Environment() extension.Environment {
	return b.env
}

// Extensions returns the extensions in attachment order
func (b *Blueprint) Extensions() []extension.Extension {
	out := make([]extension.Extension, len(b.extensions))
	copy(out, b.extensions)
	return out
}

// Extension returns the extension with the given ID.
func (b *Blueprint) Extension(id string) (extension.Extension, bool) {
	ext, ok := b.index[id]
	return ext, ok
}

// IDs returns the extension IDs in attachment order
func (b *Blueprint) IDs() []string {
	ids := make([]string, 0, len(b.extensions))
	for _, ext := range b.extensions {
		ids = append(ids, ext.ID())
	}
	return ids
}

// Build materializes the class for env: the unconditional extensions of every
// ancestor and of the class itself, plus whatever the deferred actions
// recorded for env attach. Actions recorded for other environments are skipped.
func (c *Class) Build(env extension.Environment) (*Blueprint, error) {
	if !env.IsValid() {
		return nil, fmt.Errorf("env=(%s) %w", env, gerrors.ErrInvalidEnvironment)
	}

	b := &builder{
		class: c,
		env:   env,
		seen:  goset.NewThreadUnsafeSet[string](),
	}

	for _, class := range c.lineage() {
		attached, deferred := class.snapshot()
		for _, ext := range attached {
			b.attach(ext)
		}
		for _, action := range deferred {
			if action.env != env {
				continue
			}
			if err := action.fn(b); err != nil {
				return nil, err
			}
		}
	}

	chain := validation.New(validation.AllErrors())
	for _, ext := range b.extensions {
		chain.AddValidator(validation.NewIDValidator(ext.ID(), gerrors.ErrInvalidExtensionID))
	}
	if err := chain.Validate(); err != nil {
		return nil, err
	}

	blueprint := &Blueprint{
		name:       c.String(),
		env:        env,
		extensions: b.extensions,
		index:      make(map[string]extension.Extension, len(b.extensions)),
	}
	for _, ext := range b.extensions {
		blueprint.index[ext.ID()] = ext
	}

	c.engine.logger.With("class", c.String(), "env", env.String()).Debugf("built with %d extension(s)", len(b.extensions))
	return blueprint, nil
}

// builder is the host deferred actions run against during Build.
type builder struct {
	class      *Class
	env        extension.Environment
	seen       goset.Set[string]
	extensions []extension.Extension
}

// enforce compilation error
var _ extension.Host = (*builder)(nil)

// Register attaches ext to the blueprint being built and notifies it once.
func (b *builder) Register(ext extension.Extension) error {
	if ext == nil {
		return gerrors.ErrUndefinedExtension
	}
	if !b.attach(ext) {
		return nil
	}
	if registrar, ok := ext.(extension.Registrar); ok {
		return registrar.Registered(b)
	}
	return nil
}

// Configure runs fn right away when env is the environment being built.
func (b *builder) Configure(env extension.Environment, fn func(host extension.Host) error) error {
	if !env.IsValid() {
		return fmt.Errorf("env=(%s) %w", env, gerrors.ErrInvalidEnvironment)
	}
	if env != b.env || fn == nil {
		return nil
	}
	return fn(b)
}

func (b *builder) String() string {
	return b.class.String()
}

func (b *builder) attach(ext extension.Extension) bool {
	if !b.seen.Add(ext.ID()) {
		return false
	}
	b.extensions = append(b.extensions, ext)
	return true
}
