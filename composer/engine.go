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

	"github.com/tochemey/ensemble/directive"
	gerrors "github.com/tochemey/ensemble/errors"
	"github.com/tochemey/ensemble/extension"
	"github.com/tochemey/ensemble/hash"
	"github.com/tochemey/ensemble/log"
	"github.com/tochemey/ensemble/namespace"
	"github.com/tochemey/ensemble/registry"
)

// Engine turns directives into Register and Configure calls on a host.
//
// An engine is created with its root class by NewClass and is shared by every
// class derived from that root. Identifiers are resolved against the root
// namespace, falling back to the global namespace for dotted paths. A name
// missing there is looked up in the namespace its defaults were declared under.
type Engine struct {
	root        *Class
	scope       *namespace.Namespace
	global      *namespace.Namespace
	loader      namespace.Loader
	hasher      hash.Hasher
	logger      log.Logger
	labelPrefix string
}

// step is one planned unit of work: either a capability to register or an
// environment-gated directive list to configure.
type step struct {
	ext    extension.Extension
	env    extension.Environment
	values directive.List
}

// Root returns the class the engine was created with
func (e *Engine) Root() *Class {
	return e.root
}

// Scope returns the namespace identifiers are resolved against
func (e *Engine) Scope() *namespace.Namespace {
	return e.scope
}

// Global returns the global namespace
func (e *Engine) Global() *namespace.Namespace {
	return e.global
}

// Logger returns the engine logger
func (e *Engine) Logger() log.Logger {
	return e.logger
}

// Resolve maps a single identifier to its extension.
func (e *Engine) Resolve(id directive.Identifier) (extension.Extension, error) {
	return namespace.Resolve(id, e.scope, e.global)
}

// resolve tries the root namespace first, then the namespace defaults were
// declared under. A failed load is not retried elsewhere.
func (e *Engine) resolve(defaults *registry.Defaults, id directive.Identifier) (extension.Extension, error) {
	ext, err := e.Resolve(id)
	if err == nil || defaults == nil || !namespace.IsNotFound(err) {
		return ext, err
	}
	scope := defaults.Scope()
	if scope == nil || scope == e.scope {
		return nil, err
	}
	ext, fallbackErr := namespace.Resolve(id, scope, e.global)
	if fallbackErr != nil && namespace.IsNotFound(fallbackErr) {
		return nil, err
	}
	return ext, fallbackErr
}

// Apply attaches the capabilities described by directives to host.
//
// With no directive the defaults of the nearest registry are applied: the
// host's own when host is a class, else its ancestors', else the root's.
// Every bare identifier is resolved and every map validated before anything
// is attached, so a failing call leaves host untouched.
func (e *Engine) Apply(host extension.Host, directives ...directive.Directive) error {
	return e.apply(host, e.defaultsFor(host), directives)
}

func (e *Engine) apply(host extension.Host, defaults *registry.Defaults, directives []directive.Directive) error {
	if len(directives) == 0 {
		if defaults == nil {
			e.logger.Debugf("no directive and no declared default for %s", hostName(host))
			return nil
		}
		directives = defaults.Directives()
	}

	steps, err := e.plan(defaults, directives, false)
	if err != nil {
		e.logger.With("host", hostName(host)).Debugf("composition rejected: %v", err)
		return err
	}
	return e.execute(host, defaults, steps)
}

// plan resolves and validates directives. When eager is set the values of
// environment entries are resolved too, which is how Generate fails fast.
func (e *Engine) plan(defaults *registry.Defaults, directives []directive.Directive, eager bool) ([]step, error) {
	flat := directive.Flatten(directives...)
	steps := make([]step, 0, len(flat))
	for _, d := range flat {
		switch x := d.(type) {
		case directive.Identifier:
			if err := directive.Validate(x); err != nil {
				return nil, err
			}
			ext, err := e.resolve(defaults, x)
			if err != nil {
				return nil, err
			}
			steps = append(steps, step{ext: ext})
		case directive.Map:
			if err := directive.Validate(x); err != nil {
				return nil, err
			}
			for _, entry := range x {
				if entry.Key == directive.ExceptKey {
					nested, err := e.planExcept(defaults, entry.Values, eager)
					if err != nil {
						return nil, err
					}
					steps = append(steps, nested...)
					continue
				}

				if eager {
					if _, err := e.plan(defaults, entry.Values, eager); err != nil {
						return nil, err
					}
				}
				steps = append(steps, step{env: extension.Environment(entry.Key), values: entry.Values})
			}
		default:
			return nil, gerrors.NewErrInvalidDirective(fmt.Sprintf("unsupported directive %v", d))
		}
	}
	return steps, nil
}

// planExcept plans the full default set minus the excluded identifiers.
func (e *Engine) planExcept(defaults *registry.Defaults, values directive.List, eager bool) ([]step, error) {
	excluded, err := directive.Identifiers(values...)
	if err != nil {
		return nil, err
	}
	if defaults == nil || defaults.IsEmpty() {
		return nil, gerrors.NewErrInvalidDirective("except requires declared defaults")
	}
	remaining := defaults.Without(excluded)
	if len(remaining) == 0 {
		return nil, nil
	}
	return e.plan(defaults, remaining, eager)
}

func (e *Engine) execute(host extension.Host, defaults *registry.Defaults, steps []step) error {
	for _, s := range steps {
		if s.ext != nil {
			if err := host.Register(s.ext); err != nil {
				return err
			}
			continue
		}

		values := s.values
		if err := host.Configure(s.env, func(h extension.Host) error {
			if len(values) == 0 {
				return nil
			}
			return e.apply(h, defaults, values)
		}); err != nil {
			return err
		}
	}
	return nil
}

// defaultsFor returns the registry an empty or except directive reads from.
func (e *Engine) defaultsFor(host extension.Host) *registry.Defaults {
	if class, ok := host.(*Class); ok {
		if defaults := class.nearestDefaults(); defaults != nil {
			return defaults
		}
	}
	if b, ok := host.(*builder); ok {
		if defaults := b.class.nearestDefaults(); defaults != nil {
			return defaults
		}
	}
	return e.root.ownDefaults()
}

func hostName(host extension.Host) string {
	if s, ok := host.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", host)
}
