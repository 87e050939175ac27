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
	"strings"

	"github.com/tochemey/ensemble/hash"
	"github.com/tochemey/ensemble/log"
	"github.com/tochemey/ensemble/namespace"
)

// DefaultLabelPrefix prefixes the label of every generated class: Composite(:A, :B).
const DefaultLabelPrefix = "Composite"

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of an engine.
	Apply(engine *Engine)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*Engine)

func (f OptionFunc) Apply(e *Engine) {
	f(e)
}

// WithLogger sets the engine logger
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	})
}

// WithLoader sets the loader the root namespace uses to materialize
// identifiers declared as defaults but not yet defined.
func WithLoader(loader namespace.Loader) Option {
	return OptionFunc(func(e *Engine) {
		e.loader = loader
	})
}

// WithGlobal sets the global namespace paths fall back to when a segment
// is not nested under the root namespace. The root namespace is then created
// as a child of global.
func WithGlobal(global *namespace.Namespace) Option {
	return OptionFunc(func(e *Engine) {
		e.global = global
	})
}

// WithHasher sets the hasher keying composite caches
func WithHasher(hasher hash.Hasher) Option {
	return OptionFunc(func(e *Engine) {
		if hasher != nil {
			e.hasher = hasher
		}
	})
}

// WithLabelPrefix sets the prefix of generated class labels
func WithLabelPrefix(prefix string) Option {
	return OptionFunc(func(e *Engine) {
		if prefix = strings.TrimSpace(prefix); prefix != "" {
			e.labelPrefix = prefix
		}
	})
}
