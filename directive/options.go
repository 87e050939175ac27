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

package directive

import (
	"fmt"
	"strings"

	gerrors "github.com/tochemey/ensemble/errors"
	"github.com/tochemey/ensemble/extension"
)

// Options is the ordered directive sequence a composite class is generated from.
// Two Options are equal when their canonical keys are equal: order and contents matter.
type Options []Directive

// Key returns the canonical structural key of the options.
func (o Options) Key() string {
	return render(List(o), Directive.key)
}

// Equal reports whether both options are structurally equal.
func (o Options) Equal(other Options) bool {
	return o.Key() == other.Key()
}

// Label renders prefix(:A, :B).
func (o Options) Label(prefix string) string {
	parts := make([]string, 0, len(o))
	for _, d := range o {
		parts = append(parts, renderOne(d, Directive.String))
	}
	return prefix + "(" + strings.Join(parts, ", ") + ")"
}

// Flatten expands nested lists in place order. Identifiers and maps are kept as is.
func Flatten(directives ...Directive) []Directive {
	out := make([]Directive, 0, len(directives))
	for _, d := range directives {
		if list, ok := d.(List); ok {
			out = append(out, Flatten(list...)...)
			continue
		}
		out = append(out, d)
	}
	return out
}

// Identifiers flattens directives that must only contain identifiers, as the
// values of an except entry do.
func Identifiers(directives ...Directive) ([]Identifier, error) {
	flat := Flatten(directives...)
	out := make([]Identifier, 0, len(flat))
	for _, d := range flat {
		id, ok := d.(Identifier)
		if !ok {
			return nil, gerrors.NewErrInvalidDirective(fmt.Sprintf("expected identifier, got %s", renderOne(d, Directive.String)))
		}
		if err := id.validate(); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

// Validate checks the shape of the directives without resolving identifiers:
// maps may only use environment tags or "except", except values must be
// identifiers and identifiers must be well formed.
func Validate(directives ...Directive) error {
	for _, d := range Flatten(directives...) {
		switch x := d.(type) {
		case Identifier:
			if err := x.validate(); err != nil {
				return err
			}
		case Map:
			if err := validateMap(x); err != nil {
				return err
			}
		default:
			return gerrors.NewErrInvalidDirective(fmt.Sprintf("unsupported directive %v", d))
		}
	}
	return nil
}

// IsEnvironmentKey reports whether key is one of production, test or development.
func IsEnvironmentKey(key string) bool {
	return extension.Environment(key).IsValid()
}

func validateMap(m Map) error {
	for _, entry := range m {
		switch {
		case entry.Key == ExceptKey:
			if _, err := Identifiers(entry.Values...); err != nil {
				return err
			}
		case IsEnvironmentKey(entry.Key):
			if err := Validate(entry.Values...); err != nil {
				return err
			}
		default:
			return gerrors.NewErrInvalidDirective(fmt.Sprintf("unknown key %q", entry.Key))
		}
	}
	return nil
}
