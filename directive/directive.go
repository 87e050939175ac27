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
	"github.com/tochemey/ensemble/internal/validation"
)

// ExceptKey is the map key removing identifiers from the recorded defaults.
const ExceptKey = "except"

// Directive is one node of the composition mini-language: an Identifier,
// a List of directives or a Map keyed by environment tag or "except".
type Directive interface {
	// String renders the directive the way composite labels display it.
	String() string
	// key renders the canonical structural form used for equality.
	key() string
	sealed()
}

// Kind tells how an Identifier refers to its extension.
type Kind int

const (
	// NameKind is a symbolic name looked up in the composing namespace.
	NameKind Kind = iota
	// PathKind is a dotted path walked from the composing namespace.
	PathKind
	// DirectKind carries the extension itself.
	DirectKind
)

// Identifier refers to an extension by symbolic name, dotted path or directly.
type Identifier struct {
	kind  Kind
	value string
	ext   extension.Extension
}

var _ Directive = Identifier{}

// Name creates a symbolic identifier such as :Sessions.
func Name(name string) Identifier {
	return Identifier{kind: NameKind, value: strings.TrimSpace(name)}
}

// Path creates a dotted path identifier. "::" is accepted as separator and
// normalized to ".".
func Path(path string) Identifier {
	return Identifier{kind: PathKind, value: strings.ReplaceAll(strings.TrimSpace(path), "::", ".")}
}

// Direct wraps an extension that needs no resolution.
func Direct(ext extension.Extension) Identifier {
	return Identifier{kind: DirectKind, ext: ext}
}

// Names is a shorthand for a list of symbolic identifiers.
func Names(names ...string) List {
	out := make(List, 0, len(names))
	for _, name := range names {
		out = append(out, Name(name))
	}
	return out
}

// Kind returns the identifier kind
func (x Identifier) Kind() Kind {
	return x.kind
}

// Value returns the name or the normalized path. It is empty for direct identifiers.
func (x Identifier) Value() string {
	return x.value
}

// Extension returns the wrapped extension of a direct identifier, nil otherwise.
func (x Identifier) Extension() extension.Extension {
	return x.ext
}

// Segments splits a path identifier. A name yields a single segment.
func (x Identifier) Segments() []string {
	if x.kind == DirectKind {
		return nil
	}
	return strings.Split(x.value, ".")
}

// BaseName returns the last path segment, the name itself, or the extension ID.
func (x Identifier) BaseName() string {
	if x.kind == DirectKind {
		if x.ext == nil {
			return ""
		}
		return x.ext.ID()
	}
	segments := x.Segments()
	return segments[len(segments)-1]
}

// Equal compares identifiers structurally. Direct identifiers are equal when they
// wrap the same extension reference. Two extensions sharing an ID stay distinct.
func (x Identifier) Equal(other Identifier) bool {
	return x.key() == other.key()
}

// String renders :Name, "A.B" or the extension ID.
func (x Identifier) String() string {
	switch x.kind {
	case NameKind:
		return ":" + x.value
	case PathKind:
		return fmt.Sprintf("%q", x.value)
	default:
		return x.BaseName()
	}
}

// Key is the canonical form of the identifier.
func (x Identifier) Key() string {
	return x.key()
}

func (x Identifier) key() string {
	if x.kind == DirectKind {
		if x.ext == nil {
			return "&<nil>"
		}
		return fmt.Sprintf("&%T@%s(%s)", x.ext, referenceOf(x.ext), x.ext.ID())
	}
	return x.String()
}

func (Identifier) sealed() {}

func (x Identifier) validate() error {
	switch x.kind {
	case DirectKind:
		if x.ext == nil {
			return gerrors.NewErrInvalidDirective("nil extension")
		}
	default:
		for _, segment := range x.Segments() {
			if segment == "" {
				return gerrors.NewErrInvalidDirective(fmt.Sprintf("empty segment in %s", x))
			}
			if err := validation.NewNameValidator(segment, nil).Validate(); err != nil {
				return gerrors.NewErrInvalidDirective(fmt.Sprintf("malformed segment %q in %s", segment, x))
			}
		}
	}
	return nil
}

// List groups directives. Lists are flattened before composition.
type List []Directive

var _ Directive = List(nil)

// String renders [a, b]
func (l List) String() string {
	return render(l, Directive.String)
}

func (l List) key() string {
	return render(l, Directive.key)
}

func (List) sealed() {}

// Entry is one key of a Map directive.
type Entry struct {
	Key    string
	Values List
}

// Map holds ordered entries keyed by environment tag or "except".
// Keys are validated when the map is composed.
type Map []Entry

var _ Directive = Map(nil)

// On scopes values to env.
func On(env extension.Environment, values ...Directive) Map {
	return Map{{Key: env.String(), Values: values}}
}

// Except removes the given identifiers from the recorded defaults.
func Except(values ...Directive) Map {
	return Map{{Key: ExceptKey, Values: values}}
}

// Entries builds a map from raw keys.
func Entries(key string, values ...Directive) Map {
	return Map{{Key: key, Values: values}}
}

// String renders {key: value}. Values are flattened and a single value is rendered bare.
func (m Map) String() string {
	return renderMap(m, Directive.String)
}

func (m Map) key() string {
	return renderMap(m, Directive.key)
}

func (Map) sealed() {}

func render(list List, fn func(Directive) string) string {
	parts := make([]string, 0, len(list))
	for _, d := range list {
		parts = append(parts, renderOne(d, fn))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func renderMap(m Map, fn func(Directive) string) string {
	parts := make([]string, 0, len(m))
	for _, entry := range m {
		values := List(Flatten(entry.Values...))
		value := render(values, fn)
		if len(values) == 1 {
			value = renderOne(values[0], fn)
		}
		parts = append(parts, entry.Key+": "+value)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func renderOne(d Directive, fn func(Directive) string) string {
	if d == nil {
		return "nil"
	}
	return fn(d)
}
