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

package registry

import (
	"fmt"
	"sync"

	goset "github.com/deckarep/golang-set/v2"

	"github.com/tochemey/ensemble/directive"
	gerrors "github.com/tochemey/ensemble/errors"
	"github.com/tochemey/ensemble/extension"
	"github.com/tochemey/ensemble/namespace"
)

// Defaults records the extensions a class carries when no explicit directive is given:
// an unconditional list and one list per environment.
//
// Declare is both setter and getter: called with directives it merges them and
// recomputes the flattened list, called without it returns the cached list.
type Defaults struct {
	scope *namespace.Namespace

	mu        sync.Mutex
	nonEnv    []directive.Identifier
	envOrder  []extension.Environment
	envLists  map[extension.Environment][]directive.Identifier
	flattened []directive.Identifier
	hints     []namespace.Hint
	hinted    goset.Set[string]
}

// NewDefaults creates an empty registry whose lazy-load hints are derived from scope.
// The development bucket always exists, mirroring the usual development-only extensions.
func NewDefaults(scope *namespace.Namespace) *Defaults {
	return &Defaults{
		scope:    scope,
		envOrder: []extension.Environment{extension.Development},
		envLists: map[extension.Environment][]directive.Identifier{extension.Development: nil},
		hinted:   goset.NewThreadUnsafeSet[string](),
	}
}

// Declare merges directives into the registry and returns the flattened identifiers.
// With no directives it returns the cached list, computing it once when absent.
func (d *Defaults) Declare(directives ...directive.Directive) ([]directive.Identifier, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(directives) == 0 {
		if d.flattened == nil {
			d.flattened = d.flatten()
		}
		return clone(d.flattened), nil
	}

	nonEnv, envLists, err := split(directives)
	if err != nil {
		return nil, err
	}

	for _, id := range nonEnv {
		d.nonEnv = appendUnique(d.nonEnv, id)
		d.hint(id)
	}
	for _, entry := range envLists {
		if _, ok := d.envLists[entry.env]; !ok {
			d.envOrder = append(d.envOrder, entry.env)
		}
		list := d.envLists[entry.env]
		for _, id := range entry.ids {
			list = appendUnique(list, id)
			d.hint(id)
		}
		d.envLists[entry.env] = list
	}

	d.flattened = d.flatten()
	return clone(d.flattened), nil
}

// Directives returns the default directive set used for composition: the
// unconditional identifiers followed by one map of environment lists.
func (d *Defaults) Directives() directive.Options {
	return d.Without(nil)
}

// Without returns the default directive set with every identifier in excluded removed
// from the unconditional list and from each environment list independently.
func (d *Defaults) Without(excluded []directive.Identifier) directive.Options {
	skip := goset.NewThreadUnsafeSet[string]()
	for _, id := range excluded {
		skip.Add(id.Key())
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	out := make(directive.Options, 0, len(d.nonEnv)+1)
	for _, id := range d.nonEnv {
		if !skip.Contains(id.Key()) {
			out = append(out, id)
		}
	}

	envMap := make(directive.Map, 0, len(d.envOrder))
	for _, env := range d.envOrder {
		values := make(directive.List, 0, len(d.envLists[env]))
		for _, id := range d.envLists[env] {
			if !skip.Contains(id.Key()) {
				values = append(values, id)
			}
		}
		if len(values) > 0 {
			envMap = append(envMap, directive.Entry{Key: env.String(), Values: values})
		}
	}
	if len(envMap) > 0 {
		out = append(out, envMap)
	}
	return out
}

// Scope returns the namespace the hints are derived from, nil when none.
func (d *Defaults) Scope() *namespace.Namespace {
	return d.scope
}

// Environment returns the identifiers declared for env.
func (d *Defaults) Environment(env extension.Environment) []directive.Identifier {
	d.mu.Lock()
	defer d.mu.Unlock()
	return clone(d.envLists[env])
}

// Unconditional returns the identifiers declared outside any environment.
func (d *Defaults) Unconditional() []directive.Identifier {
	d.mu.Lock()
	defer d.mu.Unlock()
	return clone(d.nonEnv)
}

// Hints returns the lazy-load hints emitted so far, in declaration order.
func (d *Defaults) Hints() []namespace.Hint {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]namespace.Hint, len(d.hints))
	copy(out, d.hints)
	return out
}

// IsEmpty reports whether nothing has been declared.
func (d *Defaults) IsEmpty() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.nonEnv) > 0 {
		return false
	}
	for _, list := range d.envLists {
		if len(list) > 0 {
			return false
		}
	}
	return true
}

// hint registers an autoload hint for a name or path identifier seen for the first time.
// A name the scope already defines needs no hint.
func (d *Defaults) hint(id directive.Identifier) {
	if id.Kind() == directive.DirectKind || d.hinted.Contains(id.Key()) {
		return
	}
	if id.Kind() == directive.NameKind && d.scope != nil && d.scope.Defines(id.Value()) {
		return
	}
	d.hinted.Add(id.Key())

	hint := HintFor(d.scope, id)
	d.hints = append(d.hints, hint)
	if d.scope != nil && id.Kind() == directive.NameKind {
		d.scope.Autoload(id.Value(), hint)
	}
}

// flatten must be called with the lock held.
func (d *Defaults) flatten() []directive.Identifier {
	seen := goset.NewThreadUnsafeSet[string]()
	out := make([]directive.Identifier, 0, len(d.nonEnv))
	add := func(ids []directive.Identifier) {
		for _, id := range ids {
			if seen.Add(id.Key()) {
				out = append(out, id)
			}
		}
	}
	add(d.nonEnv)
	for _, env := range d.envOrder {
		add(d.envLists[env])
	}
	return out
}

// HintFor derives the hint of an identifier declared under scope:
// Foo under My.Extensions gives {My.Extensions.Foo, my/extensions/foo}.
func HintFor(scope *namespace.Namespace, id directive.Identifier) namespace.Hint {
	qualified := id.Value()
	if scope != nil {
		qualified = scope.Qualify(id.Value())
	}
	return namespace.Hint{
		QualifiedName: qualified,
		Path:          namespace.ConstPath(qualified),
	}
}

type envIdentifiers struct {
	env extension.Environment
	ids []directive.Identifier
}

// split sorts declared directives into unconditional identifiers and environment lists.
func split(directives []directive.Directive) ([]directive.Identifier, []envIdentifiers, error) {
	if err := directive.Validate(directives...); err != nil {
		return nil, nil, err
	}

	var (
		nonEnv   []directive.Identifier
		envLists []envIdentifiers
	)
	for _, d := range directive.Flatten(directives...) {
		switch x := d.(type) {
		case directive.Identifier:
			nonEnv = append(nonEnv, x)
		case directive.Map:
			for _, entry := range x {
				if entry.Key == directive.ExceptKey {
					return nil, nil, gerrors.NewErrInvalidDirective("except cannot be declared as a default")
				}
				ids, err := directive.Identifiers(entry.Values...)
				if err != nil {
					return nil, nil, gerrors.NewErrInvalidDirective(fmt.Sprintf("%s defaults must be identifiers", entry.Key))
				}
				envLists = append(envLists, envIdentifiers{env: extension.Environment(entry.Key), ids: ids})
			}
		}
	}
	return nonEnv, envLists, nil
}

func appendUnique(list []directive.Identifier, id directive.Identifier) []directive.Identifier {
	for _, existing := range list {
		if existing.Equal(id) {
			return list
		}
	}
	return append(list, id)
}

func clone(ids []directive.Identifier) []directive.Identifier {
	out := make([]directive.Identifier, len(ids))
	copy(out, ids)
	return out
}
