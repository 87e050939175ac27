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

package namespace

import (
	"reflect"
	"sort"
	"sync"

	gerrors "github.com/tochemey/ensemble/errors"
	"github.com/tochemey/ensemble/extension"
	"github.com/tochemey/ensemble/internal/validation"
)

// Separator joins the segments of a qualified name.
const Separator = "."

// Hint tells a Loader where a lazily declared extension is expected to live.
type Hint struct {
	// QualifiedName is the dotted name of the extension, e.g. My.Extensions.Foo
	QualifiedName string
	// Path is the conventional path derived from the qualified name, e.g. my/extensions/foo
	Path string
}

// Loader resolves autoload hints the first time the hinted name is looked up.
type Loader interface {
	Load(hint Hint) (extension.Extension, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(hint Hint) (extension.Extension, error)

// Load implements Loader
func (f LoaderFunc) Load(hint Hint) (extension.Extension, error) {
	return f(hint)
}

// Namespace is a named scope of extensions and nested namespaces.
//
// Namespaces replace runtime constant lookup: extensions are defined under a name
// and resolved through Resolve. Names that are only known by convention can be
// registered as autoload hints and are loaded through the namespace Loader the
// first time they are looked up.
type Namespace struct {
	name   string
	parent *Namespace

	mu        sync.RWMutex
	members   map[string]extension.Extension
	children  map[string]*Namespace
	autoloads map[string]Hint
	loader    Loader
}

// New creates a root namespace. An empty name creates an anonymous root
// whose path is empty, which is what the global namespace uses.
func New(name string) *Namespace {
	return &Namespace{
		name:      name,
		members:   make(map[string]extension.Extension),
		children:  make(map[string]*Namespace),
		autoloads: make(map[string]Hint),
	}
}

// Name returns the namespace own name
func (n *Namespace) Name() string {
	return n.name
}

// Parent returns the enclosing namespace, nil for a root.
func (n *Namespace) Parent() *Namespace {
	return n.parent
}

// Path returns the dotted qualified name of the namespace.
func (n *Namespace) Path() string {
	if n.parent == nil || n.parent.Path() == "" {
		return n.name
	}
	return n.parent.Path() + Separator + n.name
}

// Qualify returns the qualified name of a member of the namespace.
func (n *Namespace) Qualify(name string) string {
	if path := n.Path(); path != "" {
		return path + Separator + name
	}
	return name
}

// ConstPath returns the conventional path of the namespace: every segment
// converted to snake case and joined with '/'.
func (n *Namespace) ConstPath() string {
	return ConstPath(n.Path())
}

// SetLoader sets the loader used to honor autoload hints. Child namespaces
// without a loader of their own use their parent's.
func (n *Namespace) SetLoader(loader Loader) {
	n.mu.Lock()
	n.loader = loader
	n.mu.Unlock()
}

// Define registers ext under name. Redefining a name with the same extension is a no-op.
func (n *Namespace) Define(name string, ext extension.Extension) error {
	if err := validation.NewNameValidator(name, gerrors.ErrInvalidName).Validate(); err != nil {
		return err
	}
	if ext == nil {
		return gerrors.ErrUndefinedExtension
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if existing, ok := n.members[name]; ok && !sameExtension(existing, ext) {
		return gerrors.NewErrExtensionExists(n.Qualify(name))
	}
	n.members[name] = ext
	delete(n.autoloads, name)
	return nil
}

// Child returns the nested namespace with the given name, creating it when needed.
func (n *Namespace) Child(name string) (*Namespace, error) {
	if err := validation.NewNameValidator(name, gerrors.ErrInvalidName).Validate(); err != nil {
		return nil, err
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if child, ok := n.children[name]; ok {
		return child, nil
	}
	child := New(name)
	child.parent = n
	n.children[name] = child
	return child, nil
}

// Autoload records that name is expected to be provided by a loader.
// A name already defined is left untouched.
func (n *Namespace) Autoload(name string, hint Hint) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.members[name]; ok {
		return
	}
	n.autoloads[name] = hint
}

// Autoloads returns the pending hints sorted by qualified name.
func (n *Namespace) Autoloads() []Hint {
	n.mu.RLock()
	hints := make([]Hint, 0, len(n.autoloads))
	for _, hint := range n.autoloads {
		hints = append(hints, hint)
	}
	n.mu.RUnlock()
	sort.Slice(hints, func(i, j int) bool { return hints[i].QualifiedName < hints[j].QualifiedName })
	return hints
}

// Defines reports whether name is a defined member. Pending autoload hints do not count.
func (n *Namespace) Defines(name string) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	_, ok := n.members[name]
	return ok
}

// Members returns the names of the defined extensions, sorted.
func (n *Namespace) Members() []string {
	n.mu.RLock()
	names := make([]string, 0, len(n.members))
	for name := range n.members {
		names = append(names, name)
	}
	n.mu.RUnlock()
	sort.Strings(names)
	return names
}

// lookupChild returns a nested namespace without creating it.
func (n *Namespace) lookupChild(name string) (*Namespace, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	child, ok := n.children[name]
	return child, ok
}

// lookup finds a member by its exact name, then through a pending autoload
// hint. found is false when nothing matched.
func (n *Namespace) lookup(name string) (ext extension.Extension, found bool, err error) {
	n.mu.RLock()
	if ext, ok := n.members[name]; ok {
		n.mu.RUnlock()
		return ext, true, nil
	}
	hint, pending := n.autoloads[name]
	n.mu.RUnlock()

	if !pending {
		return nil, false, nil
	}
	ext, err = n.load(name, hint)
	return ext, true, err
}

func (n *Namespace) member(name string) extension.Extension {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.members[name]
}

func (n *Namespace) load(name string, hint Hint) (extension.Extension, error) {
	loader := n.effectiveLoader()
	if loader == nil {
		return nil, gerrors.NewLoadError(hint.Path, gerrors.ErrLoaderNotSet)
	}

	ext, err := loader.Load(hint)
	if err != nil {
		return nil, gerrors.NewLoadError(hint.Path, err)
	}
	if ext == nil {
		return nil, gerrors.NewLoadError(hint.Path, gerrors.ErrUndefinedExtension)
	}
	if err := n.Define(name, ext); err != nil {
		return nil, err
	}
	return ext, nil
}

func (n *Namespace) effectiveLoader() Loader {
	for current := n; current != nil; current = current.parent {
		current.mu.RLock()
		loader := current.loader
		current.mu.RUnlock()
		if loader != nil {
			return loader
		}
	}
	return nil
}

// sameExtension compares by identity when the concrete type allows it and by ID otherwise.
func sameExtension(a, b extension.Extension) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		return a == b
	}
	return a.ID() == b.ID()
}
