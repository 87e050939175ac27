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
	"sync"

	goset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"go.uber.org/atomic"
	"golang.org/x/sync/singleflight"

	"github.com/tochemey/ensemble/directive"
	gerrors "github.com/tochemey/ensemble/errors"
	"github.com/tochemey/ensemble/extension"
	"github.com/tochemey/ensemble/hash"
	"github.com/tochemey/ensemble/internal/validation"
	"github.com/tochemey/ensemble/internal/xsync"
	"github.com/tochemey/ensemble/log"
	"github.com/tochemey/ensemble/namespace"
	"github.com/tochemey/ensemble/registry"
)

// Class is a composable class: a named node in a class hierarchy that carries
// extensions, defers environment specific setup and derives further classes.
//
// A root class is created with NewClass. Composite classes are derived with
// Generate, regular subclasses with Subclass. Every subclass is composed as
// soon as it is created, from the options its parent recorded or, failing
// that, from the nearest declared defaults.
type Class struct {
	id        uuid.UUID
	engine    *Engine
	parent    *Class
	name      *atomic.String
	label     string
	options   directive.Options
	generated bool

	mu       sync.RWMutex
	attached []extension.Extension
	deferred []deferredAction
	defaults *registry.Defaults

	composites *xsync.Map[uint64, []*Class]
	inflight   singleflight.Group
}

type deferredAction struct {
	env extension.Environment
	fn  func(host extension.Host) error
}

// enforce compilation error
var _ extension.Host = (*Class)(nil)

// NewClass creates a root class and the engine composing it. name must be a
// valid identifier: it names the namespace extensions are resolved against.
func NewClass(name string, opts ...Option) (*Class, error) {
	if err := validation.NewNameValidator(name, gerrors.ErrInvalidName).Validate(); err != nil {
		return nil, err
	}

	engine := &Engine{
		hasher:      hash.DefaultHasher(),
		logger:      log.DiscardLogger,
		labelPrefix: DefaultLabelPrefix,
	}
	for _, opt := range opts {
		opt.Apply(engine)
	}

	if engine.global == nil {
		engine.global = namespace.New("")
	}

	scope, err := engine.global.Child(name)
	if err != nil {
		return nil, err
	}
	if engine.loader != nil {
		scope.SetLoader(engine.loader)
	}
	engine.scope = scope

	root := newClass(engine, nil, "")
	root.name.Store(name)
	engine.root = root
	return root, nil
}

func newClass(engine *Engine, parent *Class, label string) *Class {
	return &Class{
		id:         uuid.New(),
		engine:     engine,
		parent:     parent,
		name:       atomic.NewString(""),
		label:      label,
		composites: xsync.NewMap[uint64, []*Class](),
	}
}

// ID returns the unique instance id of the class
func (c *Class) ID() string {
	return c.id.String()
}

// Engine returns the engine composing the class
func (c *Class) Engine() *Engine {
	return c.engine
}

// Parent returns the superclass, nil for a root class.
func (c *Class) Parent() *Class {
	return c.parent
}

// Namespace returns the namespace identifiers are resolved against.
func (c *Class) Namespace() *namespace.Namespace {
	return c.engine.scope
}

// Name returns the bound name when one was assigned, else the label.
// An anonymous subclass has an empty name.
func (c *Class) Name() string {
	if name := c.name.Load(); name != "" {
		return name
	}
	return c.label
}

// Label returns the label a generated class was created with: Composite(:A, :B).
func (c *Class) Label() string {
	return c.label
}

// String returns the class name. Anonymous subclasses render as #<Class:Parent>.
func (c *Class) String() string {
	if name := c.Name(); name != "" {
		return name
	}
	if c.parent == nil {
		return "#<Class>"
	}
	return fmt.Sprintf("#<Class:%s>", c.parent.String())
}

// Bind assigns a real name to the class. Only the first successful bind
// sticks: it returns false when the class already has a name.
func (c *Class) Bind(name string) bool {
	if err := validation.NewNameValidator(name, gerrors.ErrInvalidName).Validate(); err != nil {
		return false
	}
	if !c.name.CompareAndSwap("", name) {
		return false
	}
	c.engine.logger.With("class", c.label).Debugf("bound to %s", name)
	return true
}

// Options returns the options the class was generated from or inherited.
func (c *Class) Options() directive.Options {
	out := make(directive.Options, len(c.options))
	copy(out, c.options)
	return out
}

// IsGenerated reports whether the class was created by Generate.
func (c *Class) IsGenerated() bool {
	return c.generated
}

// DeclareDefaults records the default extensions of the class and of every
// class below it that does not declare its own. Name and path identifiers
// are registered as lazy-load hints of the class namespace: the root
// namespace for the root class, the global member named after the class for
// a named subclass. Anonymous classes use their parent's.
// Called without directive it returns the flattened defaults.
func (c *Class) DeclareDefaults(directives ...directive.Directive) ([]directive.Identifier, error) {
	c.mu.Lock()
	if c.defaults == nil {
		if len(directives) == 0 {
			c.mu.Unlock()
			return []directive.Identifier{}, nil
		}
		c.defaults = registry.NewDefaults(c.namespace())
	}
	defaults := c.defaults
	c.mu.Unlock()

	ids, err := defaults.Declare(directives...)
	if err != nil {
		return nil, err
	}
	if len(directives) > 0 {
		c.engine.logger.With("class", c.String()).Debugf("declared defaults %v", ids)
	}
	return ids, nil
}

// Defaults returns the registry declared on the class itself, nil when none.
func (c *Class) Defaults() *registry.Defaults {
	return c.ownDefaults()
}

// Register attaches ext to the class. An extension whose ID is already carried
// by the class or one of its ancestors is left alone. A newly attached
// extension.Registrar is notified once.
func (c *Class) Register(ext extension.Extension) error {
	if ext == nil {
		return gerrors.ErrUndefinedExtension
	}

	id := ext.ID()
	for ancestor := c.parent; ancestor != nil; ancestor = ancestor.parent {
		if ancestor.owns(id) {
			c.engine.logger.With("class", c.String()).Debugf("extension=(%s) inherited from %s", id, ancestor.String())
			return nil
		}
	}

	c.mu.Lock()
	for _, existing := range c.attached {
		if existing.ID() == id {
			c.mu.Unlock()
			c.engine.logger.With("class", c.String()).Debugf("extension=(%s) already registered", id)
			return nil
		}
	}
	c.attached = append(c.attached, ext)
	c.mu.Unlock()

	c.engine.logger.With("class", c.String()).Debugf("registered extension=(%s)", id)
	if registrar, ok := ext.(extension.Registrar); ok {
		return registrar.Registered(c)
	}
	return nil
}

// Configure records fn to run when the class, or one of its subclasses, is
// built for env.
func (c *Class) Configure(env extension.Environment, fn func(host extension.Host) error) error {
	if !env.IsValid() {
		return fmt.Errorf("env=(%s) %w", env, gerrors.ErrInvalidEnvironment)
	}
	if fn == nil {
		return nil
	}

	c.mu.Lock()
	c.deferred = append(c.deferred, deferredAction{env: env, fn: fn})
	c.mu.Unlock()
	return nil
}

// Extensions returns the extensions carried unconditionally: the inherited
// ones first, then the class own, each ID once.
func (c *Class) Extensions() []extension.Extension {
	seen := goset.NewThreadUnsafeSet[string]()
	var out []extension.Extension
	for _, class := range c.lineage() {
		attached, _ := class.snapshot()
		for _, ext := range attached {
			if seen.Add(ext.ID()) {
				out = append(out, ext)
			}
		}
	}
	return out
}

// Includes reports whether the class carries the extension with the given ID
// outside any environment.
func (c *Class) Includes(id string) bool {
	for class := c; class != nil; class = class.parent {
		if class.owns(id) {
			return true
		}
	}
	return false
}

// Subclass creates a subclass composed from the options recorded on the
// receiver, or from the nearest declared defaults when none is recorded.
// body runs after composition, so it can refine what was attached.
// An empty name creates an anonymous subclass.
func (c *Class) Subclass(name string, body func(class *Class) error) (*Class, error) {
	child := newClass(c.engine, c, "")
	child.options = c.Options()
	if name != "" {
		if err := validation.NewNameValidator(name, gerrors.ErrInvalidName).Validate(); err != nil {
			return nil, err
		}
		child.name.Store(name)
	}

	if err := c.engine.apply(child, child.nearestDefaults(), child.options); err != nil {
		return nil, err
	}

	if body != nil {
		if err := body(child); err != nil {
			return nil, err
		}
	}
	return child, nil
}

// owns reports whether the class itself attached the given extension ID.
func (c *Class) owns(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, ext := range c.attached {
		if ext.ID() == id {
			return true
		}
	}
	return false
}

func (c *Class) snapshot() ([]extension.Extension, []deferredAction) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	attached := make([]extension.Extension, len(c.attached))
	copy(attached, c.attached)
	deferred := make([]deferredAction, len(c.deferred))
	copy(deferred, c.deferred)
	return attached, deferred
}

// lineage returns the root first and the receiver last.
func (c *Class) lineage() []*Class {
	var chain []*Class
	for class := c; class != nil; class = class.parent {
		chain = append(chain, class)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

func (c *Class) namespace() *namespace.Namespace {
	if c.parent == nil {
		return c.engine.scope
	}
	if name := c.name.Load(); name != "" {
		if scope, err := c.engine.global.Child(name); err == nil {
			if c.engine.loader != nil {
				scope.SetLoader(c.engine.loader)
			}
			return scope
		}
	}
	return c.parent.namespace()
}

func (c *Class) ownDefaults() *registry.Defaults {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.defaults
}

// nearestDefaults walks up the hierarchy to the first declared registry.
func (c *Class) nearestDefaults() *registry.Defaults {
	for class := c; class != nil; class = class.parent {
		if defaults := class.ownDefaults(); defaults != nil {
			return defaults
		}
	}
	return nil
}
