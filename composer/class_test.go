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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/ensemble/directive"
	gerrors "github.com/tochemey/ensemble/errors"
	"github.com/tochemey/ensemble/extension"
	"github.com/tochemey/ensemble/log"
	"github.com/tochemey/ensemble/namespace"
	"github.com/tochemey/ensemble/testkit"
)

func TestNewClass(t *testing.T) {
	t.Run("With a valid name", func(t *testing.T) {
		base, err := NewClass("App", WithLogger(log.DiscardLogger))
		require.NoError(t, err)
		assert.Equal(t, "App", base.Name())
		assert.Equal(t, "App", base.String())
		assert.Empty(t, base.Label())
		assert.Nil(t, base.Parent())
		assert.Same(t, base, base.Engine().Root())
		assert.Same(t, base.Namespace(), base.Engine().Scope())
		assert.Equal(t, log.DiscardLogger, base.Engine().Logger())
		assert.NotEmpty(t, base.ID())
		assert.False(t, base.Bind("Other"))
	})

	t.Run("With an invalid name", func(t *testing.T) {
		base, err := NewClass("my app")
		require.ErrorIs(t, err, gerrors.ErrInvalidName)
		assert.Nil(t, base)
	})

	t.Run("Instances have distinct IDs", func(t *testing.T) {
		first := newBase(t)
		second := newBase(t)
		assert.NotEqual(t, first.ID(), second.ID())
		assert.NotSame(t, first.Namespace(), second.Namespace())
	})
}

func TestSubclass(t *testing.T) {
	t.Run("Subclass of a composite carries its capabilities", func(t *testing.T) {
		base := newBase(t)
		composite, err := base.Generate(directive.Name("A"))
		require.NoError(t, err)

		q, err := composite.Subclass("Q", nil)
		require.NoError(t, err)
		assert.True(t, q.Includes("A"))
		assert.Equal(t, []string{"A"}, testkit.IDs(q.Extensions()))
		assert.Equal(t, "Q", q.Name())
		assert.False(t, q.IsGenerated())
	})

	t.Run("Propagation is transitive", func(t *testing.T) {
		base := newBase(t)
		composite, err := base.Generate(directive.Name("A"), directive.On(extension.Test, directive.Name("B")))
		require.NoError(t, err)

		q, err := composite.Subclass("Q", nil)
		require.NoError(t, err)
		r, err := q.Subclass("R", nil)
		require.NoError(t, err)

		assert.True(t, r.Options().Equal(composite.Options()))
		assert.Equal(t, []string{"A"}, testkit.IDs(r.Extensions()))
		assert.Equal(t, []string{"A", "B"}, buildIDs(t, r, extension.Test))
		assert.Equal(t, []string{"A"}, buildIDs(t, r, extension.Production))
	})

	t.Run("Body runs after composition", func(t *testing.T) {
		base := newBase(t)
		composite, err := base.Generate(directive.Name("A"))
		require.NoError(t, err)

		var seen bool
		q, err := composite.Subclass("Q", func(class *Class) error {
			seen = class.Includes("A")
			return class.Register(testkit.NewExtension("Own"))
		})
		require.NoError(t, err)
		assert.True(t, seen)
		assert.Equal(t, []string{"A", "Own"}, testkit.IDs(q.Extensions()))
	})

	t.Run("Body error is returned", func(t *testing.T) {
		base := newBase(t)
		boom := errors.New("boom")
		q, err := base.Subclass("Q", func(*Class) error { return boom })
		require.ErrorIs(t, err, boom)
		assert.Nil(t, q)
	})

	t.Run("Subclass of the root carries the declared defaults", func(t *testing.T) {
		base := newBase(t)
		_, err := base.DeclareDefaults(directive.Name("A"), directive.On(extension.Development, directive.Name("C")))
		require.NoError(t, err)

		q, err := base.Subclass("Q", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"A"}, testkit.IDs(q.Extensions()))
		assert.Equal(t, []string{"A", "C"}, buildIDs(t, q, extension.Development))
	})

	t.Run("Nearest defaults win", func(t *testing.T) {
		base := newBase(t)
		_, err := base.DeclareDefaults(directive.Name("A"))
		require.NoError(t, err)

		mine, err := base.Subclass("Mine", func(class *Class) error {
			_, err := class.DeclareDefaults(directive.Name("D"))
			return err
		})
		require.NoError(t, err)
		require.NotNil(t, mine.Defaults())

		q, err := mine.Subclass("Q", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "D"}, testkit.IDs(q.Extensions()))
		assert.True(t, mine.Includes("A"))
		assert.False(t, mine.Includes("D"))

		composite, err := mine.Generate(directive.Except(directive.Name("D")))
		require.NoError(t, err)
		r, err := composite.Subclass("R", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"A"}, testkit.IDs(r.Extensions()))
	})

	t.Run("Anonymous subclass", func(t *testing.T) {
		base := newBase(t)
		q, err := base.Subclass("", nil)
		require.NoError(t, err)
		assert.Empty(t, q.Name())
		assert.Equal(t, "#<Class:App>", q.String())
		assert.True(t, q.Bind("Named"))
		assert.Equal(t, "Named", q.String())
	})

	t.Run("With an invalid name", func(t *testing.T) {
		base := newBase(t)
		_, err := base.Subclass("1st", nil)
		require.ErrorIs(t, err, gerrors.ErrInvalidName)
	})

	t.Run("With a composite whose identifier disappeared", func(t *testing.T) {
		base := newBase(t)
		composite, err := base.Generate(directive.Path("Gone.Soon"))
		require.ErrorIs(t, err, gerrors.ErrUnresolvedExtension)
		assert.Nil(t, composite)
	})
}

func TestRegister(t *testing.T) {
	t.Run("Duplicates along the chain are ignored", func(t *testing.T) {
		base := newBase(t)
		shared := testkit.NewRegistrar("Shared", nil)
		require.NoError(t, base.Register(shared))
		require.NoError(t, base.Register(shared))

		q, err := base.Subclass("Q", nil)
		require.NoError(t, err)
		require.NoError(t, q.Register(testkit.NewRegistrar("Shared", nil)))

		assert.Equal(t, 1, shared.Calls())
		assert.Same(t, base, shared.Hosts()[0])
		assert.Equal(t, []string{"Shared"}, testkit.IDs(q.Extensions()))
	})

	t.Run("With a nil extension", func(t *testing.T) {
		base := newBase(t)
		require.ErrorIs(t, base.Register(nil), gerrors.ErrUndefinedExtension)
	})

	t.Run("Registrar error is returned", func(t *testing.T) {
		base := newBase(t)
		boom := errors.New("boom")
		err := base.Register(testkit.NewRegistrar("Failing", func(extension.Host) error { return boom }))
		require.ErrorIs(t, err, boom)
	})

	t.Run("Registrar configures its host", func(t *testing.T) {
		base := newBase(t)
		reloader := testkit.NewExtension("Reloader")
		registrar := testkit.NewRegistrar("Sessions", func(host extension.Host) error {
			return host.Configure(extension.Development, func(h extension.Host) error {
				return h.Register(reloader)
			})
		})

		require.NoError(t, base.Register(registrar))
		assert.Equal(t, []string{"Sessions", "Reloader"}, buildIDs(t, base, extension.Development))
		assert.Equal(t, []string{"Sessions"}, buildIDs(t, base, extension.Production))
	})
}

func TestConfigure(t *testing.T) {
	base := newBase(t)
	err := base.Configure(extension.Environment("staging"), func(extension.Host) error { return nil })
	require.ErrorIs(t, err, gerrors.ErrInvalidEnvironment)
	require.NoError(t, base.Configure(extension.Test, nil))
	assert.Empty(t, buildIDs(t, base, extension.Test))
}

func TestDeclareDefaults(t *testing.T) {
	t.Run("Flattened once each, environment last", func(t *testing.T) {
		base := newBase(t)
		ids, err := base.DeclareDefaults(directive.Names("X", "Y"), directive.On(extension.Development, directive.Name("W")))
		require.NoError(t, err)
		require.Len(t, ids, 3)

		ids, err = base.DeclareDefaults(directive.Name("Z"), directive.Name("X"))
		require.NoError(t, err)
		assert.Equal(t, []directive.Identifier{
			directive.Name("X"), directive.Name("Y"), directive.Name("Z"), directive.Name("W"),
		}, ids)

		cached, err := base.DeclareDefaults()
		require.NoError(t, err)
		assert.Equal(t, ids, cached)
	})

	t.Run("Getter without registry", func(t *testing.T) {
		base := newBase(t)
		ids, err := base.DeclareDefaults()
		require.NoError(t, err)
		assert.Empty(t, ids)
		assert.Nil(t, base.Defaults())
	})

	t.Run("With except", func(t *testing.T) {
		base := newBase(t)
		_, err := base.DeclareDefaults(directive.Except(directive.Name("A")))
		require.ErrorIs(t, err, gerrors.ErrInvalidDirective)
	})

	t.Run("Declared names load lazily through the loader", func(t *testing.T) {
		sessions := testkit.NewExtension("Sessions")
		loader := testkit.NewLoader(map[string]extension.Extension{"app/sessions": sessions})
		base := newBase(t, WithLoader(loader))

		_, err := base.DeclareDefaults(directive.Name("Sessions"))
		require.NoError(t, err)
		assert.Equal(t, []namespace.Hint{{QualifiedName: "App.Sessions", Path: "app/sessions"}}, base.Defaults().Hints())
		assert.Empty(t, loader.Requests())

		first, err := base.Subclass("First", nil)
		require.NoError(t, err)
		second, err := base.Subclass("Second", nil)
		require.NoError(t, err)

		assert.True(t, first.Includes("Sessions"))
		assert.True(t, second.Includes("Sessions"))
		assert.Len(t, loader.Requests(), 1)
	})

	t.Run("Defaults declared on a named subclass hint under its own name", func(t *testing.T) {
		foo := testkit.NewExtension("Foo")
		loader := testkit.NewLoader(map[string]extension.Extension{"my_extensions/foo": foo})
		base := newBase(t, WithLoader(loader))

		extensions, err := base.Subclass("MyExtensions", func(class *Class) error {
			_, err := class.DeclareDefaults(directive.Name("Foo"), directive.Name("A"))
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, []namespace.Hint{
			{QualifiedName: "MyExtensions.Foo", Path: "my_extensions/foo"},
			{QualifiedName: "MyExtensions.A", Path: "my_extensions/a"},
		}, extensions.Defaults().Hints())
		assert.Equal(t, "MyExtensions", extensions.Defaults().Scope().Path())
		assert.Empty(t, loader.Requests())

		// A resolves from the root namespace, Foo from the declaring one
		app, err := extensions.Subclass("MyApp", nil)
		require.NoError(t, err)
		assert.True(t, app.Includes("A"))
		assert.True(t, app.Includes("Foo"))
		require.Len(t, loader.Requests(), 1)
		assert.Equal(t, "my_extensions/foo", loader.Requests()[0].Path)
	})

	t.Run("Defaults declared on an anonymous subclass hint under the parent", func(t *testing.T) {
		base := newBase(t)
		anonymous, err := base.Subclass("", func(class *Class) error {
			_, err := class.DeclareDefaults(directive.Name("Sessions"))
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, []namespace.Hint{{QualifiedName: "App.Sessions", Path: "app/sessions"}}, anonymous.Defaults().Hints())
	})

	t.Run("Names defined in the namespace emit no hint", func(t *testing.T) {
		base := newBase(t)
		_, err := base.DeclareDefaults(directive.Name("A"), directive.Name("Sessions"))
		require.NoError(t, err)
		assert.Equal(t, []namespace.Hint{{QualifiedName: "App.Sessions", Path: "app/sessions"}}, base.Defaults().Hints())
	})

	t.Run("Declared names that fail to load", func(t *testing.T) {
		loader := testkit.NewLoader(nil)
		base := newBase(t, WithLoader(loader))
		_, err := base.DeclareDefaults(directive.Name("Missing"))
		require.NoError(t, err)

		_, err = base.Subclass("Q", nil)
		require.Error(t, err)
		var loadErr *gerrors.LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Equal(t, "app/missing", loadErr.Path())
	})
}
