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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/ensemble/directive"
	gerrors "github.com/tochemey/ensemble/errors"
	"github.com/tochemey/ensemble/extension"
	"github.com/tochemey/ensemble/namespace"
)

type testExtension struct{ id string }

func (x *testExtension) ID() string { return x.id }

func keys(ids []directive.Identifier) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Key())
	}
	return out
}

func TestDeclare(t *testing.T) {
	t.Run("Flattens and dedupes across declarations", func(t *testing.T) {
		defaults := NewDefaults(namespace.New("Ensemble"))
		_, err := defaults.Declare(directive.Names("X", "Y"))
		require.NoError(t, err)
		ids, err := defaults.Declare(directive.Name("Z"), directive.Name("X"))
		require.NoError(t, err)
		assert.Equal(t, []string{":X", ":Y", ":Z"}, keys(ids))
	})
	t.Run("Orders unconditional identifiers first", func(t *testing.T) {
		defaults := NewDefaults(namespace.New("Ensemble"))
		_, err := defaults.Declare(
			directive.On(extension.Development, directive.Name("Reloader")),
			directive.Name("Sessions"),
			directive.On(extension.Production, directive.Name("Cache")),
		)
		require.NoError(t, err)
		ids, err := defaults.Declare()
		require.NoError(t, err)
		assert.Equal(t, []string{":Sessions", ":Reloader", ":Cache"}, keys(ids))
	})
	t.Run("Reads are idempotent and cached until the next declaration", func(t *testing.T) {
		defaults := NewDefaults(nil)
		empty, err := defaults.Declare()
		require.NoError(t, err)
		assert.Empty(t, empty)
		assert.True(t, defaults.IsEmpty())

		_, err = defaults.Declare(directive.Name("A"))
		require.NoError(t, err)
		first, err := defaults.Declare()
		require.NoError(t, err)
		second, err := defaults.Declare()
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.False(t, defaults.IsEmpty())

		_, err = defaults.Declare(directive.On(extension.Test, directive.Name("B")))
		require.NoError(t, err)
		third, err := defaults.Declare()
		require.NoError(t, err)
		assert.Equal(t, []string{":A", ":B"}, keys(third))
	})
	t.Run("Rejects except and unknown keys", func(t *testing.T) {
		defaults := NewDefaults(nil)
		_, err := defaults.Declare(directive.Except(directive.Name("A")))
		require.ErrorIs(t, err, gerrors.ErrInvalidDirective)
		_, err = defaults.Declare(directive.Entries("staging", directive.Name("A")))
		require.ErrorIs(t, err, gerrors.ErrInvalidDirective)
		_, err = defaults.Declare(directive.On(extension.Test, directive.On(extension.Development, directive.Name("A"))))
		require.ErrorIs(t, err, gerrors.ErrInvalidDirective)
		assert.True(t, defaults.IsEmpty())
	})
}

func TestHints(t *testing.T) {
	root := namespace.New("My")
	scope, err := root.Child("Extensions")
	require.NoError(t, err)

	defaults := NewDefaults(scope)
	ext := &testExtension{id: "direct"}
	_, err = defaults.Declare(
		directive.Name("Foo"),
		directive.Direct(ext),
		directive.On(extension.Development, directive.Name("BasicExtensions"), directive.Name("Foo")),
		directive.Path("Contrib.Cookies"),
	)
	require.NoError(t, err)

	hints := defaults.Hints()
	require.Len(t, hints, 3)
	assert.Equal(t, namespace.Hint{QualifiedName: "My.Extensions.Foo", Path: "my/extensions/foo"}, hints[0])
	assert.Equal(t, namespace.Hint{QualifiedName: "My.Extensions.Contrib.Cookies", Path: "my/extensions/contrib/cookies"}, hints[1])
	assert.Equal(t, namespace.Hint{QualifiedName: "My.Extensions.BasicExtensions", Path: "my/extensions/basic_extensions"}, hints[2])

	// names become autoload entries of the scope
	autoloads := scope.Autoloads()
	require.Len(t, autoloads, 2)
	assert.Equal(t, "My.Extensions.BasicExtensions", autoloads[0].QualifiedName)
	assert.Equal(t, "My.Extensions.Foo", autoloads[1].QualifiedName)
}

func TestHintsSkipDefinedNames(t *testing.T) {
	scope := namespace.New("Ensemble")
	require.NoError(t, scope.Define("Sessions", &testExtension{id: "Sessions"}))

	defaults := NewDefaults(scope)
	assert.Same(t, scope, defaults.Scope())
	_, err := defaults.Declare(directive.Name("Sessions"), directive.Name("Cache"))
	require.NoError(t, err)

	assert.Equal(t, []namespace.Hint{{QualifiedName: "Ensemble.Cache", Path: "ensemble/cache"}}, defaults.Hints())
	autoloads := scope.Autoloads()
	require.Len(t, autoloads, 1)
	assert.Equal(t, "Ensemble.Cache", autoloads[0].QualifiedName)
}

func TestWithout(t *testing.T) {
	defaults := NewDefaults(nil)
	_, err := defaults.Declare(
		directive.Names("A", "B"),
		directive.On(extension.Development, directive.Name("C"), directive.Name("B")),
	)
	require.NoError(t, err)

	t.Run("Full default set", func(t *testing.T) {
		expected := directive.Options{
			directive.Name("A"),
			directive.Name("B"),
			directive.Map{{Key: "development", Values: directive.List{directive.Name("C"), directive.Name("B")}}},
		}
		assert.Equal(t, expected.Key(), defaults.Directives().Key())
	})
	t.Run("Removes from every bucket independently", func(t *testing.T) {
		expected := directive.Options{
			directive.Name("A"),
			directive.On(extension.Development, directive.Name("C")),
		}
		actual := defaults.Without([]directive.Identifier{directive.Name("B")})
		assert.Equal(t, expected.Key(), actual.Key())
	})
	t.Run("Drops emptied environment lists", func(t *testing.T) {
		actual := defaults.Without([]directive.Identifier{directive.Name("B"), directive.Name("C")})
		assert.Equal(t, directive.Options{directive.Name("A")}.Key(), actual.Key())
	})
	t.Run("Accessors", func(t *testing.T) {
		assert.Equal(t, []string{":A", ":B"}, keys(defaults.Unconditional()))
		assert.Equal(t, []string{":C", ":B"}, keys(defaults.Environment(extension.Development)))
		assert.Empty(t, defaults.Environment(extension.Production))
	})
}
