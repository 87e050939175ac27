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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/ensemble/directive"
	gerrors "github.com/tochemey/ensemble/errors"
	"github.com/tochemey/ensemble/extension"
	"github.com/tochemey/ensemble/testkit"
)

func TestBuild(t *testing.T) {
	t.Run("With an invalid environment", func(t *testing.T) {
		base := newBase(t)
		blueprint, err := base.Build(extension.Environment("staging"))
		require.ErrorIs(t, err, gerrors.ErrInvalidEnvironment)
		assert.Nil(t, blueprint)
	})

	t.Run("Blueprint accessors", func(t *testing.T) {
		base := newBase(t)
		composite, err := base.Generate(directive.Name("A"), directive.On(extension.Production, directive.Name("B")))
		require.NoError(t, err)
		q, err := composite.Subclass("Q", nil)
		require.NoError(t, err)

		blueprint, err := q.Build(extension.Production)
		require.NoError(t, err)
		assert.Equal(t, "Q", blueprint.Name())
		assert.Equal(t, extension.Production, blueprint.Environment())
		assert.Equal(t, []string{"A", "B"}, testkit.IDs(blueprint.Extensions()))

		ext, ok := blueprint.Extension("B")
		require.True(t, ok)
		assert.Equal(t, "B", ext.ID())
		_, ok = blueprint.Extension("C")
		assert.False(t, ok)
	})

	t.Run("With invalid extension IDs", func(t *testing.T) {
		base := newBase(t)
		require.NoError(t, base.Register(testkit.NewExtension("-leading")))
		require.NoError(t, base.Register(testkit.NewExtension("has space")))

		_, err := base.Build(extension.Test)
		require.ErrorIs(t, err, gerrors.ErrInvalidExtensionID)
		assert.Contains(t, err.Error(), "-leading")
		assert.Contains(t, err.Error(), "has space")
	})

	t.Run("Nested configure runs only for the built environment", func(t *testing.T) {
		base := newBase(t)
		err := base.Configure(extension.Development, func(host extension.Host) error {
			if err := host.Configure(extension.Development, func(h extension.Host) error {
				return h.Register(testkit.NewExtension("Nested"))
			}); err != nil {
				return err
			}
			return host.Configure(extension.Production, func(h extension.Host) error {
				return h.Register(testkit.NewExtension("Skipped"))
			})
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"Nested"}, buildIDs(t, base, extension.Development))
		assert.Empty(t, buildIDs(t, base, extension.Production))
	})

	t.Run("Registrar attached while building is notified with the builder", func(t *testing.T) {
		base := newBase(t)
		inspector := testkit.NewRegistrar("WebInspector", nil)
		testkit.Define(t, base.Namespace(), inspector)

		composite, err := base.Generate(directive.On(extension.Development, directive.Name("WebInspector")))
		require.NoError(t, err)
		q, err := composite.Subclass("Q", nil)
		require.NoError(t, err)
		assert.Zero(t, inspector.Calls())

		assert.Equal(t, []string{"WebInspector"}, buildIDs(t, q, extension.Development))
		require.Equal(t, 1, inspector.Calls())
		assert.Equal(t, "Q", inspector.Hosts()[0].(interface{ String() string }).String())

		assert.Equal(t, []string{"WebInspector"}, buildIDs(t, q, extension.Development))
		assert.Equal(t, 2, inspector.Calls())
	})

	t.Run("Builder rejects nil and invalid environments", func(t *testing.T) {
		base := newBase(t)
		require.NoError(t, base.Configure(extension.Test, func(host extension.Host) error {
			return host.Register(nil)
		}))
		_, err := base.Build(extension.Test)
		require.ErrorIs(t, err, gerrors.ErrUndefinedExtension)

		other := newBase(t)
		require.NoError(t, other.Configure(extension.Test, func(host extension.Host) error {
			return host.Configure(extension.Environment("qa"), nil)
		}))
		_, err = other.Build(extension.Test)
		require.ErrorIs(t, err, gerrors.ErrInvalidEnvironment)
	})
}
