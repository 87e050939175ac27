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

	"github.com/stretchr/testify/require"

	"github.com/tochemey/ensemble/extension"
	"github.com/tochemey/ensemble/testkit"
)

// newBase creates a root class named App whose namespace defines A, B, C and D.
func newBase(t *testing.T, opts ...Option) *Class {
	t.Helper()
	base, err := NewClass("App", opts...)
	require.NoError(t, err)
	testkit.Define(t, base.Namespace(),
		testkit.NewExtension("A"),
		testkit.NewExtension("B"),
		testkit.NewExtension("C"),
		testkit.NewExtension("D"),
	)
	return base
}

func buildIDs(t *testing.T, class *Class, env extension.Environment) []string {
	t.Helper()
	blueprint, err := class.Build(env)
	require.NoError(t, err)
	return blueprint.IDs()
}

// recordingHost is a host that is not a class.
type recordingHost struct {
	registered []string
	configured map[extension.Environment][]func(extension.Host) error
}

func newRecordingHost() *recordingHost {
	return &recordingHost{configured: make(map[extension.Environment][]func(extension.Host) error)}
}

func (h *recordingHost) Register(ext extension.Extension) error {
	h.registered = append(h.registered, ext.ID())
	return nil
}

func (h *recordingHost) Configure(env extension.Environment, fn func(extension.Host) error) error {
	h.configured[env] = append(h.configured[env], fn)
	return nil
}

// run runs the actions configured for env against the host itself.
func (h *recordingHost) run(env extension.Environment) error {
	for _, fn := range h.configured[env] {
		if err := fn(h); err != nil {
			return err
		}
	}
	return nil
}
