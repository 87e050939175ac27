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

// Package testkit provides fixture extensions and loaders to test code
// composing classes.
package testkit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tochemey/ensemble/extension"
	"github.com/tochemey/ensemble/namespace"
)

// Define defines every extension under its own ID in ns and fails the test on error.
func Define(tb testing.TB, ns *namespace.Namespace, extensions ...extension.Extension) {
	tb.Helper()
	for _, ext := range extensions {
		require.NoError(tb, ns.Define(ext.ID(), ext))
	}
}

// IDs returns the IDs of the given extensions, in order.
func IDs(extensions []extension.Extension) []string {
	ids := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ids = append(ids, ext.ID())
	}
	return ids
}
