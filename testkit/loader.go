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

package testkit

import (
	"fmt"
	"sync"

	"github.com/tochemey/ensemble/extension"
	"github.com/tochemey/ensemble/namespace"
)

// Loader is a namespace.Loader serving extensions from memory, keyed by the
// conventional path of their hint. It records every hint it is asked for.
type Loader struct {
	mu         sync.Mutex
	extensions map[string]extension.Extension
	requests   []namespace.Hint
}

// enforce compilation error
var _ namespace.Loader = (*Loader)(nil)

// NewLoader creates a Loader serving the given path to extension mapping.
func NewLoader(extensions map[string]extension.Extension) *Loader {
	copied := make(map[string]extension.Extension, len(extensions))
	for path, ext := range extensions {
		copied[path] = ext
	}
	return &Loader{extensions: copied}
}

// Load implements namespace.Loader
func (l *Loader) Load(hint namespace.Hint) (extension.Extension, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.requests = append(l.requests, hint)
	ext, ok := l.extensions[hint.Path]
	if !ok {
		return nil, fmt.Errorf("no such file to load -- %s", hint.Path)
	}
	return ext, nil
}

// Requests returns the hints the loader was asked for, in order.
func (l *Loader) Requests() []namespace.Hint {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]namespace.Hint, len(l.requests))
	copy(out, l.requests)
	return out
}
