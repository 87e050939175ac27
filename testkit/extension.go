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
	"sync"

	"github.com/tochemey/ensemble/extension"
)

// Extension is a fixture extension that carries nothing but its ID.
type Extension struct {
	id string
}

// enforce compilation error
var _ extension.Extension = (*Extension)(nil)

// NewExtension creates an Extension
func NewExtension(id string) *Extension {
	return &Extension{id: id}
}

// ID implements extension.Extension
func (x *Extension) ID() string {
	return x.id
}

// Registrar is a fixture extension that records every host it is registered
// with and optionally runs a callback on each registration.
type Registrar struct {
	id       string
	callback func(host extension.Host) error

	mu    sync.Mutex
	hosts []extension.Host
}

// enforce compilation error
var _ extension.Registrar = (*Registrar)(nil)

// NewRegistrar creates a Registrar. callback may be nil.
func NewRegistrar(id string, callback func(host extension.Host) error) *Registrar {
	return &Registrar{id: id, callback: callback}
}

// ID implements extension.Extension
func (x *Registrar) ID() string {
	return x.id
}

// Registered implements extension.Registrar
func (x *Registrar) Registered(host extension.Host) error {
	x.mu.Lock()
	x.hosts = append(x.hosts, host)
	x.mu.Unlock()
	if x.callback != nil {
		return x.callback(host)
	}
	return nil
}

// Hosts returns the hosts the extension was registered with, in order.
func (x *Registrar) Hosts() []extension.Host {
	x.mu.Lock()
	defer x.mu.Unlock()
	out := make([]extension.Host, len(x.hosts))
	copy(out, x.hosts)
	return out
}

// Calls returns the number of registrations
func (x *Registrar) Calls() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return len(x.hosts)
}
