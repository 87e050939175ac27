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

package directive

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/tochemey/ensemble/extension"
)

// references numbers extensions held by value so that each one gets a
// stable identity for the lifetime of the process.
var references = struct {
	sync.Mutex
	next uint64
	ids  map[any]uint64
}{ids: make(map[any]uint64)}

// referenceOf renders the identity of ext. Reference kinds use their address.
// Comparable values get a sequence number. Anything else falls back to its type.
func referenceOf(ext extension.Extension) string {
	value := reflect.ValueOf(ext)
	switch value.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Slice:
		return fmt.Sprintf("%#x", value.Pointer())
	}
	if !value.Comparable() {
		return "?"
	}

	references.Lock()
	defer references.Unlock()
	id, ok := references.ids[ext]
	if !ok {
		references.next++
		id = references.next
		references.ids[ext] = id
	}
	return fmt.Sprintf("#%d", id)
}
