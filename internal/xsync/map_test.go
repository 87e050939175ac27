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

package xsync

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	t.Run("With set, get and delete", func(t *testing.T) {
		m := NewMap[string, int]()
		m.Set("a", 1)
		m.Set("b", 2)

		value, ok := m.Get("a")
		require.True(t, ok)
		assert.Equal(t, 1, value)
		assert.Equal(t, 2, m.Len())
		assert.ElementsMatch(t, []int{1, 2}, m.Values())

		m.Delete("a")
		_, ok = m.Get("a")
		assert.False(t, ok)

		seen := 0
		m.Range(func(string, int) { seen++ })
		assert.Equal(t, 1, seen)
	})

	t.Run("With concurrent compute", func(t *testing.T) {
		m := NewMap[uint64, []int]()
		var wg sync.WaitGroup
		for i := range 50 {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				m.Compute(1, func(current []int, _ bool) []int {
					return append(current, i)
				})
			}(i)
		}
		wg.Wait()

		values, ok := m.Get(1)
		require.True(t, ok)
		assert.Len(t, values, 50)
	})

	t.Run("With compute reporting absence", func(t *testing.T) {
		m := NewMap[string, int]()
		got := m.Compute("k", func(current int, loaded bool) int {
			assert.False(t, loaded)
			assert.Zero(t, current)
			return 3
		})
		assert.Equal(t, 3, got)
	})
}
