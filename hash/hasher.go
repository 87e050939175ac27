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

package hash

import (
	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/xxh3"
)

// Hasher turns the canonical key of a composition request into the bucket
// index of a composite cache.
type Hasher interface {
	// HashCode returns an unsigned 64-bit hash of the given key
	HashCode(key []byte) uint64
}

type xhasher struct{}

var _ Hasher = xhasher{}

// HashCode implementation
func (x xhasher) HashCode(key []byte) uint64 {
	return xxhash.Sum64(key)
}

// DefaultHasher returns the xxhash backed hasher
func DefaultHasher() Hasher {
	return xhasher{}
}

type xxh3Hasher struct{}

var _ Hasher = xxh3Hasher{}

// HashCode implementation
func (x xxh3Hasher) HashCode(key []byte) uint64 {
	return xxh3.Hash(key)
}

// XXH3Hasher returns a hasher backed by XXH3, faster than the default on long keys.
func XXH3Hasher() Hasher {
	return xxh3Hasher{}
}

// String hashes s with h without copying s into a fresh slice when h is a built-in hasher.
func String(h Hasher, s string) uint64 {
	switch h.(type) {
	case xhasher:
		return xxhash.Sum64String(s)
	case xxh3Hasher:
		return xxh3.HashString(s)
	default:
		return h.HashCode([]byte(s))
	}
}
