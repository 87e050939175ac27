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
	"github.com/tochemey/ensemble/directive"
	"github.com/tochemey/ensemble/hash"
)

// Generate returns the composite class deriving from the receiver with
// exactly the capabilities described by options.
//
// The composite itself carries nothing: its subclasses are composed from the
// recorded options when they are created. Calling Generate again with
// structurally equal options returns the same class. With no option the
// receiver itself is returned.
//
// Options are validated before the cache is consulted and resolved before
// anything is cached, so an unknown identifier or a malformed map fails here
// rather than when the first subclass is created.
func (c *Class) Generate(options ...directive.Directive) (*Class, error) {
	if len(options) == 0 {
		return c, nil
	}
	if err := directive.Validate(options...); err != nil {
		return nil, err
	}

	opts := make(directive.Options, len(options))
	copy(opts, options)
	key := opts.Key()
	code := hash.String(c.engine.hasher, key)

	if composite := c.cachedComposite(code, key); composite != nil {
		return composite, nil
	}

	value, err, _ := c.inflight.Do(key, func() (any, error) {
		if composite := c.cachedComposite(code, key); composite != nil {
			return composite, nil
		}

		if _, err := c.engine.plan(c.nearestDefaults(), opts, true); err != nil {
			return nil, err
		}

		composite := newClass(c.engine, c, opts.Label(c.engine.labelPrefix))
		composite.options = opts
		composite.generated = true
		c.composites.Compute(code, func(bucket []*Class, _ bool) []*Class {
			return append(bucket, composite)
		})

		c.engine.logger.With("class", c.String(), "composite", composite.ID()).Debugf("generated %s", composite.Label())
		return composite, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*Class), nil
}

// Composites returns the composite classes generated from the receiver.
func (c *Class) Composites() []*Class {
	var out []*Class
	for _, bucket := range c.composites.Values() {
		out = append(out, bucket...)
	}
	return out
}

// cachedComposite looks the key up in its hash bucket. Colliding keys share
// a bucket and are told apart by structural equality.
func (c *Class) cachedComposite(code uint64, key string) *Class {
	bucket, ok := c.composites.Get(code)
	if !ok {
		return nil
	}
	for _, composite := range bucket {
		if composite.options.Key() == key {
			return composite
		}
	}
	return nil
}
