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
	"fmt"
	"sort"

	"github.com/tochemey/ensemble/directive"
	gerrors "github.com/tochemey/ensemble/errors"
	"github.com/tochemey/ensemble/internal/validation"
)

// LoadManifest declares the manifest defaults on the class, then generates and
// binds every named composite. Composites are generated in name order so that
// equal options bind to the first name.
func (c *Class) LoadManifest(manifest *directive.Manifest) (map[string]*Class, error) {
	if manifest == nil {
		return nil, gerrors.NewErrInvalidManifest(fmt.Errorf("manifest is nil"))
	}

	if len(manifest.Defaults) > 0 {
		if _, err := c.DeclareDefaults(manifest.Defaults...); err != nil {
			return nil, gerrors.NewErrInvalidManifest(err)
		}
	}

	names := make([]string, 0, len(manifest.Composites))
	for name := range manifest.Composites {
		names = append(names, name)
	}
	sort.Strings(names)

	composites := make(map[string]*Class, len(names))
	for _, name := range names {
		if err := validation.NewNameValidator(name, gerrors.ErrInvalidName).Validate(); err != nil {
			return nil, gerrors.NewErrInvalidManifest(err)
		}

		options := manifest.Composites[name]
		if len(options) == 0 {
			return nil, gerrors.NewErrInvalidManifest(fmt.Errorf("composite %s declares no directive", name))
		}

		composite, err := c.Generate(options...)
		if err != nil {
			return nil, gerrors.NewErrInvalidManifest(fmt.Errorf("composite %s: %w", name, err))
		}
		composite.Bind(name)
		composites[name] = composite
	}
	return composites, nil
}
