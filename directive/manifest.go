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
	"strings"

	"gopkg.in/yaml.v3"

	gerrors "github.com/tochemey/ensemble/errors"
)

// Manifest declares defaults and named composites in YAML:
//
//	defaults:
//	  - AdvancedRoutes
//	  - development: [Reloader, WebInspector]
//	composites:
//	  Api:
//	    - except: WebInspector
type Manifest struct {
	Defaults   Options            `yaml:"defaults,omitempty"`
	Composites map[string]Options `yaml:"composites,omitempty"`
}

// ParseManifest decodes a manifest document.
func ParseManifest(data []byte) (*Manifest, error) {
	manifest := new(Manifest)
	if err := yaml.Unmarshal(data, manifest); err != nil {
		return nil, gerrors.NewErrInvalidManifest(err)
	}
	if err := Validate(List(manifest.Defaults)); err != nil {
		return nil, gerrors.NewErrInvalidManifest(err)
	}
	for name, options := range manifest.Composites {
		if err := Validate(List(options)); err != nil {
			return nil, gerrors.NewErrInvalidManifest(fmt.Errorf("composite %s: %w", name, err))
		}
	}
	return manifest, nil
}

// UnmarshalYAML decodes either a single directive or a sequence of directives.
func (o *Options) UnmarshalYAML(node *yaml.Node) error {
	node = resolveAlias(node)
	if node.Kind == yaml.SequenceNode {
		list, err := decodeList(node)
		if err != nil {
			return err
		}
		*o = Options(list)
		return nil
	}

	d, err := decodeNode(node)
	if err != nil {
		return err
	}
	*o = Options{d}
	return nil
}

func decodeNode(node *yaml.Node) (Directive, error) {
	node = resolveAlias(node)
	switch node.Kind {
	case yaml.ScalarNode:
		return decodeScalar(node)
	case yaml.SequenceNode:
		return decodeList(node)
	case yaml.MappingNode:
		return decodeMap(node)
	default:
		return nil, fmt.Errorf("line %d: unsupported directive node", node.Line)
	}
}

func decodeScalar(node *yaml.Node) (Directive, error) {
	value := strings.TrimSpace(node.Value)
	if value == "" {
		return nil, fmt.Errorf("line %d: empty identifier", node.Line)
	}
	if strings.Contains(value, ".") || strings.Contains(value, "::") {
		return Path(value), nil
	}
	return Name(value), nil
}

func decodeList(node *yaml.Node) (List, error) {
	list := make(List, 0, len(node.Content))
	for _, child := range node.Content {
		d, err := decodeNode(child)
		if err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, nil
}

func decodeMap(node *yaml.Node) (Map, error) {
	out := make(Map, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], resolveAlias(node.Content[i+1])
		entry := Entry{Key: strings.TrimSpace(keyNode.Value)}
		if valueNode.Kind == yaml.SequenceNode {
			values, err := decodeList(valueNode)
			if err != nil {
				return nil, err
			}
			entry.Values = values
		} else {
			value, err := decodeNode(valueNode)
			if err != nil {
				return nil, err
			}
			entry.Values = List{value}
		}
		out = append(out, entry)
	}
	return out, nil
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}
