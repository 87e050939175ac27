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

package namespace

import (
	"errors"

	"github.com/tochemey/ensemble/directive"
	gerrors "github.com/tochemey/ensemble/errors"
	"github.com/tochemey/ensemble/extension"
)

// Resolve maps an identifier to an extension.
//
// A direct identifier is returned unchanged. A name is looked up as a member of
// scope. A path walks nested namespaces starting at scope; any segment missing
// from the current namespace is looked up in global instead. Failures match
// errors.ErrUnresolvedExtension.
func Resolve(id directive.Identifier, scope, global *Namespace) (extension.Extension, error) {
	switch id.Kind() {
	case directive.DirectKind:
		if id.Extension() == nil {
			return nil, gerrors.NewErrUnresolvedExtension(id.String())
		}
		return id.Extension(), nil
	case directive.NameKind:
		return resolveMember(id, scope, id.Value())
	default:
		return resolvePath(id, scope, global)
	}
}

func resolvePath(id directive.Identifier, scope, global *Namespace) (extension.Extension, error) {
	segments := id.Segments()
	current := scope
	for _, segment := range segments[:len(segments)-1] {
		next, ok := childOf(current, segment)
		if !ok {
			next, ok = childOf(global, segment)
		}
		if !ok {
			return nil, &notFoundError{gerrors.NewErrUnresolvedExtension(id.String())}
		}
		current = next
	}

	last := segments[len(segments)-1]
	ext, err := resolveMember(id, current, last)
	if err == nil || global == nil || current == global || !IsNotFound(err) {
		return ext, err
	}
	return resolveMember(id, global, last)
}

func resolveMember(id directive.Identifier, scope *Namespace, name string) (extension.Extension, error) {
	if scope == nil {
		return nil, &notFoundError{gerrors.NewErrUnresolvedExtension(id.String())}
	}
	ext, found, err := scope.lookup(name)
	switch {
	case err != nil:
		if errors.Is(err, gerrors.ErrUnresolvedExtension) {
			return nil, err
		}
		return nil, errors.Join(gerrors.NewErrUnresolvedExtension(id.String()), err)
	case !found:
		return nil, &notFoundError{gerrors.NewErrUnresolvedExtension(id.String())}
	default:
		return ext, nil
	}
}

func childOf(n *Namespace, name string) (*Namespace, bool) {
	if n == nil {
		return nil, false
	}
	return n.lookupChild(name)
}

// notFoundError marks a plain miss, as opposed to a failed load, so that path
// resolution knows it may fall back to the global namespace.
type notFoundError struct {
	err error
}

func (e *notFoundError) Error() string { return e.err.Error() }
func (e *notFoundError) Unwrap() error { return e.err }

// IsNotFound reports whether err is a plain miss rather than a failed load,
// in which case the caller may try another namespace.
func IsNotFound(err error) bool {
	var target *notFoundError
	return errors.As(err, &target)
}
