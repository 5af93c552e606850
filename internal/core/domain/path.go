package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// rootPath is the canonical path of the build root (settings scope).
const rootPath = ":"

// UnitPath identifies a configuration unit by its position in the build
// hierarchy, e.g. ":" for the build root and ":sub:app" for a nested project.
type UnitPath struct {
	s InternedString
}

// RootPath returns the path of the build root unit.
func RootPath() UnitPath {
	return UnitPath{s: NewInternedString(rootPath)}
}

// ParseUnitPath parses and validates a hierarchical unit path.
// A valid path is ":" or ":"-separated non-empty segments of
// alphanumerics, hyphens and underscores, e.g. ":sub:app".
func ParseUnitPath(raw string) (UnitPath, error) {
	if raw == rootPath {
		return RootPath(), nil
	}
	if !strings.HasPrefix(raw, ":") {
		return UnitPath{}, zerr.With(zerr.Wrap(ErrInvalidUnitPath, "path must start with ':'"), "path", raw)
	}
	for _, segment := range strings.Split(raw[1:], ":") {
		if !validSegment(segment) {
			return UnitPath{}, zerr.With(zerr.Wrap(ErrInvalidUnitPath, "path has an empty or malformed segment"), "path", raw)
		}
	}
	return UnitPath{s: NewInternedString(raw)}, nil
}

// MustUnitPath parses a unit path and panics on invalid input.
// Intended for statically known paths.
func MustUnitPath(raw string) UnitPath {
	p, err := ParseUnitPath(raw)
	if err != nil {
		panic(err)
	}
	return p
}

func validSegment(segment string) bool {
	if segment == "" {
		return false
	}
	for _, r := range segment {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

// String returns the canonical string form of the path.
func (p UnitPath) String() string {
	return p.s.String()
}

// IsZero reports whether the path is the zero value (not a parsed path).
func (p UnitPath) IsZero() bool {
	return p.s.String() == ""
}

// IsRoot reports whether the path is the build root.
func (p UnitPath) IsRoot() bool {
	return p.s.String() == rootPath
}

// Depth returns the number of segments below the root.
// The root itself has depth zero.
func (p UnitPath) Depth() int {
	if p.IsRoot() || p.IsZero() {
		return 0
	}
	return strings.Count(p.s.String(), ":")
}

// Parent returns the parent path and true, or the zero value and false for
// the root.
func (p UnitPath) Parent() (UnitPath, bool) {
	if p.IsRoot() || p.IsZero() {
		return UnitPath{}, false
	}
	s := p.s.String()
	idx := strings.LastIndex(s, ":")
	if idx == 0 {
		return RootPath(), true
	}
	return UnitPath{s: NewInternedString(s[:idx])}, true
}

// Ancestors returns the chain of ancestor paths from the immediate parent up
// to and including the root. The root has no ancestors.
func (p UnitPath) Ancestors() []UnitPath {
	var chain []UnitPath
	current := p
	for {
		parent, ok := current.Parent()
		if !ok {
			return chain
		}
		chain = append(chain, parent)
		current = parent
	}
}

// IsAncestorOf reports whether p is a strict ancestor of child.
func (p UnitPath) IsAncestorOf(child UnitPath) bool {
	if p.IsZero() || child.IsZero() || p == child {
		return false
	}
	if p.IsRoot() {
		return true
	}
	return strings.HasPrefix(child.s.String(), p.s.String()+":")
}

// MarshalText implements encoding.TextMarshaler.
func (p UnitPath) MarshalText() ([]byte, error) {
	return []byte(p.s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *UnitPath) UnmarshalText(text []byte) error {
	parsed, err := ParseUnitPath(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// CompareUnitPaths orders paths parent-before-child: by depth first, then
// lexically. Suitable for a deterministic topological walk of a unit tree.
func CompareUnitPaths(a, b UnitPath) int {
	if d := a.Depth() - b.Depth(); d != 0 {
		return d
	}
	return strings.Compare(a.String(), b.String())
}
