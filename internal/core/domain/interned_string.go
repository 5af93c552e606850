package domain

import "unique"

// InternedString is a value object that wraps a unique.Handle[string].
// Unit paths, script sources and model type names repeat across every pass
// and every persisted cache entry, so interning them keeps comparisons cheap.
type InternedString struct {
	h unique.Handle[string]
}

// NewInternedString interns the given string.
func NewInternedString(s string) InternedString {
	return InternedString{
		h: unique.Make(s),
	}
}

// String returns the underlying string value.
func (is InternedString) String() string {
	var zero unique.Handle[string]
	if is.h == zero {
		return ""
	}
	return is.h.Value()
}

// MarshalText implements encoding.TextMarshaler.
func (is InternedString) MarshalText() ([]byte, error) {
	return []byte(is.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (is *InternedString) UnmarshalText(text []byte) error {
	is.h = unique.Make(string(text))
	return nil
}
