package features

// Value wraps a feature's associated value, which may be a boolean,
// number, string, or null. Callers must inspect the kind rather than
// coerce blindly to bool.
type Value struct {
	raw any
}

func boolValue(b bool) Value { return Value{raw: b} }

// IsNull reports whether the value is JSON null. An unknown feature, or one
// whose ranges do not cover the version, is the boolean false, not null.
func (v Value) IsNull() bool { return v.raw == nil }

// Bool returns the value as a bool, and whether it was actually a bool.
func (v Value) Bool() (bool, bool) {
	b, ok := v.raw.(bool)
	return b, ok
}

// Float64 returns the value as a float64, and whether it was actually a
// number. JSON numbers decode to float64.
func (v Value) Float64() (float64, bool) {
	f, ok := v.raw.(float64)
	return f, ok
}

// String returns the value as a string, and whether it was actually a
// string.
func (v Value) String() (string, bool) {
	s, ok := v.raw.(string)
	return s, ok
}

// Raw returns the underlying decoded value (bool, float64, string, or nil).
func (v Value) Raw() any { return v.raw }
