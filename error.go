package formstate

// Error is a single validation failure attached to a field.
//
// Key identifies the failure kind ("blank", "taken") and Message is its raw
// description. FormattedMessage is derived by the configured FormatFunc on
// every merge pass and is empty when no formatter is in effect.
type Error struct {
	Key              string `json:"key" yaml:"key"`
	Message          string `json:"message" yaml:"message"`
	FormattedMessage string `json:"formattedMessage,omitempty" yaml:"formattedMessage,omitempty"`
}

// Errors maps field names to their ordered error lists.
type Errors map[string][]Error

// Get returns the errors recorded for name. Absent fields yield nil.
func (e Errors) Get(name string) []Error {
	if e == nil {
		return nil
	}
	return e[name]
}

// Count returns the total number of errors across all fields.
func (e Errors) Count() int {
	n := 0
	for _, list := range e {
		n += len(list)
	}
	return n
}

// Clone returns a deep copy of e. A nil receiver yields an empty map.
func (e Errors) Clone() Errors {
	out := make(Errors, len(e))
	for name, list := range e {
		out[name] = cloneErrors(list)
	}
	return out
}

// Values maps field names to their current string values.
type Values map[string]string

// Get returns the value recorded for name, or "" when absent.
func (v Values) Get(name string) string {
	if v == nil {
		return ""
	}
	return v[name]
}

// Clone returns a copy of v. A nil receiver yields an empty map.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for name, value := range v {
		out[name] = value
	}
	return out
}

func cloneErrors(list []Error) []Error {
	if list == nil {
		return nil
	}
	out := make([]Error, len(list))
	copy(out, list)
	return out
}
