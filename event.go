package formstate

import "fmt"

// EventKind identifies a UI interaction forwarded to a FormState.
type EventKind int

const (
	// EventUnknown is the zero value. An Event decoded without a type carries
	// it, and Dispatch rejects it.
	EventUnknown EventKind = iota

	// EventFocus corresponds to a field gaining focus.
	EventFocus

	// EventBlur corresponds to a field losing focus.
	EventBlur

	// EventChange corresponds to a field's value being edited.
	EventChange

	// EventSubmit corresponds to the form being submitted.
	EventSubmit
)

// String returns the string representation of the kind.
func (k EventKind) String() string {
	switch k {
	case EventFocus:
		return "focus"
	case EventBlur:
		return "blur"
	case EventChange:
		return "change"
	case EventSubmit:
		return "submit"
	default:
		return "unknown"
	}
}

// ParseEventKind converts a name produced by String back into an EventKind.
func ParseEventKind(s string) (EventKind, error) {
	switch s {
	case "focus":
		return EventFocus, nil
	case "blur":
		return EventBlur, nil
	case "change":
		return EventChange, nil
	case "submit":
		return EventSubmit, nil
	default:
		return EventUnknown, fmt.Errorf("%w %q", ErrUnknownEventKind, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *EventKind) UnmarshalText(text []byte) error {
	parsed, err := ParseEventKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Event is the payload a rendering layer extracts from a raw UI event.
// FieldName is ignored for submit events and FieldValue is only read for
// change events.
type Event struct {
	Kind       EventKind `json:"type" yaml:"type"`
	FieldName  string    `json:"field,omitempty" yaml:"field,omitempty"`
	FieldValue string    `json:"value,omitempty" yaml:"value,omitempty"`
}
