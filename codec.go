package formstate

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Codec defines the wire contract for values, error payloads, views and
// schema documents. Implement this interface to use alternative formats.
type Codec interface {
	// Marshal serializes a value.
	Marshal(v any) ([]byte, error)

	// Unmarshal deserializes bytes into a value.
	Unmarshal(data []byte, v any) error

	// ContentType returns the MIME type for observability and debugging.
	ContentType() string
}

// JSONCodec implements Codec using encoding/json.
type JSONCodec struct{}

// Marshal serializes v as indented JSON.
func (JSONCodec) Marshal(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// Unmarshal deserializes JSON bytes into v.
func (JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// ContentType returns the JSON MIME type.
func (JSONCodec) ContentType() string {
	return "application/json"
}

// Ensure JSONCodec implements Codec.
var _ Codec = JSONCodec{}

// YAMLCodec implements Codec using gopkg.in/yaml.v3.
type YAMLCodec struct{}

// Marshal serializes v as YAML.
func (YAMLCodec) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// Unmarshal deserializes YAML bytes into v.
func (YAMLCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

// ContentType returns the YAML MIME type.
func (YAMLCodec) ContentType() string {
	return "application/x-yaml"
}

// Ensure YAMLCodec implements Codec.
var _ Codec = YAMLCodec{}

// CodecFor returns the codec registered for a short format name
// ("json", "yaml" or "yml").
func CodecFor(format string) (Codec, error) {
	switch format {
	case "json":
		return JSONCodec{}, nil
	case "yaml", "yml":
		return YAMLCodec{}, nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// DecodeErrors parses a server error payload keyed by field name.
// An empty payload yields an empty map.
func DecodeErrors(codec Codec, data []byte) (Errors, error) {
	errs := Errors{}
	if len(data) == 0 {
		return errs, nil
	}
	if err := codec.Unmarshal(data, &errs); err != nil {
		return nil, fmt.Errorf("decode errors: %w", err)
	}
	if errs == nil {
		errs = Errors{}
	}
	return errs, nil
}

// DecodeValues parses a value payload keyed by field name.
// An empty payload yields an empty map.
func DecodeValues(codec Codec, data []byte) (Values, error) {
	values := Values{}
	if len(data) == 0 {
		return values, nil
	}
	if err := codec.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("decode values: %w", err)
	}
	if values == nil {
		values = Values{}
	}
	return values, nil
}
