package payload

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Format is an output encoding of a payload.
type Format string

const (
	// FormatJSON is the encoding served over HTTP.
	FormatJSON Format = "json"
	// FormatYAML encodes a payload as a YAML document.
	FormatYAML Format = "yaml"
	// FormatMsgpack encodes a payload as MessagePack.
	FormatMsgpack Format = "msgpack"
)

// ErrFormat is returned when the format is not one of json, yaml or msgpack.
var ErrFormat = errors.New(`payload: unknown format, it should be "json|yaml|msgpack"`)

// ParseFormat parses a case insensitive format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatYAML, FormatMsgpack:
		return f, nil
	}
	return "", fmt.Errorf("%w: %s", ErrFormat, s)
}

// Marshal returns the JSON encoding of p.
func (p *Payload) Marshal() ([]byte, error) {
	return json.Marshal(p)
}

// Encode writes p to w in the given format, pretty only affects json.
func Encode(w io.Writer, format Format, p *Payload, pretty bool) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		if pretty {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(p)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(p); err != nil {
			return err
		}
		return enc.Close()
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(p)
	}
	return fmt.Errorf("%w: %s", ErrFormat, format)
}

// Schema returns the JSON schema of Payload.
func Schema() ([]byte, error) {
	r := new(jsonschema.Reflector)
	schema := r.Reflect(&Payload{})
	schema.Title = "datagen payload"
	return json.MarshalIndent(schema, "", "  ")
}
