// File: settings/serialize.go
package settings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Format identifies the serialized representation of setting values.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// DeserializeFunc turns the raw serialized text of a setting into the target
// instance. The target is always a non-nil pointer.
type DeserializeFunc func(raw string, target any) error

// DeserializerFor returns the default deserializer for a representation.
// Table-shaped payloads are parsed into a map and decoded with mapstructure
// so string values from environment variables convert weakly into typed
// fields; scalar payloads are handed to the codec directly.
func DeserializerFor(format Format) DeserializeFunc {
	return func(raw string, target any) error {
		data := make(map[string]any)
		if err := parseTable(format, raw, &data); err != nil {
			// Not a table: scalar or list payload, decode straight into the target.
			return decodeDirect(format, raw, target)
		}

		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           target,
			TagName:          string(format),
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToTimeHookFunc(time.RFC3339),
				mapstructure.StringToSliceHookFunc(","),
			),
		})
		if err != nil {
			return fmt.Errorf("settings: decoder creation failed: %w", err)
		}
		if err := decoder.Decode(data); err != nil {
			return fmt.Errorf("settings: decode failed: %w", err)
		}
		return nil
	}
}

// parseTable parses raw into a string-keyed map using the given format.
func parseTable(format Format, raw string, data *map[string]any) error {
	switch format {
	case FormatTOML:
		return toml.Unmarshal([]byte(raw), data)
	case FormatYAML:
		return yaml.Unmarshal([]byte(raw), data)
	case FormatJSON, "":
		dec := json.NewDecoder(strings.NewReader(raw))
		dec.UseNumber() // Preserve number precision
		return dec.Decode(data)
	default:
		return fmt.Errorf("settings: unknown representation %q", format)
	}
}

// decodeDirect unmarshals raw straight into the target with the format codec.
func decodeDirect(format Format, raw string, target any) error {
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal([]byte(raw), target)
	case FormatYAML:
		err = yaml.Unmarshal([]byte(raw), target)
	case FormatJSON, "":
		dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
		dec.UseNumber()
		err = dec.Decode(target)
	default:
		err = fmt.Errorf("unknown representation %q", format)
	}
	if err != nil {
		return fmt.Errorf("settings: deserialization failed: %w", err)
	}
	return nil
}
