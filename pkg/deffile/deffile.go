// SPDX-License-Identifier: MPL-2.0

package deffile

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/opcmd/opcmd/pkg/cueutil"
	"github.com/opcmd/opcmd/pkg/opcmd"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// MaxFileSize is the largest definition file Load accepts.
const MaxFileSize = cueutil.DefaultMaxFileSize

//go:embed definition_schema.cue
var definitionSchema []byte

// Load reads the definition at path, choosing the decoder by extension.
func Load(path string) (*opcmd.Definition, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}
	return Unmarshal(data, format, path)
}

// Unmarshal decodes data in the given format. filename only labels errors.
// Schema violations and structural errors both match opcmd.ErrMalformedConfig.
func Unmarshal(data []byte, format Format, filename string) (*opcmd.Definition, error) {
	rec, err := decodeRecord(data, format, filename)
	if err != nil {
		return nil, err
	}
	def, err := opcmd.FromRecord(rec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return def, nil
}

func decodeRecord(data []byte, format Format, filename string) (opcmd.Record, error) {
	if err := cueutil.CheckFileSize(data, MaxFileSize, filename); err != nil {
		return nil, err
	}

	var (
		rec map[string]any
		err error
	)
	switch format {
	case FormatCUE:
		rec, err = cueutil.Parse(definitionSchema, data, "#Definition", cueutil.WithFilename(filename))
		return rec, malformed(err)
	case FormatYAML:
		err = yaml.Unmarshal(data, &rec)
	case FormatTOML:
		err = toml.Unmarshal(data, &rec)
	case FormatJSON, FormatJSONC:
		rec, err = decodeJSON(data)
	default:
		return nil, &UnsupportedFormatError{Value: string(format)}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", opcmd.ErrMalformedConfig, filename, err)
	}

	rec, err = cueutil.Validate(definitionSchema, dropNulls(rec), "#Definition", cueutil.WithFilename(filename))
	return rec, malformed(err)
}

// dropNulls removes null sections and null override fields, which
// opcmd.FromRecord treats as unset. YAML writes them for empty keys.
func dropNulls(rec map[string]any) map[string]any {
	for _, key := range []string{opcmd.KeyArgs, opcmd.KeyEnv, opcmd.KeyFlags} {
		if v, ok := rec[key]; ok && v == nil {
			delete(rec, key)
		}
	}
	flags, _ := rec[opcmd.KeyFlags].(map[string]any)
	for _, entry := range flags {
		override, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		for k, v := range override {
			if v == nil {
				delete(override, k)
			}
		}
	}
	return rec
}

func malformed(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", opcmd.ErrMalformedConfig, err)
}

// decodeJSON strips comments and trailing commas, then decodes numbers
// exactly so that 3 stays an integer and 3.0 a float.
func decodeJSON(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	rec, ok := fromJSONNumbers(raw).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("top level must be an object, got %T", raw)
	}
	return rec, nil
}

func fromJSONNumbers(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case []any:
		for i := range x {
			x[i] = fromJSONNumbers(x[i])
		}
	case map[string]any:
		for k := range x {
			x[k] = fromJSONNumbers(x[k])
		}
	}
	return v
}

// Save writes def to path in the format implied by its extension.
func Save(path string, def *opcmd.Definition) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := Marshal(def, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write definition: %w", err)
	}
	return nil
}

// Marshal encodes the canonical record of def. Keys are sorted and floats
// keep a fractional part, so reading the output back yields an equal
// definition in every format.
func Marshal(def *opcmd.Definition, format Format) ([]byte, error) {
	rec := def.ToRecord()
	switch format {
	case FormatCUE:
		return cueutil.Format(rec)
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(withFloats[yamlFloat](rec)); err != nil {
			return nil, fmt.Errorf("encoding YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encoding YAML: %w", err)
		}
		return buf.Bytes(), nil
	case FormatTOML:
		out, err := toml.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("encoding TOML: %w", err)
		}
		return out, nil
	case FormatJSON, FormatJSONC:
		out, err := json.MarshalIndent(withFloats[jsonFloat](rec), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding JSON: %w", err)
		}
		return append(out, '\n'), nil
	default:
		return nil, &UnsupportedFormatError{Value: string(format)}
	}
}

type (
	yamlFloat float64
	jsonFloat float64
)

func (f yamlFloat) MarshalYAML() (any, error) {
	v := float64(f)
	var text string
	switch {
	case math.IsNaN(v):
		text = ".nan"
	case math.IsInf(v, 1):
		text = ".inf"
	case math.IsInf(v, -1):
		text = "-.inf"
	default:
		text, _ = opcmd.Encode(v)
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: text}, nil
}

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%v cannot be represented in JSON", v)
	}
	text, _ := opcmd.Encode(v)
	return []byte(text), nil
}

// withFloats copies v, converting each float64 to F.
func withFloats[F ~float64](v any) any {
	switch x := v.(type) {
	case float64:
		return F(x)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = withFloats[F](e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = withFloats[F](e)
		}
		return out
	}
	return v
}
