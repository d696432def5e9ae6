package core

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// DynamicModel is an open-schema JSON object. The raw document is kept as
// received, so fields the SDK knows nothing about survive a round trip.
// Paths use gjson syntax ("metadata.source", "entities.0.value").
type DynamicModel struct {
	raw []byte
}

// NewDynamicModel builds a model from a Go value (usually a map)
func NewDynamicModel(v map[string]any) (DynamicModel, error) {
	m := DynamicModel{}
	for key, value := range v {
		var err error
		if m, err = m.Set(gjsonEscape(key), value); err != nil {
			return DynamicModel{}, err
		}
	}
	return m, nil
}

// ParseDynamicModel wraps raw JSON; it must be an object
func ParseDynamicModel(raw []byte) (DynamicModel, error) {
	trimmed := bytes.TrimSpace(raw)
	if !gjson.ValidBytes(trimmed) || !gjson.ParseBytes(trimmed).IsObject() {
		return DynamicModel{}, fmt.Errorf("dynamic model must be a JSON object")
	}
	return DynamicModel{raw: append([]byte(nil), trimmed...)}, nil
}

func (m DynamicModel) get(path string) gjson.Result {
	if len(m.raw) == 0 {
		return gjson.Result{}
	}
	return gjson.GetBytes(m.raw, path)
}

func (m DynamicModel) Has(path string) bool {
	return m.get(path).Exists()
}

// GetString returns the value at path and whether it was a string
func (m DynamicModel) GetString(path string) (string, bool) {
	r := m.get(path)
	if r.Type != gjson.String {
		return "", false
	}
	return r.Str, true
}

func (m DynamicModel) GetFloat(path string) (float64, bool) {
	r := m.get(path)
	if r.Type != gjson.Number {
		return 0, false
	}
	return r.Num, true
}

func (m DynamicModel) GetInt(path string) (int64, bool) {
	r := m.get(path)
	if r.Type != gjson.Number {
		return 0, false
	}
	return r.Int(), true
}

func (m DynamicModel) GetBool(path string) (bool, bool) {
	r := m.get(path)
	if r.Type != gjson.True && r.Type != gjson.False {
		return false, false
	}
	return r.Bool(), true
}

// GetStringSlice returns the string members of an array; non-strings are skipped
func (m DynamicModel) GetStringSlice(path string) ([]string, bool) {
	r := m.get(path)
	if !r.IsArray() {
		return nil, false
	}
	var out []string
	for _, item := range r.Array() {
		if item.Type == gjson.String {
			out = append(out, item.Str)
		}
	}
	return out, true
}

// GetModel returns a nested object as its own DynamicModel
func (m DynamicModel) GetModel(path string) (DynamicModel, bool) {
	r := m.get(path)
	if !r.IsObject() {
		return DynamicModel{}, false
	}
	return DynamicModel{raw: []byte(r.Raw)}, true
}

// Raw returns the JSON text at path
func (m DynamicModel) Raw(path string) (string, bool) {
	r := m.get(path)
	return r.Raw, r.Exists()
}

// Keys lists the top-level property names in document order
func (m DynamicModel) Keys() []string {
	var keys []string
	if len(m.raw) == 0 {
		return keys
	}
	gjson.ParseBytes(m.raw).ForEach(func(key, _ gjson.Result) bool {
		keys = append(keys, key.String())
		return true
	})
	return keys
}

// Set returns a copy with value stored at path
func (m DynamicModel) Set(path string, value any) (DynamicModel, error) {
	base := m.raw
	if len(base) == 0 {
		base = []byte("{}")
	}
	out, err := sjson.SetBytes(append([]byte(nil), base...), path, value)
	if err != nil {
		return m, fmt.Errorf("failed to set %s: %w", path, err)
	}
	return DynamicModel{raw: out}, nil
}

// Delete returns a copy without path
func (m DynamicModel) Delete(path string) (DynamicModel, error) {
	if len(m.raw) == 0 {
		return m, nil
	}
	out, err := sjson.DeleteBytes(append([]byte(nil), m.raw...), path)
	if err != nil {
		return m, fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return DynamicModel{raw: out}, nil
}

func (m DynamicModel) IsEmpty() bool {
	return len(m.raw) == 0 || len(m.Keys()) == 0
}

func (m DynamicModel) MarshalJSON() ([]byte, error) {
	if len(m.raw) == 0 {
		return []byte("{}"), nil
	}
	return m.raw, nil
}

func (m *DynamicModel) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		m.raw = nil
		return nil
	}
	parsed, err := ParseDynamicModel(data)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// gjsonEscape escapes path syntax characters in a literal property name
func gjsonEscape(key string) string {
	var buf bytes.Buffer
	for i := 0; i < len(key); i++ {
		if strings.IndexByte(`.*?|#@\\!=<>%`, key[i]) >= 0 {
			buf.WriteByte('\\')
		}
		buf.WriteByte(key[i])
	}
	return buf.String()
}
