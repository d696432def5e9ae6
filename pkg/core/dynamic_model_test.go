package core

import (
	"encoding/json"
	"testing"
)

func TestDynamicModelAccessors(t *testing.T) {
	t.Parallel()

	m, err := ParseDynamicModel([]byte(`{
		"id": "doc-1",
		"score": 1.5,
		"count": 7,
		"enriched": true,
		"tags": ["a", 1, "b"],
		"metadata": {"source": "crawler"}
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v, ok := m.GetString("id"); !ok || v != "doc-1" {
		t.Fatalf("unexpected id: %q %v", v, ok)
	}
	if _, ok := m.GetString("score"); ok {
		t.Fatalf("score is not a string")
	}
	if v, ok := m.GetFloat("score"); !ok || v != 1.5 {
		t.Fatalf("unexpected score: %v", v)
	}
	if v, ok := m.GetInt("count"); !ok || v != 7 {
		t.Fatalf("unexpected count: %v", v)
	}
	if v, ok := m.GetBool("enriched"); !ok || !v {
		t.Fatalf("unexpected enriched: %v", v)
	}
	if v, ok := m.GetStringSlice("tags"); !ok || len(v) != 2 || v[1] != "b" {
		t.Fatalf("unexpected tags: %v", v)
	}
	if v, ok := m.GetString("metadata.source"); !ok || v != "crawler" {
		t.Fatalf("unexpected nested value: %q", v)
	}
	nested, ok := m.GetModel("metadata")
	if !ok || !nested.Has("source") {
		t.Fatalf("expected nested model")
	}
	if keys := m.Keys(); len(keys) != 6 || keys[0] != "id" {
		t.Fatalf("unexpected keys: %v", keys)
	}
}

func TestDynamicModelRejectsNonObject(t *testing.T) {
	t.Parallel()

	if _, err := ParseDynamicModel([]byte(`[1,2]`)); err == nil {
		t.Fatalf("expected non-object error")
	}
	var m DynamicModel
	if err := json.Unmarshal([]byte(`"text"`), &m); err == nil {
		t.Fatalf("expected unmarshal error")
	}
}

func TestDynamicModelSetIsCopyOnWrite(t *testing.T) {
	t.Parallel()

	base, err := NewDynamicModel(map[string]any{"conversation_id": "c1", "a.b": 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, ok := base.GetInt(`a\.b`); !ok || v != 1 {
		t.Fatalf("expected dotted key to be stored literally")
	}

	updated, err := base.Set("system.dialog_turn_counter", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if base.Has("system") {
		t.Fatalf("original model must not change")
	}
	if v, ok := updated.GetInt("system.dialog_turn_counter"); !ok || v != 2 {
		t.Fatalf("unexpected counter: %v", v)
	}

	removed, err := updated.Delete("conversation_id")
	if err != nil || removed.Has("conversation_id") {
		t.Fatalf("expected conversation_id removed: %v", err)
	}
}

func TestDynamicModelPreservesUnknownFields(t *testing.T) {
	t.Parallel()

	type wrapper struct {
		Context *DynamicModel `json:"context,omitempty"`
	}

	in := []byte(`{"context":{"conversation_id":"c1","custom":{"deep":[1,2]}}}`)
	var w wrapper
	if err := json.Unmarshal(in, &w); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := json.Marshal(w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != string(in) {
		t.Fatalf("expected identical json, got %s", out)
	}

	var empty DynamicModel
	if !empty.IsEmpty() {
		t.Fatalf("zero model should be empty")
	}
	if data, _ := json.Marshal(empty); string(data) != "{}" {
		t.Fatalf("zero model should marshal as {}, got %s", data)
	}
}
