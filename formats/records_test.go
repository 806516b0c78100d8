package formats

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeYAML(t *testing.T) {
	doc := `
- name: bob
  age: 30
  score: 1.5
  active: true
  born: 2001-02-03
  nick: ~
  code: "007"
- age: 25
  name: Alice
`
	got, err := YAML.Decode([]byte(doc))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	want := []Record{
		{
			{Key: "name", Value: "bob"},
			{Key: "age", Value: 30},
			{Key: "score", Value: 1.5},
			{Key: "active", Value: true},
			{Key: "born", Value: time.Date(2001, 2, 3, 0, 0, 0, 0, time.UTC)},
			{Key: "nick", Value: nil},
			{Key: "code", Value: "007"},
		},
		{
			{Key: "age", Value: 25},
			{Key: "name", Value: "Alice"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeJSON(t *testing.T) {
	doc := `[{"name": "bob", "age": 30, "tags": null}, {"name": "2001-02-03"}]`
	got, err := JSON.Decode([]byte(doc))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	want := []Record{
		{{Key: "name", Value: "bob"}, {Key: "age", Value: 30}, {Key: "tags", Value: nil}},
		{{Key: "name", Value: "2001-02-03"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeEmpty(t *testing.T) {
	for _, doc := range []string{"", "  \n", "[]"} {
		got, err := YAML.Decode([]byte(doc))
		if err != nil {
			t.Errorf("Decode(%q) error = %v", doc, err)
		}
		if len(got) != 0 {
			t.Errorf("Decode(%q) = %v, want no records", doc, got)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"MappingRoot", "name: bob\n", "expected a list of records, got a mapping"},
		{"ScalarRecord", "- bob\n", "record 0 is a scalar"},
		{"NestedValue", "- a: 1\n- a: [1, 2]\n", `record 1, key "a"`},
		{"RepeatedKey", "- a: 1\n  a: 2\n", `repeats key "a"`},
		{"Malformed", "- a: [\n", "failed to parse records"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := YAML.Decode([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestEncodeYAML(t *testing.T) {
	records := []Record{
		{{Key: "name", Value: "bob"}, {Key: "age", Value: 30}, {Key: "nick", Value: nil}},
		{{Key: "name", Value: "Alice"}},
	}

	got, err := YAML.Encode(records)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	want := "- name: bob\n  age: 30\n  nick: null\n- name: Alice\n"
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("Encode() mismatch (-want +got):\n%s", diff)
	}

	back, err := YAML.Decode(got)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if diff := cmp.Diff(records, back); diff != "" {
		t.Errorf("decoded records mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeJSON(t *testing.T) {
	records := []Record{
		{{Key: "name", Value: "<bob>"}, {Key: "age", Value: 30}},
		{{Key: "score", Value: 1.5}, {Key: "ok", Value: true}},
	}

	got, err := JSON.Encode(records)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	want := `[
  {
    "name": "<bob>",
    "age": 30
  },
  {
    "score": 1.5,
    "ok": true
  }
]
`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("Encode() mismatch (-want +got):\n%s", diff)
	}

	empty, err := JSON.Encode(nil)
	if err != nil {
		t.Fatalf("Encode(nil) error = %v", err)
	}
	if string(empty) != "[]\n" {
		t.Errorf("Encode(nil) = %q", empty)
	}
}
