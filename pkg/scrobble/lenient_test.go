package scrobble

import (
	"encoding/json"
	"testing"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return v
}

func TestJsonUint(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		keys []string
		want uint64
	}{
		{"string encoded", `{"playcount": "42"}`, []string{"playcount"}, 42},
		{"plain number", `{"playcount": 42}`, []string{"playcount"}, 42},
		{"empty string", `{"playcount": ""}`, []string{"playcount"}, 0},
		{"absent", `{}`, []string{"playcount"}, 0},
		{"garbage", `{"playcount": "lots"}`, []string{"playcount"}, 0},
		{"nested", `{"stats": {"listeners": "7"}}`, []string{"stats", "listeners"}, 7},
		{"wrong intermediate type", `{"stats": 3}`, []string{"stats", "listeners"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := jsonUint(decode(t, tt.raw), tt.keys...); got != tt.want {
				t.Errorf("jsonUint(%s) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestJsonString(t *testing.T) {
	v := decode(t, `{"artist": {"#text": "Boris"}, "n": 3}`)

	if got := jsonString(v, "artist", "#text"); got != "Boris" {
		t.Errorf("jsonString = %q, want Boris", got)
	}
	if got := jsonString(v, "n"); got != "" {
		t.Errorf("jsonString on a number = %q, want empty", got)
	}
	if got := jsonString(v, "missing", "deeper"); got != "" {
		t.Errorf("jsonString on a missing path = %q, want empty", got)
	}
}

func TestJsonArrayAndObject(t *testing.T) {
	v := decode(t, `{"payload": {"listens": [1, 2, 3]}}`)

	if got := jsonArray(v, "payload", "listens"); len(got) != 3 {
		t.Errorf("jsonArray len = %d, want 3", len(got))
	}
	if got := jsonArray(v, "payload", "missing"); got != nil {
		t.Errorf("jsonArray on missing = %v, want nil", got)
	}
	if got := jsonObject(v, "payload"); got == nil {
		t.Error("jsonObject on present object = nil")
	}
	if got := jsonObject(v, "payload", "listens"); got != nil {
		t.Errorf("jsonObject on array = %v, want nil", got)
	}
}
