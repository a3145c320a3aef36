package questionnaire

import (
	"encoding/json"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	if len(c.Questions) != 5 {
		t.Fatalf("questions: want=5 got=%d", len(c.Questions))
	}
	q, ok := c.Lookup("work_style")
	if !ok {
		t.Fatalf("Lookup work_style: not found")
	}
	if q.Type != TypeChoice || len(q.Options) != 3 {
		t.Fatalf("work_style: unexpected %+v", q)
	}
	if q, _ := c.Lookup("risk_tolerance"); q.MinLabel != "Prefer Stability" {
		t.Fatalf("risk_tolerance min label: got=%q", q.MinLabel)
	}
}

func TestParseRejectsBadCatalogs(t *testing.T) {
	cases := map[string]string{
		"empty":     "questions: []",
		"duplicate": "questions:\n  - {id: a, type: slider}\n  - {id: a, type: slider}",
		"no-opts":   "questions:\n  - {id: a, type: choice}",
		"bad-type":  "questions:\n  - {id: a, type: essay}",
	}
	for name, raw := range cases {
		if _, err := Parse([]byte(raw)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return m
}

func TestNormalizeAcceptsFullAnswerSet(t *testing.T) {
	c := Default()
	got, err := c.Normalize(decode(t, `{
		"interests": "technology & coding",
		"work_style": "In a Team",
		"creativity_logic": 20,
		"risk_tolerance": 75,
		"social_interaction": 0
	}`))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got["interests"] != "Technology & Coding" {
		t.Fatalf("interests: want canonical option got=%v", got["interests"])
	}
	if got["risk_tolerance"] != 75 {
		t.Fatalf("risk_tolerance: want=75 got=%v", got["risk_tolerance"])
	}
}

func TestNormalizeDefaultsMissingSliders(t *testing.T) {
	c := Default()
	got, err := c.Normalize(decode(t, `{"interests":"Art & Design","work_style":"Independently"}`))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got["creativity_logic"] != SliderDefault {
		t.Fatalf("creativity_logic: want=%d got=%v", SliderDefault, got["creativity_logic"])
	}
}

func TestNormalizeRejects(t *testing.T) {
	c := Default()
	cases := map[string]string{
		"empty":          `{}`,
		"unknown":        `{"interests":"Art & Design","work_style":"Independently","favourite_colour":"blue"}`,
		"missing-choice": `{"work_style":"Independently"}`,
		"bad-option":     `{"interests":"Astrology","work_style":"Independently"}`,
		"out-of-range":   `{"interests":"Art & Design","work_style":"Independently","risk_tolerance":101}`,
		"fractional":     `{"interests":"Art & Design","work_style":"Independently","risk_tolerance":10.5}`,
		"slider-string":  `{"interests":"Art & Design","work_style":"Independently","risk_tolerance":"high"}`,
	}
	for name, raw := range cases {
		if _, err := c.Normalize(decode(t, raw)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}
