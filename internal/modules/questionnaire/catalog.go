// Package questionnaire holds the career questionnaire and validates submitted answers.
package questionnaire

import (
	_ "embed"
	"fmt"
	"math"
	"strings"

	"gopkg.in/yaml.v3"
)

type QuestionType string

const (
	TypeChoice QuestionType = "choice"
	TypeSlider QuestionType = "slider"
)

const (
	SliderMin     = 0
	SliderMax     = 100
	SliderDefault = 50
)

type Question struct {
	ID       string       `yaml:"id" json:"id"`
	Text     string       `yaml:"text" json:"text"`
	Type     QuestionType `yaml:"type" json:"type"`
	Options  []string     `yaml:"options,omitempty" json:"options,omitempty"`
	MinLabel string       `yaml:"min_label,omitempty" json:"min_label,omitempty"`
	MaxLabel string       `yaml:"max_label,omitempty" json:"max_label,omitempty"`
}

type Catalog struct {
	Questions []Question `yaml:"questions" json:"questions"`
	byID      map[string]int
}

//go:embed questions.yaml
var defaultYAML []byte

// Default parses the embedded catalog. It panics on a malformed embed since that is a
// build defect, not a runtime condition.
func Default() *Catalog {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("questionnaire: embedded catalog: %v", err))
	}
	return c
}

func Parse(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse questionnaire: %w", err)
	}
	if len(c.Questions) == 0 {
		return nil, fmt.Errorf("questionnaire has no questions")
	}
	c.byID = make(map[string]int, len(c.Questions))
	for i, q := range c.Questions {
		if q.ID == "" {
			return nil, fmt.Errorf("question %d has no id", i)
		}
		if _, dup := c.byID[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %q", q.ID)
		}
		switch q.Type {
		case TypeChoice:
			if len(q.Options) == 0 {
				return nil, fmt.Errorf("choice question %q has no options", q.ID)
			}
		case TypeSlider:
		default:
			return nil, fmt.Errorf("question %q has unknown type %q", q.ID, q.Type)
		}
		c.byID[q.ID] = i
	}
	return &c, nil
}

func (c *Catalog) Lookup(id string) (Question, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Question{}, false
	}
	return c.Questions[i], true
}

// Normalize validates an answer set and returns a copy with every catalog question
// answered. Unknown ids are rejected. Missing sliders take the default position, which is
// what the questionnaire shows before the user moves the handle; missing choices are
// rejected.
func (c *Catalog) Normalize(answers map[string]any) (map[string]any, error) {
	if len(answers) == 0 {
		return nil, fmt.Errorf("missing answers")
	}
	for id := range answers {
		if _, ok := c.byID[id]; !ok {
			return nil, fmt.Errorf("unknown question %q", id)
		}
	}

	out := make(map[string]any, len(c.Questions))
	for _, q := range c.Questions {
		v, present := answers[q.ID]
		switch q.Type {
		case TypeChoice:
			s, ok := v.(string)
			if !present || !ok {
				return nil, fmt.Errorf("question %q requires one of the listed options", q.ID)
			}
			opt, ok := matchOption(q.Options, s)
			if !ok {
				return nil, fmt.Errorf("question %q: %q is not a listed option", q.ID, s)
			}
			out[q.ID] = opt
		case TypeSlider:
			if !present || v == nil {
				out[q.ID] = SliderDefault
				continue
			}
			n, ok := asInt(v)
			if !ok {
				return nil, fmt.Errorf("question %q requires a number", q.ID)
			}
			if n < SliderMin || n > SliderMax {
				return nil, fmt.Errorf("question %q must be between %d and %d", q.ID, SliderMin, SliderMax)
			}
			out[q.ID] = n
		}
	}
	return out, nil
}

func matchOption(options []string, s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, o := range options {
		if strings.EqualFold(o, s) {
			return o, true
		}
	}
	return "", false
}

// asInt accepts the numeric shapes encoding/json and yaml produce.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}
