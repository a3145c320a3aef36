package assessment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
)

const (
	CareerCount = 3
	DegreeCount = 3
)

type Prompt struct {
	System string
	User   string
	Schema map[string]any
}

type promptInput struct {
	AnswersJSON string
	SchemaJSON  string
	Careers     int
	Degrees     int
}

const systemText = `You are an expert Career Counselor.`

const userText = `Analyze the following user answers:
{{.AnswersJSON}}

Based on this, recommend {{.Careers}} specific Career Paths and {{.Degrees}} Educational Degrees.
Use "CAREER" or "DEGREE" for each recommendation type and a matchScore between 0 and 100.

IMPORTANT: Return ONLY raw JSON. No markdown formatting.
The output must conform to this JSON schema:
{{.SchemaJSON}}`

var userTemplate = template.Must(template.New("user").Option("missingkey=zero").Parse(userText))

// BuildPrompt renders the recommendation prompt for a validated answer set.
func BuildPrompt(answers map[string]any) (Prompt, error) {
	if len(answers) == 0 {
		return Prompt{}, fmt.Errorf("missing answers")
	}
	answersJSON, err := marshalPlain(answers)
	if err != nil {
		return Prompt{}, fmt.Errorf("encode answers: %w", err)
	}
	schema := ResultSchema()
	schemaJSON, err := marshalPlain(schema)
	if err != nil {
		return Prompt{}, fmt.Errorf("encode schema: %w", err)
	}

	var b bytes.Buffer
	in := promptInput{
		AnswersJSON: answersJSON,
		SchemaJSON:  schemaJSON,
		Careers:     CareerCount,
		Degrees:     DegreeCount,
	}
	if err := userTemplate.Execute(&b, in); err != nil {
		return Prompt{}, fmt.Errorf("render prompt: %w", err)
	}
	return Prompt{
		System: systemText,
		User:   strings.TrimSpace(b.String()),
		Schema: schema,
	}, nil
}

// marshalPlain encodes without HTML escaping so answers like "Art & Design" reach the
// model verbatim.
func marshalPlain(v any) (string, error) {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSpace(b.String()), nil
}
