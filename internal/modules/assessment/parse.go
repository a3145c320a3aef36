package assessment

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"gorm.io/datatypes"

	"github.com/careerpath/careerpath-backend/internal/domain"
)

type RecommendationDraft struct {
	Title       string   `json:"title"`
	Type        string   `json:"type"`
	MatchScore  float64  `json:"matchScore"`
	MatchReason string   `json:"matchReason"`
	Overview    string   `json:"overview"`
	Skills      []string `json:"skills"`
	Difficulty  string   `json:"difficulty"`
	FutureScope string   `json:"futureScope"`
}

type Result struct {
	Analysis        string                `json:"analysis"`
	Recommendations []RecommendationDraft `json:"recommendations"`
}

// CleanJSON strips markdown code fences and any prose around the outermost object.
func CleanJSON(input string) string {
	clean := strings.TrimSpace(input)
	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(strings.TrimSpace(clean), "```")
	clean = strings.TrimSpace(clean)

	if !strings.HasPrefix(clean, "{") {
		start := strings.Index(clean, "{")
		end := strings.LastIndex(clean, "}")
		if start >= 0 && end > start {
			clean = clean[start : end+1]
		}
	}
	return clean
}

// ParseResult cleans, schema-validates and decodes a model response.
func ParseResult(raw string) (*Result, error) {
	cleaned := CleanJSON(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("empty model response")
	}

	var doc any
	if err := json.Unmarshal([]byte(cleaned), &doc); err != nil {
		return nil, fmt.Errorf("model response is not JSON: %w", err)
	}

	schema, err := resultValidator()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("model response failed schema validation: %w", err)
	}

	var out Result
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return nil, fmt.Errorf("decode model response: %w", err)
	}
	return &out, nil
}

// ToDomain converts drafts to domain rows, keeping the model's order in Position.
func (r *Result) ToDomain() []domain.Recommendation {
	out := make([]domain.Recommendation, 0, len(r.Recommendations))
	for i, d := range r.Recommendations {
		skills := d.Skills
		if skills == nil {
			skills = []string{}
		}
		out = append(out, domain.Recommendation{
			Position:    i,
			Type:        domain.RecommendationType(d.Type),
			Title:       strings.TrimSpace(d.Title),
			MatchScore:  clampScore(d.MatchScore),
			MatchReason: d.MatchReason,
			Overview:    d.Overview,
			Skills:      datatypes.JSONSlice[string](skills),
			Difficulty:  domain.Difficulty(d.Difficulty),
			FutureScope: domain.Demand(d.FutureScope),
		})
	}
	return out
}

func clampScore(f float64) int {
	n := int(math.Round(f))
	if n < domain.MinMatchScore {
		return domain.MinMatchScore
	}
	if n > domain.MaxMatchScore {
		return domain.MaxMatchScore
	}
	return n
}
