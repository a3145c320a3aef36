// Package assessment turns a questionnaire answer set into validated recommendations.
package assessment

import (
	"context"
	"fmt"

	"github.com/careerpath/careerpath-backend/internal/domain"
	"github.com/careerpath/careerpath-backend/internal/platform/apierr"
	"github.com/careerpath/careerpath-backend/internal/platform/logger"
)

// Generator returns the raw text of one model completion.
type Generator interface {
	GenerateJSON(ctx context.Context, system, user string, schema map[string]any) (string, error)
}

type Outcome struct {
	Summary         string
	Recommendations []domain.Recommendation
}

type Analyzer struct {
	gen Generator
	log *logger.Logger
}

func NewAnalyzer(gen Generator, log *logger.Logger) *Analyzer {
	return &Analyzer{gen: gen, log: log.With("module", "AssessmentAnalyzer")}
}

// Analyze makes one model call. Generator errors pass through unchanged so their
// apierr classification survives; malformed output becomes an upstream failure.
func (a *Analyzer) Analyze(ctx context.Context, answers map[string]any) (*Outcome, error) {
	p, err := BuildPrompt(answers)
	if err != nil {
		return nil, apierr.Validation(err)
	}
	raw, err := a.gen.GenerateJSON(ctx, p.System, p.User, p.Schema)
	if err != nil {
		return nil, err
	}
	res, err := ParseResult(raw)
	if err != nil {
		a.log.Warn("model output rejected", "error", err, "bytes", len(raw))
		return nil, apierr.Upstream(fmt.Errorf("recommendation output invalid: %w", err))
	}
	recs := res.ToDomain()
	for i := range recs {
		if err := recs[i].Validate(); err != nil {
			return nil, apierr.Upstream(fmt.Errorf("recommendation %d invalid: %w", i, err))
		}
	}
	return &Outcome{Summary: res.Analysis, Recommendations: recs}, nil
}
