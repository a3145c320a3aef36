// Package quota holds the free-tier usage rules: how many assessments an owner may
// keep and how many resources they may save per category. Everything here is a pure
// decision over counts; callers perform the counting and the write.
package quota

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/careerpath/careerpath-backend/internal/platform/apierr"
)

const (
	AssessmentLimit       = 3
	SavedPerCategoryLimit = 5
)

type Resource string

const (
	ResourceAssessment Resource = "assessment"
	ResourceSaved      Resource = "saved_resource"
)

// Policy carries the configured limits. Non-positive fields fall back to the defaults.
type Policy struct {
	AssessmentLimit       int
	SavedPerCategoryLimit int
}

func DefaultPolicy() Policy {
	return Policy{
		AssessmentLimit:       AssessmentLimit,
		SavedPerCategoryLimit: SavedPerCategoryLimit,
	}
}

func (p Policy) LimitFor(r Resource) int {
	switch r {
	case ResourceAssessment:
		if p.AssessmentLimit > 0 {
			return p.AssessmentLimit
		}
		return AssessmentLimit
	case ResourceSaved:
		if p.SavedPerCategoryLimit > 0 {
			return p.SavedPerCategoryLimit
		}
		return SavedPerCategoryLimit
	default:
		return 0
	}
}

type Decision struct {
	Allowed bool
	Reason  string
	Limit   int
	Count   int64
}

// Check decides whether one more record may be created. Guests (nil or zero owner)
// are never limited. Denied iff existingCount >= limit.
func Check(ownerID *uuid.UUID, category string, existingCount int64, limit int) Decision {
	if ownerID == nil || *ownerID == uuid.Nil {
		return Decision{Allowed: true, Limit: limit, Count: existingCount}
	}
	if existingCount >= int64(limit) {
		return Decision{
			Allowed: false,
			Reason:  fmt.Sprintf("free plan limit reached: you can keep up to %d %s", limit, categoryLabel(category)),
			Limit:   limit,
			Count:   existingCount,
		}
	}
	return Decision{Allowed: true, Limit: limit, Count: existingCount}
}

// Err converts a denial into the caller-visible quota error.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return apierr.QuotaExceeded(d.Reason)
}

func categoryLabel(category string) string {
	switch strings.ToUpper(strings.TrimSpace(category)) {
	case "":
		return "items"
	case "CAREER":
		return "saved careers"
	case "DEGREE":
		return "saved degrees"
	case "ASSESSMENT", "ASSESSMENTS":
		return "assessments"
	default:
		return strings.ToLower(strings.TrimSpace(category))
	}
}
