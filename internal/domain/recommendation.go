package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RecommendationType string

const (
	RecommendationCareer RecommendationType = "CAREER"
	RecommendationDegree RecommendationType = "DEGREE"
)

// ParseRecommendationType accepts any casing and surrounding whitespace.
func ParseRecommendationType(s string) (RecommendationType, error) {
	switch t := RecommendationType(strings.ToUpper(strings.TrimSpace(s))); t {
	case RecommendationCareer, RecommendationDegree:
		return t, nil
	default:
		return "", fmt.Errorf("unknown recommendation type %q", s)
	}
}

type Difficulty string

const (
	DifficultyEasy     Difficulty = "Easy"
	DifficultyModerate Difficulty = "Moderate"
	DifficultyHard     Difficulty = "Hard"
)

func (d Difficulty) Valid() bool {
	return d == DifficultyEasy || d == DifficultyModerate || d == DifficultyHard
}

type Demand string

const (
	DemandLow    Demand = "Low"
	DemandMedium Demand = "Medium"
	DemandHigh   Demand = "High"
)

func (d Demand) Valid() bool {
	return d == DemandLow || d == DemandMedium || d == DemandHigh
}

const (
	MinMatchScore = 0
	MaxMatchScore = 100
)

type Recommendation struct {
	ID           uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	AssessmentID uuid.UUID                   `gorm:"type:uuid;index;not null;column:assessment_id" json:"assessment_id"`
	Position     int                         `gorm:"not null;default:0;column:position" json:"position"`
	Type         RecommendationType          `gorm:"type:varchar(16);not null;column:type" json:"type"`
	Title        string                      `gorm:"not null;column:title" json:"title"`
	MatchScore   int                         `gorm:"not null;column:match_score" json:"match_score"`
	MatchReason  string                      `gorm:"type:text;column:match_reason" json:"match_reason"`
	Overview     string                      `gorm:"type:text;column:overview" json:"overview"`
	Skills       datatypes.JSONSlice[string] `gorm:"column:skills" json:"skills"`
	Difficulty   Difficulty                  `gorm:"type:varchar(16);column:difficulty" json:"difficulty"`
	FutureScope  Demand                      `gorm:"type:varchar(16);column:future_scope" json:"future_scope"`
	CreatedAt    time.Time                   `gorm:"not null" json:"created_at"`
}

func (Recommendation) TableName() string { return "recommendation" }

func (r *Recommendation) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return r.Validate()
}

func (r *Recommendation) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("recommendation title is required")
	}
	if _, err := ParseRecommendationType(string(r.Type)); err != nil {
		return err
	}
	if r.MatchScore < MinMatchScore || r.MatchScore > MaxMatchScore {
		return fmt.Errorf("match score %d outside [%d,%d]", r.MatchScore, MinMatchScore, MaxMatchScore)
	}
	if r.Difficulty != "" && !r.Difficulty.Valid() {
		return fmt.Errorf("unknown difficulty %q", r.Difficulty)
	}
	if r.FutureScope != "" && !r.FutureScope.Valid() {
		return fmt.Errorf("unknown demand %q", r.FutureScope)
	}
	return nil
}
