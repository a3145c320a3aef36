package notify

import "github.com/careerpath/careerpath-backend/internal/domain"

type Kind string

const (
	KindSystem    Kind = "system"
	KindMilestone Kind = "milestone"
	KindAction    Kind = "action"
)

type Template struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Kind    Kind   `json:"type"`
}

var (
	OnboardingWelcome = Template{
		ID:      "onboarding_welcome",
		Title:   "Welcome to CareerPath",
		Message: "Congrats on your new account! Start your first assessment to get insights.",
		Kind:    KindSystem,
	}
	MilestoneFirstQuiz = Template{
		ID:      "milestone_first_quiz",
		Title:   "Milestone Unlocked",
		Message: "You have completed your first assessment. Your dashboard is now active.",
		Kind:    KindMilestone,
	}
	ActionSaveCareer = Template{
		ID:      "action_save_career",
		Title:   "Resource Saved",
		Message: "Career path saved successfully to your bookmarks.",
		Kind:    KindAction,
	}
	ActionSaveDegree = Template{
		ID:      "action_save_degree",
		Title:   "Resource Saved",
		Message: "Degree program saved successfully.",
		Kind:    KindAction,
	}
)

var templates = map[string]Template{
	OnboardingWelcome.ID:  OnboardingWelcome,
	MilestoneFirstQuiz.ID: MilestoneFirstQuiz,
	ActionSaveCareer.ID:   ActionSaveCareer,
	ActionSaveDegree.ID:   ActionSaveDegree,
}

func TemplateByID(id string) (Template, bool) {
	t, ok := templates[id]
	return t, ok
}

// SaveTemplateFor picks the action notification for a successful save.
func SaveTemplateFor(t domain.RecommendationType) Template {
	if t == domain.RecommendationDegree {
		return ActionSaveDegree
	}
	return ActionSaveCareer
}
