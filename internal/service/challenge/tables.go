package challenge

import (
	"github.com/andreav/meeting-pulse/internal/models"
)

// Goal is the static definition of a challenge for one criterion.
type Goal struct {
	Description string
	Tip         string
	Icon        string
}

// Award is the static achievement granted for completing a criterion's challenge.
type Award struct {
	Title       string
	Description string
	Icon        string
}

// goalCatalog maps each score criterion to its challenge wording. Static
// lookup data, keyed by criterion.
var goalCatalog = map[string]Goal{
	models.CriteriaAgenda: {
		Description: "Add detailed agendas to 80% of your meetings",
		Tip:         "Include clear objectives and discussion points before meetings",
		Icon:        "FileText",
	},
	models.CriteriaParticipants: {
		Description: "Keep 80% of meetings to 3-10 participants",
		Tip:         "Small, focused meetings are more effective",
		Icon:        "Users",
	},
	models.CriteriaTiming: {
		Description: "Schedule 80% of meetings between 30-45 minutes",
		Tip:         "The sweet spot for productive discussions",
		Icon:        "Clock",
	},
	models.CriteriaActions: {
		Description: "Document action items in 80% of meeting notes",
		Tip:         "Turn discussions into accountable next steps",
		Icon:        "CheckSquare",
	},
	models.CriteriaAttention: {
		Description: "Highlight key points in 80% of meeting notes",
		Tip:         "Make important decisions easy to find",
		Icon:        "Star",
	},
}

// awardCatalog maps each criterion to its completion achievement.
var awardCatalog = map[string]Award{
	models.CriteriaAgenda: {
		Title:       "Agenda Master",
		Description: "Completed the agenda challenge!",
		Icon:        "Trophy",
	},
	models.CriteriaParticipants: {
		Title:       "Team Size Pro",
		Description: "Mastered the ideal meeting size!",
		Icon:        "Award",
	},
	models.CriteriaTiming: {
		Title:       "Time Optimizer",
		Description: "Optimized your meeting durations!",
		Icon:        "Medal",
	},
	models.CriteriaActions: {
		Title:       "Action Hero",
		Description: "Champion of actionable outcomes!",
		Icon:        "Zap",
	},
	models.CriteriaAttention: {
		Title:       "Highlight Champion",
		Description: "Expert at capturing key points!",
		Icon:        "Sparkles",
	},
}

// awardFor returns the achievement definition for a criterion, with a generic
// fallback for unknown names.
func awardFor(criteria string) Award {
	if award, ok := awardCatalog[criteria]; ok {
		return award
	}
	return Award{
		Title:       "Challenge Complete",
		Description: "Completed a weekly challenge!",
		Icon:        "Trophy",
	}
}
