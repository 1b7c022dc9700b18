// Package scoring computes meeting quality scores across five weighted
// criteria and classifies meeting text for agenda and follow-up signals.
package scoring

import (
	"strings"
)

// Factors are the already-extracted inputs to a meeting score computation.
type Factors struct {
	Title             string
	HasAgenda         bool
	AgendaLength      int
	AgendaTopics      int
	Participants      int
	DurationMinutes   float64
	ActionItems       int
	AttentionPoints   int
	HasAccountability bool
	HasDeadlines      bool
}

// Result holds the five sub-scores, each in [0,20], and their sum.
type Result struct {
	AgendaScore       int `json:"agenda_score"`
	ParticipantsScore int `json:"participants_score"`
	TimingScore       int `json:"timing_score"`
	ActionsScore      int `json:"actions_score"`
	AttentionScore    int `json:"attention_score"`
	TotalScore        int `json:"total_score"`
}

// genericTitleWords is the vocabulary of meeting titles that say nothing
// about content.
var genericTitleWords = []string{
	"meeting",
	"sync",
	"catch up",
	"check in",
	"update",
	"weekly",
	"daily",
	"standup",
}

// CalculateMeetingScore scores a meeting from its extracted factors.
// All inputs are treated as validated; the function is total.
func CalculateMeetingScore(f Factors) Result {
	r := Result{
		AgendaScore:       agendaScore(f),
		ParticipantsScore: participantsScore(f.Participants),
		TimingScore:       timingScore(f.DurationMinutes),
		ActionsScore:      actionsScore(f.ActionItems, f.HasAccountability, f.HasDeadlines),
		AttentionScore:    attentionScore(f.AttentionPoints),
	}
	r.TotalScore = r.AgendaScore + r.ParticipantsScore + r.TimingScore + r.ActionsScore + r.AttentionScore
	return r
}

// isGenericTitle reports whether a title is short boilerplate ("Weekly Sync",
// "Team Meeting") rather than a description of the content.
func isGenericTitle(title string) bool {
	if len(title) >= 30 {
		return false
	}
	lower := strings.ToLower(title)
	for _, word := range genericTitleWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

func agendaScore(f Factors) int {
	if !f.HasAgenda || f.AgendaLength == 0 {
		if isGenericTitle(f.Title) {
			return 0
		}
		// A specific title carries some signal even without an agenda.
		return 5
	}

	var score int
	switch {
	case f.AgendaLength < 50:
		score = 8
	case f.AgendaLength < 150:
		score = 15
	case f.AgendaLength < 300:
		score = 20
	default:
		score = 18 // verbosity penalty
	}

	if f.AgendaTopics > 5 {
		score -= 5 // too many unrelated topics dilutes focus
	}
	if !isGenericTitle(f.Title) && len(f.Title) >= 20 {
		score += 3
	}

	if score < 0 {
		return 0
	}
	if score > 20 {
		return 20
	}
	return score
}

func participantsScore(count int) int {
	switch {
	case count == 0:
		return 0
	case count <= 2:
		return 10
	case count <= 5:
		return 16
	case count <= 10:
		return 20
	case count <= 15:
		return 18
	default:
		return 14
	}
}

func timingScore(minutes float64) int {
	switch {
	case minutes <= 0:
		return 0
	case minutes <= 15:
		return 12
	case minutes <= 30:
		return 18
	case minutes <= 60:
		return 20
	case minutes <= 90:
		return 14
	case minutes <= 120:
		return 8
	default:
		return 5
	}
}

func actionsScore(count int, hasAccountability, hasDeadlines bool) int {
	var score int
	switch {
	case count == 0:
		score = 5
	case count <= 2:
		score = 12
	case count <= 5:
		score = 18
	case count <= 10:
		score = 20
	default:
		score = 16
	}

	if count > 0 && hasAccountability {
		score += 3
	}
	if count > 0 && hasDeadlines {
		score += 2
	}

	if score > 20 {
		return 20
	}
	return score
}

func attentionScore(count int) int {
	switch {
	case count == 0:
		return 8
	case count <= 2:
		return 14
	case count <= 5:
		return 20
	case count <= 8:
		return 18
	default:
		return 16
	}
}
