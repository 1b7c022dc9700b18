package scoring

import (
	"regexp"
	"strings"
)

// AgendaSignal classifies a meeting description.
type AgendaSignal struct {
	HasAgenda bool
	Length    int
	Topics    int
}

// NotesSignal classifies meeting notes text.
type NotesSignal struct {
	ActionItems       int
	AttentionPoints   int
	HasAccountability bool
	HasDeadlines      bool
}

var agendaKeywords = []string{"agenda", "topics", "discussion points", "objectives", "goals"}

var actionKeywords = []string{"action", "todo", "task", "follow up", "next steps", "assigned to"}

var attentionKeywords = []string{"important", "note", "attention", "critical", "key point", "decision", "blocker"}

var accountabilityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`assigned to`),
	regexp.MustCompile(`\bowner\b`),
	regexp.MustCompile(`\bresponsible\b`),
	regexp.MustCompile(`\bdri\b`),
	regexp.MustCompile(`who will`),
}

var deadlineKeywords = []string{"deadline", "due date", "due by", "by end of", "eod", "eow"}

// datePatterns match common date notations in notes: 12/31, 12/31/2025,
// 2025-12-31, and "Dec 31" style month names.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{1,2}/\d{1,2}(/\d{2,4})?\b`),
	regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
	regexp.MustCompile(`\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{1,2}\b`),
}

var (
	bulletLine   = regexp.MustCompile(`(?m)^\s*[-•*]\s`)
	numberedLine = regexp.MustCompile(`(?m)^\s*\d+[.)]\s`)
)

// AnalyzeDescription classifies free-text meeting descriptions for agenda
// content. Deterministic: the same input always yields the same signal.
func AnalyzeDescription(description string) AgendaSignal {
	if description == "" {
		return AgendaSignal{}
	}

	lower := strings.ToLower(description)
	hasKeyword := false
	for _, keyword := range agendaKeywords {
		if strings.Contains(lower, keyword) {
			hasKeyword = true
			break
		}
	}

	var nonEmptyLines int
	for _, line := range strings.Split(description, "\n") {
		if strings.TrimSpace(line) != "" {
			nonEmptyLines++
		}
	}

	topics := len(bulletLine.FindAllString(description, -1)) +
		len(numberedLine.FindAllString(description, -1))

	hasAgenda := hasKeyword || topics > 0 || nonEmptyLines >= 3

	return AgendaSignal{
		HasAgenda: hasAgenda,
		Length:    len(description),
		Topics:    topics,
	}
}

// AnalyzeNotes counts action-item and attention-point signals in meeting
// notes and detects accountability and deadline markers.
func AnalyzeNotes(notes string) NotesSignal {
	if notes == "" {
		return NotesSignal{}
	}

	lower := strings.ToLower(notes)

	signal := NotesSignal{}
	for _, keyword := range actionKeywords {
		signal.ActionItems += strings.Count(lower, keyword)
	}
	for _, keyword := range attentionKeywords {
		signal.AttentionPoints += strings.Count(lower, keyword)
	}

	for _, pattern := range accountabilityPatterns {
		if pattern.MatchString(lower) {
			signal.HasAccountability = true
			break
		}
	}

	for _, keyword := range deadlineKeywords {
		if strings.Contains(lower, keyword) {
			signal.HasDeadlines = true
			break
		}
	}
	if !signal.HasDeadlines {
		for _, pattern := range datePatterns {
			if pattern.MatchString(lower) {
				signal.HasDeadlines = true
				break
			}
		}
	}

	return signal
}
