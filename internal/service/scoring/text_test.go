package scoring

import "testing"

func TestAnalyzeDescription(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantAgenda bool
		wantTopics int
	}{
		{
			name:       "empty",
			input:      "",
			wantAgenda: false,
		},
		{
			name:       "agenda keyword",
			input:      "Agenda: review the rollout plan",
			wantAgenda: true,
		},
		{
			name:       "bullet topics",
			input:      "- rollout plan\n- incident review\n* open floor",
			wantAgenda: true,
			wantTopics: 3,
		},
		{
			name:       "numbered topics",
			input:      "1. budget\n2) staffing",
			wantAgenda: true,
			wantTopics: 2,
		},
		{
			name:       "multi-line prose counts as structure",
			input:      "We need to discuss hiring.\nBudget is tight.\nBring your numbers.",
			wantAgenda: true,
		},
		{
			name:       "short prose is not an agenda",
			input:      "quick chat",
			wantAgenda: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnalyzeDescription(tt.input)
			if got.HasAgenda != tt.wantAgenda {
				t.Errorf("HasAgenda = %v, want %v", got.HasAgenda, tt.wantAgenda)
			}
			if got.Topics != tt.wantTopics {
				t.Errorf("Topics = %d, want %d", got.Topics, tt.wantTopics)
			}
			if got.Length != len(tt.input) {
				t.Errorf("Length = %d, want %d", got.Length, len(tt.input))
			}
		})
	}
}

func TestAnalyzeNotes(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		got := AnalyzeNotes("")
		if got != (NotesSignal{}) {
			t.Errorf("AnalyzeNotes(\"\") = %+v, want zero signal", got)
		}
	})

	t.Run("action items counted per occurrence", func(t *testing.T) {
		got := AnalyzeNotes("Action: ship the fix. TODO: write the runbook.")
		if got.ActionItems != 2 {
			t.Errorf("ActionItems = %d, want 2", got.ActionItems)
		}
	})

	t.Run("attention points", func(t *testing.T) {
		got := AnalyzeNotes("Important: the blocker on storage is critical.")
		if got.AttentionPoints != 3 {
			t.Errorf("AttentionPoints = %d, want 3", got.AttentionPoints)
		}
	})

	t.Run("accountability markers", func(t *testing.T) {
		for _, notes := range []string{
			"Task assigned to Priya",
			"Sam is the owner of the migration",
			"DRI: someone from infra",
			"Who will follow up with legal?",
		} {
			if got := AnalyzeNotes(notes); !got.HasAccountability {
				t.Errorf("HasAccountability = false for %q", notes)
			}
		}
	})

	t.Run("deadline keywords and dates", func(t *testing.T) {
		for _, notes := range []string{
			"Deadline is Friday",
			"due by next sprint",
			"ship it by EOD",
			"launch on 12/31",
			"freeze starts 2026-09-15",
			"review on Sep 3",
		} {
			if got := AnalyzeNotes(notes); !got.HasDeadlines {
				t.Errorf("HasDeadlines = false for %q", notes)
			}
		}
	})

	t.Run("plain prose has no markers", func(t *testing.T) {
		got := AnalyzeNotes("We talked about the weather for an hour.")
		if got.HasAccountability || got.HasDeadlines {
			t.Errorf("unexpected markers: %+v", got)
		}
	})
}
