package summary

import (
	"fmt"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

// Mock returns the deterministic record used when no backend is configured
// or when a backend call fails. Only the meeting type is read.
func Mock(meetingType string) entities.SummaryRecord {
	rec := entities.SummaryRecord{
		Summary: fmt.Sprintf("This was a %s discussing various topics from the transcript.", meetingType),
		KeyPoints: []string{
			"Project timeline was discussed",
			"Budget constraints were highlighted",
			"Team assignments were made",
		},
		Decisions: []string{
			"Approved the Q2 roadmap",
			"Decided to hire two new developers",
		},
		ActionItems: []entities.ActionItem{
			{Task: "Prepare project proposal", Owner: "John Doe", DueDate: "2024-12-15"},
			{Task: "Schedule client meeting", Owner: "Jane Smith", DueDate: "2024-12-10"},
		},
		Agenda: []entities.AgendaItem{
			{Topic: "Project Update", Summary: "Discussed current project status and blockers"},
			{Topic: "Budget Review", Summary: "Reviewed Q3 budget and allocations"},
		},
	}
	rec.Normalize()
	return rec
}
