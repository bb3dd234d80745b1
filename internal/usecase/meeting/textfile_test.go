package meeting

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

func TestDecodeText(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"plain utf-8", []byte("  hello world \n"), "hello world"},
		{"utf-8 bom", []byte("\xEF\xBB\xBFhello"), "hello"},
		{"utf-16le bom", []byte{0xFF, 0xFE, 'h', 0, 'i', 0}, "hi"},
		{"utf-16be bom", []byte{0xFE, 0xFF, 0, 'h', 0, 'i'}, "hi"},
		{"windows-1252", []byte("caf\xe9 cr\xe8me"), "café crème"},
		{"nfc", []byte("cafe\u0301"), "caf\u00e9"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeTranscript(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "team_notes.txt", sanitizeFilename("../team notes.txt"))
	assert.Equal(t, "call.mp3", sanitizeFilename(`C:\Users\me\call.mp3`))
	assert.Equal(t, "upload", sanitizeFilename("..."))
	assert.Equal(t, "rsum.md", sanitizeFilename("résumé.md"))
}

func TestIsTextFile(t *testing.T) {
	assert.True(t, IsTranscriptFile("notes.TXT"))
	assert.True(t, IsTranscriptFile("captions.vtt"))
	assert.False(t, IsTranscriptFile("call.mp3"))
	assert.False(t, IsTranscriptFile("README"))
}

func sampleMeeting() *entities.Meeting {
	m := entities.NewMeeting("Q3 Planning", "Planning", entities.MeetingSourceText)
	m.ID = uuid.MustParse("12345678-9abc-def0-1234-56789abcdef0")
	m.CreatedAt = time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)
	m.SetSummary(entities.SummaryRecord{
		Summary:     "Roadmap agreed.",
		KeyPoints:   []string{"Hiring is on track"},
		Decisions:   []string{"Ship v2 in August"},
		ActionItems: []entities.ActionItem{{Task: "Draft launch plan"}, {Task: "Book venue", Owner: "Dana", DueDate: "Friday"}},
		Agenda:      []entities.AgendaItem{{Topic: "Roadmap", Summary: "Reviewed milestones"}},
	})
	return m
}

func TestRenderText(t *testing.T) {
	out := RenderText(sampleMeeting())

	want := []string{
		"Meeting Summary: Q3 Planning\n",
		"Type: Planning\n",
		"Date: 2024-03-05 14:30:00\n",
		strings.Repeat("=", 50) + "\n\n",
		"SUMMARY:\nRoadmap agreed.\n\n",
		"KEY POINTS:\n1. Hiring is on track\n\n",
		"DECISIONS:\n1. Ship v2 in August\n\n",
		"ACTION ITEMS:\n1. Draft launch plan | Owner: Unassigned | Due: No due date\n2. Book venue | Owner: Dana | Due: Friday\n\n",
		"AGENDA BREAKDOWN:\n1. Roadmap: Reviewed milestones\n",
	}
	for _, w := range want {
		assert.Contains(t, out, w)
	}
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "Q3_Planning_12345678.txt", exportFilename(sampleMeeting(), FormatText))
}

func TestRenderDocx(t *testing.T) {
	data, err := RenderDocx(sampleMeeting())

	require.NoError(t, err)
	require.Greater(t, len(data), 4)
	assert.Equal(t, "PK", string(data[:2]))
}

func TestRenderPDF(t *testing.T) {
	data, err := RenderPDF(sampleMeeting())

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF-"))
	assert.Contains(t, string(data), "%%EOF")
}

func TestRenderPDF_EmptySummary(t *testing.T) {
	m := sampleMeeting()
	m.SetSummary(entities.NoTranscriptSummary())

	data, err := RenderPDF(m)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF-"))
}
