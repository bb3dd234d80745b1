package entities

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_EmptyRecordHasAllFields(t *testing.T) {
	var rec SummaryRecord
	rec.Normalize()

	b, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"summary":"","key_points":[],"decisions":[],"action_items":[],"agenda":[]}`, string(b))
}

func TestNormalize_DefaultsActionItems(t *testing.T) {
	rec := SummaryRecord{
		ActionItems: []ActionItem{
			{Task: "Send notes"},
			{Task: "  Book room ", Owner: "Sarah", DueDate: "Friday"},
			{Task: "   ", Owner: "Nobody"},
		},
	}
	rec.Normalize()

	require.Len(t, rec.ActionItems, 3)
	assert.Equal(t, ActionItem{Task: "Send notes", Owner: DefaultOwner, DueDate: DefaultDueDate}, rec.ActionItems[0])
	assert.Equal(t, ActionItem{Task: "Book room", Owner: "Sarah", DueDate: "Friday"}, rec.ActionItems[1])
	assert.Equal(t, ActionItem{Task: "", Owner: "Nobody", DueDate: DefaultDueDate}, rec.ActionItems[2])
}

func TestNormalize_DropsBlankEntries(t *testing.T) {
	rec := SummaryRecord{
		Summary:   "  ok ",
		KeyPoints: []string{"a", " ", ""},
		Decisions: []string{" b "},
	}
	rec.Normalize()

	assert.Equal(t, "ok", rec.Summary)
	assert.Equal(t, []string{"a"}, rec.KeyPoints)
	assert.Equal(t, []string{"b"}, rec.Decisions)
}

func TestNormalize_KeepsItemsWithoutTaskOrTopic(t *testing.T) {
	var rec SummaryRecord
	require.NoError(t, json.Unmarshal([]byte(`{
		"summary": "x",
		"action_items": [{"owner": "Bob", "due_date": "Fri"}, {}],
		"agenda": [{"topic": " Budget "}, {}, {"summary": "loose notes"}]
	}`), &rec))
	rec.Normalize()

	assert.Equal(t, []ActionItem{
		{Task: "", Owner: "Bob", DueDate: "Fri"},
		{Task: "", Owner: DefaultOwner, DueDate: DefaultDueDate},
	}, rec.ActionItems)
	assert.Equal(t, []AgendaItem{{Topic: "Budget"}, {}, {Summary: "loose notes"}}, rec.Agenda)
}

func TestNormalize_Idempotent(t *testing.T) {
	rec := SummaryRecord{
		Summary:     "x",
		KeyPoints:   []string{"k"},
		ActionItems: []ActionItem{{Task: "t"}},
	}
	rec.Normalize()
	once := rec
	rec.Normalize()
	assert.Equal(t, once, rec)
}

func TestNoTranscriptSummary(t *testing.T) {
	rec := NoTranscriptSummary()

	assert.Equal(t, "No transcript provided.", rec.Summary)
	assert.Empty(t, rec.KeyPoints)
	assert.NotNil(t, rec.KeyPoints)
	assert.NotNil(t, rec.Decisions)
	assert.NotNil(t, rec.ActionItems)
	assert.NotNil(t, rec.Agenda)
}

func TestKindOf(t *testing.T) {
	base := fmt.Errorf("boom")
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"backend", &BackendCallError{Provider: "openai", Err: base}, KindBackendCall},
		{"parse", &ResponseParseError{Reason: ParseReasonMalformed, Err: base}, KindResponseParse},
		{"poll wrapped", fmt.Errorf("ctx: %w", &SourcePollError{Poll: 3, Err: base}), KindSourcePoll},
		{"transcode", &TranscodeError{Input: "a.mp4", Err: base}, KindTranscode},
		{"plain", base, ""},
		{"nil", nil, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, KindOf(tc.err))
		})
	}
}

func TestMeetingSetSummary(t *testing.T) {
	m := NewMeeting("", "", MeetingSourceText)
	assert.Equal(t, DefaultMeetingTitle, m.Title)
	assert.Equal(t, DefaultMeetingType, m.MeetingType)
	assert.Equal(t, NoTranscriptMessage, m.SummaryRecord().Summary)

	m.SetSummary(SummaryRecord{Summary: "done", ActionItems: []ActionItem{{Task: "ship"}}})
	got := m.SummaryRecord()
	assert.Equal(t, "done", got.Summary)
	assert.Equal(t, DefaultOwner, got.ActionItems[0].Owner)
	assert.NotNil(t, got.Agenda)
}
