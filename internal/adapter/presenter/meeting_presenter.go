package presenter

import (
	"github.com/johnquangdev/meeting-notes/internal/adapter/dto/common"
	"github.com/johnquangdev/meeting-notes/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

// ToSummaryResponse converts a SummaryRecord to its DTO. Sequences are never nil.
func ToSummaryResponse(rec entities.SummaryRecord) meeting.SummaryResponse {
	rec.Normalize()

	items := make([]meeting.ActionItemResponse, len(rec.ActionItems))
	for i, a := range rec.ActionItems {
		items[i] = meeting.ActionItemResponse{Task: a.Task, Owner: a.Owner, DueDate: a.DueDate}
	}
	agenda := make([]meeting.AgendaItemResponse, len(rec.Agenda))
	for i, a := range rec.Agenda {
		agenda[i] = meeting.AgendaItemResponse{Topic: a.Topic, Summary: a.Summary}
	}

	return meeting.SummaryResponse{
		Summary:     rec.Summary,
		KeyPoints:   rec.KeyPoints,
		Decisions:   rec.Decisions,
		ActionItems: items,
		Agenda:      agenda,
	}
}

// ToMeetingResponse converts a Meeting entity to MeetingResponse DTO
func ToMeetingResponse(m *entities.Meeting) *meeting.MeetingResponse {
	if m == nil {
		return nil
	}
	return &meeting.MeetingResponse{
		ID:          m.ID.String(),
		Title:       m.Title,
		MeetingType: m.MeetingType,
		Source:      string(m.Source),
		Transcript:  m.Transcript,
		HasUpload:   m.FileObject != nil,
		Summary:     ToSummaryResponse(m.SummaryRecord()),
		Provider:    m.Provider,
		Fallback:    m.Fallback,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ToMeetingListResponse converts a page of meetings to MeetingListResponse
func ToMeetingListResponse(meetings []*entities.Meeting, total int64, page, pageSize int) *meeting.MeetingListResponse {
	items := make([]*meeting.MeetingListItem, len(meetings))
	for i, m := range meetings {
		items[i] = &meeting.MeetingListItem{
			ID:          m.ID.String(),
			Title:       m.Title,
			MeetingType: m.MeetingType,
			Source:      string(m.Source),
			Summary:     m.SummaryRecord().Summary,
			CreatedAt:   m.CreatedAt,
		}
	}

	return &meeting.MeetingListResponse{
		Meetings:   items,
		Pagination: common.NewPagination(page, pageSize, total),
	}
}
