package presenter

import (
	"github.com/johnquangdev/meeting-notes/internal/adapter/dto/capture"
	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

// ToCaptureResponse converts a CaptureJob entity to CaptureResponse DTO
func ToCaptureResponse(j *entities.CaptureJob) *capture.CaptureResponse {
	if j == nil {
		return nil
	}

	response := &capture.CaptureResponse{
		ID:            j.ID.String(),
		MeetURL:       j.MeetURL,
		Title:         j.Title,
		MeetingType:   j.MeetingType,
		Status:        string(j.Status),
		FragmentCount: j.FragmentCount,
		LastError:     j.LastError,
		StartedAt:     j.StartedAt,
		CompletedAt:   j.CompletedAt,
		CreatedAt:     j.CreatedAt,
	}
	if j.MeetingID != nil {
		id := j.MeetingID.String()
		response.MeetingID = &id
	}
	return response
}
