package meeting

// CreateMeetingRequest represents a JSON or multipart create request.
// Multipart requests may also carry a "file" part.
type CreateMeetingRequest struct {
	Title       string `json:"title" form:"title" validate:"max=200"`
	MeetingType string `json:"meeting_type" form:"meeting_type" validate:"max=100"`
	Transcript  string `json:"transcript" form:"transcript"`
}

// ListMeetingsRequest represents query parameters for listing meetings
type ListMeetingsRequest struct {
	MeetingType string `query:"meeting_type" validate:"max=100"`
	Source      string `query:"source" validate:"omitempty,oneof=text upload live"`
	Search      string `query:"search" validate:"max=200"`
	Page        int    `query:"page" validate:"min=1"`
	PageSize    int    `query:"page_size" validate:"min=1,max=100"`
}
