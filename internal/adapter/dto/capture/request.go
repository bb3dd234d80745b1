package capture

// StartCaptureRequest represents the request to capture a live meeting
type StartCaptureRequest struct {
	MeetURL     string `json:"meet_url" validate:"required,url,max=2048"`
	Title       string `json:"title" validate:"max=200"`
	MeetingType string `json:"meeting_type" validate:"max=100"`
}

// PushCaptionsRequest carries the captions currently visible in the call
type PushCaptionsRequest struct {
	Captions []string `json:"captions" validate:"max=500,dive,max=2000"`
}
