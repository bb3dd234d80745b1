package errors

import "strconv"

// ErrorCode is the application error code returned in the response envelope
type ErrorCode int32

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL          ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 1001
	ErrorCode_NOT_FOUND         ErrorCode = 1002
	ErrorCode_UNAUTHENTICATED   ErrorCode = 1003
	ErrorCode_PERMISSION_DENIED ErrorCode = 1004
	ErrorCode_INVALID_PAYLOAD   ErrorCode = 1005
	ErrorCode_PAYLOAD_TOO_LARGE ErrorCode = 1006

	// Meetings
	ErrorCode_MEETING_NOT_FOUND     ErrorCode = 2000
	ErrorCode_MEETING_CREATE_FAILED ErrorCode = 2001
	ErrorCode_EXPORT_INVALID_FORMAT ErrorCode = 2002
	ErrorCode_EXPORT_FAILED         ErrorCode = 2003
	ErrorCode_UPLOAD_NOT_FOUND      ErrorCode = 2004
	ErrorCode_TRANSCRIBER_MISSING   ErrorCode = 2005
	ErrorCode_TRANSCRIPTION_FAILED  ErrorCode = 2006

	// Live capture
	ErrorCode_CAPTURE_NOT_FOUND         ErrorCode = 3000
	ErrorCode_CAPTURE_NOT_ACTIVE        ErrorCode = 3001
	ErrorCode_CAPTURE_DISABLED          ErrorCode = 3002
	ErrorCode_CAPTION_SIGNATURE_INVALID ErrorCode = 3003

	// Integrations
	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = 4000
	ErrorCode_INTEGRATION_CACHE_FAILED   ErrorCode = 4001
	ErrorCode_DB_QUERY_FAILED            ErrorCode = 4002
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                    "HTTP_OK",
	ErrorCode_INTERNAL:                   "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:           "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                  "NOT_FOUND",
	ErrorCode_UNAUTHENTICATED:            "UNAUTHENTICATED",
	ErrorCode_PERMISSION_DENIED:          "PERMISSION_DENIED",
	ErrorCode_INVALID_PAYLOAD:            "INVALID_PAYLOAD",
	ErrorCode_PAYLOAD_TOO_LARGE:          "PAYLOAD_TOO_LARGE",
	ErrorCode_MEETING_NOT_FOUND:          "MEETING_NOT_FOUND",
	ErrorCode_MEETING_CREATE_FAILED:      "MEETING_CREATE_FAILED",
	ErrorCode_EXPORT_INVALID_FORMAT:      "EXPORT_INVALID_FORMAT",
	ErrorCode_EXPORT_FAILED:              "EXPORT_FAILED",
	ErrorCode_UPLOAD_NOT_FOUND:           "UPLOAD_NOT_FOUND",
	ErrorCode_TRANSCRIBER_MISSING:        "TRANSCRIBER_MISSING",
	ErrorCode_TRANSCRIPTION_FAILED:       "TRANSCRIPTION_FAILED",
	ErrorCode_CAPTURE_NOT_FOUND:          "CAPTURE_NOT_FOUND",
	ErrorCode_CAPTURE_NOT_ACTIVE:         "CAPTURE_NOT_ACTIVE",
	ErrorCode_CAPTURE_DISABLED:           "CAPTURE_DISABLED",
	ErrorCode_CAPTION_SIGNATURE_INVALID:  "CAPTION_SIGNATURE_INVALID",
	ErrorCode_INTEGRATION_STORAGE_FAILED: "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:   "INTEGRATION_CACHE_FAILED",
	ErrorCode_DB_QUERY_FAILED:            "DB_QUERY_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "ErrorCode(" + strconv.Itoa(int(c)) + ")"
}
