package handler

import (
	stdErrors "errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-notes/errors"
	"github.com/johnquangdev/meeting-notes/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-notes/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/internal/domain/repositories"
	meetingUsecase "github.com/johnquangdev/meeting-notes/internal/usecase/meeting"
)

// Meeting handles meeting-related HTTP requests
type Meeting struct {
	service meetingUsecase.Service
	logger  *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(service meetingUsecase.Service, logger *zap.Logger) *Meeting {
	return &Meeting{
		service: service,
		logger:  logger,
	}
}

// parseID reads the :id path parameter
func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidArgument("id must be a valid UUID")
	}
	return id, nil
}

// CreateMeeting handles POST /v1/meetings
// @Summary      Create a meeting
// @Description  Stores a meeting from a pasted transcript and/or an uploaded file and summarizes it
// @Tags         Meetings
// @Accept       json,mpfd
// @Produce      json
// @Security     ApiKeyAuth
// @Param        request  body      meeting.CreateMeetingRequest  false  "Meeting fields (JSON)"
// @Param        file     formData  file                          false  "Transcript (.txt .md .vtt .srt) or audio/video file"
// @Success      201      {object}  meeting.MeetingResponse
// @Failure      400      {object}  map[string]interface{}  "Invalid request"
// @Failure      422      {object}  map[string]interface{}  "Transcription not configured"
// @Failure      500      {object}  map[string]interface{}  "Failed to create meeting"
// @Router       /meetings [post]
func (h *Meeting) CreateMeeting(c echo.Context) error {
	var req meeting.CreateMeetingRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	input := meetingUsecase.CreateInput{
		Title:       req.Title,
		MeetingType: req.MeetingType,
		Transcript:  req.Transcript,
	}

	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		fh, err := c.FormFile("file")
		switch {
		case err == nil && fh.Filename != "":
			file, err := fh.Open()
			if err != nil {
				return HandleError(h.logger, c, errors.ErrInvalidPayload())
			}
			defer file.Close()
			input.Upload = uploadFrom(fh, file)
		case err != nil && !stdErrors.Is(err, http.ErrMissingFile):
			return HandleError(h.logger, c, errors.ErrInvalidPayload())
		}
	}

	m, err := h.service.Create(c.Request().Context(), input)
	if err != nil {
		mapped := mapDomainError(err, "")
		var appErr errors.AppError
		if !stdErrors.As(mapped, &appErr) {
			mapped = errors.ErrMeetingCreateFailed(err)
		}
		return HandleError(h.logger, c, mapped)
	}

	return HandleCreated(h.logger, c, presenter.ToMeetingResponse(m))
}

func uploadFrom(fh *multipart.FileHeader, file multipart.File) *meetingUsecase.Upload {
	return &meetingUsecase.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Body:        file,
	}
}

// ListMeetings handles GET /v1/meetings
// @Summary      List meetings
// @Description  Lists stored meetings, newest first
// @Tags         Meetings
// @Produce      json
// @Security     ApiKeyAuth
// @Param        meeting_type  query     string  false  "Filter by meeting type"
// @Param        source        query     string  false  "Filter by source (text, upload, live)"
// @Param        search        query     string  false  "Search title and transcript"
// @Param        page          query     int     false  "Page number"       default(1)
// @Param        page_size     query     int     false  "Items per page"    default(20)
// @Success      200           {object}  meeting.MeetingListResponse
// @Failure      400           {object}  map[string]interface{}  "Invalid query"
// @Router       /meetings [get]
func (h *Meeting) ListMeetings(c echo.Context) error {
	req := meeting.ListMeetingsRequest{Page: 1, PageSize: 20}
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid query parameters"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	filters := repositories.MeetingFilters{
		MeetingType: strings.TrimSpace(req.MeetingType),
		Source:      entities.MeetingSource(req.Source),
		Search:      strings.TrimSpace(req.Search),
		Limit:       req.PageSize,
		Offset:      (req.Page - 1) * req.PageSize,
	}

	meetings, total, err := h.service.List(c.Request().Context(), filters)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrDBQueryFailed("list meetings", err))
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingListResponse(meetings, total, req.Page, req.PageSize))
}

// GetMeeting handles GET /v1/meetings/:id
// @Summary      Get a meeting
// @Tags         Meetings
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  meeting.MeetingResponse
// @Failure      400  {object}  map[string]interface{}  "Invalid meeting ID"
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Router       /meetings/{id} [get]
func (h *Meeting) GetMeeting(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	m, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, mapDomainError(err, id.String()))
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(m))
}

// DeleteMeeting handles DELETE /v1/meetings/:id
// @Summary      Delete a meeting
// @Description  Deletes a meeting and its stored upload
// @Tags         Meetings
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Router       /meetings/{id} [delete]
func (h *Meeting) DeleteMeeting(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, mapDomainError(err, id.String()))
	}

	return HandleSuccess(h.logger, c, map[string]string{"id": id.String()})
}

// DownloadMeeting handles GET /v1/meetings/:id/download/:format
// @Summary      Download a meeting summary
// @Description  Exports the summary as plain text (txt), a Word document (docx) or a PDF (pdf)
// @Tags         Meetings
// @Produce      plain,octet-stream
// @Security     ApiKeyAuth
// @Param        id      path      string  true  "Meeting ID (UUID)"
// @Param        format  path      string  true  "Export format"  Enums(txt, docx, pdf)
// @Success      200     {file}    file
// @Failure      400     {object}  map[string]interface{}  "Unsupported format"
// @Failure      404     {object}  map[string]interface{}  "Meeting not found"
// @Router       /meetings/{id}/download/{format} [get]
func (h *Meeting) DownloadMeeting(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	format := c.Param("format")

	file, err := h.service.Export(c.Request().Context(), id, format)
	if err != nil {
		if stdErrors.Is(err, entities.ErrUnsupportedFormat) {
			return HandleError(h.logger, c, errors.ErrExportInvalidFormat(format))
		}
		mapped := mapDomainError(err, id.String())
		var appErr errors.AppError
		if !stdErrors.As(mapped, &appErr) {
			mapped = errors.ErrExportFailed(format, err)
		}
		return HandleError(h.logger, c, mapped)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Name))
	return c.Blob(http.StatusOK, file.ContentType, file.Data)
}

// DownloadUpload handles GET /v1/meetings/:id/file
// @Summary      Download the uploaded source file
// @Tags         Meetings
// @Produce      octet-stream
// @Security     ApiKeyAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {file}    file
// @Failure      404  {object}  map[string]interface{}  "Meeting or upload not found"
// @Router       /meetings/{id}/file [get]
func (h *Meeting) DownloadUpload(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	rc, name, err := h.service.OpenUpload(c.Request().Context(), id)
	if err != nil {
		mapped := mapDomainError(err, id.String())
		var appErr errors.AppError
		if !stdErrors.As(mapped, &appErr) {
			mapped = errors.ErrStorageFailed("get upload", err)
		}
		return HandleError(h.logger, c, mapped)
	}
	defer rc.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Stream(http.StatusOK, echo.MIMEOctetStream, rc)
}
