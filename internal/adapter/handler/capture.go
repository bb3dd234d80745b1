package handler

import (
	"encoding/json"
	stdErrors "errors"
	"io"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-notes/errors"
	"github.com/johnquangdev/meeting-notes/internal/adapter/dto/capture"
	"github.com/johnquangdev/meeting-notes/internal/adapter/presenter"
	meetingUsecase "github.com/johnquangdev/meeting-notes/internal/usecase/meeting"
	pkgai "github.com/johnquangdev/meeting-notes/pkg/ai"
)

// maxCaptionBody bounds one caption snapshot push
const maxCaptionBody = 1 << 20

// Capture handles live capture requests and driver caption callbacks
type Capture struct {
	service meetingUsecase.Service
	secret  string
	logger  *zap.Logger
}

// NewCaptureHandler creates a new capture handler. An empty secret accepts unsigned callbacks.
func NewCaptureHandler(service meetingUsecase.Service, secret string, logger *zap.Logger) *Capture {
	return &Capture{service: service, secret: secret, logger: logger}
}

// StartCapture handles POST /v1/captures
// @Summary      Capture a live meeting
// @Description  Queues a capture job; the automation driver joins the call and pushes visible captions
// @Tags         Captures
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        request  body      capture.StartCaptureRequest  true  "Capture request"
// @Success      201      {object}  capture.CaptureResponse
// @Failure      400      {object}  map[string]interface{}  "Invalid request"
// @Failure      503      {object}  map[string]interface{}  "Live capture not configured"
// @Router       /captures [post]
func (h *Capture) StartCapture(c echo.Context) error {
	var req capture.StartCaptureRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	job, err := h.service.StartCapture(c.Request().Context(), meetingUsecase.CaptureInput{
		MeetURL:     req.MeetURL,
		Title:       req.Title,
		MeetingType: req.MeetingType,
	})
	if err != nil {
		return HandleError(h.logger, c, mapDomainError(err, ""))
	}

	return HandleCreated(h.logger, c, presenter.ToCaptureResponse(job))
}

// GetCapture handles GET /v1/captures/:id
// @Summary      Get a capture job
// @Tags         Captures
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path      string  true  "Capture job ID (UUID)"
// @Success      200  {object}  capture.CaptureResponse
// @Failure      404  {object}  map[string]interface{}  "Capture job not found"
// @Router       /captures/{id} [get]
func (h *Capture) GetCapture(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	job, err := h.service.GetCapture(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, mapDomainError(err, id.String()))
	}

	return HandleSuccess(h.logger, c, presenter.ToCaptureResponse(job))
}

// PushCaptions handles POST /v1/captures/:id/captions
// @Summary      Push visible captions
// @Description  Called by the automation driver with the captions currently on screen.
// @Description  The body is signed with a hex sha256 HMAC in X-Caption-Signature.
// @Tags         Captures
// @Accept       json
// @Produce      json
// @Param        id                   path      string                       true  "Capture job ID (UUID)"
// @Param        X-Caption-Signature  header    string                       false "HMAC signature"
// @Param        request              body      capture.PushCaptionsRequest  true  "Visible captions"
// @Success      200                  {object}  map[string]interface{}
// @Failure      401                  {object}  map[string]interface{}  "Invalid signature"
// @Failure      409                  {object}  map[string]interface{}  "Capture job not running"
// @Router       /captures/{id}/captions [post]
func (h *Capture) PushCaptions(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxCaptionBody))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	if h.secret != "" {
		signature := strings.TrimSpace(c.Request().Header.Get(pkgai.SignatureHeader))
		if !pkgai.VerifyHMAC(h.secret, body, signature) {
			return HandleError(h.logger, c, errors.ErrInvalidSignature())
		}
	}

	var req capture.PushCaptionsRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	if err := h.service.PushCaptions(c.Request().Context(), id, req.Captions); err != nil {
		mapped := mapDomainError(err, id.String())
		var appErr errors.AppError
		if !stdErrors.As(mapped, &appErr) {
			mapped = errors.ErrCacheFailed("store caption snapshot", err)
		}
		return HandleError(h.logger, c, mapped)
	}

	return HandleSuccess(h.logger, c, map[string]interface{}{"received": len(req.Captions)})
}
