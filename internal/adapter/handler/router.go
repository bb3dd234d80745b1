package handler

import (
	stdErrors "errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-notes/errors"
	httpmw "github.com/johnquangdev/meeting-notes/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meeting-notes/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	meetingHandler *Meeting
	captureHandler *Capture
	metricsHandler http.Handler
	logger         *zap.Logger
}

// NewRouter creates a new router with all handlers. A nil metrics handler skips /metrics.
func NewRouter(cfg *config.Config, meetingHandler *Meeting, captureHandler *Capture, metricsHandler http.Handler, logger *zap.Logger) *Router {
	return &Router{
		cfg:            cfg,
		meetingHandler: meetingHandler,
		captureHandler: captureHandler,
		metricsHandler: metricsHandler,
		logger:         logger,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.HTTPErrorHandler = rt.httpErrorHandler

	e.GET("/health", rt.healthCheck)
	if rt.metricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(rt.metricsHandler))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Caption pushes are signed by the driver instead of carrying the API key
	v1 := e.Group("/v1", httpmw.EchoAPIKey(rt.cfg.Server.APIKey, httpmw.SkipPathSuffix("/captions")))

	rt.setupMeetingRoutes(v1)
	rt.setupCaptureRoutes(v1)
}

// setupMeetingRoutes configures meeting routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetings := g.Group("/meetings")

	bodyLimit := echomw.BodyLimit(fmt.Sprintf("%dM", rt.maxUploadMB()))

	meetings.POST("", rt.meetingHandler.CreateMeeting, bodyLimit)
	meetings.GET("", rt.meetingHandler.ListMeetings)
	meetings.GET("/:id", rt.meetingHandler.GetMeeting)
	meetings.DELETE("/:id", rt.meetingHandler.DeleteMeeting)
	meetings.GET("/:id/file", rt.meetingHandler.DownloadUpload)
	meetings.GET("/:id/download/:format", rt.meetingHandler.DownloadMeeting)
}

// setupCaptureRoutes configures live capture routes
func (rt *Router) setupCaptureRoutes(g *echo.Group) {
	captures := g.Group("/captures")

	captures.POST("", rt.captureHandler.StartCapture)
	captures.GET("/:id", rt.captureHandler.GetCapture)
	captures.POST("/:id/captions", rt.captureHandler.PushCaptions)
}

func (rt *Router) maxUploadMB() int64 {
	if rt.cfg.Server.MaxUploadMB <= 0 {
		return 100
	}
	return rt.cfg.Server.MaxUploadMB
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}

// httpErrorHandler renders framework errors (unknown routes, body limit) in the API error shape
func (rt *Router) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr errors.AppError
	if !stdErrors.As(err, &appErr) {
		var he *echo.HTTPError
		if stdErrors.As(err, &he) {
			switch he.Code {
			case http.StatusNotFound:
				appErr = errors.ErrNotFound("route")
			case http.StatusRequestEntityTooLarge:
				appErr = errors.ErrPayloadTooLarge(rt.maxUploadMB())
			default:
				appErr = errors.AppError{
					HTTPCode: he.Code,
					Code:     errors.ErrorCode_INVALID_ARGUMENT,
					Message:  http.StatusText(he.Code),
				}
				if he.Code >= http.StatusInternalServerError {
					appErr.Code = errors.ErrorCode_INTERNAL
				}
			}
		} else {
			appErr = errors.ErrInternal(err)
		}
	}

	if c.Request().Method == http.MethodHead {
		if herr := c.NoContent(appErr.HTTPCode); herr != nil && rt.logger != nil {
			rt.logger.Error("failed to write error response", zap.Error(herr))
		}
		return
	}
	if herr := HandleError(rt.logger, c, appErr); herr != nil && rt.logger != nil {
		rt.logger.Error("failed to write error response", zap.Error(herr))
	}
}
