// internal/httpapi/server.go
package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// Server is the REST gateway used by the dashboard front end.
type Server struct {
	Echo   *echo.Echo
	logger zerolog.Logger
}

func NewServer(handler *BoardHandler, logger zerolog.Logger) *Server {
	s := &Server{
		Echo:   echo.New(),
		logger: logger,
	}
	s.Echo.HideBanner = true
	s.Echo.HidePort = true

	s.RegisterMiddlewares()
	s.RegisterRoutes(handler)
	return s
}

func (s *Server) RegisterMiddlewares() {
	s.Echo.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			event := s.logger.Info()
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				event = s.logger.Error().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("ip", v.RemoteIP).
				Msg("http request")
			return nil
		},
	}))
	s.Echo.Use(echomw.Recover())
	s.Echo.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, "X-User-Id", "X-User-Name"},
	}))
}

func (s *Server) RegisterRoutes(h *BoardHandler) {
	s.Echo.GET("/healthz", func(c echo.Context) error {
		return ResponseSuccess(c, http.StatusOK, "ok", nil)
	})

	org := s.Echo.Group("/api/v1/orgs/:org")
	org.GET("/tasks", h.ListTasksHandler)
	org.POST("/tasks", h.CreateTaskHandler)
	org.PATCH("/tasks/:id", h.UpdateTaskHandler)
	org.POST("/tasks/:id/move", h.MoveTaskHandler)
	org.POST("/tasks/:id/comments", h.AddCommentHandler)
	org.POST("/tasks/:id/checklist", h.AddChecklistItemHandler)
	org.POST("/tasks/:id/checklist/:itemId/toggle", h.ToggleChecklistItemHandler)

	org.GET("/board", h.GetBoardHandler)
	org.POST("/board/reload", h.ReloadBoardHandler)
	org.GET("/board/export", h.ExportBoardHandler)
}

// Start listens on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	if err := s.Echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Echo.Shutdown(ctx)
}
