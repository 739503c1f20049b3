package httpserver

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"go-screenshot-cache/internal/models"
)

// CacheStatusHeader carries HIT, MISS or DEGRADED on successful responses
const CacheStatusHeader = "X-Cache-Status"

const missingURLMessage = "URL is required"

// ScreenshotResponse is the success body
type ScreenshotResponse struct {
	ScreenshotURL string `json:"screenshotUrl"`
}

// ErrorResponse is the failure body
type ErrorResponse struct {
	Error string `json:"error"`
}

// handleScreenshot handles GET /screenshot?url=
func (s *Server) handleScreenshot(w http.ResponseWriter, r *http.Request) {
	s.serveCapture(w, r, models.CaptureRequest{URL: r.URL.Query().Get("url")})
}

// handleScreenshotPost handles POST /screenshot with a {"url": ...} body
func (s *Server) handleScreenshotPost(w http.ResponseWriter, r *http.Request) {
	var req models.CaptureRequest
	if err := s.parseRequest(r, &req); err != nil {
		s.writeErrorResponse(w, "Invalid request", http.StatusBadRequest)
		return
	}
	s.serveCapture(w, r, req)
}

func (s *Server) serveCapture(w http.ResponseWriter, r *http.Request, req models.CaptureRequest) {
	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		s.writeErrorResponse(w, missingURLMessage, http.StatusBadRequest)
		return
	}

	result, err := s.captureService.Handle(r.Context(), req)
	if err != nil {
		if models.IsInvalidInput(err) {
			s.writeErrorResponse(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.logger.Error("Screenshot request failed",
			zap.String("url", req.URL),
			zap.Error(err))
		s.writeErrorResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set(CacheStatusHeader, string(result.CacheStatus))
	s.writeResponse(w, http.StatusOK, &ScreenshotResponse{ScreenshotURL: result.ScreenshotURL})
}
