package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/nutrisync/macrolens/apimodels"
	"github.com/nutrisync/macrolens/internal/analyzer"
)

const (
	imageField   = "foodImage"
	maxImageSize = 10 * 1024 * 1024

	// multipartSlack leaves room for boundaries and part headers around a
	// maximal image so the size check below sees the real file length.
	multipartSlack = 1 << 20
)

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
	"image/heic": true,
}

const tooLargeDetail = "Image exceeds 10 MB limit"

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > maxImageSize+multipartSlack {
		writeError(w, http.StatusBadRequest, tooLargeDetail)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize+multipartSlack)

	file, header, err := r.FormFile(imageField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusBadRequest, tooLargeDetail)
			return
		}
		slog.Debug("Invalid upload", "error", err)
		writeError(w, http.StatusBadRequest, imageField+" file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedTypes[contentType] {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unsupported file type: %s", contentType))
		return
	}

	image, err := io.ReadAll(io.LimitReader(file, maxImageSize+1))
	if err != nil {
		slog.Error("Reading upload failed", "error", err)
		writeError(w, http.StatusBadRequest, "Could not read uploaded image")
		return
	}
	if len(image) > maxImageSize {
		writeError(w, http.StatusBadRequest, tooLargeDetail)
		return
	}

	slog.Debug("Received analysis request", "filename", header.Filename, "content_type", contentType, "bytes", len(image))

	est, err := s.analyzer.Analyze(r.Context(), image, contentType)
	if err != nil {
		slog.Error("Groq analysis failed", "error", err)
		est = analyzer.Fallback
	}

	writeJSON(w, http.StatusOK, est.Result())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, apimodels.HealthStatus{
		Status:         "ok",
		Model:          s.groq.Model,
		GroqConfigured: s.groq.Configured(),
	})
}

func writeError(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, apimodels.ErrorResponse{Detail: detail})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Encoding response failed", "error", err)
	}
}
