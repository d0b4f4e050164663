package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"cardforge/internal/config"
	"cardforge/internal/metrics"
	"cardforge/internal/models"
	"cardforge/internal/services"
)

const maxMultipartMemory = 8 << 20 // 8 MB

type Server struct {
	mux     *http.ServeMux
	cfg     config.Config
	content *services.ContentService
	metrics *metrics.HTTPMetrics
}

func NewServer(cfg config.Config, content *services.ContentService, m *metrics.HTTPMetrics) *Server {
	s := &Server{
		mux:     http.NewServeMux(),
		cfg:     cfg,
		content: content,
		metrics: m,
	}
	s.routes()
	return s
}

// Handler returns the full middleware-wrapped handler chain.
func (s *Server) Handler() http.Handler {
	var handler http.Handler = s.mux
	handler = accessLogMiddleware(s.cfg.AppName, s.metrics)(handler)
	handler = corsMiddleware(s.cfg.CORSOrigins)(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (s *Server) routes() {
	prefix := strings.TrimSuffix(s.cfg.APIPrefix, "/")
	s.mux.HandleFunc("/", s.handleRoot)
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc(prefix+"/health", s.handleHealth)
	s.mux.HandleFunc(prefix+"/generate", s.handleGenerate)
	s.mux.HandleFunc(prefix+"/choices", s.handleChoices)
	s.mux.Handle("/metrics", s.metrics.Handler())
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message":      "Welcome to " + s.cfg.AppName,
		"version":      s.cfg.AppVersion,
		"health_check": strings.TrimSuffix(s.cfg.APIPrefix, "/") + "/health",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": s.cfg.AppName,
		"version": s.cfg.AppVersion,
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	// Bound the body early so a runaway upload fails fast; the per-file cap
	// still produces the canonical 413 below.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxFileSizeBytes()+maxMultipartMemory)

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeErrorResponse(w, http.StatusRequestEntityTooLarge, models.NewErrorResponse(
				"FileSizeExceededError",
				"Uploaded content exceeds the maximum allowed size",
				map[string]any{"max_size_mb": s.cfg.MaxFileSizeMB},
			))
			return
		}
		writeErrorResponse(w, http.StatusBadRequest, models.NewErrorResponse(
			"ValidationError", "invalid multipart form", nil))
		return
	}
	if form := r.MultipartForm; form != nil {
		defer form.RemoveAll()
	}

	numFlashcards, err := parseCount(r.FormValue("num_flashcards"), 5, s.cfg.MaxFlashcards)
	if err != nil {
		writeErrorResponse(w, http.StatusUnprocessableEntity, models.NewErrorResponse(
			"ValidationError", "num_flashcards must be an integer between 0 and "+strconv.Itoa(s.cfg.MaxFlashcards), nil))
		return
	}
	numMCQs, err := parseCount(r.FormValue("num_mcqs"), 5, s.cfg.MaxMCQs)
	if err != nil {
		writeErrorResponse(w, http.StatusUnprocessableEntity, models.NewErrorResponse(
			"ValidationError", "num_mcqs must be an integer between 0 and "+strconv.Itoa(s.cfg.MaxMCQs), nil))
		return
	}
	focus := services.ParseContentFocus(r.FormValue("content_type"))

	file, header, fileErr := r.FormFile("file")
	hasFile := fileErr == nil
	if fileErr != nil && !errors.Is(fileErr, http.ErrMissingFile) {
		writeErrorResponse(w, http.StatusBadRequest, models.NewErrorResponse(
			"ValidationError", "invalid file upload", nil))
		return
	}
	if hasFile {
		defer file.Close()
	}

	text := r.FormValue("text")

	switch {
	case !hasFile && text == "":
		writeErrorResponse(w, http.StatusBadRequest, models.NewErrorResponse(
			"MissingInputError",
			"Either 'file' or 'text' parameter is required",
			map[string]any{
				"file": "Upload a file (" + strings.Join(services.SupportedExtensions(), ", ") + ")",
				"text": "Provide text content as form parameter",
			},
		))
		return
	case hasFile && text != "":
		writeErrorResponse(w, http.StatusBadRequest, models.NewErrorResponse(
			"ConflictingInputError",
			"Provide either 'file' OR 'text', not both",
			map[string]any{"solution": "Choose one input method: file upload or text content"},
		))
		return
	}

	if hasFile {
		content, err := io.ReadAll(file)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, models.NewErrorResponse(
				"FileProcessingError", "failed to read uploaded file", nil))
			return
		}
		if len(content) == 0 {
			writeErrorResponse(w, http.StatusBadRequest, models.NewErrorResponse(
				"EmptyFileError", "Uploaded file is empty", nil))
			return
		}

		resp, err := s.content.GenerateFromFile(r.Context(), content, header.Filename, numFlashcards, numMCQs, focus)
		if err != nil {
			s.metrics.ObserveGeneration(s.cfg.AppName, "generate", "error")
			s.writeServiceError(w, err)
			return
		}
		s.metrics.ObserveGeneration(s.cfg.AppName, "generate", "success")
		writeJSON(w, http.StatusOK, resp)
		return
	}

	if strings.TrimSpace(text) == "" {
		writeErrorResponse(w, http.StatusBadRequest, models.NewErrorResponse(
			"EmptyTextError", "Text content cannot be empty", nil))
		return
	}

	resp, err := s.content.GenerateFromText(r.Context(), text, numFlashcards, numMCQs, focus)
	if err != nil {
		s.metrics.ObserveGeneration(s.cfg.AppName, "generate", "error")
		s.writeServiceError(w, err)
		return
	}
	s.metrics.ObserveGeneration(s.cfg.AppName, "generate", "success")
	writeJSON(w, http.StatusOK, resp)
}

type choicesRequest struct {
	InputText string `json:"input_text"`
}

func (s *Server) handleChoices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var payload choicesRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, models.NewErrorResponse(
			"ValidationError", "invalid JSON payload", nil))
		return
	}
	if strings.TrimSpace(payload.InputText) == "" {
		writeErrorResponse(w, http.StatusBadRequest, models.NewErrorResponse(
			"EmptyTextError", "input_text cannot be empty", nil))
		return
	}

	resp, err := s.content.GenerateChoices(r.Context(), payload.InputText)
	if err != nil {
		s.metrics.ObserveGeneration(s.cfg.AppName, "choices", "error")
		s.writeServiceError(w, err)
		return
	}
	s.metrics.ObserveGeneration(s.cfg.AppName, "choices", "success")
	writeJSON(w, http.StatusOK, resp)
}

// writeServiceError maps service sentinel errors onto the HTTP error envelope.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrUnsupportedFileType):
		writeErrorResponse(w, http.StatusBadRequest, models.NewErrorResponse(
			"UnsupportedFileTypeError", err.Error(),
			map[string]any{"supported_types": services.SupportedExtensions()},
		))
	case errors.Is(err, services.ErrFileTooLarge):
		writeErrorResponse(w, http.StatusRequestEntityTooLarge, models.NewErrorResponse(
			"FileSizeExceededError", err.Error(),
			map[string]any{"max_size_mb": s.cfg.MaxFileSizeMB},
		))
	case errors.Is(err, services.ErrFileProcessing):
		writeErrorResponse(w, http.StatusBadRequest, models.NewErrorResponse(
			"FileProcessingError", err.Error(), nil))
	case errors.Is(err, services.ErrAIUnavailable),
		errors.Is(err, services.ErrAIService),
		errors.Is(err, services.ErrContentGeneration):
		writeErrorResponse(w, http.StatusInternalServerError, models.NewErrorResponse(
			"AIServiceError", "Failed to generate content. Please try again.", nil))
	default:
		writeErrorResponse(w, http.StatusInternalServerError, models.NewErrorResponse(
			"InternalServerError", "An unexpected error occurred. Please try again.", nil))
	}
}

// parseCount parses an optional form count, rejecting values outside [0, max].
func parseCount(raw string, fallback, max int) (int, error) {
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if n < 0 || n > max {
		return 0, errors.New("count out of range")
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(payload)
}

func writeErrorResponse(w http.ResponseWriter, status int, resp models.ErrorResponse) {
	writeJSON(w, status, resp)
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	writeErrorResponse(w, http.StatusMethodNotAllowed, models.NewErrorResponse(
		"MethodNotAllowedError", "method not allowed", nil))
}
