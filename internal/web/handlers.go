package web

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/ericwinler854485/shopline-bulk/internal/core"
	"github.com/ericwinler854485/shopline-bulk/internal/logging"
	"github.com/ericwinler854485/shopline-bulk/internal/shopline"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// taskResponse is the JSON shape returned by the task status API.
type taskResponse struct {
	ID          string   `json:"id"`
	Status      string   `json:"status"`
	Logs        []string `json:"logs"`
	Error       string   `json:"error,omitempty"`
	ResultReady bool     `json:"result_ready"`
}

// handleIndex serves the upload form.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.ServeFileFS(w, r, s.static, "index.html")
}

// handleStatusPage serves the status page shell; the page itself polls the
// task status API for live progress.
func (s *Server) handleStatusPage(w http.ResponseWriter, r *http.Request) {
	http.ServeFileFS(w, r, s.static, "status.html")
}

// handleStartTask accepts the upload form (access token, store domain, CSV
// file), stores the file, and launches a batch. The response carries only
// the task id; progress is polled, never awaited.
func (s *Server) handleStartTask(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Batch.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		writeError(w, http.StatusBadRequest, "file too large or invalid form")
		return
	}

	token := strings.TrimSpace(r.FormValue("access_token"))
	domain := strings.TrimSpace(r.FormValue("store_domain"))
	file, _, err := r.FormFile("csv_file")
	if token == "" || domain == "" || err != nil {
		writeError(w, http.StatusBadRequest, "all fields are required")
		return
	}
	defer file.Close()

	path, err := s.saveUpload(file)
	if err != nil {
		logging.FromContext(r.Context()).Error("store upload failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}

	client := shopline.NewClient(token, domain, shopline.Config{
		APIVersion: s.cfg.Shopline.APIVersion,
		Timeout:    s.cfg.Shopline.RequestTimeout,
	})

	taskID, err := s.service.StartBatch(r.Context(), path, client)
	if err != nil {
		if errors.Is(err, core.ErrTooManyBatches) {
			w.Header().Set("Retry-After", "30")
			writeError(w, http.StatusTooManyRequests, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logging.FromContext(r.Context()).Info("batch accepted", "task_id", taskID)

	if wantsJSON(r) {
		writeJSON(w, map[string]string{"task_id": taskID})
		return
	}
	http.Redirect(w, r, "/status/"+taskID, http.StatusSeeOther)
}

// saveUpload copies the uploaded CSV into the upload directory under a
// generated name, keeping operator-chosen filenames off the filesystem.
func (s *Server) saveUpload(file io.Reader) (string, error) {
	if err := os.MkdirAll(s.cfg.Batch.UploadDir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(s.cfg.Batch.UploadDir, uuid.New().String()+".csv")
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// handleTaskStatus returns the current status and outcome log of a task.
// The log may be partially filled while the batch is still running.
func (s *Server) handleTaskStatus(w http.ResponseWriter, r *http.Request) {
	task, ok := s.service.Registry().Get(chi.URLParam(r, "taskID"))
	if !ok {
		writeError(w, http.StatusNotFound, core.ErrTaskNotFound.Error())
		return
	}

	view := task.Snapshot()
	writeJSON(w, taskResponse{
		ID:          view.ID,
		Status:      string(view.Status),
		Logs:        view.Logs,
		Error:       view.Failure,
		ResultReady: view.ResultFile != "",
	})
}

// handleDownload serves a completed task's result artifact as an attachment.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	task, ok := s.service.Registry().Get(chi.URLParam(r, "taskID"))
	if !ok {
		writeError(w, http.StatusNotFound, core.ErrTaskNotFound.Error())
		return
	}

	view := task.Snapshot()
	if view.ResultFile == "" {
		writeError(w, http.StatusNotFound, "result not ready")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filepath.Base(view.ResultFile)+`"`)
	http.ServeFile(w, r, view.ResultFile)
}

// wantsJSON checks if the client prefers JSON over a browser redirect.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}

	// API routes default to JSON
	return strings.HasPrefix(r.URL.Path, "/api/")
}
