package documents

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/OmaR-WezA/weza-docs/src/pkg/apierr"
	"github.com/OmaR-WezA/weza-docs/src/pkg/catalog"
)

const maxUploadMemory = 10 << 20

// Handler exposes the document services over HTTP with the boundary
// contract of the original application: JSON bodies, fileId query
// parameters, and a fixed attachment filename on download.
type Handler struct {
	svc Client
}

func NewHandler(svc Client) *Handler {
	return &Handler{svc: svc}
}

type uploadResponse struct {
	Success  bool   `json:"success"`
	FileID   string `json:"fileId"`
	Filename string `json:"filename"`
}

type listResponse struct {
	Files []catalog.Record `json:"files"`
}

type deleteResponse struct {
	Success bool `json:"success"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if parseErr := r.ParseMultipartForm(maxUploadMemory); parseErr != nil {
		writeError(w, apierr.Wrap(apierr.KindValidation, "failed to parse form", parseErr))
		return
	}

	file, header, fileErr := r.FormFile("file")
	if fileErr != nil {
		writeError(w, apierr.Validationf("no file provided"))
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			slog.Warn("failed to close upload", "error", closeErr)
		}
	}()

	record, ingestErr := h.svc.Ingest(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
	if ingestErr != nil {
		writeError(w, ingestErr)
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		Success:  true,
		FileID:   record.ID,
		Filename: record.Filename,
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, listResponse{Files: h.svc.List(r.Context())})
}

func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("fileId")
	if id == "" {
		writeError(w, apierr.Validationf("no fileId provided"))
		return
	}

	data, retrieveErr := h.svc.Retrieve(r.Context(), id)
	if retrieveErr != nil {
		writeError(w, retrieveErr)
		return
	}

	// Fixed attachment name: the original filename may contain characters
	// that do not survive header encoding.
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="document.pdf"`)
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	if _, writeErr := w.Write(data); writeErr != nil {
		slog.Warn("failed to stream document", "id", id, "error", writeErr)
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("fileId")
	if id == "" {
		writeError(w, apierr.Validationf("no fileId provided"))
		return
	}

	if removeErr := h.svc.Remove(r.Context(), id); removeErr != nil {
		writeError(w, removeErr)
		return
	}

	writeJSON(w, http.StatusOK, deleteResponse{Success: true})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encodeErr := json.NewEncoder(w).Encode(body); encodeErr != nil {
		slog.Warn("failed to encode response", "error", encodeErr)
	}
}

func writeError(w http.ResponseWriter, err error) {
	resp := errorResponse{Error: err.Error()}
	var apiErr *apierr.Error
	if errors.As(err, &apiErr) {
		resp.Error = apiErr.Message
		if apiErr.Err != nil {
			resp.Details = apiErr.Err.Error()
		}
	}
	writeJSON(w, apierr.StatusOf(err), resp)
}
