package documents

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OmaR-WezA/weza-docs/src/pkg/catalog"
	"github.com/OmaR-WezA/weza-docs/src/pkg/documents/storage"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	dataDir := t.TempDir()
	backend, err := storage.NewLocalBackend(filepath.Join(dataDir, "pdfs"))
	require.NoError(t, err)
	cat := catalog.New(filepath.Join(dataDir, "pdfs-list.json"))
	return NewHandler(NewService(cat, backend, stampMarker{}))
}

func multipartUpload(t *testing.T, filename, contentType, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/pdf-upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func uploadDocument(t *testing.T, h *Handler, filename, content string) uploadResponse {
	t.Helper()
	rec := httptest.NewRecorder()
	h.Upload(rec, multipartUpload(t, filename, "application/pdf", content))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp uploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestUpload(t *testing.T) {
	h := newTestHandler(t)
	resp := uploadDocument(t, h, "notes.pdf", "%PDF-1.4 payload")

	assert.True(t, resp.Success)
	assert.Len(t, resp.FileID, 16)
	assert.Equal(t, "notes.pdf", resp.Filename)
}

func TestUpload_MissingFile(t *testing.T) {
	h := newTestHandler(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("unrelated", "value"))
	require.NoError(t, writer.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/pdf-upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rec := httptest.NewRecorder()
	h.Upload(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "no file provided", resp.Error)
}

func TestUpload_RejectsNonPDF(t *testing.T) {
	h := newTestHandler(t)
	rec := httptest.NewRecorder()
	h.Upload(rec, multipartUpload(t, "virus.exe", "application/octet-stream", "MZ"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpload_EmptyFile(t *testing.T) {
	h := newTestHandler(t)
	rec := httptest.NewRecorder()
	h.Upload(rec, multipartUpload(t, "hollow.pdf", "application/pdf", ""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDownload(t *testing.T) {
	h := newTestHandler(t)
	uploaded := uploadDocument(t, h, "notes.pdf", "%PDF-1.4 payload")

	rec := httptest.NewRecorder()
	h.Download(rec, httptest.NewRequest(http.MethodGet, "/api/pdf-download?fileId="+uploaded.FileID, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="document.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "MARKED:%PDF-1.4 payload", rec.Body.String())
}

func TestDownload_MissingID(t *testing.T) {
	h := newTestHandler(t)
	rec := httptest.NewRecorder()
	h.Download(rec, httptest.NewRequest(http.MethodGet, "/api/pdf-download", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDownload_UnknownID(t *testing.T) {
	h := newTestHandler(t)
	rec := httptest.NewRecorder()
	h.Download(rec, httptest.NewRequest(http.MethodGet, "/api/pdf-download?fileId=nonexistent-id", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDelete_MissingID(t *testing.T) {
	h := newTestHandler(t)
	rec := httptest.NewRecorder()
	h.Delete(rec, httptest.NewRequest(http.MethodPost, "/api/pdf-delete", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestList_Empty(t *testing.T) {
	h := newTestHandler(t)
	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/pdf-list", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"files":[]}`, rec.Body.String())
}

// Full lifecycle: upload, list, download, delete, list, download again.
func TestLifecycle(t *testing.T) {
	h := newTestHandler(t)
	uploaded := uploadDocument(t, h, "notes.pdf", "%PDF-1.4 three pages")

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/pdf-list", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var listed listResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed.Files, 1)
	assert.Equal(t, "notes.pdf", listed.Files[0].Filename)
	assert.Equal(t, uploaded.FileID, listed.Files[0].ID)

	rec = httptest.NewRecorder()
	h.Download(rec, httptest.NewRequest(http.MethodGet, "/api/pdf-download?fileId="+uploaded.FileID, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.Delete(rec, httptest.NewRequest(http.MethodPost, "/api/pdf-delete?fileId="+uploaded.FileID, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/pdf-list", nil))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Empty(t, listed.Files)

	rec = httptest.NewRecorder()
	h.Download(rec, httptest.NewRequest(http.MethodGet, "/api/pdf-download?fileId="+uploaded.FileID, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.Delete(rec, httptest.NewRequest(http.MethodPost, "/api/pdf-delete?fileId="+uploaded.FileID, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

var _ Client = (*Service)(nil)
