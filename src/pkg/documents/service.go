// Package documents implements the document distribution services:
// ingestion, retrieval with watermarking, removal, and listing. The
// catalog is the single source of truth for which ids exist; the blob
// store holds no index of its own.
package documents

import (
	"bufio"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"mime"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/OmaR-WezA/weza-docs/src/pkg/apierr"
	"github.com/OmaR-WezA/weza-docs/src/pkg/catalog"
	"github.com/OmaR-WezA/weza-docs/src/pkg/documents/storage"
)

const pdfContentType = "application/pdf"

// Watermarker stamps ownership marks across a decoded document.
type Watermarker interface {
	Apply(src []byte) ([]byte, error)
}

// Client is the service surface the HTTP handler talks to.
type Client interface {
	Ingest(ctx context.Context, filename, contentType string, data io.Reader) (catalog.Record, error)
	Retrieve(ctx context.Context, id string) ([]byte, error)
	Remove(ctx context.Context, id string) error
	List(ctx context.Context) []catalog.Record
}

type Service struct {
	catalog *catalog.Catalog
	store   storage.Backend
	marker  Watermarker
}

func NewService(cat *catalog.Catalog, store storage.Backend, marker Watermarker) *Service {
	return &Service{
		catalog: cat,
		store:   store,
		marker:  marker,
	}
}

// newID returns 8 bytes of randomness as a 16-character hex string.
// Uniqueness rests on entropy alone; 64 bits keeps collisions negligible.
func newID() (string, error) {
	var raw [8]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return "", fmt.Errorf("failed to generate id: %w", err)
	}
	return hex.EncodeToString(raw[:]), nil
}

// sanitizeName strips path components from an uploader-supplied filename
// so the stored name is filesystem-safe. The catalog keeps the original
// untouched for display.
func sanitizeName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	name = strings.ReplaceAll(name, "\x00", "")
	if name == "" || name == "." || name == ".." || name == "/" {
		return "document.pdf"
	}
	return name
}

func isPDFUpload(filename, contentType string) bool {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil && mediaType == pdfContentType {
		return true
	}
	return strings.EqualFold(filepath.Ext(filename), ".pdf")
}

// Ingest stores the payload and appends a catalog record. The blob write
// precedes the catalog append: a failed write leaves no record behind.
func (s *Service) Ingest(ctx context.Context, filename, contentType string, data io.Reader) (catalog.Record, error) {
	if filename == "" || data == nil {
		return catalog.Record{}, apierr.Validationf("no file provided")
	}
	if !isPDFUpload(filename, contentType) {
		return catalog.Record{}, apierr.Validationf("only PDF uploads are accepted")
	}

	// An empty payload is never a valid document; reject it before any
	// blob or catalog write.
	buffered := bufio.NewReader(data)
	if _, peekErr := buffered.Peek(1); peekErr != nil {
		if errors.Is(peekErr, io.EOF) {
			return catalog.Record{}, apierr.Validationf("empty file provided")
		}
		return catalog.Record{}, apierr.Wrap(apierr.KindStorage, "failed to read upload", peekErr)
	}

	id, idErr := newID()
	if idErr != nil {
		return catalog.Record{}, apierr.Wrap(apierr.KindStorage, "failed to generate document id", idErr)
	}

	savedName := fmt.Sprintf("%s-%s", id, sanitizeName(filename))
	if storeErr := s.store.Store(savedName, buffered); storeErr != nil {
		return catalog.Record{}, apierr.Wrap(apierr.KindStorage, "failed to store document", storeErr)
	}

	record := catalog.Record{
		ID:         id,
		Filename:   filename,
		SavedName:  savedName,
		UploadedAt: time.Now().UTC(),
	}
	records := append(s.catalog.Load(), record)
	if saveErr := s.catalog.Save(records); saveErr != nil {
		return catalog.Record{}, apierr.Wrap(apierr.KindStorage, "failed to update catalog", saveErr)
	}

	slog.Info("document ingested", "id", id, "filename", filename)
	return record, nil
}

// Retrieve re-derives a watermarked copy from the pristine blob. The blob
// is only ever opened for reading.
func (s *Service) Retrieve(ctx context.Context, id string) ([]byte, error) {
	record, found := s.catalog.Find(id)
	if !found {
		return nil, apierr.NotFoundf("unknown document id")
	}

	original, readErr := s.readBlob(record.SavedName)
	if readErr != nil {
		if errors.Is(readErr, fs.ErrNotExist) {
			slog.Warn("catalog record without blob", "id", id, "savedName", record.SavedName)
			return nil, apierr.NotFoundf("document blob missing")
		}
		return nil, apierr.Wrap(apierr.KindStorage, "failed to read document", readErr)
	}

	marked, markErr := s.marker.Apply(original)
	if markErr != nil {
		return nil, apierr.Wrap(apierr.KindCodec, "failed to watermark document", markErr)
	}
	return marked, nil
}

func (s *Service) readBlob(savedName string) (data []byte, retErr error) {
	reader, openErr := s.store.Open(savedName)
	if openErr != nil {
		return nil, openErr
	}
	defer func() {
		if closeErr := reader.Close(); closeErr != nil {
			if retErr == nil {
				retErr = closeErr
			} else {
				retErr = errors.Join(retErr, closeErr)
			}
		}
	}()

	return io.ReadAll(reader)
}

// Remove deletes the blob and the catalog record. An already-absent blob
// is not an error; a failing delete of an existing blob aborts with the
// catalog untouched.
func (s *Service) Remove(ctx context.Context, id string) error {
	record, found := s.catalog.Find(id)
	if !found {
		return apierr.NotFoundf("unknown document id")
	}

	exists, existsErr := s.store.Exists(record.SavedName)
	if existsErr != nil {
		return apierr.Wrap(apierr.KindStorage, "failed to stat document blob", existsErr)
	}
	if exists {
		if removeErr := s.store.Remove(record.SavedName); removeErr != nil {
			return apierr.Wrap(apierr.KindStorage, "failed to delete document blob", removeErr)
		}
	} else {
		slog.Warn("blob already absent on delete", "id", id, "savedName", record.SavedName)
	}

	records := s.catalog.Load()
	remaining := make([]catalog.Record, 0, len(records))
	for _, existing := range records {
		if existing.ID != id {
			remaining = append(remaining, existing)
		}
	}
	if saveErr := s.catalog.Save(remaining); saveErr != nil {
		return apierr.Wrap(apierr.KindStorage, "failed to update catalog", saveErr)
	}

	slog.Info("document removed", "id", id)
	return nil
}

// List returns the full ordered catalog; degraded reads yield an empty
// list, never an error.
func (s *Service) List(ctx context.Context) []catalog.Record {
	return s.catalog.Load()
}
