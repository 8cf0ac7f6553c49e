package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"pawnledger-backend/internal/logger"
)

// LocalStore implements DocumentStore on the local filesystem.
type LocalStore struct {
	baseURL      string
	rootDir      string
	maxBytes     int64
	allowedTypes map[string]bool
	now          func() time.Time
}

func NewLocalStore(cfg Config) (*LocalStore, error) {
	if err := os.MkdirAll(cfg.UploadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	allowed := make(map[string]bool, len(cfg.AllowedTypes))
	for _, t := range cfg.AllowedTypes {
		allowed[strings.ToLower(t)] = true
	}

	return &LocalStore{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		rootDir:      cfg.UploadDir,
		maxBytes:     cfg.MaxFileSizeMB << 20,
		allowedTypes: allowed,
		now:          time.Now,
	}, nil
}

// Save writes the document under kind/yyyy/mm/<uuid><ext> and returns that reference.
func (s *LocalStore) Save(ctx context.Context, kind DocumentKind, filename, contentType string, r io.Reader) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("%w: %s", ErrUnknownDocumentKind, kind)
	}
	contentType = strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if len(s.allowedTypes) > 0 && !s.allowedTypes[contentType] {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
			ext = exts[0]
		}
	}
	now := s.now()
	ref := path.Join(string(kind), now.Format("2006"), now.Format("01"), uuid.NewString()+ext)

	fullPath := filepath.Join(s.rootDir, filepath.FromSlash(ref))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directories: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	src := r
	if s.maxBytes > 0 {
		src = io.LimitReader(r, s.maxBytes+1)
	}
	written, err := io.Copy(file, src)
	if err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if s.maxBytes > 0 && written > s.maxBytes {
		os.Remove(fullPath)
		return "", ErrDocumentTooLarge
	}

	logger.Info("Document stored", "kind", kind, "ref", ref, "bytes", written)
	return ref, nil
}

func (s *LocalStore) Open(ctx context.Context, ref string) (io.ReadCloser, string, error) {
	fullPath, err := s.resolve(ref)
	if err != nil {
		return nil, "", err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", ErrDocumentNotFound
		}
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(fullPath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return file, contentType, nil
}

func (s *LocalStore) Delete(ctx context.Context, ref string) error {
	fullPath, err := s.resolve(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// URL returns the download link served by the documents handler.
func (s *LocalStore) URL(ref string) string {
	return fmt.Sprintf("%s/api/v1/documents/%s", s.baseURL, ref)
}

// resolve maps a reference to a path inside rootDir, rejecting traversal.
func (s *LocalStore) resolve(ref string) (string, error) {
	clean := path.Clean("/" + ref)
	if ref == "" || clean == "/" || strings.Contains(ref, "..") {
		return "", ErrInvalidReference
	}
	kind := DocumentKind(strings.SplitN(strings.TrimPrefix(clean, "/"), "/", 2)[0])
	if !kind.Valid() {
		return "", ErrInvalidReference
	}
	return filepath.Join(s.rootDir, filepath.FromSlash(clean)), nil
}
