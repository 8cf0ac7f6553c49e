package service

import (
	"context"
	"io"

	"pawnledger-backend/internal/domain"
	"pawnledger-backend/internal/logger"
	"pawnledger-backend/internal/storage"
)

type documentService struct {
	store storage.DocumentStore
}

func NewDocumentService(store storage.DocumentStore) DocumentService {
	return &documentService{store: store}
}

// StoreDocument saves an upload and returns the reference to keep on the customer or
// item, plus a download URL for the client.
func (s *documentService) StoreDocument(ctx context.Context, actor domain.Actor, kind storage.DocumentKind, filename, contentType string, r io.Reader) (string, string, error) {
	if !kind.Valid() {
		return "", "", domain.NewValidationError("kind", "must be customer_photo, aadhar_card, pan_card or item_photo")
	}
	ref, err := s.store.Save(ctx, kind, filename, contentType, r)
	if err != nil {
		return "", "", err
	}
	logger.WithActor(actor.UserID, string(actor.Role)).Info("Document uploaded", "kind", kind, "ref", ref)
	return ref, s.store.URL(ref), nil
}

func (s *documentService) OpenDocument(ctx context.Context, actor domain.Actor, ref string) (io.ReadCloser, string, error) {
	return s.store.Open(ctx, ref)
}

// DeleteDocument removes an upload. Records still pointing at ref are left as they are.
func (s *documentService) DeleteDocument(ctx context.Context, actor domain.Actor, ref string) error {
	if err := actor.RequireAdmin(); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, ref); err != nil {
		return err
	}
	logger.WithActor(actor.UserID, string(actor.Role)).Info("Document deleted", "ref", ref)
	return nil
}
