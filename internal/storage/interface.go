package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrDocumentNotFound    = errors.New("document not found")
	ErrUnsupportedType     = errors.New("unsupported content type")
	ErrDocumentTooLarge    = errors.New("document exceeds size limit")
	ErrInvalidReference    = errors.New("invalid document reference")
	ErrUnknownDocumentKind = errors.New("unknown document kind")
)

// DocumentKind groups stored files by what they evidence.
type DocumentKind string

const (
	KindCustomerPhoto DocumentKind = "customer_photo"
	KindAadharCard    DocumentKind = "aadhar_card"
	KindPANCard       DocumentKind = "pan_card"
	KindItemPhoto     DocumentKind = "item_photo"
)

func (k DocumentKind) Valid() bool {
	switch k {
	case KindCustomerPhoto, KindAadharCard, KindPANCard, KindItemPhoto:
		return true
	}
	return false
}

// DocumentStore keeps KYC images and item photos. Callers persist only the
// returned reference, never the bytes.
type DocumentStore interface {
	Save(ctx context.Context, kind DocumentKind, filename, contentType string, r io.Reader) (string, error)
	Open(ctx context.Context, ref string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, ref string) error
	URL(ref string) string
}
