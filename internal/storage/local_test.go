package storage

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	s, err := NewLocalStore(Config{
		UploadDir:     t.TempDir(),
		BaseURL:       "http://localhost:8080/",
		MaxFileSizeMB: 1,
		AllowedTypes:  []string{"image/jpeg", "image/png"},
	})
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC) }
	return s
}

func TestLocalStore_SaveOpenDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ref, err := s.Save(ctx, KindAadharCard, "front.JPG", "image/jpeg", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "aadhar_card/2026/10/"))
	assert.True(t, strings.HasSuffix(ref, ".jpg"))
	assert.Equal(t, "http://localhost:8080/api/v1/documents/"+ref, s.URL(ref))

	rc, contentType, err := s.Open(ctx, ref)
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "jpeg-bytes", string(body))
	assert.Equal(t, "image/jpeg", contentType)

	require.NoError(t, s.Delete(ctx, ref))
	_, _, err = s.Open(ctx, ref)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestLocalStore_Rejects(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Save(ctx, "selfie", "a.jpg", "image/jpeg", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUnknownDocumentKind)

	_, err = s.Save(ctx, KindItemPhoto, "a.exe", "application/x-msdownload", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUnsupportedType)

	big := strings.NewReader(strings.Repeat("a", (1<<20)+10))
	_, err = s.Save(ctx, KindItemPhoto, "big.png", "image/png", big)
	assert.ErrorIs(t, err, ErrDocumentTooLarge)

	_, _, err = s.Open(ctx, "../../etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidReference)

	_, _, err = s.Open(ctx, "secrets/file.txt")
	assert.ErrorIs(t, err, ErrInvalidReference)
}
