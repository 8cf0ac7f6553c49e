package storage

// Config holds storage configuration
type Config struct {
	UploadDir     string   // root directory for stored documents
	BaseURL       string   // server base URL used to build download links
	MaxFileSizeMB int64    // per-document limit
	AllowedTypes  []string // accepted MIME types
}
