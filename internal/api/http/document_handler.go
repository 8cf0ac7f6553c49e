package http

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"pawnledger-backend/internal/domain"
	"pawnledger-backend/internal/logger"
	"pawnledger-backend/internal/storage"
)

const maxMultipartMemory = 8 << 20

type uploadResponse struct {
	Ref string `json:"ref"`
	URL string `json:"url"`
}

// UploadDocument accepts a multipart form with a "kind" field and a "file" part.
func (h *Handler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, r, domain.NewValidationError("file", "multipart form expected"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, domain.NewValidationError("file", "is required"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	kind := storage.DocumentKind(r.FormValue("kind"))

	ref, url, err := h.svc.Documents.StoreDocument(r.Context(), a, kind, header.Filename, contentType, file)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, uploadResponse{Ref: ref, URL: url})
}

// DownloadDocument streams a stored document back by reference.
func (h *Handler) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	ref := mux.Vars(r)["ref"]
	body, contentType, err := h.svc.Documents.OpenDocument(r.Context(), a, ref)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	if _, err := io.Copy(w, body); err != nil {
		logger.Warn("Document download interrupted", "ref", ref, "error", err)
	}
}

func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	if err := h.svc.Documents.DeleteDocument(r.Context(), a, mux.Vars(r)["ref"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
