package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/Brian-Masheti/chathub/internal/upload"
)

// maxUploadBytes caps a single upload's in-memory parse size.
const maxUploadBytes = 32 << 20

// ServeUpload accepts a multipart "file" field, stores it, and answers with
// the URL the client should attach to its message.
func ServeUpload(store *upload.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No file uploaded"})
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No file uploaded"})
			return
		}
		defer file.Close()

		url, err := store.Save(header.Filename, file)
		if err != nil {
			log.Printf("failed to store upload %q: %v", header.Filename, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Upload failed"})
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"url": url})
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}
