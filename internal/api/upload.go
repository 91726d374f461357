package api

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// maxUploadBytes bounds the multipart form we are willing to parse.
const maxUploadBytes = 16 << 20 // 16 MiB

const replyInvalidFile = "Please upload a valid resume file (.pdf, .doc, .docx, .txt)."

var allowedExtensions = map[string]bool{
	"pdf":  true,
	"doc":  true,
	"docx": true,
	"txt":  true,
}

func allowedFile(filename string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	return ext != "" && allowedExtensions[ext]
}

// sanitizeFilename strips path components and anything outside a
// conservative character set, so an uploaded name can be used directly
// under the upload directory.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == '.', r == '-', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	return strings.Trim(sb.String(), "._")
}

func (s *Server) uploadResume(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"reply": replyInvalidFile})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"reply": replyInvalidFile})
		return
	}
	defer file.Close()

	if !allowedFile(header.Filename) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"reply": replyInvalidFile})
		return
	}

	filename := sanitizeFilename(header.Filename)
	if filename == "" || !allowedFile(filename) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"reply": replyInvalidFile})
		return
	}

	savePath := filepath.Join(s.uploadDir, filename)
	dst, err := os.Create(savePath)
	if err != nil {
		s.logger.Error("failed to store upload", "path", savePath, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"reply": "Could not store the uploaded file."})
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		s.logger.Error("failed to write upload", "path", savePath, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"reply": "Could not store the uploaded file."})
		return
	}
	dst.Close()

	reply, sessionID, err := s.orch.HandleResumeTurn(r.Context(), r.FormValue("sessionId"), savePath)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, chatResponse{
			Reply:     fmt.Sprintf("Error analyzing your resume: %v", err),
			SessionID: sessionID,
		})
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Reply: reply, SessionID: sessionID})
}
