package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/MikeSquared-Agency/careerbot/internal/chat"
	"github.com/MikeSquared-Agency/careerbot/internal/session"
)

type fakeGenerator struct {
	reply string
	err   error
}

func (f *fakeGenerator) Generate(context.Context, string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newTestServer(t *testing.T, gen chat.Generator) *Server {
	t.Helper()
	store := session.NewStore(chat.SystemPrompt, nil)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	orch := chat.New(store, gen, nil, logger)
	return NewServer(8760, orch, t.TempDir(), logger)
}

func postJSON(t *testing.T, srv *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, &fakeGenerator{})

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %q", body["status"])
	}
}

func TestHomeEndpoint(t *testing.T) {
	srv := newTestServer(t, &fakeGenerator{})

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("expected html content type, got %q", ct)
	}
	if !strings.Contains(w.Body.String(), "Career HR Bot") {
		t.Error("expected chat page body")
	}
}

func TestChatEndpoint(t *testing.T) {
	srv := newTestServer(t, &fakeGenerator{reply: "Happy to help!"})

	w := postJSON(t, srv, "/chat", map[string]string{"message": "Hi"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body chatResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Reply != "Happy to help!" {
		t.Errorf("expected reply, got %q", body.Reply)
	}
	if body.SessionID == "" {
		t.Error("expected a session id")
	}
}

func TestChatEndpoint_EmptyMessage(t *testing.T) {
	srv := newTestServer(t, &fakeGenerator{reply: "never"})

	w := postJSON(t, srv, "/chat", map[string]string{"message": "   "})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body chatResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Reply != chat.ReplyEmptyMessage {
		t.Errorf("expected canned reply, got %q", body.Reply)
	}
}

func TestChatEndpoint_GatewayFailure(t *testing.T) {
	srv := newTestServer(t, &fakeGenerator{err: errors.New("quota exceeded")})

	w := postJSON(t, srv, "/chat", map[string]string{"message": "Hi"})
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}

	var body chatResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !strings.Contains(body.Reply, "quota exceeded") {
		t.Errorf("expected underlying message in reply, got %q", body.Reply)
	}
}

func TestChatEndpoint_InvalidJSON(t *testing.T) {
	srv := newTestServer(t, &fakeGenerator{})

	req := httptest.NewRequest("POST", "/chat", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestResetEndpoint(t *testing.T) {
	srv := newTestServer(t, &fakeGenerator{reply: "hello"})

	w := postJSON(t, srv, "/chat", map[string]string{"message": "Hi"})
	var chatBody chatResponse
	if err := json.NewDecoder(w.Body).Decode(&chatBody); err != nil {
		t.Fatalf("failed to decode chat response: %v", err)
	}

	w = postJSON(t, srv, "/reset", map[string]string{"sessionId": chatBody.SessionID})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body resetResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !body.OK {
		t.Errorf("expected ok reset, got %+v", body)
	}
}

func TestResetEndpoint_UnknownSession(t *testing.T) {
	srv := newTestServer(t, &fakeGenerator{})

	w := postJSON(t, srv, "/reset", map[string]string{"sessionId": "never-created"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var body resetResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.OK || body.Error != "Unknown sessionId" {
		t.Errorf("expected unknown session error, got %+v", body)
	}
}

func multipartUpload(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestUploadResume(t *testing.T) {
	srv := newTestServer(t, &fakeGenerator{reply: "Solid resume."})

	buf, contentType := multipartUpload(t, "cv.txt", "Jane Doe, ten years of Go")
	req := httptest.NewRequest("POST", "/upload_resume", buf)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body chatResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !strings.Contains(body.Reply, "cv.txt") || !strings.Contains(body.Reply, "Solid resume.") {
		t.Errorf("unexpected reply: %q", body.Reply)
	}
	if body.SessionID == "" {
		t.Error("expected a session id")
	}
}

func TestUploadResume_DisallowedExtension(t *testing.T) {
	srv := newTestServer(t, &fakeGenerator{reply: "never"})

	buf, contentType := multipartUpload(t, "cv.exe", "MZ...")
	req := httptest.NewRequest("POST", "/upload_resume", buf)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "valid resume file") {
		t.Errorf("expected allow-list advisory, got %s", w.Body.String())
	}
}

func TestUploadResume_MissingFile(t *testing.T) {
	srv := newTestServer(t, &fakeGenerator{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("sessionId", "abc")
	mw.Close()

	req := httptest.NewRequest("POST", "/upload_resume", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestUploadResume_UnreadableContent(t *testing.T) {
	srv := newTestServer(t, &fakeGenerator{reply: "never"})

	buf, contentType := multipartUpload(t, "cv.pdf", "definitely not a pdf")
	req := httptest.NewRequest("POST", "/upload_resume", buf)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body chatResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Reply != chat.ReplyUnreadableResume {
		t.Errorf("expected advisory reply, got %q", body.Reply)
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"resume.pdf", "resume.pdf"},
		{"../../etc/passwd", "passwd"},
		{"my resume (final).docx", "my_resume__final_.docx"},
		{"..", ""},
	}

	for _, tc := range cases {
		if got := sanitizeFilename(tc.in); got != tc.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
