package api

import (
	_ "embed"
	"net/http"
)

//go:embed page.html
var chatPage []byte

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(chatPage)
}
