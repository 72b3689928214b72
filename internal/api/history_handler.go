// File path: internal/api/history_handler.go
package api

import "net/http"

func (s *Server) handleHistoryList(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	items := sess.History.Items()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
		"count": len(items),
	})
}

func (s *Server) handleHistoryClear(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	sess.History.Clear()
	writeJSON(w, http.StatusOK, map[string]int{"count": 0})
}

func (s *Server) handleHistoryDownload(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	doc := sess.History.Markdown()
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="session_history.md"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}
