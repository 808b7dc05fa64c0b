package web

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/AlekseyZapadovnikov/issue-badge/internal/badge"

	"github.com/go-chi/chi/v5"
)

// handleBadge рендерит SVG-бейдж issue по (owner, repo, number).
// Ошибки превращаются в message-бейдж с соответствующим HTTP-статусом.
func (s *Server) handleBadge(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")
	repo := chi.URLParam(r, "repo")
	numberStr := chi.URLParam(r, "number")

	number, err := strconv.Atoi(numberStr)
	if err != nil || number <= 0 {
		writeMessageBadge(w, http.StatusBadRequest, "Bad Request")
		return
	}

	b, err := s.badgeService.Badge(r.Context(), s.sessionToken(r), owner, repo, number)
	if err != nil {
		status, text := mapDomainError(err)
		writeMessageBadge(w, status, text)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	if err := badge.WriteBadge(w, b); err != nil {
		slog.Error("badge render failed", "owner", owner, "repo", repo, "number", number, "error", err)
	}
}
