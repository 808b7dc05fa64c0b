package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/AlekseyZapadovnikov/issue-badge/internal/badge"
	"github.com/AlekseyZapadovnikov/issue-badge/internal/domain"
)

// mapDomainError переводит доменные ошибки в HTTP-статус и короткий текст
// message-бейджа. Детали AuthFailed и UpstreamError остаются в логе.
func mapDomainError(err error) (status int, text string) {
	switch {
	case errors.Is(err, domain.ErrAuthRequired):
		return http.StatusForbidden, "Visit /auth"
	case errors.Is(err, domain.ErrBadRequest):
		return http.StatusBadRequest, "Bad Request"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Issue Not Found"
	case errors.Is(err, domain.ErrAuthFailed):
		return http.StatusInternalServerError, "Authorization Failed"
	case errors.Is(err, domain.ErrUpstream):
		var upstream *domain.UpstreamError
		if errors.As(err, &upstream) {
			slog.Warn("github request failed", "upstream_status", upstream.StatusCode, "err", err.Error())
		}
		return http.StatusInternalServerError, "GitHub Error"
	default:
		slog.Warn("unmapped domain error", "err", err.Error())
		return http.StatusInternalServerError, "Internal Error"
	}
}

// writeMessageBadge отвечает message-бейджем с заданным статусом и текстом.
func writeMessageBadge(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(status)
	if err := badge.WriteMessage(w, status, text); err != nil {
		slog.Error("message badge render failed", "error", err)
	}
}
