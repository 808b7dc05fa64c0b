package web

import (
	"log/slog"
	"net/http"

	"github.com/AlekseyZapadovnikov/issue-badge/internal/auth"
	"github.com/AlekseyZapadovnikov/issue-badge/internal/session"
)

// handleAuth перенаправляет пользователя на страницу авторизации GitHub.
// Без настроенной OAuth-пары маршрут отвечает 404.
func (s *Server) handleAuth(w http.ResponseWriter, r *http.Request) {
	if !s.oauthConfigured {
		writeMessageBadge(w, http.StatusNotFound, "Not Found")
		return
	}

	scope := auth.ScopeFor(r.URL.Query().Get("only"))
	http.Redirect(w, r, s.exchanger.AuthCodeURL(scope), http.StatusFound)
}

// handleAuthCallback принимает код авторизации, меняет его на токен
// и сохраняет токен в сессии.
func (s *Server) handleAuthCallback(w http.ResponseWriter, r *http.Request) {
	if !s.oauthConfigured {
		writeMessageBadge(w, http.StatusNotFound, "Not Found")
		return
	}

	token, err := s.exchanger.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		status, text := mapDomainError(err)
		writeMessageBadge(w, status, text)
		return
	}

	sid, err := s.ensureSession(w, r)
	if err != nil {
		slog.Error("session id generation failed", "error", err)
		writeMessageBadge(w, http.StatusInternalServerError, "Internal Error")
		return
	}
	s.sessions.SetToken(sid, token)

	writeMessageBadge(w, http.StatusOK, "Authorized")
}

// ensureSession возвращает идентификатор сессии из cookie либо создаёт
// новый и выставляет cookie.
func (s *Server) ensureSession(w http.ResponseWriter, r *http.Request) (string, error) {
	if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	sid, err := session.NewSessionID()
	if err != nil {
		return "", err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sid, nil
}
