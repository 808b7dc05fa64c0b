package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/AlekseyZapadovnikov/issue-badge/conf"
	"github.com/AlekseyZapadovnikov/issue-badge/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// sessionCookie — имя cookie с идентификатором сессии.
const sessionCookie = "badge_session"

type Server struct {
	Address string
	server  *http.Server

	router          *chi.Mux
	badgeService    BadgeService
	sessions        session.Store
	exchanger       OAuthExchanger
	oauthConfigured bool
}

// New конструирует HTTP-сервер на базе chi и регистрирует все маршруты.
// oauthConfigured отключает маршруты OAuth-потока, когда пара client id /
// client secret не задана (деплой только со статическим токеном).
func New(cfg conf.HttpServConf, badges BadgeService, sessions session.Store, exchanger OAuthExchanger, oauthConfigured bool) *Server {
	servAdres := cfg.GetAddress()
	mux := chi.NewMux()
	srv := &Server{
		Address:         servAdres,
		router:          mux,
		badgeService:    badges,
		sessions:        sessions,
		exchanger:       exchanger,
		oauthConfigured: oauthConfigured,
	}
	srv.server = &http.Server{
		Addr:    servAdres,
		Handler: mux,
	}

	srv.setupRoutes()

	return srv
}

// Start запускает HTTP-сервер и блокирует поток до остановки.
func (s *Server) Start() error {
	slog.Info("server starting", "address", s.server.Addr)
	return s.server.ListenAndServe()
}

// setupRoutes настраивает middleware и HTTP-маршруты.
func (s *Server) setupRoutes() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	// Простейший health-check.
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Рендер бейджа.
	s.router.Get("/badge/{owner}/{repo}/{number}", s.handleBadge)

	// OAuth-поток: редирект на авторизацию и приём кода.
	s.router.Get("/auth", s.handleAuth)
	s.router.Get("/auth/callback", s.handleAuthCallback)
}

// Shutdown останавливает HTTP-сервер с таймаутом на корректное завершение.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// sessionToken возвращает токен текущей сессии запроса, если он есть.
func (s *Server) sessionToken(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return ""
	}
	token, ok := s.sessions.Token(cookie.Value)
	if !ok {
		return ""
	}
	return token
}

// writeJSON сериализует структуру в JSON-ответ с нужным статусом.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
