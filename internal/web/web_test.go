package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AlekseyZapadovnikov/issue-badge/conf"
	"github.com/AlekseyZapadovnikov/issue-badge/internal/badge"
	"github.com/AlekseyZapadovnikov/issue-badge/internal/domain"
	"github.com/AlekseyZapadovnikov/issue-badge/internal/models"
	"github.com/AlekseyZapadovnikov/issue-badge/internal/session"
	"github.com/stretchr/testify/require"
)

type fakeBadgeService struct {
	badgeFn func(ctx context.Context, sessionToken, owner, repo string, number int) (*models.Badge, error)
}

func (f *fakeBadgeService) Badge(ctx context.Context, sessionToken, owner, repo string, number int) (*models.Badge, error) {
	if f == nil || f.badgeFn == nil {
		return nil, domain.NewNotFoundError("issue")
	}
	return f.badgeFn(ctx, sessionToken, owner, repo, number)
}

type fakeExchanger struct {
	authCodeURLFn func(scope string) string
	exchangeFn    func(ctx context.Context, code string) (string, error)
}

func (f *fakeExchanger) AuthCodeURL(scope string) string {
	if f == nil || f.authCodeURLFn == nil {
		return "https://example.com/authorize?scope=" + scope
	}
	return f.authCodeURLFn(scope)
}

func (f *fakeExchanger) Exchange(ctx context.Context, code string) (string, error) {
	if f == nil || f.exchangeFn == nil {
		return "", domain.NewAuthFailedError("not configured in test")
	}
	return f.exchangeFn(ctx, code)
}

func newTestServer(badges BadgeService, store session.Store, exchanger OAuthExchanger, oauthConfigured bool) *Server {
	if store == nil {
		store = session.NewMemoryStore()
	}
	cfg := conf.HttpServConf{Host: "127.0.0.1", Port: "9999"}
	return New(cfg, badges, store, exchanger, oauthConfigured)
}

func testBadge() *models.Badge {
	return &models.Badge{
		Number:     7,
		State:      domain.StateOpen,
		StateColor: domain.StateOpen.Color(),
		Geometry:   badge.ComputeGeometry(7, domain.StateOpen, 0),
	}
}

func TestNewServerRegistersRoutes(t *testing.T) {
	cfg := conf.HttpServConf{Host: "127.0.0.1", Port: "9999"}
	srv := New(cfg, &fakeBadgeService{}, session.NewMemoryStore(), &fakeExchanger{}, true)

	require.Equal(t, cfg.GetAddress(), srv.Address)
	require.NotNil(t, srv.router)
	require.NotNil(t, srv.server)
	require.Equal(t, srv.router, srv.server.Handler)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	srv.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "ok", resp["status"])
}

func TestHandleBadge(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := newTestServer(&fakeBadgeService{
			badgeFn: func(_ context.Context, sessionToken, owner, repo string, number int) (*models.Badge, error) {
				require.Empty(t, sessionToken)
				require.Equal(t, "acme", owner)
				require.Equal(t, "widgets", repo)
				require.Equal(t, 7, number)
				return testBadge(), nil
			},
		}, nil, &fakeExchanger{}, true)

		req := httptest.NewRequest(http.MethodGet, "/badge/acme/widgets/7", nil)
		rr := httptest.NewRecorder()
		srv.router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		require.Equal(t, "image/svg+xml", rr.Header().Get("Content-Type"))
		require.Contains(t, rr.Body.String(), `width="82"`)
		require.Contains(t, rr.Body.String(), ">open<")
	})

	t.Run("session token from cookie", func(t *testing.T) {
		store := session.NewMemoryStore()
		store.SetToken("sid-42", "session-token")

		srv := newTestServer(&fakeBadgeService{
			badgeFn: func(_ context.Context, sessionToken, _, _ string, _ int) (*models.Badge, error) {
				require.Equal(t, "session-token", sessionToken)
				return testBadge(), nil
			},
		}, store, &fakeExchanger{}, true)

		req := httptest.NewRequest(http.MethodGet, "/badge/acme/widgets/7", nil)
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "sid-42"})
		rr := httptest.NewRecorder()
		srv.router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("non-numeric number", func(t *testing.T) {
		called := false
		srv := newTestServer(&fakeBadgeService{
			badgeFn: func(context.Context, string, string, string, int) (*models.Badge, error) {
				called = true
				return nil, nil
			},
		}, nil, &fakeExchanger{}, true)

		req := httptest.NewRequest(http.MethodGet, "/badge/acme/widgets/abc", nil)
		rr := httptest.NewRecorder()
		srv.router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		require.Contains(t, rr.Body.String(), "400 Bad Request")
		require.False(t, called)
	})

	t.Run("negative number", func(t *testing.T) {
		srv := newTestServer(&fakeBadgeService{}, nil, &fakeExchanger{}, true)

		req := httptest.NewRequest(http.MethodGet, "/badge/acme/widgets/-3", nil)
		rr := httptest.NewRecorder()
		srv.router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("auth required", func(t *testing.T) {
		srv := newTestServer(&fakeBadgeService{
			badgeFn: func(context.Context, string, string, string, int) (*models.Badge, error) {
				return nil, domain.NewAuthRequiredError()
			},
		}, nil, &fakeExchanger{}, true)

		req := httptest.NewRequest(http.MethodGet, "/badge/acme/widgets/7", nil)
		rr := httptest.NewRecorder()
		srv.router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusForbidden, rr.Code)
		require.Equal(t, "image/svg+xml", rr.Header().Get("Content-Type"))
		require.Contains(t, rr.Body.String(), "Visit /auth")
	})

	t.Run("issue not found", func(t *testing.T) {
		srv := newTestServer(&fakeBadgeService{
			badgeFn: func(context.Context, string, string, string, int) (*models.Badge, error) {
				return nil, domain.NewNotFoundError("issue")
			},
		}, nil, &fakeExchanger{}, true)

		req := httptest.NewRequest(http.MethodGet, "/badge/acme/widgets/7", nil)
		rr := httptest.NewRecorder()
		srv.router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
		require.Contains(t, rr.Body.String(), "404 Issue Not Found")
	})

	t.Run("upstream failure", func(t *testing.T) {
		srv := newTestServer(&fakeBadgeService{
			badgeFn: func(context.Context, string, string, string, int) (*models.Badge, error) {
				return nil, &domain.UpstreamError{StatusCode: 502}
			},
		}, nil, &fakeExchanger{}, true)

		req := httptest.NewRequest(http.MethodGet, "/badge/acme/widgets/7", nil)
		rr := httptest.NewRecorder()
		srv.router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusInternalServerError, rr.Code)
		require.Contains(t, rr.Body.String(), "GitHub Error")
	})
}

func TestHandleAuth(t *testing.T) {
	t.Run("redirects with full scope", func(t *testing.T) {
		srv := newTestServer(&fakeBadgeService{}, nil, &fakeExchanger{}, true)

		req := httptest.NewRequest(http.MethodGet, "/auth", nil)
		rr := httptest.NewRecorder()
		srv.router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusFound, rr.Code)
		require.Equal(t, "https://example.com/authorize?scope=repo", rr.Header().Get("Location"))
	})

	t.Run("redirects with public scope", func(t *testing.T) {
		srv := newTestServer(&fakeBadgeService{}, nil, &fakeExchanger{}, true)

		req := httptest.NewRequest(http.MethodGet, "/auth?only=public", nil)
		rr := httptest.NewRecorder()
		srv.router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusFound, rr.Code)
		require.Equal(t, "https://example.com/authorize?scope=public_repo", rr.Header().Get("Location"))
	})

	t.Run("not found without oauth pair", func(t *testing.T) {
		srv := newTestServer(&fakeBadgeService{}, nil, &fakeExchanger{}, false)

		req := httptest.NewRequest(http.MethodGet, "/auth", nil)
		rr := httptest.NewRecorder()
		srv.router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestHandleAuthCallback(t *testing.T) {
	t.Run("stores token and sets session cookie", func(t *testing.T) {
		store := session.NewMemoryStore()
		srv := newTestServer(&fakeBadgeService{}, store, &fakeExchanger{
			exchangeFn: func(_ context.Context, code string) (string, error) {
				require.Equal(t, "the-code", code)
				return "gho_abc123", nil
			},
		}, true)

		req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=the-code", nil)
		rr := httptest.NewRecorder()
		srv.router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		require.Contains(t, rr.Body.String(), "200 Authorized")

		cookies := rr.Result().Cookies()
		require.Len(t, cookies, 1)
		require.Equal(t, sessionCookie, cookies[0].Name)

		token, ok := store.Token(cookies[0].Value)
		require.True(t, ok)
		require.Equal(t, "gho_abc123", token)
	})

	t.Run("reuses existing session cookie", func(t *testing.T) {
		store := session.NewMemoryStore()
		srv := newTestServer(&fakeBadgeService{}, store, &fakeExchanger{
			exchangeFn: func(context.Context, string) (string, error) {
				return "gho_new", nil
			},
		}, true)

		req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=the-code", nil)
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "sid-existing"})
		rr := httptest.NewRecorder()
		srv.router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		require.Empty(t, rr.Result().Cookies())

		token, ok := store.Token("sid-existing")
		require.True(t, ok)
		require.Equal(t, "gho_new", token)
	})

	t.Run("missing code", func(t *testing.T) {
		srv := newTestServer(&fakeBadgeService{}, nil, &fakeExchanger{
			exchangeFn: func(_ context.Context, code string) (string, error) {
				require.Empty(t, code)
				return "", domain.NewBadRequestError("authorization code is required")
			},
		}, true)

		req := httptest.NewRequest(http.MethodGet, "/auth/callback", nil)
		rr := httptest.NewRecorder()
		srv.router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		require.Contains(t, rr.Body.String(), "400 Bad Request")
	})

	t.Run("exchange rejected", func(t *testing.T) {
		srv := newTestServer(&fakeBadgeService{}, nil, &fakeExchanger{
			exchangeFn: func(context.Context, string) (string, error) {
				return "", domain.NewAuthFailedError("token exchange rejected")
			},
		}, true)

		req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=bad", nil)
		rr := httptest.NewRecorder()
		srv.router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusInternalServerError, rr.Code)
		require.Contains(t, rr.Body.String(), "Authorization Failed")
	})

	t.Run("not found without oauth pair", func(t *testing.T) {
		srv := newTestServer(&fakeBadgeService{}, nil, &fakeExchanger{}, false)

		req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=the-code", nil)
		rr := httptest.NewRecorder()
		srv.router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		text   string
	}{
		{name: "auth required", err: domain.ErrAuthRequired, status: http.StatusForbidden, text: "Visit /auth"},
		{name: "bad request", err: domain.ErrBadRequest, status: http.StatusBadRequest, text: "Bad Request"},
		{name: "not found", err: domain.ErrNotFound, status: http.StatusNotFound, text: "Issue Not Found"},
		{name: "auth failed", err: domain.ErrAuthFailed, status: http.StatusInternalServerError, text: "Authorization Failed"},
		{name: "upstream", err: &domain.UpstreamError{StatusCode: 503}, status: http.StatusInternalServerError, text: "GitHub Error"},
		{name: "default", err: errors.New("boom"), status: http.StatusInternalServerError, text: "Internal Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, text := mapDomainError(tt.err)
			require.Equal(t, tt.status, status)
			require.Equal(t, tt.text, text)
		})
	}
}
