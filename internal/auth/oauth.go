package auth

import (
	"context"
	"log/slog"

	"golang.org/x/oauth2"
	githuboauth "golang.org/x/oauth2/github"

	"github.com/AlekseyZapadovnikov/issue-badge/internal/domain"
)

// Области доступа GitHub, выбираемые параметром запроса only.
const (
	ScopePublic = "public_repo"
	ScopeFull   = "repo"
)

// ScopeFor выбирает область доступа: only=public даёт доступ только к
// публичным репозиториям, любое другое значение — полный repo-scope.
func ScopeFor(only string) string {
	if only == "public" {
		return ScopePublic
	}
	return ScopeFull
}

// Exchanger меняет код авторизации на токен доступа через token endpoint
// GitHub и строит адрес для перенаправления на страницу авторизации.
type Exchanger struct {
	cfg oauth2.Config
}

// NewExchanger создаёт Exchanger для OAuth-приложения GitHub.
func NewExchanger(clientID, clientSecret string) *Exchanger {
	return &Exchanger{
		cfg: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     githuboauth.Endpoint,
		},
	}
}

// AuthCodeURL возвращает адрес страницы авторизации GitHub с нужным scope.
func (e *Exchanger) AuthCodeURL(scope string) string {
	cfg := e.cfg
	cfg.Scopes = []string{scope}
	return cfg.AuthCodeURL("")
}

// Exchange меняет код авторизации на токен доступа. Пустой код отклоняется
// до любого сетевого вызова. Отказ провайдера (или ответ без access_token,
// в том числе тело с полем error при статусе 200) возвращается как
// ErrAuthFailed; подробность попадает только в лог, не пользователю.
func (e *Exchanger) Exchange(ctx context.Context, code string) (string, error) {
	if code == "" {
		return "", domain.NewBadRequestError("authorization code is required")
	}

	token, err := e.cfg.Exchange(ctx, code)
	if err != nil {
		slog.Error("oauth token exchange rejected", "error", err)
		return "", domain.NewAuthFailedError("token exchange rejected")
	}
	if token.AccessToken == "" {
		slog.Error("oauth token exchange returned empty access token")
		return "", domain.NewAuthFailedError("empty access token in response")
	}

	return token.AccessToken, nil
}
