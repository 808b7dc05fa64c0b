package web

import (
	"context"

	"github.com/AlekseyZapadovnikov/issue-badge/internal/models"
)

// BadgeService описывает операции сервиса бейджей, которые нужны HTTP-слою.
type BadgeService interface {
	Badge(ctx context.Context, sessionToken, owner, repo string, number int) (*models.Badge, error)
}

// OAuthExchanger закрывает OAuth-поток: адрес авторизации и обмен кода на токен.
type OAuthExchanger interface {
	AuthCodeURL(scope string) string
	Exchange(ctx context.Context, code string) (string, error)
}
