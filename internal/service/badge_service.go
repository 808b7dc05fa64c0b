package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/AlekseyZapadovnikov/issue-badge/internal/badge"
	"github.com/AlekseyZapadovnikov/issue-badge/internal/domain"
	"github.com/AlekseyZapadovnikov/issue-badge/internal/models"
)

// IssueFetcher описывает клиент удалённого трекера, который нужен сервису.
type IssueFetcher interface {
	FetchIssue(ctx context.Context, owner, repo string, number int) (*domain.Issue, domain.RateLimit, error)
}

// FetcherFactory создаёт клиент трекера под выбранный Credential.
// Клиент живёт один запрос: токен в нём фиксирован.
type FetcherFactory func(cred domain.Credential) (IssueFetcher, error)

// AvatarInliner превращает ссылку на аватар в data-URI; сбой — пустая строка.
type AvatarInliner interface {
	Inline(ctx context.Context, user *domain.UserRef) string
}

// BadgeManager собирает данные бейджа: выбирает токен, получает issue,
// параллельно подтягивает аватары и считает геометрию.
type BadgeManager struct {
	newFetcher    FetcherFactory
	inliner       AvatarInliner
	fallbackToken string
}

// NewBadgeManager создаёт сервис бейджей.
func NewBadgeManager(factory FetcherFactory, inliner AvatarInliner, fallbackToken string) *BadgeManager {
	return &BadgeManager{
		newFetcher:    factory,
		inliner:       inliner,
		fallbackToken: fallbackToken,
	}
}

// Badge обрабатывает один запрос бейджа. Последовательность строго по шагам:
// выбор токена -> запрос issue (и, возможно, статуса слияния) -> классификация ->
// аватары -> геометрия. Ошибки получения issue прерывают запрос; недоступные
// аватары — нет.
func (m *BadgeManager) Badge(ctx context.Context, sessionToken, owner, repo string, number int) (*models.Badge, error) {
	cred, err := domain.ResolveCredential(sessionToken, m.fallbackToken)
	if err != nil {
		return nil, err
	}

	fetcher, err := m.newFetcher(cred)
	if err != nil {
		return nil, err
	}

	issue, rate, err := fetcher.FetchIssue(ctx, owner, repo, number)
	if err != nil {
		return nil, err
	}

	// Аватары assignee и автора независимы; тянем их параллельно.
	// Каждый слот опционален — оба могут остаться пустыми.
	var assigneeURI, authorURI string
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		assigneeURI = m.inliner.Inline(ctx, issue.Assignee)
	}()
	go func() {
		defer wg.Done()
		authorURI = m.inliner.Inline(ctx, issue.Author)
	}()
	wg.Wait()

	slog.Info("badge rendered",
		"owner", owner,
		"repo", repo,
		"number", number,
		"state", issue.State,
		"credential_source", cred.Source,
		"rate_remaining", rate.Remaining,
		"rate_limit", rate.Limit,
	)

	return &models.Badge{
		Number:         issue.Number,
		State:          issue.State,
		StateColor:     issue.State.Color(),
		Labels:         issue.Labels,
		AssigneeAvatar: assigneeURI,
		AuthorAvatar:   authorURI,
		Geometry:       badge.ComputeGeometry(issue.Number, issue.State, len(issue.Labels)),
	}, nil
}
