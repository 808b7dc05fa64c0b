package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"

	"github.com/AlekseyZapadovnikov/issue-badge/internal/domain"
)

// requestTimeout — консервативный таймаут на один вызов GitHub API.
const requestTimeout = 5 * time.Second

// Client получает снимок issue из GitHub API. Создаётся на каждый запрос
// под конкретный Credential; повторных попыток не делает.
type Client struct {
	gh *github.Client
}

// NewClient создаёт клиент GitHub API с токеном из cred. Непустой apiBaseURL
// переключает клиент на альтернативную инсталляцию (enterprise).
func NewClient(cred domain.Credential, apiBaseURL string) (*Client, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cred.Token})
	httpClient := oauth2.NewClient(context.Background(), ts)
	httpClient.Timeout = requestTimeout

	gh := github.NewClient(httpClient)
	if apiBaseURL != "" {
		base, err := url.Parse(apiBaseURL)
		if err != nil {
			return nil, fmt.Errorf("parse api base url: %w", err)
		}
		if !strings.HasSuffix(base.Path, "/") {
			base.Path += "/"
		}
		gh.BaseURL = base
	}

	return &Client{gh: gh}, nil
}

// FetchIssue запрашивает issue по (owner, repo, number) и, только для
// закрытого pull request, вторым вызовом уточняет факт слияния. Для открытых
// issue и обычных закрытых issue второй вызов не выполняется. Вместе со
// снимком возвращает остаток квоты API из последнего ответа.
func (c *Client) FetchIssue(ctx context.Context, owner, repo string, number int) (*domain.Issue, domain.RateLimit, error) {
	raw, resp, err := c.gh.Issues.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, domain.RateLimit{}, mapError(err, "issue")
	}

	issue := convertIssue(raw)
	rate := rateLimit(resp)

	if issue.RawState == domain.RawStateClosed && issue.IsPullRequest {
		merged, mresp, err := c.gh.PullRequests.IsMerged(ctx, owner, repo, number)
		if err != nil {
			return nil, rate, mapError(err, "pull request")
		}
		issue.MergedConfirmed = merged
		rate = rateLimit(mresp)
	}

	issue.State = domain.Classify(issue.RawState, issue.IsPullRequest, issue.MergedConfirmed)
	return issue, rate, nil
}

// mapError переводит ошибки go-github в доменные: 404 — ErrNotFound,
// всё остальное — UpstreamError с кодом удалённого ответа.
func mapError(err error, resource string) error {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		if ghErr.Response.StatusCode == http.StatusNotFound {
			return domain.NewNotFoundError(resource)
		}
		return &domain.UpstreamError{StatusCode: ghErr.Response.StatusCode, Err: err}
	}
	return &domain.UpstreamError{Err: err}
}

// convertIssue переводит ответ go-github в доменный снимок issue.
func convertIssue(raw *github.Issue) *domain.Issue {
	issue := &domain.Issue{
		Number:        raw.GetNumber(),
		RawState:      raw.GetState(),
		IsPullRequest: raw.PullRequestLinks != nil,
		Assignee:      convertUser(raw.Assignee),
		Author:        convertUser(raw.User),
	}

	for _, label := range raw.Labels {
		if label == nil {
			continue
		}
		issue.Labels = append(issue.Labels, domain.Label{
			Name:  label.GetName(),
			Color: label.GetColor(),
		})
	}

	return issue
}

func convertUser(user *github.User) *domain.UserRef {
	if user == nil {
		return nil
	}
	return &domain.UserRef{
		Handle:    user.GetLogin(),
		AvatarURL: user.GetAvatarURL(),
	}
}

func rateLimit(resp *github.Response) domain.RateLimit {
	if resp == nil {
		return domain.RateLimit{}
	}
	return domain.RateLimit{
		Remaining: resp.Rate.Remaining,
		Limit:     resp.Rate.Limit,
	}
}
