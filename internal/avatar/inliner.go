package avatar

import (
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/AlekseyZapadovnikov/issue-badge/internal/domain"
)

// avatarSize — размер аватара в пикселях, запрашиваемый у GitHub.
const avatarSize = "20"

// maxAvatarBytes ограничивает читаемое тело ответа.
const maxAvatarBytes = 1 << 20

// Inliner скачивает аватар пользователя и кодирует его в data-URI
// для встраивания прямо в SVG.
type Inliner struct {
	client *http.Client
}

// NewInliner создаёт Inliner с консервативным таймаутом на один запрос.
func NewInliner(timeout time.Duration) *Inliner {
	return &Inliner{
		client: &http.Client{Timeout: timeout},
	}
}

// Inline возвращает data-URI аватара пользователя либо пустую строку.
// Любой сбой (нет пользователя, нет URL, сетевая ошибка, не-2xx ответ,
// таймаут) — мягкий: бейдж обязан отрендериться и без аватара, поэтому
// ошибка никогда не возвращается наружу.
func (i *Inliner) Inline(ctx context.Context, user *domain.UserRef) string {
	if user == nil || user.AvatarURL == "" {
		return ""
	}

	url := user.AvatarURL
	if strings.Contains(url, "?") {
		url += "&s=" + avatarSize
	} else {
		url += "?s=" + avatarSize
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		slog.Debug("avatar request build failed", "user", user.Handle, "error", err)
		return ""
	}

	resp, err := i.client.Do(req)
	if err != nil {
		slog.Debug("avatar fetch failed", "user", user.Handle, "error", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Debug("avatar fetch returned non-2xx", "user", user.Handle, "status", resp.StatusCode)
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAvatarBytes))
	if err != nil {
		slog.Debug("avatar body read failed", "user", user.Handle, "error", err)
		return ""
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}

	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(body)
}
