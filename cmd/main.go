package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AlekseyZapadovnikov/issue-badge/conf"
	"github.com/AlekseyZapadovnikov/issue-badge/internal/auth"
	"github.com/AlekseyZapadovnikov/issue-badge/internal/avatar"
	"github.com/AlekseyZapadovnikov/issue-badge/internal/domain"
	ghclient "github.com/AlekseyZapadovnikov/issue-badge/internal/github"
	"github.com/AlekseyZapadovnikov/issue-badge/internal/service"
	"github.com/AlekseyZapadovnikov/issue-badge/internal/session"
	"github.com/AlekseyZapadovnikov/issue-badge/internal/web"
)

// main конфигурирует сервис, собирает зависимости и HTTP-сервер, а затем
// управляет их жизненным циклом.
func main() {
	// Берём путь до конфигурации из окружения либо используем значение по умолчанию.
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "./conf/config.json"
	}

	// Загружаем конфигурацию. Отсутствие и OAuth-пары, и fallback-токена —
	// фатальная ошибка конфигурации, MustLoad паникует.
	config := conf.MustLoad(cfgPath)
	slog.Info("Configuration loaded successfully", "config_path", cfgPath)
	slog.Info("GitHub configuration",
		"oauth_configured", config.GitHubConf.HasOAuthPair(),
		"fallback_token_set", config.GitHubConf.FallbackToken != "",
		"api_base_url", config.GitHubConf.APIBaseURL,
	)

	// Хранилище сессионных токенов в памяти процесса.
	sessions := session.NewMemoryStore()

	// Клиент GitHub создаётся на каждый запрос под выбранный токен.
	apiBaseURL := config.GitHubConf.APIBaseURL
	factory := func(cred domain.Credential) (service.IssueFetcher, error) {
		return ghclient.NewClient(cred, apiBaseURL)
	}

	// Сервис бейджей с inline-аватарами.
	inliner := avatar.NewInliner(5 * time.Second)
	badges := service.NewBadgeManager(factory, inliner, config.GitHubConf.FallbackToken)
	slog.Info("Badge manager created successfully")

	// OAuth-обменник.
	exchanger := auth.NewExchanger(config.GitHubConf.ClientID, config.GitHubConf.ClientSecret)

	// Поднимаем HTTP-сервер.
	server := web.New(config.HTTPServConf, badges, sessions, exchanger, config.GitHubConf.HasOAuthPair())
	slog.Info("HTTP server created successfully", "address", server.Address)

	// Запускаем сервер в отдельной горутине.
	go func() {
		if err := server.Start(); err != nil && err.Error() != "http: Server closed" {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Issue badge service started successfully", "address", server.Address)

	// Ожидаем сигнал остановки для плавного завершения работы.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	// Выполняем корректное завершение сервера с тайм-аутом.
	if err := server.Shutdown(context.Background()); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}
