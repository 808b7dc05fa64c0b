package conf

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

var configValidator = newConfigValidator()

type Config struct {
	HTTPServConf HttpServConf `json:"httpServer" validate:"required"`
	GitHubConf   GitHubConf   `json:"github" validate:"required"`
}

type HttpServConf struct {
	Host    string `json:"host" validate:"required"`
	Port    string `json:"port" validate:"required,min=1,max=65535"`
	BaseURL string `json:"baseURL"`
}

// GetAddress возвращает строку host:port для запуска HTTP-сервера.
func (s *HttpServConf) GetAddress() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type GitHubConf struct {
	// ClientID и ClientSecret — OAuth-приложение GitHub; задаются парой.
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	// FallbackToken — статический токен, используемый при отсутствии сессионного.
	FallbackToken string `json:"fallbackToken"`
	// APIBaseURL — альтернативный базовый адрес GitHub API (enterprise-инсталляции).
	APIBaseURL string `json:"apiBaseURL"`
}

// HasOAuthPair сообщает, настроена ли пара client id / client secret.
func (g *GitHubConf) HasOAuthPair() bool {
	return g.ClientID != "" && g.ClientSecret != ""
}

// MustLoad читает файл конфигурации, применяет значения из окружения и валидирует структуру.
func MustLoad(path string) *Config {
	data, err := os.ReadFile(path)
	if err != nil {
		panic("could not read config file: " + err.Error())
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		panic("could not parse config file: " + err.Error())
	}

	applyEnvOverrides(&cfg)

	if err := configValidator.Struct(cfg); err != nil {
		panic("invalid config: " + err.Error())
	}

	return &cfg
}

// applyEnvOverrides подменяет поля конфигурации значениями из переменных окружения.
func applyEnvOverrides(cfg *Config) {
	override := func(key string, target *string) {
		if val := os.Getenv(key); val != "" {
			*target = val
		}
	}

	override("HTTP_HOST", &cfg.HTTPServConf.Host)
	override("HTTP_PORT", &cfg.HTTPServConf.Port)
	override("HTTP_BASE_URL", &cfg.HTTPServConf.BaseURL)

	override("GITHUB_CLIENT_ID", &cfg.GitHubConf.ClientID)
	override("GITHUB_CLIENT_SECRET", &cfg.GitHubConf.ClientSecret)
	override("GITHUB_ACCESS_TOKEN", &cfg.GitHubConf.FallbackToken)
	override("GITHUB_API_BASE_URL", &cfg.GitHubConf.APIBaseURL)
}

// newConfigValidator настраивает валидатор и регистрирует пользовательские проверки.
func newConfigValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(validateGitHubConf, GitHubConf{})
	return v
}

// validateGitHubConf проверяет полноту учётных данных GitHub: client id и
// client secret задаются только парой, и хотя бы один способ доступа
// (OAuth-пара либо fallback-токен) обязан присутствовать при старте.
func validateGitHubConf(sl validator.StructLevel) {
	g := sl.Current().Interface().(GitHubConf)

	if (g.ClientID == "") != (g.ClientSecret == "") {
		sl.ReportError(g.ClientSecret, "ClientSecret", "clientSecret", "oauth-pair", "")
	}

	if !g.HasOAuthPair() && g.FallbackToken == "" {
		sl.ReportError(g.FallbackToken, "FallbackToken", "fallbackToken", "credentials", "")
	}
}
