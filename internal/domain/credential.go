package domain

// CredentialSource указывает, откуда взят токен доступа.
type CredentialSource string

// Возможные значения CredentialSource.
const (
	SourceSession        CredentialSource = "session"
	SourceStaticFallback CredentialSource = "static_fallback"
)

// Credential хранит токен доступа к GitHub и его происхождение.
// Выбирается один раз на запрос и нигде не сохраняется.
type Credential struct {
	Token  string
	Source CredentialSource
}

// ResolveCredential выбирает токен для обращения к GitHub: сессионный токен
// имеет приоритет, затем статический fallback из конфигурации. Если нет ни
// одного — возвращает ErrAuthRequired. Чистая функция, без сетевых вызовов.
func ResolveCredential(sessionToken, staticToken string) (Credential, error) {
	if sessionToken != "" {
		return Credential{Token: sessionToken, Source: SourceSession}, nil
	}
	if staticToken != "" {
		return Credential{Token: staticToken, Source: SourceStaticFallback}, nil
	}
	return Credential{}, NewAuthRequiredError()
}
