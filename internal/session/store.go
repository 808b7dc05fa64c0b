package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
)

// Store — хранилище токенов доступа, привязанных к идентификатору сессии.
// Ядро опирается только на контракт get/set: Credential Resolver читает,
// OAuth-коллбек пишет. Токены непрозрачны и никогда не обновляются.
type Store interface {
	Token(id string) (string, bool)
	SetToken(id, token string)
}

// MemoryStore — потокобезопасная реализация Store в памяти процесса.
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[string]string
}

// NewMemoryStore создаёт пустое хранилище сессий.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[string]string)}
}

// Token возвращает токен сессии и признак его наличия.
func (s *MemoryStore) Token(id string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	token, ok := s.tokens[id]
	return token, ok
}

// SetToken сохраняет токен для идентификатора сессии.
func (s *MemoryStore) SetToken(id, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[id] = token
}

// NewSessionID генерирует криптослучайный идентификатор сессии для cookie.
func NewSessionID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
