package session_adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt"

	"property-search-service/internal/core/domain"
)

// TokenCookieName - имя cookie, в которой фронтенд хранит токен.
const TokenCookieName = "token"

// CookieSessionAdapter читает токен из cookie-хранилища при каждом
// обращении. Ничего не кэширует: источником правды остаётся хранилище.
type CookieSessionAdapter struct {
	jar        http.CookieJar
	backendURL *url.URL
	now        func() time.Time
}

func NewCookieSessionAdapter(jar http.CookieJar, backendURL string) (*CookieSessionAdapter, error) {
	u, err := url.Parse(backendURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend URL: %w", err)
	}
	return &CookieSessionAdapter{jar: jar, backendURL: u, now: time.Now}, nil
}

// Token возвращает действующий токен. Отсутствующая cookie или истёкший
// JWT дают domain.ErrNotAuthenticated - вызов бэкенда в этом случае не
// имеет смысла, пользователя ведут на вход.
func (a *CookieSessionAdapter) Token(ctx context.Context) (string, error) {
	var raw string
	for _, cookie := range a.jar.Cookies(a.backendURL) {
		if cookie.Name == TokenCookieName {
			raw = cookie.Value
			break
		}
	}
	if raw == "" {
		return "", domain.ErrNotAuthenticated
	}

	if expired, known := tokenExpired(raw, a.now()); known && expired {
		return "", fmt.Errorf("session token expired: %w", domain.ErrNotAuthenticated)
	}
	return raw, nil
}

// tokenExpired проверяет exp-клейм без проверки подписи - подпись знает
// только бэкенд. Непарсящийся токен считаем непрозрачным и пропускаем:
// решающее слово за бэкендом.
func tokenExpired(raw string, now time.Time) (expired, known bool) {
	claims := jwt.MapClaims{}
	parser := &jwt.Parser{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return false, false
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return false, false
	}
	return now.Unix() >= int64(exp), true
}
