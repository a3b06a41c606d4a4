package session

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoSession      = errors.New("session: no session")
	ErrInvalidSession = errors.New("session: invalid session")
)

type claims struct {
	UserID     int64  `json:"user_id"`
	Login      string `json:"login"`
	Role       string `json:"role"`
	EmployeeID *int64 `json:"employee_id,omitempty"`
	jwt.RegisteredClaims
}

// Manager signs and reads the HS256 session token carried by the grh-session
// cookie (or an Authorization: Bearer header for API clients).
type Manager struct {
	secret     []byte
	cookieName string
	ttl        time.Duration
	now        func() time.Time
}

func NewManager(secret, cookieName string, ttl time.Duration) *Manager {
	return &Manager{
		secret:     []byte(secret),
		cookieName: cookieName,
		ttl:        ttl,
		now:        time.Now,
	}
}

func (m *Manager) CookieName() string {
	return m.cookieName
}

// Issue signs a token for id. Login itself lives outside this service; Issue
// is what that collaborator calls.
func (m *Manager) Issue(id Identity) (string, error) {
	now := m.now()
	c := claims{
		UserID:     id.UserID,
		Login:      id.Login,
		Role:       id.Role,
		EmployeeID: id.EmployeeID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Subject(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
}

func (m *Manager) Parse(token string) (*Identity, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if c.UserID <= 0 || c.Role == "" {
		return nil, ErrInvalidSession
	}

	return &Identity{
		UserID:     c.UserID,
		Login:      c.Login,
		Role:       c.Role,
		EmployeeID: c.EmployeeID,
	}, nil
}

// FromRequest reads the token from the Authorization header first, then the cookie.
func (m *Manager) FromRequest(r *http.Request) (*Identity, error) {
	token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !found || token == "" {
		if cookie, err := r.Cookie(m.cookieName); err == nil {
			token = cookie.Value
		}
	}
	if token == "" {
		return nil, ErrNoSession
	}
	return m.Parse(token)
}
