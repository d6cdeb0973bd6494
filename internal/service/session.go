package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Strob0t/PartnerConsole/internal/config"
	"github.com/Strob0t/PartnerConsole/internal/domain"
	"github.com/Strob0t/PartnerConsole/internal/domain/onboarding"
	"github.com/Strob0t/PartnerConsole/internal/domain/session"
	"github.com/Strob0t/PartnerConsole/internal/port/cache"
)

const sessionIssuer = "partnerconsole"

// SessionService stores console sessions and onboarding drafts in the
// cache and signs the session cookie. The cookie value is an HS256 JWT
// whose jti is the session id.
type SessionService struct {
	cache  cache.Cache
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionService creates a SessionService.
func NewSessionService(c cache.Cache, cfg config.Session) *SessionService {
	return &SessionService{
		cache:  c,
		secret: []byte(cfg.Secret),
		ttl:    cfg.TTL,
		now:    time.Now,
	}
}

// TTL is the lifetime of a session and its cookie.
func (s *SessionService) TTL() time.Duration { return s.ttl }

func sessionKey(id string) string { return "session:" + id }
func draftKey(id string) string   { return "draft:" + id }

// SignToken returns the cookie value for session id.
func (s *SessionService) SignToken(id string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		ID:        id,
		Issuer:    sessionIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// ParseToken validates a cookie value and returns its session id.
func (s *SessionService) ParseToken(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", fmt.Errorf("session token: %w: %w", domain.ErrUnauthenticated, err)
	}
	if claims.ID == "" {
		return "", fmt.Errorf("session token without id: %w", domain.ErrUnauthenticated)
	}
	return claims.ID, nil
}

// Load resolves the session behind a cookie value. An empty, invalid or
// expired token, or a session no longer in the store, yields a fresh
// anonymous session; token is then the new cookie value and fresh is true.
func (s *SessionService) Load(ctx context.Context, cookie string) (sess *session.Session, token string, fresh bool, err error) {
	if cookie != "" {
		id, parseErr := s.ParseToken(cookie)
		if parseErr == nil {
			stored, found, getErr := s.get(ctx, sessionKey(id))
			if getErr != nil {
				return nil, "", false, getErr
			}
			if found {
				var loaded session.Session
				if jsonErr := json.Unmarshal(stored, &loaded); jsonErr == nil && loaded.ID == id {
					return &loaded, cookie, false, nil
				}
				slog.Warn("discarding unreadable session", "session_id", id)
			}
		}
	}

	id := uuid.Must(uuid.NewV7()).String()
	token, err = s.SignToken(id)
	if err != nil {
		return nil, "", false, err
	}
	return session.New(id), token, true, nil
}

// Renew retires session oldID and returns a new id with its cookie value.
// The caller stores the session under the new id.
func (s *SessionService) Renew(ctx context.Context, oldID string) (id, token string, err error) {
	id = uuid.Must(uuid.NewV7()).String()
	token, err = s.SignToken(id)
	if err != nil {
		return "", "", err
	}
	if err := s.Destroy(ctx, oldID); err != nil {
		return "", "", err
	}
	return id, token, nil
}

// Save writes sess back to the store, renewing its TTL.
func (s *SessionService) Save(ctx context.Context, sess *session.Session) error {
	if sess == nil || sess.ID == "" {
		return errors.New("save session: missing id")
	}
	return s.put(ctx, sessionKey(sess.ID), sess)
}

// Destroy removes the session and its onboarding draft.
func (s *SessionService) Destroy(ctx context.Context, id string) error {
	if err := s.cache.Delete(ctx, sessionKey(id)); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if err := s.cache.Delete(ctx, draftKey(id)); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}

// LoadDraft returns the onboarding draft of session id, or a new draft.
func (s *SessionService) LoadDraft(ctx context.Context, id string) (*onboarding.Draft, error) {
	stored, found, err := s.get(ctx, draftKey(id))
	if err != nil {
		return nil, err
	}
	if !found {
		return onboarding.New(), nil
	}
	d := onboarding.New()
	if err := json.Unmarshal(stored, d); err != nil {
		slog.Warn("discarding unreadable draft", "session_id", id, "error", err)
		return onboarding.New(), nil
	}
	return d, nil
}

// SaveDraft stores the onboarding draft of session id.
func (s *SessionService) SaveDraft(ctx context.Context, id string, d *onboarding.Draft) error {
	return s.put(ctx, draftKey(id), d)
}

func (s *SessionService) get(ctx context.Context, key string) ([]byte, bool, error) {
	data, found, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return data, found, nil
}

func (s *SessionService) put(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}
