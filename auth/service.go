package auth

import (
	"context"
	"errors"
	"time"

	"github.com/fintrack/backend/models"
)

// Service ties token issuance to the optional session store.
type Service struct {
	tokens *TokenManager
	store  SessionStore
}

// NewService builds a Service. A nil store selects stateless validation.
func NewService(tokens *TokenManager, store SessionStore) *Service {
	return &Service{tokens: tokens, store: store}
}

func (s *Service) Stateful() bool {
	return s.store != nil
}

// Login issues a token for user and records it as the user's live session,
// replacing any earlier one.
func (s *Service) Login(ctx context.Context, user *models.User) (string, time.Time, error) {
	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return "", time.Time{}, err
	}
	if s.store != nil {
		if err := s.store.Save(ctx, user.UserName, token, s.tokens.TTL()); err != nil {
			return "", time.Time{}, err
		}
	}
	return token, expiresAt, nil
}

// Verify checks the token signature, expiry and payload, then, when a
// session store is configured, that the token is the user's live session.
func (s *Service) Verify(ctx context.Context, token string) (*Claims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	if s.store == nil {
		return claims, nil
	}

	stored, err := s.store.Get(ctx, claims.UserName)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if stored != token {
		return nil, ErrSessionMismatch
	}
	return claims, nil
}

// Revoke drops the live session of userName. It is a no-op when stateless.
func (s *Service) Revoke(ctx context.Context, userName string) error {
	if s.store == nil {
		return nil
	}
	return s.store.Delete(ctx, userName)
}

// Ping reports the health of the session store; nil when stateless.
func (s *Service) Ping(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	return s.store.Ping(ctx)
}
