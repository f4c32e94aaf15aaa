// Package session holds the single source of truth for "who is logged in".
// A session walks uninitialized → hydrating → authenticated/anonymous; the
// stored student record and the authenticated flag can never disagree
// because the flag is derived from the record.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/learnova/gateway/internal/models"
	"github.com/learnova/gateway/internal/upstream"
)

// Session lifecycle states.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateHydrating     State = "hydrating"
	StateAuthenticated State = "authenticated"
	StateAnonymous     State = "anonymous"
)

// Session is the per-request view of the viewer's auth state.
type Session struct {
	State         State
	ID            uuid.UUID
	Student       *models.Student
	UpstreamToken string
}

// IsAuthenticated reports whether a student is attached. Always exactly
// (Student != nil).
func (s Session) IsAuthenticated() bool {
	return s.Student != nil
}

// Anonymous returns the settled anonymous session.
func Anonymous() Session {
	return Session{State: StateAnonymous}
}

// AuthBackend is the slice of the upstream API the store depends on.
type AuthBackend interface {
	Login(ctx context.Context, email, password string) (*upstream.AuthResult, error)
	GoogleLogin(ctx context.Context, idToken string) (*upstream.AuthResult, error)
	Logout(ctx context.Context, token string) error
}

// IDTokenVerifier checks a Google ID token against the configured OAuth
// client before it is forwarded upstream.
type IDTokenVerifier interface {
	Verify(idToken string) error
}

// Store manages gateway sessions. Concurrent logins for the same viewer are
// not serialized; the last completed write wins, matching the UI which
// disables the competing buttons while one attempt is in flight.
type Store struct {
	storage  Storage
	backend  AuthBackend
	verifier IDTokenVerifier
	tokens   *TokenService
	ttl      time.Duration
	logger   *zap.Logger
}

// NewStore creates a session store.
func NewStore(storage Storage, backend AuthBackend, verifier IDTokenVerifier, tokens *TokenService, ttl time.Duration, logger *zap.Logger) *Store {
	return &Store{
		storage:  storage,
		backend:  backend,
		verifier: verifier,
		tokens:   tokens,
		ttl:      ttl,
		logger:   logger,
	}
}

// Hydrate resolves a bearer token into a settled session. A missing token
// is anonymous; an invalid token or a missing/malformed persisted record
// discards whatever was stored and settles anonymous.
func (s *Store) Hydrate(ctx context.Context, bearer string) Session {
	if bearer == "" {
		return Anonymous()
	}

	sess := Session{State: StateHydrating}
	claims, err := s.tokens.Validate(bearer)
	if err != nil {
		return Anonymous()
	}

	rec, err := s.storage.Load(ctx, claims.SessionID)
	if err != nil || rec.Student == nil || rec.UpstreamToken == "" {
		_ = s.storage.Delete(ctx, claims.SessionID)
		return Anonymous()
	}

	sess.State = StateAuthenticated
	sess.ID = claims.SessionID
	sess.Student = rec.Student
	sess.UpstreamToken = rec.UpstreamToken
	return sess
}

// Login exchanges credentials with the backend and establishes a session.
// Returns the session plus the gateway token the browser should hold.
func (s *Store) Login(ctx context.Context, email, password string) (Session, string, error) {
	res, err := s.backend.Login(ctx, email, password)
	if err != nil {
		return Anonymous(), "", err
	}
	return s.adopt(ctx, res)
}

// LoginWithGoogle verifies the Google ID token locally, exchanges it with
// the backend, and adopts the returned student record.
func (s *Store) LoginWithGoogle(ctx context.Context, idToken string) (Session, string, error) {
	if err := s.verifier.Verify(idToken); err != nil {
		if errors.Is(err, ErrGoogleNotConfigured) {
			return Anonymous(), "", err
		}
		return Anonymous(), "", fmt.Errorf("%w: %v", ErrInvalidIDToken, err)
	}
	res, err := s.backend.GoogleLogin(ctx, idToken)
	if err != nil {
		return Anonymous(), "", err
	}
	return s.adopt(ctx, res)
}

func (s *Store) adopt(ctx context.Context, res *upstream.AuthResult) (Session, string, error) {
	id := uuid.New()
	student := res.Student
	rec := &Record{
		UpstreamToken: res.Token,
		Student:       &student,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.storage.Save(ctx, id, rec, s.ttl); err != nil {
		return Anonymous(), "", err
	}

	token, err := s.tokens.Generate(id, student.Email)
	if err != nil {
		_ = s.storage.Delete(ctx, id)
		return Anonymous(), "", fmt.Errorf("issue session token: %w", err)
	}

	return Session{
		State:         StateAuthenticated,
		ID:            id,
		Student:       &student,
		UpstreamToken: res.Token,
	}, token, nil
}

// Logout invalidates the backend session best-effort, then clears local
// state unconditionally. A failed remote call never leaves the viewer
// logged in.
func (s *Store) Logout(ctx context.Context, sess Session) {
	if !sess.IsAuthenticated() {
		return
	}
	if err := s.backend.Logout(ctx, sess.UpstreamToken); err != nil && !upstream.IsAuthError(err) {
		s.logger.Warn("remote logout failed", zap.Error(err))
	}
	if err := s.storage.Delete(ctx, sess.ID); err != nil {
		s.logger.Warn("clear session", zap.Error(err))
	}
}

// InvalidateToken force-clears whichever session holds the given upstream
// token. The upstream client calls this through its injected callback when
// the backend rejects the token.
func (s *Store) InvalidateToken(ctx context.Context, upstreamToken string) {
	id, err := s.storage.FindIDByToken(ctx, upstreamToken)
	if err != nil {
		return // already cleared
	}
	if err := s.storage.Delete(ctx, id); err != nil {
		s.logger.Warn("invalidate session", zap.Error(err))
		return
	}
	s.logger.Info("session invalidated by upstream", zap.String("session_id", id.String()))
}

const popupFlag = "popup_dismissed"

// DismissPopup records that the viewer closed the promo popup for the rest
// of the session.
func (s *Store) DismissPopup(ctx context.Context, sess Session) error {
	if !sess.IsAuthenticated() {
		return nil
	}
	return s.storage.SetFlag(ctx, sess.ID, popupFlag, s.ttl)
}

// PopupDismissed reports whether the promo popup was dismissed this session.
func (s *Store) PopupDismissed(ctx context.Context, sess Session) (bool, error) {
	if !sess.IsAuthenticated() {
		return false, nil
	}
	return s.storage.HasFlag(ctx, sess.ID, popupFlag)
}
