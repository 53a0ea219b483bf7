package backend

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// refreshSkew re-authenticates before the token actually expires so that
// in-flight requests don't race the expiry.
const refreshSkew = 2 * time.Minute

// Authenticator is the "ensure valid" capability operations depend on.
// Session implements it; tests inject their own.
type Authenticator interface {
	EnsureValid(ctx context.Context) error
	Token() string
	RecordID() string
	Clear()
}

type authResponse struct {
	Token  string `json:"token"`
	Record struct {
		ID string `json:"id"`
	} `json:"record"`
}

// Session holds the credentials and the current token for one backend user.
type Session struct {
	http     *resty.Client
	identity string
	password string
	authPath string
	logger   *zap.Logger

	mu       sync.Mutex
	token    string
	recordID string
}

func NewSession(http *resty.Client, identity, password string, logger *zap.Logger) *Session {
	return &Session{
		http:     http,
		identity: identity,
		password: password,
		authPath: "/api/collections/users/auth-with-password",
		logger:   logger,
	}
}

// EnsureValid re-authenticates when no token is held or the held token is
// about to expire. Called before every operation.
func (s *Session) EnsureValid(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && !tokenExpiresWithin(s.token, refreshSkew) {
		return nil
	}
	return s.authenticate(ctx)
}

// Clear drops the current token. The next EnsureValid re-authenticates.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// Token returns the current bearer token, possibly empty.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// RecordID returns the authenticated user's record ID.
func (s *Session) RecordID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recordID
}

// authenticate posts identity/password. Caller holds s.mu.
func (s *Session) authenticate(ctx context.Context) error {
	var out authResponse

	resp, err := s.http.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"identity": s.identity,
			"password": s.password,
		}).
		SetResult(&out).
		Post(s.authPath)

	if err != nil {
		return fmt.Errorf("authenticate: %w: %v", ErrTransient, err)
	}
	if resp.IsError() {
		return fmt.Errorf("authenticate: %w", statusError(resp.StatusCode(), resp.String()))
	}
	if out.Token == "" {
		return fmt.Errorf("authenticate: backend returned no token")
	}

	s.token = out.Token
	s.recordID = out.Record.ID

	s.logger.Info("Authenticated against backend",
		zap.String("identity", s.identity),
		zap.String("record_id", s.recordID))

	return nil
}

// tokenExpiresWithin inspects the token's exp claim without verifying the
// signature; verification happens server-side, the client only needs the
// deadline.
func tokenExpiresWithin(token string, skew time.Duration) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return time.Until(exp.Time) < skew
}
