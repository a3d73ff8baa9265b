// Package session owns the authentication token, its decoded claims, and the
// persisted copy of both. It is the single source of truth for whether a
// caller is allowed to act. Sessions are immutable: expiry, logout, or a 401
// from any downstream call replaces the active session with nothing, it never
// mutates one in place.
package session

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"

	"github.com/reservat/provider-console/internal/common/apperrors"
	"github.com/reservat/provider-console/internal/common/httpclient"
	"github.com/reservat/provider-console/internal/console/detail"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Claims is the decoded identity carried by the access token.
type Claims struct {
	SubjectID string          // provider account id
	Email     string          // account email
	Vertical  detail.Vertical // business vertical the account operates in
	Expiry    time.Time       // token expiry instant
}

// Session pairs a raw token with its decoded claims. A Session is never
// mutated; a new one replaces the old on every login or restore.
type Session struct {
	Token  string
	Claims Claims
}

// Valid reports whether the session can still be used: the claims parsed and
// the expiry instant has not passed. Expiry is detected lazily, on each query.
func (s *Session) Valid() bool {
	return s != nil && s.Token != "" && time.Now().Before(s.Claims.Expiry)
}

// Parse decodes the claims embedded in a raw token. The token signature is the
// backend's concern; the console only needs the claim set, so the JWT is
// parsed without verification.
func Parse(token string) (*Session, apperrors.Error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, ErrTokenInvalid.Err(err)
	}
	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}

	subject := claimString(mapClaims, "id")
	if subject == "" {
		return nil, ErrTokenInvalid
	}
	vertical, ok := detail.ParseVertical(claimString(mapClaims, "tipo_usuario"))
	if !ok {
		return nil, ErrTokenInvalid
	}
	exp, err := mapClaims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrTokenInvalid
	}

	return &Session{
		Token: token,
		Claims: Claims{
			SubjectID: subject,
			Email:     claimString(mapClaims, "email"),
			Vertical:  vertical,
			Expiry:    exp.Time,
		},
	}, nil
}

// claimString reads a claim as a string, tolerating numeric subject ids.
func claimString(claims jwt.MapClaims, key string) string {
	switch v := claims[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	default:
		return ""
	}
}

// Manager drives the session lifecycle. It is an explicit handle handed to the
// components that need identity, not process-wide state, so tests can
// substitute fakes freely.
type Manager struct {
	client  httpclient.RequestDoer
	store   TokenStore
	current *Session
}

// NewManager creates a session manager backed by the given transport and token
// store.
func NewManager(client httpclient.RequestDoer, store TokenStore) *Manager {
	return &Manager{
		client: client,
		store:  store,
	}
}

// loginRequest is the identity-exchange request payload.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"contraseña"`
}

// loginResponse is the identity-exchange response payload.
type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Authenticate exchanges credentials for a token, decodes its claims, persists
// the token, and installs the resulting session as current. Collaborator
// failures are mapped to the session error taxonomy.
func (m *Manager) Authenticate(ctx context.Context, identifier, secret string) (*Session, apperrors.Error) {
	body, err := json.Marshal(loginRequest{Email: identifier, Password: secret})
	if err != nil {
		return nil, ErrAuthError.Err(err)
	}

	respBody, _, reqErr := m.client.DoRequest(ctx, httpclient.RequestOptions{
		Method: http.MethodPost,
		Path:   "usuarios/login",
		Body:   body,
	})
	if reqErr != nil {
		return nil, mapAuthError(reqErr)
	}

	var resp loginResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, ErrUnknown.Err(err)
	}
	if resp.AccessToken == "" {
		return nil, ErrUnknown.Msg("login response carried no token")
	}

	sess, parseErr := Parse(resp.AccessToken)
	if parseErr != nil {
		return nil, parseErr
	}
	if !sess.Valid() {
		return nil, ErrTokenInvalid
	}

	if err := m.store.Write(resp.AccessToken); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("failed to persist token")
	}
	m.current = sess
	return sess, nil
}

// Restore rehydrates a session from the persisted token. Returns nil when no
// token is stored, and clears the persisted copy when the token is expired or
// unparsable.
func (m *Manager) Restore() *Session {
	if m.current.Valid() {
		return m.current
	}
	token, err := m.store.Read()
	if err != nil || token == "" {
		return nil
	}
	sess, parseErr := Parse(token)
	if parseErr != nil || !sess.Valid() {
		if clearErr := m.store.Clear(); clearErr != nil {
			log.Warn().Err(clearErr).Msg("failed to clear stale token")
		}
		m.current = nil
		return nil
	}
	m.current = sess
	return sess
}

// Invalidate clears the persisted token and drops the active session,
// returning the system to the unauthenticated state. Safe to call repeatedly.
func (m *Manager) Invalidate() {
	m.current = nil
	if err := m.store.Clear(); err != nil {
		log.Warn().Err(err).Msg("failed to clear token store")
	}
}

// Current returns the claims of the active session, restoring from the token
// store if needed. Returns nil when there is no valid session.
func (m *Manager) Current() *Claims {
	sess := m.Restore()
	if sess == nil {
		return nil
	}
	claims := sess.Claims
	return &claims
}

// Token returns the raw token of the active session, or "" when there is none.
func (m *Manager) Token() string {
	sess := m.Restore()
	if sess == nil {
		return ""
	}
	return sess.Token
}
