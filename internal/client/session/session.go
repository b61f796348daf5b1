// Package session manages the logged-in user: login with local fallback,
// durable session state, profile updates and password changes.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/zenloop/zenloop/internal/client/api"
	"github.com/zenloop/zenloop/internal/client/apperr"
	"github.com/zenloop/zenloop/internal/client/models"
	"github.com/zenloop/zenloop/internal/client/storage"
	"github.com/zenloop/zenloop/internal/client/users"
)

// Storage keys for the durable "is logged in" marker. Token and user are
// deliberately two separate values.
const (
	TokenKey = "user_token"
	UserKey  = "user_data"
)

// LocalTokenPrefix tags tokens synthesized for local-fallback logins so
// they are distinguishable from server-issued ones.
const LocalTokenPrefix = "local_"

// Authenticator is the remote login endpoint. *api.AuthClient implements it.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*api.AuthResult, error)
}

// UserUpdate is a partial profile edit; nil fields are left untouched.
type UserUpdate struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Image     *string
}

// Manager resolves and owns the current session.
type Manager struct {
	mu    sync.RWMutex
	store storage.Store
	creds *users.Store
	auth  Authenticator

	user  *models.User
	token string
}

// NewManager creates a session manager over the given stores and remote
// authenticator.
func NewManager(store storage.Store, creds *users.Store, auth Authenticator) *Manager {
	return &Manager{store: store, creds: creds, auth: auth}
}

// Load restores the session persisted by a previous run. Missing keys or
// an unparseable user blob read as "logged out"; Load never fails the
// caller over them. When the restored user has a credential-store record,
// the record's fields win and the session blob is rewritten, so profile
// edits that only reached one of the two stores converge at startup.
func (m *Manager) Load(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tokenData, err := m.store.Get(ctx, TokenKey)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			logrus.Debugf("Session token unreadable: %v", err)
		}
		return
	}

	userData, err := m.store.Get(ctx, UserKey)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			logrus.Debugf("Session user unreadable: %v", err)
		}
		return
	}

	var user models.User
	if err := json.Unmarshal(userData, &user); err != nil {
		logrus.Debugf("Session user blob corrupt, treating as logged out: %v", err)
		return
	}

	m.token = string(tokenData)
	m.user = &user

	m.reconcile(ctx)
}

// reconcile repairs drift between the session user and their credential
// record. Caller holds m.mu.
func (m *Manager) reconcile(ctx context.Context) {
	record, found, err := m.creds.FindByID(ctx, m.user.ID)
	if err != nil || !found {
		return
	}

	repaired := record.WithoutPassword()
	if repaired == *m.user {
		return
	}

	logrus.Debugf("Session user diverged from credential record, repairing: id=%d", m.user.ID)
	m.user = &repaired
	if err := m.persistUser(ctx); err != nil {
		logrus.Debugf("Session repair write failed: %v", err)
	}
}

// Current returns the session user, reporting whether one is loaded.
func (m *Manager) Current() (models.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.user == nil {
		return models.User{}, false
	}
	return *m.user, true
}

// Token returns the session token, or "" when logged out.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// IsLocal reports whether the session was resolved against the local
// credential store rather than the remote endpoint.
func (m *Manager) IsLocal() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return strings.HasPrefix(m.token, LocalTokenPrefix)
}

// TokenExpiry decodes the expiry claim of a server-issued JWT. Local
// tokens and tokens without an exp claim report no expiry. The signature
// is not verified; the client only displays the claim.
func (m *Manager) TokenExpiry() (time.Time, bool) {
	m.mu.RLock()
	token := m.token
	m.mu.RUnlock()

	if token == "" || strings.HasPrefix(token, LocalTokenPrefix) {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}

	return exp.Time, true
}

// Login resolves a session: the remote endpoint first (authoritative even
// when a local record exists), then the local credential store when the
// remote call fails for any reason. Success persists the token and the
// password-stripped user record.
func (m *Manager) Login(ctx context.Context, username, password string) (models.User, error) {
	result, remoteErr := m.auth.Login(ctx, username, password)
	if remoteErr == nil {
		return m.establish(ctx, result.User.WithoutPassword(), result.Token)
	}

	logrus.Debugf("Remote login failed, checking local credential store: %v", remoteErr)

	record, found, err := m.creds.FindByCredentials(ctx, username, password)
	if err != nil {
		logrus.Debugf("Local credential check failed: %v", err)
	}
	if found {
		token := fmt.Sprintf("%s%d_%s", LocalTokenPrefix, time.Now().UnixMilli(), uuid.NewString())
		return m.establish(ctx, record.WithoutPassword(), token)
	}

	var statusErr *api.StatusError
	if errors.As(remoteErr, &statusErr) && statusErr.Message != "" {
		return models.User{}, apperr.Wrap(apperr.CodeInvalidCredentials, statusErr.Message, remoteErr)
	}
	return models.User{}, apperr.Wrap(apperr.CodeInvalidCredentials, "invalid username or password", remoteErr)
}

func (m *Manager) establish(ctx context.Context, user models.User, token string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.user = &user
	m.token = token

	if err := m.store.Set(ctx, TokenKey, []byte(token)); err != nil {
		return models.User{}, fmt.Errorf("failed to persist session token: %w", err)
	}
	if err := m.persistUser(ctx); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// persistUser writes the session user blob. Caller holds m.mu.
func (m *Manager) persistUser(ctx context.Context) error {
	data, err := json.Marshal(m.user)
	if err != nil {
		return fmt.Errorf("failed to marshal session user: %w", err)
	}
	if err := m.store.Set(ctx, UserKey, data); err != nil {
		return fmt.Errorf("failed to persist session user: %w", err)
	}
	return nil
}

// Logout removes both session keys and clears the in-memory session. It
// never fails: a stranded storage row is better than a UI stuck logged in.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Delete(ctx, TokenKey); err != nil {
		logrus.Debugf("Failed to remove session token: %v", err)
	}
	if err := m.store.Delete(ctx, UserKey); err != nil {
		logrus.Debugf("Failed to remove session user: %v", err)
	}

	m.user = nil
	m.token = ""
}

// UpdateUser shallow-merges the given fields into the current user and
// persists the result. When the user is locally registered, the matching
// credential record is updated in place as well so the two stores stay
// consistent.
func (m *Manager) UpdateUser(ctx context.Context, update UserUpdate) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.user == nil {
		return models.User{}, apperr.New(apperr.CodeNoActiveSession, "no user logged in")
	}

	merged := *m.user
	if update.Username != nil {
		merged.Username = *update.Username
	}
	if update.Email != nil {
		merged.Email = *update.Email
	}
	if update.FirstName != nil {
		merged.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		merged.LastName = *update.LastName
	}
	if update.Image != nil {
		merged.Image = *update.Image
	}

	m.user = &merged
	if err := m.persistUser(ctx); err != nil {
		return models.User{}, err
	}

	record, found, err := m.creds.FindByID(ctx, merged.ID)
	if err != nil {
		return models.User{}, err
	}
	if found {
		updated := merged
		updated.Password = record.Password
		if _, err := m.creds.Update(ctx, updated); err != nil {
			return models.User{}, err
		}
	}

	return merged, nil
}

// ChangePassword rotates the password of a locally registered account.
// Remote accounts have no credential record and are rejected with
// NotAvailable. A record with no password yet accepts the first password
// without a current-password check.
func (m *Manager) ChangePassword(ctx context.Context, current, next, confirm string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.user == nil {
		return apperr.New(apperr.CodeNoActiveSession, "no user logged in")
	}

	record, found, err := m.creds.FindByID(ctx, m.user.ID)
	if err != nil {
		return err
	}
	if !found {
		return apperr.New(apperr.CodeNotAvailable, "password change is only available for locally registered accounts")
	}

	if err := users.ValidatePassword(next); err != nil {
		return err
	}
	if next != confirm {
		return apperr.New(apperr.CodeMismatch, "new password and confirmation do not match")
	}

	if record.Password != "" && record.Password != current {
		return apperr.New(apperr.CodeWrongPassword, "current password is incorrect")
	}

	record.Password = next
	if _, err := m.creds.Update(ctx, record); err != nil {
		return err
	}

	return nil
}
