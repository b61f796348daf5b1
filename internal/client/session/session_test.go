package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenloop/zenloop/internal/client/api"
	"github.com/zenloop/zenloop/internal/client/apperr"
	"github.com/zenloop/zenloop/internal/client/models"
	"github.com/zenloop/zenloop/internal/client/storage"
	"github.com/zenloop/zenloop/internal/client/users"
)

type fakeAuth struct {
	result *api.AuthResult
	err    error
}

func (f *fakeAuth) Login(ctx context.Context, username, password string) (*api.AuthResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

var errRemoteDown = errors.New("connection refused")

func setup(t *testing.T, auth Authenticator) (*Manager, *users.Store, storage.Store) {
	t.Helper()

	kv, err := storage.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })

	creds := users.NewStore(kv)
	return NewManager(kv, creds, auth), creds, kv
}

func registerAmy(t *testing.T, creds *users.Store) models.User {
	t.Helper()

	user, err := creds.Register(context.Background(), models.User{
		Username: "amy",
		Email:    "a@x.com",
		Password: "Abc123",
	})
	require.NoError(t, err)
	return user
}

func TestLoginRemoteSuccess(t *testing.T) {
	auth := &fakeAuth{result: &api.AuthResult{
		User:  models.User{ID: 1, Username: "emilys", Email: "emily@x.com"},
		Token: "server-token",
	}}
	mgr, _, kv := setup(t, auth)
	ctx := context.Background()

	user, err := mgr.Login(ctx, "emilys", "emilyspass")
	require.NoError(t, err)
	assert.Equal(t, "emilys", user.Username)
	assert.Empty(t, user.Password)
	assert.False(t, mgr.IsLocal())

	token, err := kv.Get(ctx, TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "server-token", string(token))

	data, err := kv.Get(ctx, UserKey)
	require.NoError(t, err)
	var persisted models.User
	require.NoError(t, json.Unmarshal(data, &persisted))
	assert.Empty(t, persisted.Password)
}

func TestLoginRemoteWinsOverLocal(t *testing.T) {
	auth := &fakeAuth{result: &api.AuthResult{
		User:  models.User{ID: 99, Username: "amy", Email: "remote@x.com"},
		Token: "server-token",
	}}
	mgr, creds, _ := setup(t, auth)
	registerAmy(t, creds)

	user, err := mgr.Login(context.Background(), "amy", "Abc123")
	require.NoError(t, err)

	// Remote record is authoritative even though a local one matched.
	assert.Equal(t, 99, user.ID)
	assert.Equal(t, "remote@x.com", user.Email)
	assert.False(t, mgr.IsLocal())
}

func TestLoginLocalFallback(t *testing.T) {
	mgr, creds, _ := setup(t, &fakeAuth{err: errRemoteDown})
	registerAmy(t, creds)

	user, err := mgr.Login(context.Background(), "amy", "Abc123")
	require.NoError(t, err)

	assert.Equal(t, "amy", user.Username)
	assert.Empty(t, user.Password)
	assert.True(t, mgr.IsLocal())
	assert.True(t, strings.HasPrefix(mgr.Token(), LocalTokenPrefix))
}

func TestLoginLocalFallbackWrongPassword(t *testing.T) {
	mgr, creds, _ := setup(t, &fakeAuth{err: errRemoteDown})
	registerAmy(t, creds)

	_, err := mgr.Login(context.Background(), "amy", "nope")
	assert.Equal(t, apperr.CodeInvalidCredentials, apperr.CodeOf(err))
}

func TestLoginSurfacesRemoteMessage(t *testing.T) {
	mgr, _, _ := setup(t, &fakeAuth{err: &api.StatusError{StatusCode: 400, Message: "Invalid credentials"}})

	_, err := mgr.Login(context.Background(), "nobody", "nothing")
	require.Error(t, err)
	assert.Equal(t, apperr.CodeInvalidCredentials, apperr.CodeOf(err))
	assert.Contains(t, err.Error(), "Invalid credentials")
}

func TestRegisterDuplicateThenOfflineLogin(t *testing.T) {
	// The full end-to-end scenario: register, re-register, offline login.
	mgr, creds, _ := setup(t, &fakeAuth{err: errRemoteDown})
	ctx := context.Background()

	user, err := creds.Register(ctx, models.User{Username: "amy", Email: "a@x.com", Password: "Abc123"})
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)

	_, err = creds.Register(ctx, models.User{Username: "amy", Email: "other@x.com", Password: "Abc123"})
	assert.Equal(t, apperr.CodeDuplicateUser, apperr.CodeOf(err))

	logged, err := mgr.Login(ctx, "amy", "Abc123")
	require.NoError(t, err)
	assert.Equal(t, 1, logged.ID)
	assert.Empty(t, logged.Password)
}

func TestLoadFailsOpenWithoutKeys(t *testing.T) {
	mgr, _, _ := setup(t, &fakeAuth{err: errRemoteDown})

	mgr.Load(context.Background())

	_, ok := mgr.Current()
	assert.False(t, ok)
}

func TestLoadFailsOpenOnCorruptUserBlob(t *testing.T) {
	mgr, _, kv := setup(t, &fakeAuth{err: errRemoteDown})
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, TokenKey, []byte("tok")))
	require.NoError(t, kv.Set(ctx, UserKey, []byte("{not json")))

	mgr.Load(ctx)

	_, ok := mgr.Current()
	assert.False(t, ok)
}

func TestLoadRestoresSession(t *testing.T) {
	auth := &fakeAuth{err: errRemoteDown}
	mgr, creds, kv := setup(t, auth)
	registerAmy(t, creds)
	ctx := context.Background()

	_, err := mgr.Login(ctx, "amy", "Abc123")
	require.NoError(t, err)
	token := mgr.Token()

	fresh := NewManager(kv, creds, auth)
	fresh.Load(ctx)

	user, ok := fresh.Current()
	require.True(t, ok)
	assert.Equal(t, "amy", user.Username)
	assert.Equal(t, token, fresh.Token())
}

func TestLoadReconcilesWithCredentialRecord(t *testing.T) {
	auth := &fakeAuth{err: errRemoteDown}
	mgr, creds, kv := setup(t, auth)
	record := registerAmy(t, creds)
	ctx := context.Background()

	// Session blob holds a stale first name.
	stale := record.WithoutPassword()
	stale.FirstName = "Old"
	data, err := json.Marshal(stale)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, TokenKey, []byte("local_1_x")))
	require.NoError(t, kv.Set(ctx, UserKey, data))

	record.FirstName = "Amy"
	_, err = creds.Update(ctx, record)
	require.NoError(t, err)

	mgr.Load(ctx)

	user, ok := mgr.Current()
	require.True(t, ok)
	assert.Equal(t, "Amy", user.FirstName)

	// The repaired blob was written back.
	raw, err := kv.Get(ctx, UserKey)
	require.NoError(t, err)
	var persisted models.User
	require.NoError(t, json.Unmarshal(raw, &persisted))
	assert.Equal(t, "Amy", persisted.FirstName)
}

func TestLogoutClearsSession(t *testing.T) {
	mgr, creds, kv := setup(t, &fakeAuth{err: errRemoteDown})
	registerAmy(t, creds)
	ctx := context.Background()

	_, err := mgr.Login(ctx, "amy", "Abc123")
	require.NoError(t, err)

	mgr.Logout(ctx)

	_, ok := mgr.Current()
	assert.False(t, ok)
	assert.Empty(t, mgr.Token())

	_, err = kv.Get(ctx, TokenKey)
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)
	_, err = kv.Get(ctx, UserKey)
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)
}

func TestLogoutSwallowsStorageErrors(t *testing.T) {
	mgr, creds, kv := setup(t, &fakeAuth{err: errRemoteDown})
	registerAmy(t, creds)
	ctx := context.Background()

	_, err := mgr.Login(ctx, "amy", "Abc123")
	require.NoError(t, err)

	// A closed store makes every delete fail; logout must still clear the
	// in-memory session without panicking or erroring.
	require.NoError(t, kv.Close())
	mgr.Logout(ctx)

	_, ok := mgr.Current()
	assert.False(t, ok)
}

func TestUpdateUserWithoutSession(t *testing.T) {
	mgr, _, _ := setup(t, &fakeAuth{err: errRemoteDown})

	first := "Amy"
	_, err := mgr.UpdateUser(context.Background(), UserUpdate{FirstName: &first})
	assert.Equal(t, apperr.CodeNoActiveSession, apperr.CodeOf(err))
}

func TestUpdateUserMergesAndPropagates(t *testing.T) {
	mgr, creds, _ := setup(t, &fakeAuth{err: errRemoteDown})
	registerAmy(t, creds)
	ctx := context.Background()

	_, err := mgr.Login(ctx, "amy", "Abc123")
	require.NoError(t, err)

	first := "Amy"
	last := "Pond"
	updated, err := mgr.UpdateUser(ctx, UserUpdate{FirstName: &first, LastName: &last})
	require.NoError(t, err)
	assert.Equal(t, "Amy", updated.FirstName)
	assert.Equal(t, "Pond", updated.LastName)
	assert.Equal(t, "a@x.com", updated.Email)

	// The credential record picked up the edit and kept its password.
	record, found, err := creds.FindByID(ctx, updated.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Amy", record.FirstName)
	assert.Equal(t, "Abc123", record.Password)
}

func TestUpdateUserRemoteAccountSkipsCredentialStore(t *testing.T) {
	auth := &fakeAuth{result: &api.AuthResult{
		User:  models.User{ID: 7, Username: "emilys"},
		Token: "server-token",
	}}
	mgr, creds, _ := setup(t, auth)
	ctx := context.Background()

	_, err := mgr.Login(ctx, "emilys", "emilyspass")
	require.NoError(t, err)

	first := "Emily"
	_, err = mgr.UpdateUser(ctx, UserUpdate{FirstName: &first})
	require.NoError(t, err)

	all, err := creds.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestChangePasswordNotAvailableForRemoteAccount(t *testing.T) {
	auth := &fakeAuth{result: &api.AuthResult{
		User:  models.User{ID: 7, Username: "emilys"},
		Token: "server-token",
	}}
	mgr, _, _ := setup(t, auth)
	ctx := context.Background()

	_, err := mgr.Login(ctx, "emilys", "emilyspass")
	require.NoError(t, err)

	err = mgr.ChangePassword(ctx, "emilyspass", "Newpass1", "Newpass1")
	assert.Equal(t, apperr.CodeNotAvailable, apperr.CodeOf(err))
}

func TestChangePasswordWeakLeavesStoreUntouched(t *testing.T) {
	mgr, creds, _ := setup(t, &fakeAuth{err: errRemoteDown})
	registerAmy(t, creds)
	ctx := context.Background()

	_, err := mgr.Login(ctx, "amy", "Abc123")
	require.NoError(t, err)

	for _, weak := range []string{"Ab1", "nocaps1", "NoDigits"} {
		err = mgr.ChangePassword(ctx, "Abc123", weak, weak)
		assert.Equal(t, apperr.CodeWeakPassword, apperr.CodeOf(err))
	}

	record, found, err := creds.FindByID(ctx, 1)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Abc123", record.Password)
}

func TestChangePasswordMismatch(t *testing.T) {
	mgr, creds, _ := setup(t, &fakeAuth{err: errRemoteDown})
	registerAmy(t, creds)
	ctx := context.Background()

	_, err := mgr.Login(ctx, "amy", "Abc123")
	require.NoError(t, err)

	err = mgr.ChangePassword(ctx, "Abc123", "Newpass1", "Different1")
	assert.Equal(t, apperr.CodeMismatch, apperr.CodeOf(err))
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	mgr, creds, _ := setup(t, &fakeAuth{err: errRemoteDown})
	registerAmy(t, creds)
	ctx := context.Background()

	_, err := mgr.Login(ctx, "amy", "Abc123")
	require.NoError(t, err)

	err = mgr.ChangePassword(ctx, "wrong", "Newpass1", "Newpass1")
	assert.Equal(t, apperr.CodeWrongPassword, apperr.CodeOf(err))
}

func TestChangePasswordSuccess(t *testing.T) {
	mgr, creds, _ := setup(t, &fakeAuth{err: errRemoteDown})
	registerAmy(t, creds)
	ctx := context.Background()

	_, err := mgr.Login(ctx, "amy", "Abc123")
	require.NoError(t, err)

	require.NoError(t, mgr.ChangePassword(ctx, "Abc123", "Newpass1", "Newpass1"))

	_, found, err := creds.FindByCredentials(ctx, "amy", "Newpass1")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestChangePasswordBootstrapsLegacyRecord(t *testing.T) {
	mgr, creds, kv := setup(t, &fakeAuth{err: errRemoteDown})
	ctx := context.Background()

	// A legacy record with no password set.
	legacy := []models.User{{ID: 1, Username: "amy", Email: "a@x.com"}}
	data, err := json.Marshal(legacy)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, users.StorageKey, data))

	userData, err := json.Marshal(legacy[0])
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, TokenKey, []byte("local_1_x")))
	require.NoError(t, kv.Set(ctx, UserKey, userData))
	mgr.Load(ctx)

	// No current-password check on first-password bootstrap.
	require.NoError(t, mgr.ChangePassword(ctx, "anything", "First1pw", "First1pw"))

	_, found, err := creds.FindByCredentials(ctx, "amy", "First1pw")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestTokenExpiry(t *testing.T) {
	mgr, _, _ := setup(t, &fakeAuth{err: errRemoteDown})

	// Logged out: no expiry.
	_, ok := mgr.TokenExpiry()
	assert.False(t, ok)

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": exp.Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	mgr.token = signed
	got, ok := mgr.TokenExpiry()
	require.True(t, ok)
	assert.Equal(t, exp.Unix(), got.Unix())

	// Local tokens never report an expiry.
	mgr.token = LocalTokenPrefix + "123_abc"
	_, ok = mgr.TokenExpiry()
	assert.False(t, ok)
}
