package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/flogin/internal/domain"
	"github.com/Skotchmaster/flogin/internal/hash"
	"github.com/Skotchmaster/flogin/internal/models"
	"github.com/Skotchmaster/flogin/internal/transport"
)

type fakeUsers struct {
	users map[string]models.User
	err   error
	calls int
}

func (f *fakeUsers) FindUserByUsername(_ context.Context, username string) (*models.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

type countingVerifier struct {
	calls int
}

func (v *countingVerifier) Verify(h, password string) bool {
	v.calls++
	return hash.CheckPassword(h, password)
}

func newTestAuth(t *testing.T) (*AuthService, *fakeUsers, *countingVerifier) {
	t.Helper()

	pwHash, err := hash.HashPassword("secret1")
	require.NoError(t, err)

	users := &fakeUsers{users: map[string]models.User{
		"alice":  {ID: 1, Username: "alice", PasswordHash: pwHash, Role: "USER"},
		"nohash": {ID: 2, Username: "nohash"},
	}}
	verifier := &countingVerifier{}
	return &AuthService{Users: users, Verifier: verifier}, users, verifier
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _, _ := newTestAuth(t)

	res, err := svc.Login(context.Background(), transport.LoginRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, MsgLoginSuccess, res.Message)
	assert.Equal(t, "alice", res.Username)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, FailureNone, res.Failure)
}

func TestAuthService_Login_TokensAreUnique(t *testing.T) {
	svc, _, _ := newTestAuth(t)
	req := transport.LoginRequest{Username: "alice", Password: "secret1"}

	first, err := svc.Login(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Login(context.Background(), req)
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)
}

func TestAuthService_Login_UnknownUserSkipsVerifier(t *testing.T) {
	svc, users, verifier := newTestAuth(t)

	res, err := svc.Login(context.Background(), transport.LoginRequest{Username: "bob", Password: "secret1"})
	require.NoError(t, err)

	assert.False(t, res.Success)
	assert.Equal(t, MsgUserNotFound, res.Message)
	assert.Equal(t, FailureUserNotFound, res.Failure)
	assert.True(t, res.Failure.BadCredentials())
	assert.Empty(t, res.Token)
	assert.Empty(t, res.Username)
	assert.Equal(t, 1, users.calls)
	assert.Zero(t, verifier.calls)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _, verifier := newTestAuth(t)

	res, err := svc.Login(context.Background(), transport.LoginRequest{Username: "alice", Password: "wrong12"})
	require.NoError(t, err)

	assert.False(t, res.Success)
	assert.Equal(t, MsgWrongPassword, res.Message)
	assert.Equal(t, FailureWrongPassword, res.Failure)
	assert.Empty(t, res.Token)
	assert.Equal(t, 1, verifier.calls)
}

func TestAuthService_Login_MissingHashNeverMatches(t *testing.T) {
	svc, _, _ := newTestAuth(t)

	res, err := svc.Login(context.Background(), transport.LoginRequest{Username: "nohash", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, FailureWrongPassword, res.Failure)
}

func TestAuthService_Login_ValidationBeforeStore(t *testing.T) {
	tests := []struct {
		name    string
		req     transport.LoginRequest
		wantMsg string
	}{
		{name: "short username", req: transport.LoginRequest{Username: "ab", Password: "secret1"}, wantMsg: "username: length must be at least 3"},
		{name: "blank username", req: transport.LoginRequest{Password: "secret1"}, wantMsg: "username: must not be blank"},
		{name: "password without digit", req: transport.LoginRequest{Username: "alice", Password: "secretpw"}, wantMsg: "password: must contain at least one letter and one digit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users, verifier := newTestAuth(t)

			res, err := svc.Login(context.Background(), tt.req)
			require.NoError(t, err)

			assert.False(t, res.Success)
			assert.Equal(t, FailureValidation, res.Failure)
			assert.False(t, res.Failure.BadCredentials())
			assert.Equal(t, tt.wantMsg, res.Message)
			assert.Zero(t, users.calls, "store must not be consulted")
			assert.Zero(t, verifier.calls)
		})
	}
}

func TestAuthService_Login_StoreFaultIsError(t *testing.T) {
	svc, users, _ := newTestAuth(t)
	boom := errors.New("connection reset")
	users.err = boom

	res, err := svc.Login(context.Background(), transport.LoginRequest{Username: "alice", Password: "secret1"})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, boom)
}

func TestAuthService_Login_CustomToken(t *testing.T) {
	svc, _, _ := newTestAuth(t)
	svc.NewToken = func() string { return "fixed-token" }

	res, err := svc.Login(context.Background(), transport.LoginRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "fixed-token", res.Token)
}
