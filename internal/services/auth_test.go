package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"notekeeper/internal/auth"
	"notekeeper/internal/common"
	"notekeeper/internal/logging"
	"notekeeper/internal/models"
)

type fakeProvider struct {
	userID    string
	signInErr error
	lastCall  string
}

func (f *fakeProvider) CurrentUserID() (string, error) {
	if f.userID == "" {
		return "", common.ErrNotAuthenticated
	}
	return f.userID, nil
}

func (f *fakeProvider) session(email string) *auth.Session {
	return &auth.Session{UserID: f.userID, Email: email}
}

func (f *fakeProvider) SignUp(ctx context.Context, firstName, lastName, email, password string) (*auth.Session, error) {
	f.lastCall = "signUp"
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	f.userID = "u1"
	return f.session(email), nil
}

func (f *fakeProvider) SignIn(ctx context.Context, email, password string) (*auth.Session, error) {
	f.lastCall = "signIn"
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	f.userID = "u1"
	return f.session(email), nil
}

func (f *fakeProvider) SignInWithToken(ctx context.Context, token string) (*auth.Session, error) {
	f.lastCall = "signInWithToken"
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	f.userID = "u1"
	return f.session("federated@b.io"), nil
}

func (f *fakeProvider) SignOut() {
	f.lastCall = "signOut"
	f.userID = ""
}

type fakeUsersRepo struct {
	users map[string]models.User
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{users: make(map[string]models.User)}
}

func (f *fakeUsersRepo) Insert(ctx context.Context, user *models.User) error {
	f.users[user.UserID] = *user
	return nil
}

func (f *fakeUsersRepo) InsertAll(ctx context.Context, users []models.User) error {
	for _, u := range users {
		u.SyncFlag = 1
		f.users[u.UserID] = u
	}
	return nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (f *fakeUsersRepo) DeleteAll(ctx context.Context) error {
	f.users = make(map[string]models.User)
	return nil
}

func newTestAuthService(repo *fakeSyncRepo, provider *fakeProvider, usersRepo *fakeUsersRepo) *AuthService {
	svc := NewAuthService(provider, usersRepo, newTestSyncService(repo), logging.NewDefault())
	svc.now = func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestRegister_MirrorsUserWithHashedPassword(t *testing.T) {
	provider := &fakeProvider{}
	usersRepo := newFakeUsersRepo()
	svc := newTestAuthService(newFakeSyncRepo(), provider, usersRepo)

	o := svc.Register(context.Background(), "Ada", "Lovelace", "ada@b.io", "secret")
	require.True(t, o.IsOk())
	assert.Equal(t, "u1", o.Value().UserID)

	mirrored, err := usersRepo.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, mirrored)
	assert.Equal(t, "Ada", mirrored.FirstName)
	assert.Equal(t, "2026-08-30", mirrored.DateRegistered)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(mirrored.Password), []byte("secret")))
}

func TestRegister_Validation(t *testing.T) {
	svc := newTestAuthService(newFakeSyncRepo(), &fakeProvider{}, newFakeUsersRepo())
	ctx := context.Background()

	tests := []struct {
		name                                 string
		firstName, lastName, email, password string
		wantErr                              error
	}{
		{"short first name", "Al", "Lovelace", "a@b.io", "secret", ErrInvalidFirstName},
		{"blank last name", "Ada", "   ", "a@b.io", "secret", ErrInvalidLastName},
		{"bad email", "Ada", "Lovelace", "not-an-email", "secret", ErrInvalidEmail},
		{"short password", "Ada", "Lovelace", "a@b.io", "abc", ErrInvalidPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := svc.Register(ctx, tt.firstName, tt.lastName, tt.email, tt.password)
			require.False(t, o.IsOk())
			assert.ErrorIs(t, o.Err(), tt.wantErr)
		})
	}
}

func TestLogin_MirrorsUser(t *testing.T) {
	provider := &fakeProvider{}
	usersRepo := newFakeUsersRepo()
	svc := newTestAuthService(newFakeSyncRepo(), provider, usersRepo)

	o := svc.Login(context.Background(), "ada@b.io", "secret")
	require.True(t, o.IsOk())
	assert.Equal(t, "signIn", provider.lastCall)

	mirrored, err := usersRepo.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, mirrored)
	assert.Equal(t, "ada@b.io", mirrored.Email)
}

func TestLogin_InvalidEmail(t *testing.T) {
	svc := newTestAuthService(newFakeSyncRepo(), &fakeProvider{}, newFakeUsersRepo())

	o := svc.Login(context.Background(), "nope", "secret")
	require.False(t, o.IsOk())
	assert.ErrorIs(t, o.Err(), ErrInvalidEmail)
}

func TestLoginWithToken(t *testing.T) {
	provider := &fakeProvider{}
	usersRepo := newFakeUsersRepo()
	svc := newTestAuthService(newFakeSyncRepo(), provider, usersRepo)

	o := svc.LoginWithToken(context.Background(), "idp-token")
	require.True(t, o.IsOk())
	assert.Equal(t, "signInWithToken", provider.lastCall)

	mirrored, err := usersRepo.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, mirrored)
	// No password travels on federated sign-in.
	assert.Empty(t, mirrored.Password)
}

func TestLogout_WipesLocalState(t *testing.T) {
	repo := newFakeSyncRepo()
	repo.local["u1_1"] = models.Note{NoteID: "u1_1", SyncFlag: 1}
	provider := &fakeProvider{userID: "u1"}
	usersRepo := newFakeUsersRepo()
	usersRepo.users["u1"] = models.User{UserID: "u1"}
	svc := newTestAuthService(repo, provider, usersRepo)

	o := svc.Logout(context.Background())
	require.True(t, o.IsOk())

	assert.Equal(t, "signOut", provider.lastCall)
	assert.Empty(t, repo.local)
	assert.Empty(t, usersRepo.users)
}

func TestLogout_AbortsWhenPendingUploadFails(t *testing.T) {
	repo := newFakeSyncRepo()
	repo.local["u1_1"] = models.Note{NoteID: "u1_1", SyncFlag: 0}
	repo.uploadNoteErr = fmt.Errorf("%w: offline", common.ErrRemoteWrite)
	provider := &fakeProvider{userID: "u1"}
	usersRepo := newFakeUsersRepo()
	usersRepo.users["u1"] = models.User{UserID: "u1"}
	svc := newTestAuthService(repo, provider, usersRepo)

	o := svc.Logout(context.Background())
	require.False(t, o.IsOk())
	assert.ErrorIs(t, o.Err(), common.ErrRemoteWrite)

	// Still signed in, nothing wiped.
	assert.Equal(t, "u1", provider.userID)
	assert.NotEmpty(t, repo.local)
	assert.NotEmpty(t, usersRepo.users)
}
