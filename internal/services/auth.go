package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"notekeeper/internal/auth"
	"notekeeper/internal/common"
	"notekeeper/internal/logging"
	"notekeeper/internal/models"
	"notekeeper/internal/outcome"
	"notekeeper/internal/repositories/users"
	"notekeeper/internal/validate"
)

var (
	ErrInvalidFirstName = errors.New("first name must be longer than two characters")
	ErrInvalidLastName  = errors.New("last name must be longer than two characters")
	ErrInvalidEmail     = errors.New("email address is not valid")
	ErrInvalidPassword  = errors.New("password must be at least four characters")
)

// AuthService runs the account lifecycle: register, login, logout. A signed-in
// user is mirrored into the local user table so the UI can show profile data
// offline.
type AuthService struct {
	provider auth.Provider
	users    users.Repository
	sync     *SyncService
	log      logging.Logger

	now func() time.Time
}

// NewAuthService wires the account use cases.
func NewAuthService(provider auth.Provider, usersRepo users.Repository, sync *SyncService, log logging.Logger) *AuthService {
	return &AuthService{
		provider: provider,
		users:    usersRepo,
		sync:     sync,
		log:      log,
		now:      time.Now,
	}
}

// Register validates the input, creates the account remotely and mirrors the
// signed-in user locally.
func (s *AuthService) Register(ctx context.Context, firstName, lastName, email, password string) outcome.Outcome[*auth.Session] {
	if err := validateRegistration(firstName, lastName, email, password); err != nil {
		return outcome.Err[*auth.Session](err)
	}

	session, err := s.provider.SignUp(ctx, firstName, lastName, email, password)
	if err != nil {
		return outcome.Err[*auth.Session](err)
	}

	if err := s.mirrorUser(ctx, session, firstName, lastName, password); err != nil {
		return outcome.Err[*auth.Session](err)
	}
	return outcome.Ok(session)
}

// Login authenticates with email and password and mirrors the user locally.
func (s *AuthService) Login(ctx context.Context, email, password string) outcome.Outcome[*auth.Session] {
	if !validate.Email(email) {
		return outcome.Err[*auth.Session](ErrInvalidEmail)
	}
	if !validate.Password(password) {
		return outcome.Err[*auth.Session](ErrInvalidPassword)
	}

	session, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		return outcome.Err[*auth.Session](err)
	}

	if err := s.mirrorUser(ctx, session, "", "", password); err != nil {
		return outcome.Err[*auth.Session](err)
	}
	return outcome.Ok(session)
}

// LoginWithToken signs in with an externally issued identity token.
func (s *AuthService) LoginWithToken(ctx context.Context, token string) outcome.Outcome[*auth.Session] {
	session, err := s.provider.SignInWithToken(ctx, token)
	if err != nil {
		return outcome.Err[*auth.Session](err)
	}

	if err := s.mirrorUser(ctx, session, "", "", ""); err != nil {
		return outcome.Err[*auth.Session](err)
	}
	return outcome.Ok(session)
}

// Logout pushes any pending notes first, then drops the session and wipes the
// local stores. A failed push aborts the logout so unsynced notes are never
// discarded.
func (s *AuthService) Logout(ctx context.Context) outcome.Outcome[struct{}] {
	if o := s.sync.UploadPendingNotes(ctx); !o.IsOk() {
		return outcome.Err[struct{}](fmt.Errorf("refusing to log out with unsynced notes: %w", o.Err()))
	}

	s.provider.SignOut()

	if err := s.sync.ClearLocal(ctx); err != nil {
		return outcome.Err[struct{}](err)
	}
	if err := s.users.DeleteAll(ctx); err != nil {
		return outcome.Err[struct{}](err)
	}

	s.log.Info(ctx, "logged out")
	return outcome.Ok(struct{}{})
}

// mirrorUser upserts the signed-in user into the local user table. The
// password is stored only as a bcrypt hash, and only when one was supplied.
func (s *AuthService) mirrorUser(ctx context.Context, session *auth.Session, firstName, lastName, password string) error {
	hashed := ""
	if password != "" {
		b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		hashed = string(b)
	}

	return s.users.Insert(ctx, &models.User{
		UserID:         session.UserID,
		FirstName:      firstName,
		LastName:       lastName,
		Email:          session.Email,
		Password:       hashed,
		DateRegistered: common.FormatDate(s.now()),
		SyncFlag:       1,
	})
}

func validateRegistration(firstName, lastName, email, password string) error {
	if !validate.FirstName(firstName) {
		return ErrInvalidFirstName
	}
	if !validate.LastName(lastName) {
		return ErrInvalidLastName
	}
	if !validate.Email(email) {
		return ErrInvalidEmail
	}
	if !validate.Password(password) {
		return ErrInvalidPassword
	}
	return nil
}
