package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/clearlens/camwatch/internal/domain"
	"github.com/clearlens/camwatch/internal/store"
	"github.com/clearlens/camwatch/pkg/api"
	"github.com/clearlens/camwatch/pkg/cryptox"
	"github.com/clearlens/camwatch/pkg/idx"
	"github.com/clearlens/camwatch/pkg/slogx"
	"github.com/google/uuid"
)

var (
	ErrAlreadyRegistered   = errors.New("already_registered")
	ErrInvalidConfirmation = errors.New("invalid_confirmation")
	ErrConfirmationExpired = errors.New("confirmation_expired")
	ErrAlreadyTerminated   = errors.New("already_terminated")
)

const (
	confirmationCodeDigits = 6
	confirmationCodeTTL    = 10 * time.Minute
)

// CodeSender delivers a confirmation code to a new user, normally by email.
// Registration does not fail when delivery fails; the code can be re-sent by
// re-checking with a wrong code after expiry.
type CodeSender interface {
	SendConfirmationCode(ctx context.Context, email, code string) error
}

// NopCodeSender drops codes on the floor. It keeps development and test
// setups working without a mail relay.
type NopCodeSender struct{}

func (NopCodeSender) SendConfirmationCode(context.Context, string, string) error { return nil }

// UserService owns account registration and profile reads.
type UserService struct {
	Store  store.Store
	Auth   *AuthService
	Sender CodeSender
}

// BeginRegistration creates an unconfirmed account with its credential
// record and emails a 6-digit confirmation code. Username and email
// conflicts surface as ErrAlreadyRegistered.
func (s *UserService) BeginRegistration(ctx context.Context, username, email, password string) error {
	l := slogx.FromContext(ctx)

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return err
	}

	code, err := cryptox.GenerateNumericCode(confirmationCodeDigits)
	if err != nil {
		return err
	}

	// Issued up front so password recovery works even for accounts that
	// never finish confirmation.
	recoveryToken, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return err
	}

	role, err := s.Store.Roles().GetRoleByName(ctx, domain.RoleUser)
	if err != nil {
		return err
	}

	userID := idx.New().String()
	now := time.Now().UTC()
	expires := now.Add(confirmationCodeTTL)

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, domain.User{
			ID:               userID,
			Username:         username,
			Email:            email,
			RoleID:           role.ID,
			Salt:             uuid.NewString(),
			IsEmailConfirmed: false,
		}); err != nil {
			return err
		}

		return tx.LoginData().CreateLoginData(ctx, domain.LoginData{
			UserID:           userID,
			PasswordHash:     hash,
			ConfirmationCode: &code,
			CodeExpiresAt:    &expires,
			RecoveryToken:    &recoveryToken,
			RecoveryGenAt:    &now,
		})
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return ErrAlreadyRegistered
		}
		return err
	}

	if err := s.Sender.SendConfirmationCode(ctx, email, code); err != nil {
		l.Error("failed to send confirmation code", slog.String("user_id", userID), "err", err)
	}

	l.Info("registration started", slog.String("user_id", userID))
	return nil
}

// CheckRegistrationCode verifies a pending confirmation code. An expired
// code generates and sends a replacement before reporting
// ErrConfirmationExpired; a wrong or absent code is ErrInvalidConfirmation.
func (s *UserService) CheckRegistrationCode(ctx context.Context, email, code string) error {
	user, loginData, err := s.pendingRegistration(ctx, email)
	if err != nil {
		return err
	}

	if loginData.CodeExpiresAt != nil && time.Now().After(*loginData.CodeExpiresAt) {
		return s.reissueCode(ctx, user)
	}

	if loginData.ConfirmationCode == nil || *loginData.ConfirmationCode != code {
		return ErrInvalidConfirmation
	}

	return nil
}

// CompleteRegistration confirms the account, writes the profile and logs the
// new user straight in with a fresh token pair.
func (s *UserService) CompleteRegistration(ctx context.Context, req api.CompleteRegistrationRequest) (*domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	user, loginData, err := s.pendingRegistration(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	if loginData.CodeExpiresAt != nil && time.Now().After(*loginData.CodeExpiresAt) {
		return nil, s.reissueCode(ctx, user)
	}

	if loginData.ConfirmationCode == nil || *loginData.ConfirmationCode != req.ConfirmationCode {
		return nil, ErrInvalidConfirmation
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().ConfirmEmail(ctx, user.ID); err != nil {
			return err
		}
		if err := tx.LoginData().ClearConfirmationCode(ctx, user.ID); err != nil {
			return err
		}
		return tx.Profiles().CreateProfile(ctx, domain.Profile{
			UserID:     user.ID,
			Name:       req.Name,
			Surname:    req.Surname,
			Patronymic: req.Patronymic,
			AvatarURL:  req.AvatarURL,
		})
	})
	if err != nil {
		return nil, err
	}

	l.Info("registration completed", slog.String("user_id", user.ID))

	role, err := s.Store.Roles().GetRoleByID(ctx, user.RoleID)
	if err != nil {
		return nil, err
	}

	return s.Auth.IssuePair(ctx, api.Account{
		ID:       user.ID,
		Username: user.Username,
		Role:     role.Name,
		Salt:     user.Salt,
	})
}

// GetProfile fetches the profile for an authenticated user.
func (s *UserService) GetProfile(ctx context.Context, userID string) (api.Profile, error) {
	p, err := s.Store.Profiles().GetProfileByUserID(ctx, userID)
	if err != nil {
		return api.Profile{}, err
	}
	return api.Profile{
		Name:       p.Name,
		Surname:    p.Surname,
		Patronymic: p.Patronymic,
		AvatarURL:  p.AvatarURL,
	}, nil
}

// TerminateAccount closes an account: it records the closure, then rotates
// the auth salt and evicts the cached snapshot so every outstanding token
// dies with the account. The identity row stays for historical references.
func (s *UserService) TerminateAccount(ctx context.Context, userID, reason string) error {
	l := slogx.FromContext(ctx)

	err := s.Store.Terminations().CreateTermination(ctx, domain.Termination{
		UserID:       userID,
		Reason:       reason,
		TerminatedAt: time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return ErrAlreadyTerminated
		}
		return err
	}

	if err := s.Auth.Logout(ctx, userID); err != nil {
		return err
	}

	l.Info("account terminated", slog.String("user_id", userID))
	return nil
}

// pendingRegistration loads a not-yet-confirmed account by email. Confirmed
// accounts and unknown emails both map to ErrInvalidConfirmation so the
// endpoint cannot be used to probe which emails exist.
func (s *UserService) pendingRegistration(ctx context.Context, email string) (domain.User, domain.LoginData, error) {
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, domain.LoginData{}, ErrInvalidConfirmation
		}
		return domain.User{}, domain.LoginData{}, err
	}

	if user.IsEmailConfirmed {
		return domain.User{}, domain.LoginData{}, ErrInvalidConfirmation
	}

	loginData, err := s.Store.LoginData().GetLoginDataByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, domain.LoginData{}, ErrInvalidConfirmation
		}
		return domain.User{}, domain.LoginData{}, err
	}

	return user, loginData, nil
}

// reissueCode stores and sends a replacement confirmation code, then reports
// the expiry so the caller knows to check again.
func (s *UserService) reissueCode(ctx context.Context, user domain.User) error {
	l := slogx.FromContext(ctx)

	code, err := cryptox.GenerateNumericCode(confirmationCodeDigits)
	if err != nil {
		return err
	}

	expires := time.Now().Add(confirmationCodeTTL).UTC()
	if err := s.Store.LoginData().SetConfirmationCode(ctx, user.ID, code, expires); err != nil {
		return err
	}

	if err := s.Sender.SendConfirmationCode(ctx, user.Email, code); err != nil {
		l.Error("failed to send replacement confirmation code", slog.String("user_id", user.ID), "err", err)
	}

	return ErrConfirmationExpired
}
