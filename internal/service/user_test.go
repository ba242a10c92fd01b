package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/clearlens/camwatch/internal/service"
	"github.com/clearlens/camwatch/internal/store"
	"github.com/clearlens/camwatch/pkg/api"
	"github.com/stretchr/testify/require"
)

func TestBeginRegistration(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an unconfirmed account and sends a code", func(t *testing.T) {
		env := newTestEnv(t)

		require.NoError(t, env.users.BeginRegistration(ctx, "newbie", "newbie@example.com", testPassword))

		u, err := env.store.Users().GetUserByUsername(ctx, "newbie")
		require.NoError(t, err)
		require.False(t, u.IsEmailConfirmed)
		require.NotEmpty(t, u.Salt)

		code := env.sentCodes["newbie@example.com"]
		require.Len(t, code, 6)

		// A recovery token is issued up front, before confirmation.
		d, err := env.store.LoginData().GetLoginDataByUserID(ctx, u.ID)
		require.NoError(t, err)
		require.NotNil(t, d.RecoveryToken)
		require.NotEmpty(t, *d.RecoveryToken)
		require.NotNil(t, d.RecoveryGenAt)
	})

	t.Run("recovery tokens are distinct per account", func(t *testing.T) {
		env := newTestEnv(t)

		require.NoError(t, env.users.BeginRegistration(ctx, "first", "first@example.com", testPassword))
		require.NoError(t, env.users.BeginRegistration(ctx, "second", "second@example.com", testPassword))

		u1, err := env.store.Users().GetUserByUsername(ctx, "first")
		require.NoError(t, err)
		u2, err := env.store.Users().GetUserByUsername(ctx, "second")
		require.NoError(t, err)

		d1, err := env.store.LoginData().GetLoginDataByUserID(ctx, u1.ID)
		require.NoError(t, err)
		d2, err := env.store.LoginData().GetLoginDataByUserID(ctx, u2.ID)
		require.NoError(t, err)
		require.NotEqual(t, *d1.RecoveryToken, *d2.RecoveryToken)
	})

	t.Run("username conflict", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedUser(t, "alice")

		err := env.users.BeginRegistration(ctx, "alice", "other@example.com", testPassword)
		require.ErrorIs(t, err, service.ErrAlreadyRegistered)
	})

	t.Run("email conflict", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedUser(t, "alice")

		err := env.users.BeginRegistration(ctx, "alice2", "alice@example.com", testPassword)
		require.ErrorIs(t, err, service.ErrAlreadyRegistered)

		// The failed attempt must not leave a half-created account behind.
		_, err = env.store.Users().GetUserByUsername(ctx, "alice2")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestCheckRegistrationCode(t *testing.T) {
	ctx := context.Background()

	t.Run("accepts the sent code", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, env.users.BeginRegistration(ctx, "newbie", "newbie@example.com", testPassword))

		code := env.sentCodes["newbie@example.com"]
		require.NoError(t, env.users.CheckRegistrationCode(ctx, "newbie@example.com", code))
	})

	t.Run("rejects a wrong code", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, env.users.BeginRegistration(ctx, "newbie", "newbie@example.com", testPassword))

		err := env.users.CheckRegistrationCode(ctx, "newbie@example.com", "000000")
		require.ErrorIs(t, err, service.ErrInvalidConfirmation)
	})

	t.Run("rejects an unknown email without leaking existence", func(t *testing.T) {
		env := newTestEnv(t)

		err := env.users.CheckRegistrationCode(ctx, "ghost@example.com", "123456")
		require.ErrorIs(t, err, service.ErrInvalidConfirmation)
	})

	t.Run("expired code is replaced", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, env.users.BeginRegistration(ctx, "newbie", "newbie@example.com", testPassword))
		oldCode := env.sentCodes["newbie@example.com"]

		u, err := env.store.Users().GetUserByEmail(ctx, "newbie@example.com")
		require.NoError(t, err)
		require.NoError(t, env.store.LoginData().SetConfirmationCode(ctx, u.ID, oldCode, time.Now().Add(-time.Minute)))

		err = env.users.CheckRegistrationCode(ctx, "newbie@example.com", oldCode)
		require.ErrorIs(t, err, service.ErrConfirmationExpired)

		// A fresh code was generated and sent; it now verifies.
		newCode := env.sentCodes["newbie@example.com"]
		require.NotEqual(t, oldCode, newCode)
		require.NoError(t, env.users.CheckRegistrationCode(ctx, "newbie@example.com", newCode))
	})

	t.Run("confirmed accounts cannot be re-checked", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedUser(t, "alice")

		err := env.users.CheckRegistrationCode(ctx, "alice@example.com", "123456")
		require.ErrorIs(t, err, service.ErrInvalidConfirmation)
	})
}

func TestCompleteRegistration(t *testing.T) {
	ctx := context.Background()

	completeReq := func(env *testEnv) api.CompleteRegistrationRequest {
		return api.CompleteRegistrationRequest{
			Email:            "newbie@example.com",
			ConfirmationCode: env.sentCodes["newbie@example.com"],
			Name:             "New",
			Surname:          "Bee",
		}
	}

	t.Run("confirms, creates profile and logs in", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, env.users.BeginRegistration(ctx, "newbie", "newbie@example.com", testPassword))

		pair, err := env.users.CompleteRegistration(ctx, completeReq(env))
		require.NoError(t, err)

		acct, err := env.auth.Authenticate(ctx, pair.AccessToken)
		require.NoError(t, err)
		require.Equal(t, "newbie", acct.Username)

		profile, err := env.users.GetProfile(ctx, acct.ID)
		require.NoError(t, err)
		require.Equal(t, "New", profile.Name)
		require.Equal(t, "Bee", profile.Surname)

		// Login is possible now that the email is confirmed.
		_, err = env.auth.Login(ctx, "newbie", testPassword)
		require.NoError(t, err)

		// The code has been consumed.
		d, err := env.store.LoginData().GetLoginDataByUserID(ctx, acct.ID)
		require.NoError(t, err)
		require.Nil(t, d.ConfirmationCode)
	})

	t.Run("wrong code", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, env.users.BeginRegistration(ctx, "newbie", "newbie@example.com", testPassword))

		req := completeReq(env)
		req.ConfirmationCode = "000000"
		_, err := env.users.CompleteRegistration(ctx, req)
		require.ErrorIs(t, err, service.ErrInvalidConfirmation)
	})

	t.Run("cannot complete twice", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, env.users.BeginRegistration(ctx, "newbie", "newbie@example.com", testPassword))

		req := completeReq(env)
		_, err := env.users.CompleteRegistration(ctx, req)
		require.NoError(t, err)

		_, err = env.users.CompleteRegistration(ctx, req)
		require.ErrorIs(t, err, service.ErrInvalidConfirmation)
	})
}

func TestTerminateAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("revokes outstanding tokens and blocks future logins", func(t *testing.T) {
		env := newTestEnv(t)
		u := env.seedUser(t, "alice")

		pair, err := env.auth.Login(ctx, "alice", testPassword)
		require.NoError(t, err)

		require.NoError(t, env.users.TerminateAccount(ctx, u.ID, "user request"))

		_, err = env.auth.Authenticate(ctx, pair.AccessToken)
		require.ErrorIs(t, err, api.ErrUnauthorized)

		_, err = env.auth.Refresh(ctx, pair.RefreshToken)
		require.ErrorIs(t, err, api.ErrUnauthorized)

		_, err = env.auth.Login(ctx, "alice", testPassword)
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("records the closure", func(t *testing.T) {
		env := newTestEnv(t)
		u := env.seedUser(t, "alice")

		require.NoError(t, env.users.TerminateAccount(ctx, u.ID, "abuse"))

		got, err := env.store.Terminations().GetTerminationByUserID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, "abuse", got.Reason)
		require.False(t, got.TerminatedAt.IsZero())
	})

	t.Run("cannot terminate twice", func(t *testing.T) {
		env := newTestEnv(t)
		u := env.seedUser(t, "alice")

		require.NoError(t, env.users.TerminateAccount(ctx, u.ID, ""))
		require.ErrorIs(t, env.users.TerminateAccount(ctx, u.ID, ""), service.ErrAlreadyTerminated)
	})
}
