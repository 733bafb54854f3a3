package server

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inclureach/inclureach/internal/config"
	"github.com/inclureach/inclureach/internal/db"
	"github.com/inclureach/inclureach/internal/types"
)

func testPasswordConfig() *config.PasswordConfig {
	return &config.PasswordConfig{BcryptCost: 10}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := &stubStore{
		checkEmailExistsFn: func(_ context.Context, _ string) (bool, error) {
			return true, nil
		},
	}
	svc := NewUserService(store, testPasswordConfig())

	_, err := svc.Register(context.Background(), &types.RegisterRequest{
		FullName: "Amina Yusuf",
		Email:    "amina@example.com",
		Password: "longenough",
	})
	require.Error(t, err)
	assert.IsType(t, &ErrEmailAlreadyExists{}, err)
}

func TestRegisterHashesPassword(t *testing.T) {
	userID := uuid.New()
	var storedHash string
	store := &stubStore{
		createUserFn: func(_ context.Context, fullName, email, passwordHash string) (uuid.UUID, error) {
			storedHash = passwordHash
			return userID, nil
		},
		getUserFn: func(_ context.Context, _ uuid.UUID) (*db.User, error) {
			return &db.User{ID: userID, FullName: "Amina Yusuf", Email: "amina@example.com"}, nil
		},
	}
	svc := NewUserService(store, testPasswordConfig())

	user, err := svc.Register(context.Background(), &types.RegisterRequest{
		FullName: "Amina Yusuf",
		Email:    "amina@example.com",
		Password: "longenough",
	})
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.NotEqual(t, "longenough", storedHash)
	assert.True(t, testPasswordConfig().VerifyPassword("longenough", storedHash))
}

func TestLoginWrongPassword(t *testing.T) {
	pc := testPasswordConfig()
	hash, err := pc.HashPassword("correct-password")
	require.NoError(t, err)

	store := &stubStore{
		getUserByEmailFn: func(_ context.Context, _ string) (*db.User, error) {
			return &db.User{ID: uuid.New(), Email: "amina@example.com", PasswordHash: hash}, nil
		},
	}
	svc := NewUserService(store, pc)

	_, err = svc.Login(context.Background(), &types.LoginRequest{
		Email:    "amina@example.com",
		Password: "wrong-password",
	})
	require.Error(t, err)
	assert.IsType(t, &ErrInvalidCredentials{}, err)
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	svc := NewUserService(&stubStore{}, testPasswordConfig())

	_, err := svc.Login(context.Background(), &types.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	require.Error(t, err)
	assert.IsType(t, &ErrInvalidCredentials{}, err, "unknown email and wrong password are indistinguishable")
}

func TestUpdatePasswordVerifiesCurrent(t *testing.T) {
	pc := testPasswordConfig()
	hash, err := pc.HashPassword("old-password")
	require.NoError(t, err)

	updated := false
	store := &stubStore{
		getUserFn: func(_ context.Context, _ uuid.UUID) (*db.User, error) {
			return &db.User{ID: uuid.New(), PasswordHash: hash}, nil
		},
		updatePasswordFn: func(_ context.Context, _ uuid.UUID, _ string) error {
			updated = true
			return nil
		},
	}
	svc := NewUserService(store, pc)

	err = svc.UpdatePassword(context.Background(), uuid.New(), "wrong", "new-password")
	require.Error(t, err)
	assert.IsType(t, &ErrPasswordMismatch{}, err)
	assert.False(t, updated)

	err = svc.UpdatePassword(context.Background(), uuid.New(), "old-password", "new-password")
	require.NoError(t, err)
	assert.True(t, updated)
}
