package services

import (
	"context"
	"testing"
	"time"

	"github.com/bluestock/ipo-platform/models"
	"github.com/bluestock/ipo-platform/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniqueEmail() string {
	return "it-" + time.Now().Format("150405.000000000") + "@example.com"
}

func TestRegisterAndLogin(t *testing.T) {
	db := openTestDB(t)
	svc := NewUserService(db)

	email := uniqueEmail()
	user, err := svc.Register(context.Background(), &models.RegisterRequest{
		FullName: "Integration Tester",
		Email:    email,
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	t.Cleanup(func() {
		db.Exec("DELETE FROM users WHERE id = $1", user.ID)
	})

	// The stored password must be a hash, never the plaintext.
	var stored string
	require.NoError(t, db.QueryRow(
		"SELECT password FROM users WHERE id = $1", user.ID,
	).Scan(&stored))
	assert.NotEqual(t, "s3cret-pass", stored)

	logged, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    email,
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.Empty(t, logged.Password)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := openTestDB(t)
	svc := NewUserService(db)

	email := uniqueEmail()
	first, err := svc.Register(context.Background(), &models.RegisterRequest{
		FullName: "First",
		Email:    email,
		Password: "pass-one",
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Exec("DELETE FROM users WHERE id = $1", first.ID)
	})

	_, err = svc.Register(context.Background(), &models.RegisterRequest{
		FullName: "Second",
		Email:    email,
		Password: "pass-two",
	})
	require.Error(t, err)

	apiErr, ok := shared.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, shared.ErrorCategoryConflict, apiErr.Category)
	assert.Equal(t, "Email or Phone Number already exists", apiErr.Message)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	db := openTestDB(t)
	svc := NewUserService(db)

	email := uniqueEmail()
	user, err := svc.Register(context.Background(), &models.RegisterRequest{
		FullName: "Probe Target",
		Email:    email,
		Password: "right-password",
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Exec("DELETE FROM users WHERE id = $1", user.ID)
	})

	_, wrongPass := svc.Login(context.Background(), &models.LoginRequest{
		Email:    email,
		Password: "wrong-password",
	})
	_, unknownEmail := svc.Login(context.Background(), &models.LoginRequest{
		Email:    uniqueEmail(),
		Password: "whatever",
	})

	require.Error(t, wrongPass)
	require.Error(t, unknownEmail)
	assert.Equal(t, wrongPass.Error(), unknownEmail.Error())
}
