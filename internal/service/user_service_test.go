package service

import (
	"testing"

	"go-barcode-archive/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserHashesPassword(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewUserService(repo)

	user, err := svc.CreateUser(&CreateUserRequest{Name: "alice", Password: "secret", Role: model.RoleUser})
	require.NoError(t, err)

	assert.NotEqual(t, "secret", user.Password)
	assert.True(t, user.CheckPassword("secret"))
	assert.True(t, user.IsActive)
}

func TestCreateUserDuplicateNameCaseInsensitive(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewUserService(repo)

	_, err := svc.CreateUser(&CreateUserRequest{Name: "alice", Password: "secret", Role: model.RoleUser})
	require.NoError(t, err)

	_, err = svc.CreateUser(&CreateUserRequest{Name: "Alice", Password: "secret", Role: model.RoleUser})
	assert.ErrorIs(t, err, ErrNameExists)
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	svc := NewUserService(&fakeUserRepo{})

	_, err := svc.CreateUser(&CreateUserRequest{Name: "bob", Password: "secret", Role: "superuser"})
	assert.Error(t, err)
}

func TestUpdateUserChangesRole(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewUserService(repo)

	user, err := svc.CreateUser(&CreateUserRequest{Name: "bob", Password: "secret", Role: model.RoleUser})
	require.NoError(t, err)

	updated, err := svc.UpdateUser(user.ID, &UpdateUserRequest{Name: "bob", Role: model.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, updated.Role)
}

func TestDeleteUser(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewUserService(repo)

	user, err := svc.CreateUser(&CreateUserRequest{Name: "bob", Password: "secret", Role: model.RoleUser})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(user.ID))
	assert.Empty(t, repo.users)

	assert.ErrorIs(t, svc.DeleteUser(uuid.New()), ErrUserNotFound)
}

func TestSetTheme(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewUserService(repo)

	user, err := svc.CreateUser(&CreateUserRequest{Name: "bob", Password: "secret", Role: model.RoleUser})
	require.NoError(t, err)

	require.NoError(t, svc.SetTheme(user.ID, "dark"))
	assert.Equal(t, "dark", repo.users[0].Theme)

	assert.ErrorIs(t, svc.SetTheme(user.ID, "neon"), ErrInvalidTheme)
}
