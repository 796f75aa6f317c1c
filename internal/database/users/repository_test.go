package users

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookexchange/internal/apperror"
	"github.com/mrlokans/bookexchange/internal/database/dbtest"
	"github.com/mrlokans/bookexchange/internal/entities"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()
	return NewRepository(dbtest.Open(t))
}

func strPtr(s string) *string { return &s }

func createTestUser(t *testing.T, repo *Repository, email string, roles ...string) *entities.User {
	t.Helper()
	user := &entities.User{Email: email, Password: "hash", Role: roles}
	require.NoError(t, repo.Create(user))
	return user
}

func TestRepository_Create(t *testing.T) {
	repo := setupTestDB(t)

	user := &entities.User{
		FirstName: strPtr("Ada"),
		Email:     "ada@example.com",
		Password:  "hash",
		Role:      []string{"reader", "admin", "reader"},
	}
	require.NoError(t, repo.Create(user))
	assert.NotEqual(t, uuid.Nil, user.ID)

	got, err := repo.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", got.Email)
	assert.Equal(t, "hash", got.Password)
	assert.Equal(t, []string{"reader", "admin"}, got.Role)
	assert.Nil(t, got.LastName)
}

func TestRepository_Create_NoRoles(t *testing.T) {
	repo := setupTestDB(t)
	user := createTestUser(t, repo, "plain@example.com")

	got, err := repo.GetByID(user.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.Role)
	assert.Empty(t, got.Role)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.GetByID(uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestRepository_ListAndExists(t *testing.T) {
	repo := setupTestDB(t)
	first := createTestUser(t, repo, "a@example.com")
	second := createTestUser(t, repo, "b@example.com")

	users, err := repo.List()
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, first.ID, users[0].ID)
	assert.Equal(t, second.ID, users[1].ID)

	ok, err := repo.Exists(second.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRepository_Update(t *testing.T) {
	repo := setupTestDB(t)
	user := createTestUser(t, repo, "old@example.com", "reader")

	t.Run("role replaces the whole set", func(t *testing.T) {
		updated, err := repo.Update(user.ID, Patch{Role: []string{"admin", "admin"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"admin"}, updated.Role)
	})

	t.Run("nil role keeps the set", func(t *testing.T) {
		updated, err := repo.Update(user.ID, Patch{Email: strPtr("new@example.com")})
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", updated.Email)
		assert.Equal(t, []string{"admin"}, updated.Role)
	})

	t.Run("password hash is replaced", func(t *testing.T) {
		_, err := repo.Update(user.ID, Patch{PasswordHash: strPtr("rehashed")})
		require.NoError(t, err)

		got, err := repo.GetByID(user.ID)
		require.NoError(t, err)
		assert.Equal(t, "rehashed", got.Password)
		assert.Equal(t, "new@example.com", got.Email)
	})

	t.Run("empty strings are ignored", func(t *testing.T) {
		updated, err := repo.Update(user.ID, Patch{Email: strPtr(""), PasswordHash: strPtr("")})
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", updated.Email)
		assert.Equal(t, "rehashed", updated.Password)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := repo.Update(uuid.New(), Patch{})
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
}

func TestRepository_Delete(t *testing.T) {
	repo := setupTestDB(t)
	user := createTestUser(t, repo, "bye@example.com")

	require.NoError(t, repo.Delete(user.ID))

	_, err := repo.GetByID(user.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(user.ID), apperror.ErrNotFound)
}

func TestRepository_ByIDs(t *testing.T) {
	repo := setupTestDB(t)
	user := createTestUser(t, repo, "found@example.com", "reader")

	found, err := repo.ByIDs([]uuid.UUID{user.ID, uuid.New()})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, []string{"reader"}, found[user.ID].Role)
}
