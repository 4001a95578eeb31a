package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proseware/auth-api/internal/domain/user"
	"github.com/proseware/auth-api/internal/ports"
	"github.com/proseware/auth-api/internal/testutil"
)

func newTestStore(t *testing.T) *UserStore {
	t.Helper()
	return NewUserStore(testutil.SetupTestRedis(t))
}

func testUser(id, email string) user.User {
	now := time.Now().UTC().Truncate(time.Second)
	return user.User{
		ID:           id,
		Name:         "Ann",
		Email:        email,
		PasswordHash: "$2a$10$hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestUserStore_CreateAndFind(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	u := testUser("u-1", "ann@x.com")
	require.NoError(t, store.Create(ctx, u))

	byID, err := store.FindByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, u.Email, byID.Email)
	assert.Equal(t, u.PasswordHash, byID.PasswordHash)

	byEmail, err := store.FindByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", byEmail.ID)
}

func TestUserStore_CreateDuplicateEmail(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, testUser("u-1", "ann@x.com")))
	err := store.Create(ctx, testUser("u-2", "ann@x.com"))
	assert.ErrorIs(t, err, ports.ErrEmailTaken)
}

func TestUserStore_FindMissing(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.FindByID(ctx, "ghost")
	assert.ErrorIs(t, err, ports.ErrUserNotFound)

	_, err = store.FindByEmail(ctx, "ghost@x.com")
	assert.ErrorIs(t, err, ports.ErrUserNotFound)
}

func TestUserStore_UpdateMovesEmailIndex(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, testUser("u-1", "ann@x.com")))

	u := testUser("u-1", "annie@x.com")
	u.Name = "Annie"
	require.NoError(t, store.Update(ctx, u))

	got, err := store.FindByEmail(ctx, "annie@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Annie", got.Name)

	_, err = store.FindByEmail(ctx, "ann@x.com")
	assert.ErrorIs(t, err, ports.ErrUserNotFound)
}

func TestUserStore_UpdateEmailCollision(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, testUser("u-1", "ann@x.com")))
	require.NoError(t, store.Create(ctx, testUser("u-2", "bob@x.com")))

	u := testUser("u-2", "ann@x.com")
	err := store.Update(ctx, u)
	assert.ErrorIs(t, err, ports.ErrEmailTaken)
}

func TestUserStore_UpdateMissing(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.Update(ctx, testUser("ghost", "ghost@x.com"))
	assert.ErrorIs(t, err, ports.ErrUserNotFound)
}
