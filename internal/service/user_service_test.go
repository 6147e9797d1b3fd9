package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"notekeeper/internal/domain"
	"notekeeper/internal/repository"
	"notekeeper/internal/service"
)

func TestRegister_HashesPassword(t *testing.T) {
	users, _, store := newServices(t)

	user := register(t, users, "alice", "p1")
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.PasswordHash, "returned user must not carry the hash")

	stored, err := store.Users().GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "p1", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("p1")))
}

func TestRegister_DuplicateUsername(t *testing.T) {
	users, _, _ := newServices(t)
	register(t, users, "alice", "p1")

	_, err := users.Register(context.Background(), "alice", "other")
	assert.ErrorIs(t, err, service.ErrDuplicateUsername)

	_, err = users.Register(context.Background(), "  alice ", "other")
	assert.ErrorIs(t, err, service.ErrDuplicateUsername)
}

func TestRegister_InvalidInput(t *testing.T) {
	users, _, _ := newServices(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "empty username", username: "", password: "p1"},
		{name: "blank username", username: "   ", password: "p1"},
		{name: "empty password", username: "alice", password: ""},
		{name: "password over bcrypt limit", username: "alice", password: strings.Repeat("x", 73)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := users.Register(ctx, tt.username, tt.password)
			assert.ErrorIs(t, err, service.ErrInvalidInput)
		})
	}
}

func TestAuthenticate(t *testing.T) {
	users, _, _ := newServices(t)
	ctx := context.Background()
	register(t, users, "alice", "p1")

	principal, err := users.Authenticate(ctx, "alice", "p1")
	require.NoError(t, err)
	assert.Equal(t, domain.Principal{Username: "alice"}, *principal)

	_, wrongPassword := users.Authenticate(ctx, "alice", "p2")
	_, unknownUser := users.Authenticate(ctx, "mallory", "p1")
	_, empty := users.Authenticate(ctx, "", "")
	assert.ErrorIs(t, wrongPassword, service.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, service.ErrInvalidCredentials)
	assert.ErrorIs(t, empty, service.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword, unknownUser, "unknown user and wrong password must be indistinguishable")
}

func TestAuthenticate_ExactUsername(t *testing.T) {
	users, _, _ := newServices(t)
	register(t, users, " alice ", "p1")

	principal, err := users.Authenticate(context.Background(), "alice", "p1")
	require.NoError(t, err)
	assert.Equal(t, "alice", principal.Username)

	for _, username := range []string{" alice ", "alice ", "Alice"} {
		_, err := users.Authenticate(context.Background(), username, "p1")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials, "username %q", username)
	}
}

func TestAuthenticate_PasswordOverBcryptLimit(t *testing.T) {
	users, _, _ := newServices(t)
	ctx := context.Background()
	longest := strings.Repeat("x", 72)
	register(t, users, "carol", longest)

	_, err := users.Authenticate(ctx, "carol", longest)
	require.NoError(t, err)

	// bcrypt only reads 72 bytes, so the extra byte would otherwise match
	_, err = users.Authenticate(ctx, "carol", longest+"x")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	_, err = users.Authenticate(ctx, "mallory", longest+"x")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestCurrentUser(t *testing.T) {
	users, _, _ := newServices(t)
	ctx := context.Background()
	alice := register(t, users, "alice", "p1")

	current, err := users.CurrentUser(ctx, domain.Principal{Username: "alice"})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, current.ID)
	assert.Empty(t, current.PasswordHash)

	_, err = users.CurrentUser(ctx, domain.Principal{Username: "ghost"})
	assert.ErrorIs(t, err, service.ErrInvariantViolation)
}

// racingStore simulates another request inserting the same username between
// the existence check and the insert.
type racingStore struct {
	repository.Store
}

func (s racingStore) Users() repository.UserRepository { return racingUsers{} }

func (s racingStore) WithinTx(ctx context.Context, fn func(tx repository.Store) error) error {
	return fn(s)
}

type racingUsers struct{}

func (racingUsers) Save(context.Context, *domain.User) error { return repository.ErrUserExists }

func (racingUsers) GetByUsername(context.Context, string) (*domain.User, error) {
	return nil, repository.ErrUserNotFound
}

func (racingUsers) GetByID(context.Context, int64) (*domain.User, error) {
	return nil, repository.ErrUserNotFound
}

func TestRegister_ConstraintViolationIsDuplicate(t *testing.T) {
	users := service.NewUserService(racingStore{}, bcrypt.MinCost)

	_, err := users.Register(context.Background(), "alice", "p1")
	assert.ErrorIs(t, err, service.ErrDuplicateUsername)
}
