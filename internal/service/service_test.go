package service_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"notekeeper/internal/domain"
	"notekeeper/internal/repository/sqlite"
	"notekeeper/internal/service"
)

func newTestStore(t testing.TB) *sqlite.Store {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := sqlite.NewStore(db)
	require.NoError(t, store.Init(context.Background()))
	return store
}

func newServices(t testing.TB) (service.UserService, service.NoteService, *sqlite.Store) {
	t.Helper()
	store := newTestStore(t)
	return service.NewUserService(store, bcrypt.MinCost), service.NewNoteService(store), store
}

// register accepts a *rapid.T as well as a *testing.T.
func register(t require.TestingT, users service.UserService, username, password string) *domain.User {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	user, err := users.Register(context.Background(), username, password)
	require.NoError(t, err)
	return user
}
