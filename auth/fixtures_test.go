package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSigningKey = "test-signing-key"

func newTestService(accounts Repository) *service {
	svc := NewService(
		accounts,
		NewBcryptHasher(bcrypt.MinCost),
		NewJWTSigner([]byte(testSigningKey)),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return svc.(*service)
}

func storeFixture(t *testing.T, accounts Repository, fullname, email, username, hash string) *Account {
	t.Helper()
	acc := NewAccount(fullname, email, username, hash)
	require.NoError(t, accounts.Store(context.Background(), acc))
	return acc
}

// racyRepository never reports a username as taken, as if a concurrent signup
// won the race between GenerateUsername and Store.
type racyRepository struct {
	Repository
}

func (r *racyRepository) ExistsByUsername(context.Context, string) (bool, error) {
	return false, nil
}

// failingRepository fails lookups with err and inserts with storeErr. A nil
// storeErr lets Store through to the embedded repository.
type failingRepository struct {
	Repository
	err      error
	storeErr error
}

func (r *failingRepository) Store(ctx context.Context, acc *Account) error {
	if r.storeErr != nil {
		return r.storeErr
	}
	return r.Repository.Store(ctx, acc)
}

func (r *failingRepository) FindByEmail(context.Context, string) (*Account, error) {
	return nil, r.err
}

func (r *failingRepository) ExistsByUsername(context.Context, string) (bool, error) {
	return false, r.err
}

func (r *failingRepository) Ping(context.Context) error {
	return r.err
}

var (
	errStoreDown = &StorageError{Kind: StorageFailure, Err: errors.New("connection refused")}
	errDiskFull  = &StorageError{Kind: StorageFailure, Err: errors.New("disk full")}
)
