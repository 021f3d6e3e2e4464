package auth

import (
	"context"
	"sync"
)

type accountRepository struct {
	mu         sync.RWMutex
	accounts   map[ID]Account
	byEmail    map[string]ID
	byUsername map[string]ID
}

func NewAccountRepository() Repository {
	return &accountRepository{
		accounts:   map[ID]Account{},
		byEmail:    map[string]ID{},
		byUsername: map[string]ID{},
	}
}

func (repo *accountRepository) Store(_ context.Context, acc *Account) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.byEmail[acc.Credentials.Email]; ok {
		return &StorageError{Kind: DuplicateKey, Field: fieldEmail}
	}
	if _, ok := repo.byUsername[acc.Credentials.Username]; ok {
		return &StorageError{Kind: DuplicateKey, Field: fieldUsername}
	}

	acc.ID = NewID()
	repo.accounts[acc.ID] = *acc
	repo.byEmail[acc.Credentials.Email] = acc.ID
	repo.byUsername[acc.Credentials.Username] = acc.ID
	return nil
}

func (repo *accountRepository) FindByID(_ context.Context, id ID) (*Account, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	if acc, ok := repo.accounts[id]; ok {
		return &acc, nil
	}
	return nil, ErrNotFound
}

func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	repo.mu.RLock()
	id, ok := repo.byEmail[email]
	repo.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	return repo.FindByID(ctx, id)
}

func (repo *accountRepository) ExistsByUsername(_ context.Context, username string) (bool, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	_, ok := repo.byUsername[username]
	return ok, nil
}

func (repo *accountRepository) Ping(_ context.Context) error {
	return nil
}
