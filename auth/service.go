package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
)

const (
	usernameRetries      = 3
	usernameRetryBackoff = 10 * time.Millisecond
)

type service struct {
	accounts  Repository
	hasher    Hasher
	tokens    TokenSigner
	logger    *slog.Logger
	newSuffix func() (string, error)
}

func NewService(accounts Repository, hasher Hasher, tokens TokenSigner, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		accounts:  accounts,
		hasher:    hasher,
		tokens:    tokens,
		logger:    logger,
		newSuffix: newUsernameSuffix,
	}
}

// Register validates the request, hashes the password, derives a username and
// stores the account, in that order.
func (svc *service) Register(ctx context.Context, r registerAccountRequest) (*Account, error) {
	if err := ValidateSignup(r.Fullname, r.Email, r.Password); err != nil {
		return nil, err
	}

	hash, err := svc.hasher.Hash(r.Password)
	if err != nil {
		svc.logger.ErrorContext(ctx, "hashing password failed", "error", err)
		return nil, &InternalError{Err: err}
	}

	username, err := svc.GenerateUsername(ctx, r.Email)
	if err != nil {
		svc.logger.ErrorContext(ctx, "generating username failed", "error", err)
		return nil, &InternalError{Err: err}
	}

	acc := NewAccount(r.Fullname, r.Email, username, hash)
	if err := svc.store(ctx, acc); err != nil {
		if _, ok := duplicateKeyField(err); ok {
			svc.logger.DebugContext(ctx, "signup conflict", "email", r.Email)
			return nil, ErrEmailAlreadyExists
		}
		svc.logger.ErrorContext(ctx, "saving account failed", "error", err)
		return nil, &InternalError{Err: err}
	}

	svc.logger.DebugContext(ctx, "account registered", "id", acc.ID, "username", acc.Credentials.Username)
	return acc, nil
}

// store inserts acc. A username collision that slipped past GenerateUsername
// is retried with a freshly suffixed name. Email collisions are not retried.
func (svc *service) store(ctx context.Context, acc *Account) error {
	b := retry.WithMaxRetries(usernameRetries, retry.NewConstant(usernameRetryBackoff))

	return retry.Do(ctx, b, func(ctx context.Context) error {
		err := svc.accounts.Store(ctx, acc)
		if field, ok := duplicateKeyField(err); ok && field == fieldUsername {
			username, serr := svc.withSuffix(usernameFromEmail(acc.Credentials.Email))
			if serr != nil {
				return serr
			}
			svc.logger.DebugContext(ctx, "username taken, retrying", "username", acc.Credentials.Username)
			acc.Credentials.Username = username
			return retry.RetryableError(err)
		}
		return err
	})
}

func (svc *service) Authenticate(ctx context.Context, r authenticateRequest) (*Session, error) {
	acc, err := svc.accounts.FindByEmail(ctx, r.Email)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		svc.logger.ErrorContext(ctx, "looking up account failed", "error", err)
		return nil, &InternalError{Err: err}
	}

	ok, err := svc.hasher.Compare(acc.Credentials.Password, r.Password)
	if err != nil {
		svc.logger.ErrorContext(ctx, "verifying password failed", "id", acc.ID, "error", err)
		return nil, ErrVerification
	}
	if !ok {
		return nil, ErrIncorrectPassword
	}

	svc.logger.DebugContext(ctx, "account authenticated", "id", acc.ID)
	return svc.NewSession(acc)
}

// NewSession signs a token for acc and copies its public profile fields.
func (svc *service) NewSession(acc *Account) (*Session, error) {
	token, err := svc.tokens.Sign(acc.ID)
	if err != nil {
		return nil, &InternalError{Err: err}
	}

	return &Session{
		AccessToken:  token,
		ProfileImage: acc.Credentials.ProfileImage,
		Username:     acc.Credentials.Username,
		Fullname:     acc.Credentials.Fullname,
	}, nil
}
