package auth

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"
)

type Account struct {
	ID          ID          `json:"_id"`
	Credentials Credentials `json:"personal_info"`
	CreatedAt   time.Time   `json:"joinedAt"`
}

type ID string

//Credentials holds the account's personal information. Password is always a hash
// and is never rendered to clients.
type Credentials struct {
	Fullname     string `json:"fullname"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	Password     string `json:"-"`
	ProfileImage string `json:"profile_img"`
}

// Client-facing messages are part of the HTTP contract and must not change.
var (
	ErrNameTooShort       = errors.New("Full name must be 3 letter long.")
	ErrEmailMissing       = errors.New("Enter email")
	ErrEmailInvalid       = errors.New("Email is invalid.")
	ErrPasswordWeak       = errors.New("Password should be 6 to 20 character long with a numeric, 1 lowercase and 1 uppercase letters.")
	ErrEmailAlreadyExists = errors.New("Email already exists.")
	ErrUserNotFound       = errors.New("User not found.")
	ErrVerification       = errors.New("Error occured while login please try again.")
	ErrIncorrectPassword  = errors.New("Incorrect password.")
	ErrNotFound           = errors.New("account not found")
	ErrInvalidToken       = errors.New("invalid token")
)

// StorageErrorKind tells callers how a repository failure should be treated.
type StorageErrorKind int

const (
	StorageFailure StorageErrorKind = iota
	DuplicateKey
)

const (
	fieldEmail    = "email"
	fieldUsername = "username"
)

// StorageError is returned by repositories in place of engine specific errors.
// Field names the unique field that was violated when Kind is DuplicateKey.
type StorageError struct {
	Kind  StorageErrorKind
	Field string
	Err   error
}

func (e *StorageError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Kind == DuplicateKey {
		return fmt.Sprintf("duplicate key: %s", e.Field)
	}
	return "storage failure"
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func duplicateKeyField(err error) (string, bool) {
	var serr *StorageError
	if errors.As(err, &serr) && serr.Kind == DuplicateKey {
		return serr.Field, true
	}
	return "", false
}

// InternalError wraps an unexpected failure. Its message is the underlying one.
type InternalError struct {
	Err error
}

func (e *InternalError) Error() string {
	return e.Err.Error()
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

//NewAccount builds an unsaved account. The ID is assigned by the repository on Store.
func NewAccount(fullname, email, username, passwordHash string) *Account {
	return &Account{
		Credentials: Credentials{
			Fullname:     fullname,
			Email:        email,
			Username:     username,
			Password:     passwordHash,
			ProfileImage: defaultProfileImage(email),
		},
		CreatedAt: time.Now().UTC(),
	}
}

func NewID() ID {
	return ID(xid.New().String())
}

func isValidID(id string) bool {
	if _, err := xid.FromString(id); err != nil {
		return false
	}
	return true
}

func defaultProfileImage(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?d=identicon", hex.EncodeToString(sum[:]))
}
