package auth

import "context"

type Service interface {
	Register(ctx context.Context, r registerAccountRequest) (*Account, error)
	Authenticate(ctx context.Context, r authenticateRequest) (*Session, error)
	GenerateUsername(ctx context.Context, email string) (string, error)
	NewSession(acc *Account) (*Session, error)
}

// Repository stores accounts. Implementations enforce uniqueness of email and
// username and report violations as a *StorageError with Kind DuplicateKey.
type Repository interface {
	Store(ctx context.Context, acc *Account) error
	FindByID(ctx context.Context, id ID) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Ping(ctx context.Context) error
}

type Hasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) (bool, error)
}

type TokenSigner interface {
	Sign(id ID) (string, error)
}

type registerAccountRequest struct {
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authenticateRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is returned on successful signup and signin.
type Session struct {
	AccessToken  string `json:"access_token"`
	ProfileImage string `json:"profile_img"`
	Username     string `json:"username"`
	Fullname     string `json:"fullname"`
}
