package auth

import (
	"context"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const usernameSuffixLength = 3

func newUsernameSuffix() (string, error) {
	return gonanoid.New(usernameSuffixLength)
}

func usernameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

// GenerateUsername derives a username from the local part of email. When that
// name is already taken a short random suffix is appended. The check is not
// atomic with insertion; Register handles a collision reported by Store.
func (svc *service) GenerateUsername(ctx context.Context, email string) (string, error) {
	username := usernameFromEmail(email)

	taken, err := svc.accounts.ExistsByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	if taken {
		return svc.withSuffix(username)
	}
	return username, nil
}

func (svc *service) withSuffix(username string) (string, error) {
	suffix, err := svc.newSuffix()
	if err != nil {
		return "", err
	}
	return username + suffix, nil
}
