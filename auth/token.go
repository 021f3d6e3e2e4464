package auth

import (
	"github.com/dgrijalva/jwt-go"
)

const idClaim = "id"

// JWTSigner issues HS256 tokens whose only claim is the account id.
// Tokens carry no expiry.
type JWTSigner struct {
	key []byte
}

func NewJWTSigner(key []byte) *JWTSigner {
	return &JWTSigner{key: key}
}

func (s *JWTSigner) Sign(id ID) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{idClaim: string(id)})
	return token.SignedString(s.key)
}

// Parse verifies the token signature and returns the embedded account id.
func (s *JWTSigner) Parse(tokenString string) (ID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.key, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}

	id, ok := claims[idClaim].(string)
	if !ok || !isValidID(id) {
		return "", ErrInvalidToken
	}
	return ID(id), nil
}
