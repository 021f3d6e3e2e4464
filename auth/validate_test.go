package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSignup(t *testing.T) {
	tests := []struct {
		fullname, email, password string
		wantErr                   error
	}{
		{wantErr: ErrNameTooShort},
		{fullname: "Jo", email: "bad", password: "weak", wantErr: ErrNameTooShort},
		{fullname: "Jé", email: "jane@example.com", password: "Secret1", wantErr: ErrNameTooShort},
		{fullname: "Jane", wantErr: ErrEmailMissing},
		{fullname: "Jane", password: "Secret1", wantErr: ErrEmailMissing},
		{fullname: "Jane", email: "foo@bar", password: "weak", wantErr: ErrEmailInvalid},
		{fullname: "Jane", email: "a@@b.com", password: "Secret1", wantErr: ErrEmailInvalid},
		{fullname: "Jane", email: "jane doe@example.com", password: "Secret1", wantErr: ErrEmailInvalid},
		{fullname: "Jane", email: "jane@example.c", password: "Secret1", wantErr: ErrEmailInvalid},
		{fullname: "Jane", email: "jane@example.com", password: "alllowercase1", wantErr: ErrPasswordWeak},
		{fullname: "Jane", email: "jane@example.com", password: "ALLUPPER1", wantErr: ErrPasswordWeak},
		{fullname: "Jane", email: "jane@example.com", password: "NoDigits", wantErr: ErrPasswordWeak},
		{fullname: "Jane", email: "jane@example.com", password: "Sh0rt", wantErr: ErrPasswordWeak},
		{fullname: "Jane", email: "jane@example.com", password: "Abcdefghij1234567890x", wantErr: ErrPasswordWeak},
		{fullname: "Jane", email: "jane@example.com", password: "short1A"},
		{fullname: "Jéa", email: "jane@example.com", password: "Secret1"},
		{fullname: "Jane Doe", email: "first.last@mail.co.uk", password: "Secret1"},
		{fullname: "Jane Doe", email: "jane_doe@mail-server.org", password: "Abcdefghij123456789x"},
	}

	for _, tt := range tests {
		err := ValidateSignup(tt.fullname, tt.email, tt.password)
		assert.Equal(t, tt.wantErr, err, "fullname=%q email=%q password=%q", tt.fullname, tt.email, tt.password)
	}
}
