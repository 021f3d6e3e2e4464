package auth

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

var errInvalidRequest = errors.New("invalid request")

func SignupHandler(svc Service, m *Metrics) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		req, err := decodeRegisterAccountRequest(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			writeError(w, errInvalidRequest)
			return
		}

		acc, err := svc.Register(r.Context(), req)
		if err == nil {
			var session *Session
			session, err = svc.NewSession(acc)
			if err == nil {
				m.observeSignup(nil)
				encodeResponse(w, session)
				return
			}
		}

		m.observeSignup(err)
		encodeError(err, w)
	})
}

func SigninHandler(svc Service, m *Metrics) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		req, err := decodeAuthenticateRequest(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			writeError(w, errInvalidRequest)
			return
		}

		session, err := svc.Authenticate(r.Context(), req)
		m.observeSignin(err)
		if err != nil {
			encodeError(err, w)
			return
		}

		encodeResponse(w, session)
	})
}

// HealthHandler reports whether the account store is reachable.
func HealthHandler(accounts Repository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := accounts.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			writeError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"status": "ok"})
	})
}

func encodeResponse(w http.ResponseWriter, v interface{}) {
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func encodeError(err error, w http.ResponseWriter) {
	switch {
	case isValidationError(err):
		w.WriteHeader(http.StatusForbidden)
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrVerification), errors.Is(err, ErrIncorrectPassword):
		w.WriteHeader(http.StatusForbidden)
	default:
		w.WriteHeader(http.StatusInternalServerError)
	}
	writeError(w, err)
}

func writeError(w http.ResponseWriter, err error) {
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": err.Error(),
	})
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrNameTooShort),
		errors.Is(err, ErrEmailMissing),
		errors.Is(err, ErrEmailInvalid),
		errors.Is(err, ErrPasswordWeak):
		return true
	}
	return false
}

func decodeRegisterAccountRequest(body io.ReadCloser) (registerAccountRequest, error) {
	req := registerAccountRequest{}
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return registerAccountRequest{}, err
	}
	return req, nil
}

func decodeAuthenticateRequest(body io.ReadCloser) (authenticateRequest, error) {
	req := authenticateRequest{}
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return authenticateRequest{}, err
	}
	return req, nil
}
