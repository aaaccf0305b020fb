package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nightowllabs/taskhub/pkg/httpx"
)

var errNoCaller = errors.New("no caller identity resolved")

// CallerIdentity resolves the calling user for write operations and stores it
// in the request context.
//
// When a signing secret is configured and the request carries a bearer token,
// the token must be a valid HS256 JWT whose subject is the caller's numeric
// user id. Without a token (or without a configured secret) the fallback id
// is used, which stands in for real authentication.
func CallerIdentity(secret []byte, fallbackID int64) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			callerID := fallbackID

			auth := r.Header.Get("Authorization")
			if len(secret) > 0 && strings.HasPrefix(auth, "Bearer ") {
				id, err := subjectFromToken(strings.TrimPrefix(auth, "Bearer "), secret)
				if err != nil {
					writeError(w, http.StatusUnauthorized, "invalid_token", err.Error())
					return
				}
				callerID = id
			}

			ctx := httpx.WithCallerID(r.Context(), callerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func subjectFromToken(raw string, secret []byte) (int64, error) {
	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return secret, nil
	})
	if err != nil {
		return 0, fmt.Errorf("invalid bearer token: %w", err)
	}
	if !token.Valid {
		return 0, errors.New("invalid bearer token")
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("token subject %q is not a user id", claims.Subject)
	}
	return id, nil
}
