package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ddrozdov/gatehouse-server/internal/model"
)

// CredentialVerifier validates query tokens and extracts the subject ID.
type CredentialVerifier interface {
	Verify(ctx context.Context, queryToken string) (uuid.UUID, error)
}

// Authenticate requires a valid Bearer query token and stores the
// subject ID in the request context.
func Authenticate(credentials CredentialVerifier, ctxManager model.ContextManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				unauthorized(w, model.ErrUnauthorized)
				return
			}

			subjectID, err := credentials.Verify(r.Context(), token)
			if err != nil {
				unauthorized(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctxManager.SetSubjectID(r.Context(), subjectID)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}

func unauthorized(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
