package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/quickbite/order-service/internal/entities"
	"github.com/quickbite/order-service/pkg/utils"
)

type subjectKey struct{}

type TokenVerifier interface {
	Verify(token string) (entities.Subject, error)
}

// Auth resolves the bearer credential into a Subject and stores it in the
// request context. A missing token and an invalid one are reported
// distinctly so clients can tell the two apart.
func Auth(verifier TokenVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				utils.WriteError(w, entities.ErrNoToken.Error(), http.StatusUnauthorized)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				utils.WriteError(w, entities.ErrInvalidToken.Error(), http.StatusUnauthorized)
				return
			}

			subject, err := verifier.Verify(token)
			if err != nil {
				utils.WriteError(w, entities.ErrInvalidToken.Error(), http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), subjectKey{}, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func SubjectFromContext(ctx context.Context) (entities.Subject, bool) {
	subject, ok := ctx.Value(subjectKey{}).(entities.Subject)
	return subject, ok
}
