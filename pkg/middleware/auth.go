package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/handlers"
)

var (
	// ErrMissingToken indicates the request carried no bearer token.
	ErrMissingToken = errors.New("missing bearer token")
	// ErrInvalidToken indicates the bearer token failed verification.
	ErrInvalidToken = errors.New("invalid bearer token")
)

type subjectKey struct{}

// TokenVerifier verifies a raw ID token. *oidc.IDTokenVerifier satisfies it.
type TokenVerifier interface {
	Verify(ctx context.Context, rawIDToken string) (*oidc.IDToken, error)
}

// NewVerifier discovers the issuer's OIDC configuration and returns a verifier
// bound to the client ID.
func NewVerifier(ctx context.Context, cfg *AuthConfig) (*oidc.IDTokenVerifier, error) {
	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, err
	}
	return provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}), nil
}

// Auth rejects requests without a valid bearer token and stores the token
// subject in the request context. Preflight requests pass through.
func Auth(verifier TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	logger = logger.With("middleware", "auth")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			raw, ok := bearerToken(r)
			if !ok {
				handlers.RespondError(w, logger, http.StatusUnauthorized, ErrMissingToken)
				return
			}

			token, err := verifier.Verify(r.Context(), raw)
			if err != nil {
				logger.Debug("token verification failed", "error", err)
				handlers.RespondError(w, logger, http.StatusUnauthorized, ErrInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), subjectKey{}, token.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Subject returns the authenticated token subject, if any.
func Subject(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(subjectKey{}).(string)
	return s, ok && s != ""
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
