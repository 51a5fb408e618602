package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"go-qkart/models"
	"go-qkart/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Key type for context
type contextKey string

const UserContextKey = contextKey("user")

const msgPleaseAuthenticate = "Please authenticate"

// UserFinder loads the user a token was issued to
type UserFinder interface {
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// Auth verifies the bearer access token and attaches the owning user to the
// request context
func Auth(tokens *utils.TokenManager, users UserFinder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
				utils.WriteError(w, utils.Unauthorized(msgPleaseAuthenticate))
				return
			}

			claims, err := tokens.ParseAccessToken(parts[1])
			if err != nil {
				utils.WriteError(w, utils.Unauthorized(msgPleaseAuthenticate))
				return
			}

			userID, err := primitive.ObjectIDFromHex(claims.Subject)
			if err != nil {
				utils.WriteError(w, utils.Unauthorized(msgPleaseAuthenticate))
				return
			}

			user, err := users.GetUserByID(r.Context(), userID)
			if err != nil {
				log.Printf("auth: loading user %s: %v", claims.Subject, err)
				utils.WriteError(w, utils.Unauthorized(msgPleaseAuthenticate))
				return
			}
			if user == nil {
				utils.WriteError(w, utils.Unauthorized(msgPleaseAuthenticate))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// WithUser returns a copy of ctx carrying user
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, UserContextKey, user)
}

// UserFromContext returns the authenticated user, if any
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	return user, ok && user != nil
}
