package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-qkart/models"
	"go-qkart/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubUsers struct {
	users map[primitive.ObjectID]*models.User
	err   error
}

func (s *stubUsers) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.users[id], nil
}

func TestAuth(t *testing.T) {
	tokens := utils.NewTokenManager("thisisasamplesecret", time.Hour)
	user := &models.User{ID: primitive.NewObjectID(), Email: "crio-user@gmail.com"}
	users := &stubUsers{users: map[primitive.ObjectID]*models.User{user.ID: user}}

	valid, err := tokens.GenerateAuthTokens(user.ID.Hex())
	require.NoError(t, err)
	expired, err := tokens.GenerateToken(user.ID.Hex(), time.Now().Add(-time.Minute), utils.TokenTypeAccess)
	require.NoError(t, err)
	wrongType, err := tokens.GenerateToken(user.ID.Hex(), time.Now().Add(time.Hour), "refresh")
	require.NoError(t, err)
	unknownUser, err := tokens.GenerateAuthTokens(primitive.NewObjectID().Hex())
	require.NoError(t, err)

	var seen *models.User
	handler := Auth(tokens, users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid token", "Bearer " + valid.Access.Token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic " + valid.Access.Token, http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"expired token", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong token type", "Bearer " + wrongType, http.StatusUnauthorized},
		{"user no longer exists", "Bearer " + unknownUser.Access.Token, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/v1/cart", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.status, rr.Code)
			if tt.status == http.StatusOK {
				require.NotNil(t, seen)
				assert.Equal(t, user.ID, seen.ID)
				return
			}
			assert.Nil(t, seen)
			var body utils.ErrorBody
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, utils.ErrorBody{Code: http.StatusUnauthorized, Message: "Please authenticate"}, body)
		})
	}
}

func TestAuth_StoreFailure(t *testing.T) {
	tokens := utils.NewTokenManager("thisisasamplesecret", time.Hour)
	valid, err := tokens.GenerateAuthTokens(primitive.NewObjectID().Hex())
	require.NoError(t, err)

	handler := Auth(tokens, &stubUsers{err: errors.New("server selection timeout")})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/cart", nil)
	req.Header.Set("Authorization", "Bearer "+valid.Access.Token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestUserFromContext_Empty(t *testing.T) {
	_, ok := UserFromContext(context.Background())
	assert.False(t, ok)
}
