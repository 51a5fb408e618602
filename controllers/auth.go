package controllers

import (
	"context"
	"net/http"
	"time"

	"go-qkart/models"
	"go-qkart/utils"
)

// AuthService is what AuthController needs to register and log users in
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	GenerateAuthTokens(user *models.User) (*utils.AuthTokens, error)
}

// AuthController handles registration and login
type AuthController struct {
	Service AuthService
	Timeout time.Duration
}

// NewAuthController creates a new AuthController
func NewAuthController(service AuthService, timeout time.Duration) *AuthController {
	return &AuthController{Service: service, Timeout: timeout}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	User   *models.User      `json:"user"`
	Tokens *utils.AuthTokens `json:"tokens"`
}

// Register handles user registration
func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		utils.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ac.Timeout)
	defer cancel()

	user, err := ac.Service.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	ac.respondWithTokens(w, http.StatusCreated, user)
}

// Login handles user authentication
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		utils.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ac.Timeout)
	defer cancel()

	user, err := ac.Service.Login(ctx, req.Email, req.Password)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	ac.respondWithTokens(w, http.StatusOK, user)
}

func (ac *AuthController) respondWithTokens(w http.ResponseWriter, status int, user *models.User) {
	tokens, err := ac.Service.GenerateAuthTokens(user)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, status, authResponse{User: user, Tokens: tokens})
}
