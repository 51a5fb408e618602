package controllers

import (
	"context"
	"net/http"
	"time"

	"go-qkart/models"
	"go-qkart/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserService is what UserController needs from the user domain
type UserService interface {
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUserAddressByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	SetAddress(ctx context.Context, user *models.User, address string) (string, error)
}

// UserController handles user-related requests
type UserController struct {
	Service UserService
	Timeout time.Duration
}

// NewUserController creates a new UserController
func NewUserController(service UserService, timeout time.Duration) *UserController {
	return &UserController{Service: service, Timeout: timeout}
}

type addressResponse struct {
	Address string `json:"address"`
}

type setAddressRequest struct {
	Address string `json:"address" validate:"required,min=20"`
}

func userIDParam(r *http.Request) (primitive.ObjectID, error) {
	raw := mux.Vars(r)["userId"]
	if err := utils.ValidateVar("userId", raw, "required,objectid"); err != nil {
		return primitive.NilObjectID, err
	}
	return primitive.ObjectIDFromHex(raw)
}

// ensureOwner rejects access to a user other than the authenticated one
func ensureOwner(r *http.Request, target *models.User) error {
	current, err := currentUser(r)
	if err != nil {
		return err
	}
	if target.Email != current.Email {
		return utils.Forbidden("User not authorized to access this resource")
	}
	return nil
}

// GetUser returns the user, or only their address with ?q=address
func (uc *UserController) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), uc.Timeout)
	defer cancel()

	onlyAddress := r.URL.Query().Get("q") == "address"
	var user *models.User
	if onlyAddress {
		user, err = uc.Service.GetUserAddressByID(ctx, userID)
	} else {
		user, err = uc.Service.GetUserByID(ctx, userID)
	}
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	if user == nil {
		utils.WriteError(w, utils.NotFound("User not found"))
		return
	}
	if err := ensureOwner(r, user); err != nil {
		utils.WriteError(w, err)
		return
	}

	if onlyAddress {
		utils.WriteJSON(w, http.StatusOK, addressResponse{Address: user.Address})
		return
	}
	utils.WriteJSON(w, http.StatusOK, user)
}

// SetAddress updates the delivery address of the user
func (uc *UserController) SetAddress(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	var req setAddressRequest
	if err := decodeBody(r, &req); err != nil {
		utils.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), uc.Timeout)
	defer cancel()

	user, err := uc.Service.GetUserByID(ctx, userID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	if user == nil {
		utils.WriteError(w, utils.NotFound("User not found"))
		return
	}
	if err := ensureOwner(r, user); err != nil {
		utils.WriteError(w, err)
		return
	}

	address, err := uc.Service.SetAddress(ctx, user, req.Address)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, addressResponse{Address: address})
}
