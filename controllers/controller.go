package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go-qkart/middleware"
	"go-qkart/models"
	"go-qkart/utils"
)

const unknownFieldPrefix = "json: unknown field "

// decodeBody reads a JSON body into dst and validates it. An empty body
// decodes as an empty object so missing fields are reported by validation.
// Keys dst does not declare are rejected.
func decodeBody(r *http.Request, dst interface{}) error {
	if r.Body != nil {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		err := dec.Decode(dst)
		if err != nil && !errors.Is(err, io.EOF) {
			if field, ok := strings.CutPrefix(err.Error(), unknownFieldPrefix); ok {
				return utils.BadRequest(fmt.Sprintf("%s is not allowed", field))
			}
			return utils.BadRequest("Invalid input")
		}
	}
	return utils.Validate(dst)
}

// currentUser returns the user attached by the auth middleware
func currentUser(r *http.Request) (*models.User, error) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		return nil, utils.Unauthorized("Please authenticate")
	}
	return user, nil
}
