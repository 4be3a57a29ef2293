// internal/app/features/adminusers/create.go
package adminusers

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/dalemusser/helpbridge/internal/app/store/users"
	"github.com/dalemusser/helpbridge/internal/app/system/apiutil"
	"github.com/dalemusser/helpbridge/internal/app/system/gates"
	"github.com/dalemusser/helpbridge/internal/app/system/htmlsanitize"
	"github.com/dalemusser/helpbridge/internal/app/system/inputval"
	"github.com/dalemusser/helpbridge/internal/app/system/normalize"
	"github.com/dalemusser/helpbridge/internal/app/system/readcache"
	"github.com/dalemusser/helpbridge/internal/app/system/timeouts"
	"github.com/dalemusser/helpbridge/internal/domain/models"
)

// createUserInput is the JSON body for creating an account.
type createUserInput struct {
	Name         string   `json:"name" validate:"required,max=200" label:"Name"`
	Email        string   `json:"email" validate:"required,max=320" label:"Email"`
	Role         string   `json:"userType" validate:"required,oneof=pin csr system_admin platform_manager" label:"User type"`
	Phone        string   `json:"phone" validate:"max=50" label:"Phone"`
	Address      string   `json:"address" validate:"max=500" label:"Address"`
	Organization string   `json:"organization" validate:"max=200" label:"Organization"`
	Skills       []string `json:"skills" label:"Skills"`
}

// HandleCreate provisions a user account. Password and credential
// handling live in the identity system, not here.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}

	var in createUserInput
	if err := apiutil.Decode(r, &in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode create user failed", err, "Invalid request body.")
		return
	}

	in.Name = normalize.Name(htmlsanitize.PlainText(in.Name))
	in.Email = normalize.Email(in.Email)
	in.Role = normalize.Role(in.Role)

	if result := inputval.Validate(in); result.HasErrors() {
		apiutil.Error(w, http.StatusBadRequest, result.First())
		return
	}
	if !inputval.IsValidEmail(in.Email) {
		apiutil.Error(w, http.StatusBadRequest, "Email address is not valid.")
		return
	}

	u := models.User{
		Name:         in.Name,
		Email:        in.Email,
		Role:         in.Role,
		Phone:        htmlsanitize.PlainText(in.Phone),
		Address:      htmlsanitize.PlainText(in.Address),
		Organization: htmlsanitize.PlainText(in.Organization),
		Skills:       in.Skills,
		Status:       models.UserActive,
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Store.Create(ctx, u)
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			apiutil.Error(w, http.StatusConflict, err.Error())
			return
		}
		h.ErrLog.LogServerError(w, r, "create user failed", err, "Failed to create user.")
		return
	}

	h.Cache.Invalidate(readcache.KeyUsers)
	h.Audit.UserCreated(ctx, r, g.UserID, created.ID, created.Role)
	apiutil.Data(w, http.StatusCreated, created)
}
