package http

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/nightowllabs/taskhub/internal/taskhub/domain"
	"github.com/nightowllabs/taskhub/internal/taskhub/service"
	"github.com/nightowllabs/taskhub/pkg/httpx"
	"github.com/nightowllabs/taskhub/pkg/taskhubapi"
)

// UserHandler serves the /api/users endpoints.
type UserHandler struct {
	users    *service.UserService
	views    *service.ViewService
	validate *validator.Validate
}

func NewUserHandler(users *service.UserService, views *service.ViewService) *UserHandler {
	return &UserHandler{
		users:    users,
		views:    views,
		validate: validator.New(),
	}
}

// parseUserParams validates a request body and converts it into service
// params. Role defaults to USER when omitted.
func (h *UserHandler) parseUserParams(req taskhubapi.CreateUserRequest) (service.CreateUserParams, string) {
	if err := h.validate.Struct(req); err != nil {
		return service.CreateUserParams{}, validationMessage(err)
	}

	role := domain.RoleUser
	if req.Role != "" {
		var err error
		if role, err = domain.ParseRole(req.Role); err != nil {
			return service.CreateUserParams{}, err.Error()
		}
	}

	return service.CreateUserParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     role,
	}, ""
}

// List godoc
//
//	@Summary	List users
//	@Tags		users
//	@Success	200	{array}	taskhubapi.UserView
//	@Router		/api/users [get]
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.views.Users(users))
}

// Get godoc
//
//	@Summary	Get a user by id
//	@Tags		users
//	@Param		id	path	int	true	"user id"
//	@Success	200	{object}	taskhubapi.UserView
//	@Failure	404	{object}	taskhubapi.ErrorResponse
//	@Router		/api/users/{id} [get]
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}

	u, err := h.users.Get(r.Context(), id)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.views.User(u))
}

// Create godoc
//
//	@Summary	Register a user
//	@Tags		users
//	@Param		request	body	taskhubapi.CreateUserRequest	true	"user fields"
//	@Success	201	{object}	taskhubapi.UserView
//	@Failure	400	{object}	taskhubapi.ErrorResponse
//	@Failure	409	{object}	taskhubapi.ErrorResponse
//	@Router		/api/users [post]
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req taskhubapi.CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeValidationError(w, err.Error())
		return
	}

	// The request type is shared with update, where a blank password means
	// "keep the current one". Creation has no current one.
	if req.Password == "" {
		writeValidationError(w, `field "Password" is required`)
		return
	}

	params, msg := h.parseUserParams(req)
	if msg != "" {
		writeValidationError(w, msg)
		return
	}

	u, err := h.users.Create(r.Context(), params)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, h.views.User(u))
}

// Update godoc
//
//	@Summary	Update a user
//	@Tags		users
//	@Param		id		path	int								true	"user id"
//	@Param		request	body	taskhubapi.CreateUserRequest	true	"replacement fields; blank password keeps the current one"
//	@Success	200	{object}	taskhubapi.UserView
//	@Failure	400	{object}	taskhubapi.ErrorResponse
//	@Failure	404	{object}	taskhubapi.ErrorResponse
//	@Failure	409	{object}	taskhubapi.ErrorResponse
//	@Router		/api/users/{id} [put]
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}

	var req taskhubapi.CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeValidationError(w, err.Error())
		return
	}

	params, msg := h.parseUserParams(req)
	if msg != "" {
		writeValidationError(w, msg)
		return
	}

	u, err := h.users.Update(r.Context(), id, params)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.views.User(u))
}

// Delete godoc
//
//	@Summary	Delete a user and the tasks they own
//	@Tags		users
//	@Param		id	path	int	true	"user id"
//	@Success	204
//	@Failure	404	{object}	taskhubapi.ErrorResponse
//	@Router		/api/users/{id} [delete]
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
