package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/climawatch/weather-api/internal/core/ports"
)

// UserHandler handles administrative user management.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List returns all users. Password hashes are never serialized.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {object}  usersResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, usersResponse{Success: true, Users: users})
}

// Get returns a single user by id.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.userService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{Success: true, User: user})
}

// Update applies a partial update to a user.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  userMessageResponse
// @Failure      404   {object}  map[string]string
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.userService.Update(c.Request().Context(), c.Param("id"), ports.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userMessageResponse{Success: true, Message: "User updated successfully", User: user})
}

// Delete removes a user by id.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.userService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "User deleted successfully"})
}

// DeleteStudents bulk-deletes Student accounts whose last login falls in the
// given date range.
//
// @Summary      Bulk-delete students by last-login range
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      dateRangeRequest  true  "Inclusive date range"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Router       /users/deleteStudents [delete]
func (h *UserHandler) DeleteStudents(c echo.Context) error {
	var req dateRangeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	deleted, err := h.userService.DeleteStudents(c.Request().Context(), req.StartDate, req.EndDate)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{
		Success: true,
		Message: fmt.Sprintf("%d students deleted successfully", deleted),
	})
}

// UpdateRole bulk-reassigns the role of users created in the given date
// range. Role defaults to Teacher when omitted.
//
// @Summary      Bulk role reassignment by creation-date range
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      dateRangeRequest  true  "Inclusive date range and target role"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Router       /users/updateRole [put]
func (h *UserHandler) UpdateRole(c echo.Context) error {
	var req dateRangeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	modified, err := h.userService.ReassignRoles(c.Request().Context(), req.StartDate, req.EndDate, req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{
		Success: true,
		Message: fmt.Sprintf("%d users updated successfully", modified),
	})
}
