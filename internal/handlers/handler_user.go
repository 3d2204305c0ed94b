package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/movement_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/movement_tracker/internal/core/ports/services"
	"github.com/SscSPs/movement_tracker/internal/dto"
	"github.com/SscSPs/movement_tracker/internal/middleware"

	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests related to users.
type userHandler struct {
	userService portssvc.UserSvcFacade
	areaService portssvc.AreaReaderSvc
}

// newUserHandler creates a new userHandler.
func newUserHandler(us portssvc.UserSvcFacade, as portssvc.AreaReaderSvc) *userHandler {
	return &userHandler{
		userService: us,
		areaService: as,
	}
}

// registerUserRoutes registers the caller's own profile routes.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade, areaService portssvc.AreaReaderSvc) {
	h := newUserHandler(userService, areaService)

	rg.GET("/me", h.getMe)
	rg.PUT("/me", h.updateMe)
	rg.DELETE("/users/:userID", h.deleteUser) // Self or admin
}

// registerUserAdminRoutes registers user management routes. rg must already require an admin.
func registerUserAdminRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService, nil)

	users := rg.Group("/users")
	{
		users.GET("", h.listUsers)
		users.PUT("/:userID/email-verified", h.setEmailVerified)
		users.PUT("/:userID/admin", h.setAdmin)
	}
}

// getMe godoc
// @Summary Get the current user
// @Description Returns the caller's profile and area memberships
// @Tags users
// @Produce  json
// @Success 200 {object} dto.MeResponse
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /me [get]
func (h *userHandler) getMe(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), caller.UserID)
	if err != nil {
		respondError(c, err, "Failed to get current user")
		return
	}
	memberships, err := h.areaService.ListMyMemberships(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err, "Failed to list memberships")
		return
	}

	resp := dto.MeResponse{UserResponse: dto.ToUserResponse(user), Areas: make([]dto.UserAreaResponse, len(memberships))}
	for i := range memberships {
		resp.Areas[i] = dto.ToUserAreaResponse(&memberships[i])
	}
	c.JSON(http.StatusOK, resp)
}

// updateMe godoc
// @Summary Update the current user
// @Description Updates the caller's details (currently only name)
// @Tags users
// @Accept  json
// @Produce  json
// @Param   user body dto.UpdateUserRequest true "User details to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid input"
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /me [put]
func (h *userHandler) updateMe(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	updatedUser, err := h.userService.UpdateUser(c.Request.Context(), caller, caller.UserID, req)
	if err != nil {
		respondError(c, err, "Failed to update user")
		return
	}

	middleware.GetLoggerFromContext(c).Info("User updated successfully")
	c.JSON(http.StatusOK, dto.ToUserResponse(updatedUser))
}

// deleteUser godoc
// @Summary Delete a user
// @Description Marks a user as deleted (soft delete). Users may delete themselves; admins anyone.
// @Tags users
// @Produce  json
// @Param   userID path string true "User ID to delete"
// @Success 204 "No Content"
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 403 {object} middleware.ErrorResponse "Forbidden"
// @Failure 404 {object} middleware.ErrorResponse "User not found"
// @Security BearerAuth
// @Router /users/{userID} [delete]
func (h *userHandler) deleteUser(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	userID := c.Param("userID")

	if err := h.userService.DeleteUser(c.Request.Context(), caller, userID); err != nil {
		respondError(c, err, "Failed to delete user")
		return
	}

	middleware.GetLoggerFromContext(c).Info("User deleted successfully", slog.String("target_user_id", userID))
	c.Status(http.StatusNoContent)
}

// listUsers godoc
// @Summary List users
// @Description Retrieves a page of users. Admin only.
// @Tags admin
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListUsersResponse
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 403 {object} middleware.ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /admin/users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	var params dto.ListUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondError(c, err, "Failed to list users")
		return
	}

	c.JSON(http.StatusOK, dto.ToListUserResponse(users))
}

// setEmailVerified godoc
// @Summary Mark a user's email verified
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   userID path string true "User ID"
// @Param   flag body dto.SetUserFlagRequest true "Verified flag"
// @Success 200 {object} dto.UserResponse
// @Failure 403 {object} middleware.ErrorResponse "Forbidden"
// @Failure 404 {object} middleware.ErrorResponse "User not found"
// @Security BearerAuth
// @Router /admin/users/{userID}/email-verified [put]
func (h *userHandler) setEmailVerified(c *gin.Context) {
	h.setFlag(c, h.userService.SetEmailVerified)
}

// setAdmin godoc
// @Summary Grant or revoke global admin
// @Description An admin cannot revoke their own admin role.
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   userID path string true "User ID"
// @Param   flag body dto.SetUserFlagRequest true "Admin flag"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} middleware.ErrorResponse "Self revocation"
// @Failure 403 {object} middleware.ErrorResponse "Forbidden"
// @Failure 404 {object} middleware.ErrorResponse "User not found"
// @Security BearerAuth
// @Router /admin/users/{userID}/admin [put]
func (h *userHandler) setAdmin(c *gin.Context) {
	h.setFlag(c, h.userService.SetAdmin)
}

type userFlagSetter = func(ctx context.Context, caller domain.Caller, userID string, value bool) (*domain.User, error)

func (h *userHandler) setFlag(c *gin.Context, set userFlagSetter) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.SetUserFlagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := set(c.Request.Context(), caller, c.Param("userID"), *req.Value)
	if err != nil {
		respondError(c, err, "Failed to update user flag")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
