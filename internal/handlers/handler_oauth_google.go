package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/movement_tracker/internal/apperrors"
	portssvc "github.com/SscSPs/movement_tracker/internal/core/ports/services"
	"github.com/SscSPs/movement_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// GoogleOAuthHandler exchanges Google authorization codes for application tokens.
type GoogleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade
	userService        portssvc.UserSvcFacade
	tokenService       portssvc.TokenSvcFacade
}

// NewGoogleOAuthHandler creates a new instance of GoogleOAuthHandler.
func NewGoogleOAuthHandler(
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade,
	userService portssvc.UserSvcFacade,
	tokenService portssvc.TokenSvcFacade,
) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		googleOAuthService: googleOAuthService,
		userService:        userService,
		tokenService:       tokenService,
	}
}

// ExchangeCodeRequest defines the expected JSON body for the /google/exchange-code endpoint.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required,notblank"`
}

// ExchangeCodeResponse defines the successful response for the /google/exchange-code endpoint.
type ExchangeCodeResponse struct {
	Token string `json:"token"`
}

// LoginURLResponse carries the Google consent URL and the state the frontend
// must echo back.
type LoginURLResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}

// LoginURLGoogle returns the consent screen URL for a fresh state value.
// @Summary Google consent screen URL
// @Tags oauth
// @Produce  json
// @Success 200 {object} LoginURLResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /google/login-url [get]
func (h *GoogleOAuthHandler) LoginURLGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	state, err := h.googleOAuthService.GenerateStateString(ctx)
	if err != nil {
		respondError(c, err, "Failed to generate OAuth state")
		return
	}
	c.JSON(http.StatusOK, LoginURLResponse{URL: h.googleOAuthService.GetGoogleLoginURL(ctx, state), State: state})
}

// ExchangeCodeGoogle exchanges the code for Google tokens, validates the ID
// token, finds or creates the user and returns an application JWT.
// @Summary Exchange a Google authorization code for an access token
// @Tags oauth
// @Accept  json
// @Produce  json
// @Param   code body ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} map[string]ExchangeCodeResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid authorization code"
// @Failure 401 {object} middleware.ErrorResponse "Invalid Google ID token"
// @Failure 504 {object} middleware.ErrorResponse "Google did not answer"
// @Router /google/exchange-code [post]
func (h *GoogleOAuthHandler) ExchangeCodeGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	oauth2Token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, req.Code)
	if err != nil {
		respondError(c, err, "Failed to exchange authorization code with Google")
		return
	}

	idTokenString, ok := oauth2Token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		respondError(c, apperrors.NewInternalServerError("Failed to retrieve ID token from Google."), "ID token not found in Google's token response")
		return
	}

	identity, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, idTokenString)
	if err != nil {
		respondError(c, err, "Google ID token validation failed")
		return
	}

	user, err := h.userService.FindOrCreateGoogleUser(ctx, *identity)
	if err != nil {
		respondError(c, err, "Failed to resolve Google user")
		return
	}

	accessToken, _, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		respondError(c, err, "Failed to generate application access token")
		return
	}

	logger.Info("User signed in with Google", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, gin.H{
		"data": ExchangeCodeResponse{Token: accessToken},
	})
}

// registerGoogleOAuthRoutes registers the Google OAuth routes.
func registerGoogleOAuthRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer, limit gin.HandlerFunc) {
	h := NewGoogleOAuthHandler(services.GoogleOAuth, services.User, services.Token)
	googleRoutes := rg.Group("/google")
	{
		googleRoutes.GET("/login-url", limit, h.LoginURLGoogle)
		googleRoutes.POST("/exchange-code", limit, h.ExchangeCodeGoogle)
	}
}
