package v1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go-dogwalking-backend/config"
	"go-dogwalking-backend/internal/delivery/http/response"
	"go-dogwalking-backend/internal/domain"
	"go-dogwalking-backend/pkg/apperror"
	"go-dogwalking-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
	config *config.Config
}

func NewAuthHandler(public *gin.RouterGroup, protected *gin.RouterGroup, authUC domain.AuthUsecase, cfg *config.Config) {
	handler := &AuthHandler{authUC: authUC, config: cfg}

	publicAuth := public.Group("/auth")
	{
		publicAuth.POST("/login", handler.Login)
		publicAuth.POST("/register", handler.Register)
	}

	protectedAuth := protected.Group("/auth")
	{
		protectedAuth.POST("/sync", handler.Sync)
		protectedAuth.GET("/me", handler.Me)
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=owner walker"`
}

// Register godoc
// @Summary      Register a new account
// @Description  Create a Supabase auth user and the local user record
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      RegisterRequest  true  "Registration data"
// @Success      201      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	body, status, err := h.supabasePost(c, "/auth/v1/signup", map[string]interface{}{
		"email":    req.Email,
		"password": req.Password,
	})
	if err != nil {
		c.Error(apperror.New(http.StatusInternalServerError, "Registration service unavailable", err))
		return
	}
	if status >= 400 {
		c.Error(apperror.BadRequest(supabaseErrorMessage(body, "Registration failed")))
		return
	}

	var signup struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		User  *struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := json.Unmarshal(body, &signup); err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	// Depending on confirmation settings Supabase nests the user or not
	id, email := signup.ID, signup.Email
	if signup.User != nil {
		id, email = signup.User.ID, signup.User.Email
	}

	user := &domain.User{ID: id, Email: email, Role: req.Role}
	if err := h.authUC.EnsureUserExists(c.Request.Context(), user); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Account created. Please confirm your email.", user)
}

// Login godoc
// @Summary      Login
// @Description  Exchange email/password for a Supabase access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "Credentials"
// @Success      200      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	body, status, err := h.supabasePost(c, "/auth/v1/token?grant_type=password", map[string]interface{}{
		"email":    req.Email,
		"password": req.Password,
	})
	if err != nil {
		logger.Log.Error("Supabase login failed", "error", err)
		c.Error(apperror.New(http.StatusInternalServerError, "Login service unavailable", err))
		return
	}
	if status >= 400 {
		// Keep the message generic; don't leak whether the account exists
		c.Error(apperror.Unauthorized("Wrong password or account not found"))
		return
	}

	var session struct {
		User        domain.User `json:"user"`
		AccessToken string      `json:"access_token"`
	}
	if err := json.Unmarshal(body, &session); err != nil {
		c.Error(apperror.New(http.StatusInternalServerError, "Failed to parse login response", err))
		return
	}

	// Sync without a role so an existing role is never overwritten
	user := &domain.User{ID: session.User.ID, Email: session.User.Email}
	if err := h.authUC.EnsureUserExists(c.Request.Context(), user); err != nil {
		c.Error(err)
		return
	}

	actualUser, err := h.authUC.GetCurrentUser(c.Request.Context(), user.ID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", gin.H{
		"token": session.AccessToken,
		"user":  actualUser,
	})
}

// Sync godoc
// @Summary      Sync the authenticated user into the local database
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /auth/sync [post]
// @Security     BearerAuth
func (h *AuthHandler) Sync(c *gin.Context) {
	user := &domain.User{
		ID:    c.GetString(string(domain.KeyUserID)),
		Email: c.GetString(string(domain.KeyUserEmail)),
		Role:  c.GetString(string(domain.KeyUserRole)),
	}

	if err := h.authUC.EnsureUserExists(c.Request.Context(), user); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile synced", user)
}

// Me godoc
// @Summary      Get the authenticated user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.User}
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	user, err := h.authUC.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User details", user)
}

func (h *AuthHandler) supabasePost(c *gin.Context, path string, payload map[string]interface{}) ([]byte, int, error) {
	jsonBody, _ := json.Marshal(payload)

	httpReq, err := http.NewRequestWithContext(c.Request.Context(), "POST",
		h.config.SupabaseUrl+path, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, 0, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("apikey", h.config.SupabaseKey)
	httpReq.Header.Set("X-Forwarded-For", c.ClientIP())
	httpReq.Header.Set("User-Agent", c.Request.UserAgent())

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, resp.StatusCode, err
	}
	return buf.Bytes(), resp.StatusCode, nil
}

func supabaseErrorMessage(body []byte, fallback string) string {
	var errResp struct {
		Msg     string `json:"msg"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil {
		if errResp.Msg != "" {
			return errResp.Msg
		}
		if errResp.Message != "" {
			return errResp.Message
		}
	}
	return fmt.Sprintf("%s. Please try again.", fallback)
}
