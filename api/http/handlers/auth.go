package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/PriyanshiDabral/Employee-Management/api/http/presenter"
	"github.com/PriyanshiDabral/Employee-Management/pkg/auth"
	"github.com/PriyanshiDabral/Employee-Management/pkg/security/jwt"
)

type AuthHandler struct {
	useCase auth.AuthUseCase
}

func NewAuthHandler(useCase auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{useCase: useCase}
}

type registerRequest struct {
	Email        string   `json:"email"`
	Password     string   `json:"password"`
	Name         string   `json:"name"`
	Role         string   `json:"role"`
	Department   string   `json:"department"`
	EmployeeRole string   `json:"employee_role"`
	Phone        *string  `json:"phone"`
	Address      *string  `json:"address"`
	Salary       *float64 `json:"salary"`
}

type registerResponse struct {
	Message    string `json:"message"`
	UserID     string `json:"userId"`
	EmployeeID string `json:"employeeId"`
}

// Register creates a user account together with its employee profile.
// @Summary Register user
// @Tags    auth
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body registerRequest true "registration payload"
// @Success 201 {object} registerResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	result, err := h.useCase.Register(c.Context(), auth.RegisterInput{
		Email:        req.Email,
		Password:     req.Password,
		Name:         req.Name,
		Role:         auth.Role(req.Role),
		Department:   req.Department,
		EmployeeRole: req.EmployeeRole,
		Phone:        req.Phone,
		Address:      req.Address,
		Salary:       req.Salary,
	})
	if err != nil {
		return writeError(c, err)
	}

	return presenter.JSON(c, http.StatusCreated, registerResponse{
		Message:    "user registered successfully",
		UserID:     result.UserID.String(),
		EmployeeID: result.EmployeeID.String(),
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Name         string `json:"name,omitempty"`
	Department   string `json:"department,omitempty"`
	EmployeeRole string `json:"employee_role,omitempty"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

// Login exchanges credentials for an access token.
// @Summary Login
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "login payload"
// @Success 200 {object} loginResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	result, err := h.useCase.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	acc := result.Account
	return presenter.JSON(c, http.StatusOK, loginResponse{
		Token: result.Token,
		User: userResponse{
			ID:           acc.ID.String(),
			Email:        acc.Email,
			Role:         string(acc.Role),
			Name:         acc.Name,
			Department:   acc.Department,
			EmployeeRole: acc.EmployeeRole,
		},
	})
}

type identityResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Name       string    `json:"name,omitempty"`
	Department string    `json:"department,omitempty"`
	ExpiresAt  time.Time `json:"expires_at"`
}

type verifyResponse struct {
	User identityResponse `json:"user"`
}

// Verify returns the identity carried by a valid token.
// @Summary Verify token
// @Tags    auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} verifyResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/verify [get]
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	id, ok := jwt.IdentityFrom(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authenticated")
	}
	return presenter.JSON(c, http.StatusOK, verifyResponse{User: identityResponse{
		ID:         id.UserID.String(),
		Email:      id.Email,
		Role:       string(id.Role),
		Name:       id.Name,
		Department: id.Department,
		ExpiresAt:  id.ExpiresAt,
	}})
}

// Logout revokes the presented token.
// @Summary Logout
// @Tags    auth
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	id, ok := jwt.IdentityFrom(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authenticated")
	}
	if err := h.useCase.Logout(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}
