package controllers

import (
	"net/http"

	"github.com/arifhossen/shopd/app/services"
	"github.com/arifhossen/shopd/pkg/bind"
	"github.com/arifhossen/shopd/pkg/logger"
	"github.com/arifhossen/shopd/pkg/response"
)

// AuthController exposes token issuance, signup, and login.
//
// The response bodies are a long-standing contract: duplicate signup is a
// success-shaped 200 whose only signal is the message text, and login
// failures are 200s with status "fail". Clients parse these exact shapes.
type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

// IssueToken handles POST /jwt: sign whatever payload the caller supplies
// and return the raw token string.
func (c *AuthController) IssueToken(w http.ResponseWriter, r *http.Request) {
	var payload map[string]interface{}
	if errs, err := bind.JSON(r, &payload); err != nil || errs != nil {
		response.ClientError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := c.service.IssueToken(payload)
	if err != nil {
		logger.WithCtx(r.Context()).Error("issue token", "error", err.Error())
		response.ServerError(w)
		return
	}

	response.Text(w, http.StatusOK, token)
}

// SignupRequest is the signup body. Password is optional; an account
// registered without one can never log in via password.
type SignupRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password"`
}

// Signup handles POST /signup.
func (c *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.ClientError(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.JSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   true,
			"message": "Validation failed",
			"errors":  errs,
		})
		return
	}

	result, err := c.service.SignUp(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		logger.WithCtx(r.Context()).Error("signup", "error", err.Error())
		response.ServerError(w)
		return
	}

	if result.Outcome == services.SignupDuplicate {
		response.JSON(w, http.StatusOK, map[string]interface{}{
			"message": "Email Already Exist",
		})
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"status":  true,
		"message": "Registration Successful",
		"result": map[string]interface{}{
			"insertedId": result.InsertedID.Hex(),
		},
	})
}

// LoginRequest is the login body.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /login.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	errs, err := bind.JSON(r, &req)
	if err != nil {
		response.ClientError(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.JSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   true,
			"message": "Validation failed",
			"errors":  errs,
		})
		return
	}

	result, err := c.service.LogIn(r.Context(), req.Email, req.Password)
	if err != nil {
		logger.WithCtx(r.Context()).Error("login", "error", err.Error())
		response.ServerError(w)
		return
	}

	switch result.Outcome {
	case services.LoginInvalidEmail:
		response.JSON(w, http.StatusOK, map[string]interface{}{
			"status":  "fail",
			"message": "Invalid Email",
		})
	case services.LoginInvalidPassword:
		response.JSON(w, http.StatusOK, map[string]interface{}{
			"status":  "fail",
			"message": "Password Invalid",
		})
	default:
		response.JSON(w, http.StatusOK, map[string]interface{}{
			"status":      "success",
			"accessToken": result.AccessToken,
			"message":     "Login Successful",
			"newUser":     result.User,
		})
	}
}
