package handlers

import (
	"fmt"
	"net/http"

	"justice_bot_go/db"
	"justice_bot_go/middleware"
	"justice_bot_go/services"

	"github.com/labstack/echo/v4"
)

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Province  string `json:"province"`
}

// RegisterHandler creates a user account and opens a session
func RegisterHandler(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	user, err := services.RegisterUser(db.DB, services.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Province:  req.Province,
	})
	if err != nil {
		return serviceError(c, err)
	}

	session, err := services.CreateSession(db.DB, user.ID, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return serviceError(c, err)
	}
	middleware.SetSessionCookie(c, session)

	if cfg := getConfig(c); cfg != nil {
		services.SendEmailAsync(cfg, services.BuildWelcomeEmail(user.Email, user.FirstName))
	}

	return c.JSON(http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginHandler authenticates a user and opens a session
func LoginHandler(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email and password are required")
	}

	user, err := services.AuthenticateUser(db.DB, req.Email, req.Password)
	if err != nil {
		return serviceError(c, err)
	}

	session, err := services.CreateSession(db.DB, user.ID, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return serviceError(c, err)
	}
	middleware.SetSessionCookie(c, session)

	return c.JSON(http.StatusOK, user)
}

// LogoutHandler ends the current session
func LogoutHandler(c echo.Context) error {
	cookie, err := c.Cookie(middleware.SessionCookieName)
	if err == nil {
		if err := services.DeleteSession(db.DB, cookie.Value); err != nil {
			return serviceError(c, err)
		}
	}
	middleware.ClearSessionCookie(c)
	return c.NoContent(http.StatusNoContent)
}

// MeHandler returns the authenticated user
func MeHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	return c.JSON(http.StatusOK, user)
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPasswordHandler issues a password reset token. The response is the
// same whether or not the email has an account.
func ForgotPasswordHandler(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	reset, err := services.CreatePasswordResetToken(db.DB, req.Email)
	if err != nil {
		return serviceError(c, err)
	}

	if reset != nil {
		if cfg := getConfig(c); cfg != nil {
			resetURL := fmt.Sprintf("%s/reset-password?token=%s", cfg.AppURL, reset.Token)
			services.SendEmailAsync(cfg, services.BuildPasswordResetEmail(req.Email, resetURL))
		}
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "If an account exists for that email, a reset link has been sent.",
	})
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ResetPasswordHandler consumes a reset token and sets a new password
func ResetPasswordHandler(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	if err := services.ResetPassword(db.DB, req.Token, req.Password); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Password updated. Please sign in again."})
}
