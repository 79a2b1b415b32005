package handlers

import (
	"net/http"

	"justice_bot_go/db"
	"justice_bot_go/middleware"
	"justice_bot_go/services"

	"github.com/labstack/echo/v4"
)

type feedbackRequest struct {
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Rating  *int   `json:"rating"`
}

// SubmitFeedbackHandler records a feedback submission. Works both for
// signed-in users and the public contact form.
func SubmitFeedbackHandler(c echo.Context) error {
	var req feedbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	var userID *string
	email := req.Email
	if user := middleware.GetCurrentUser(c); user != nil {
		userID = &user.ID
		if email == "" {
			email = user.Email
		}
	}

	feedback, err := services.SubmitFeedback(db.DB, userID, services.FeedbackSubmission{
		Email:   email,
		Subject: intakePolicy.Sanitize(req.Subject),
		Message: intakePolicy.Sanitize(req.Message),
		Rating:  req.Rating,
	}, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, feedback)
}
