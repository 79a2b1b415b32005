package handlers

import (
	"net/http"

	"justice_bot_go/db"
	"justice_bot_go/middleware"
	"justice_bot_go/services"

	"github.com/labstack/echo/v4"
)

// ListNotificationsHandler returns the user's unread notifications
func ListNotificationsHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	notifications, err := services.NewNotificationService(db.DB).GetUnreadNotifications(user.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, notifications)
}

// MarkNotificationReadHandler marks one notification as read
func MarkNotificationReadHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	err := services.NewNotificationService(db.DB).MarkAsRead(c.Param("id"), user.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// MarkAllNotificationsReadHandler marks every unread notification as read
func MarkAllNotificationsReadHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	err := services.NewNotificationService(db.DB).MarkAllAsRead(user.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
