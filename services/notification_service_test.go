package services

import (
	"testing"

	"justice_bot_go/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupNotificationTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db.AutoMigrate(&models.User{}, &models.Notification{})
	return db
}

func TestNotificationLifecycle(t *testing.T) {
	svc := NewNotificationService(setupNotificationTestDB())

	assert.NoError(t, svc.NotifyAnalysisReady("user-1", "case-1", 72))
	assert.NoError(t, svc.CreateNotification(&models.Notification{
		UserID:  "user-1",
		Type:    models.NotificationTypeSystem,
		Title:   "Welcome",
		Message: "Welcome to Justice-Bot",
	}))

	unread, err := svc.GetUnreadNotifications("user-1")
	assert.NoError(t, err)
	assert.Len(t, unread, 2)

	count, err := svc.GetNotificationCount("user-1")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)

	assert.NoError(t, svc.MarkAsRead(unread[0].ID, "user-1"))
	count, _ = svc.GetNotificationCount("user-1")
	assert.Equal(t, int64(1), count)

	assert.NoError(t, svc.MarkAllAsRead("user-1"))
	count, _ = svc.GetNotificationCount("user-1")
	assert.Equal(t, int64(0), count)
}

func TestNotifyAnalysisReadyMessage(t *testing.T) {
	svc := NewNotificationService(setupNotificationTestDB())
	assert.NoError(t, svc.NotifyAnalysisReady("user-1", "case-abc", 85))

	var notification models.Notification
	assert.NoError(t, svc.DB.First(&notification).Error)
	assert.Equal(t, models.NotificationTypeAnalysisReady, notification.Type)
	assert.Contains(t, notification.Message, "85/100")
	assert.Contains(t, notification.Message, "case-abc")
	assert.False(t, notification.IsRead())
}

func TestMarkAsReadRequiresOwner(t *testing.T) {
	svc := NewNotificationService(setupNotificationTestDB())
	assert.NoError(t, svc.NotifyAnalysisReady("user-1", "case-1", 60))

	var notification models.Notification
	svc.DB.First(&notification)

	// A different user cannot mark it read
	assert.NoError(t, svc.MarkAsRead(notification.ID, "user-2"))
	count, _ := svc.GetNotificationCount("user-1")
	assert.Equal(t, int64(1), count)
}
