package services

import (
	"fmt"
	"time"

	"justice_bot_go/models"

	"gorm.io/gorm"
)

type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

func (s *NotificationService) GetUnreadNotifications(userID string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.DB.Where("user_id = ? AND read_at IS NULL", userID).
		Order("created_at DESC").
		Limit(20).
		Find(&notifications).Error
	return notifications, err
}

func (s *NotificationService) MarkAsRead(notificationID, userID string) error {
	now := time.Now()
	return s.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read_at", now).Error
}

func (s *NotificationService) MarkAllAsRead(userID string) error {
	now := time.Now()
	return s.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", now).Error
}

func (s *NotificationService) GetNotificationCount(userID string) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&count).Error
	return count, err
}

func (s *NotificationService) CreateNotification(notification *models.Notification) error {
	return s.DB.Create(notification).Error
}

// NotifyAnalysisReady creates the in-app notification for a finished analysis
func (s *NotificationService) NotifyAnalysisReady(userID, caseID string, score int) error {
	return s.CreateNotification(&models.Notification{
		UserID:  userID,
		Type:    models.NotificationTypeAnalysisReady,
		Title:   "Case analysis complete",
		Message: fmt.Sprintf("Your case scored %d/100. Open case %s to see the recommended pathway and next steps.", score, caseID),
	})
}
