package services

import (
	"errors"
	"fmt"
	"strings"

	"justice_bot_go/models"

	"gorm.io/gorm"
)

var (
	ErrFeedbackMessageRequired = errors.New("feedback message is required")
	ErrFeedbackEmailRequired   = errors.New("feedback email is required")
	ErrInvalidRating           = errors.New("rating must be between 1 and 5")
)

// FeedbackSubmission carries a contact/feedback form submission
type FeedbackSubmission struct {
	Email   string
	Subject string
	Message string
	Rating  *int
}

// SubmitFeedback validates and records a feedback submission. userID is nil
// for anonymous submissions.
func SubmitFeedback(db *gorm.DB, userID *string, sub FeedbackSubmission, ipAddress, userAgent string) (*models.UserFeedback, error) {
	email := strings.TrimSpace(sub.Email)
	message := strings.TrimSpace(sub.Message)
	subject := strings.TrimSpace(sub.Subject)

	if email == "" {
		return nil, ErrFeedbackEmailRequired
	}
	if message == "" {
		return nil, ErrFeedbackMessageRequired
	}
	if sub.Rating != nil && (*sub.Rating < 1 || *sub.Rating > 5) {
		return nil, ErrInvalidRating
	}
	if subject == "" {
		subject = "General feedback"
	}

	feedback := &models.UserFeedback{
		UserID:    userID,
		Email:     email,
		Subject:   subject,
		Message:   message,
		Rating:    sub.Rating,
		Status:    models.FeedbackStatusNew,
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
	if err := db.Create(feedback).Error; err != nil {
		return nil, fmt.Errorf("failed to record feedback: %w", err)
	}
	return feedback, nil
}

// ListFeedback returns feedback submissions for admin review, newest first,
// optionally filtered by status
func ListFeedback(db *gorm.DB, status string) ([]models.UserFeedback, error) {
	query := db.Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var feedback []models.UserFeedback
	err := query.Find(&feedback).Error
	return feedback, err
}

// MarkFeedbackReviewed moves a feedback row to REVIEWED
func MarkFeedbackReviewed(db *gorm.DB, feedbackID string) error {
	result := db.Model(&models.UserFeedback{}).
		Where("id = ?", feedbackID).
		Update("status", models.FeedbackStatusReviewed)
	if result.Error != nil {
		return fmt.Errorf("failed to update feedback: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
