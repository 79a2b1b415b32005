package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"justice_bot_go/models"

	"gorm.io/gorm"
)

const (
	// MaxEvidenceUploadSize caps evidence files at 10MB
	MaxEvidenceUploadSize = 10 * 1024 * 1024
)

var (
	ErrEvidenceNotFound   = errors.New("evidence not found")
	ErrFileTooLarge       = errors.New("file size exceeds maximum allowed size of 10MB")
	ErrFileTypeNotAllowed = errors.New("file type not allowed. Accepted formats: PDF, DOC, DOCX, TXT, JPG, PNG")
)

var allowedEvidenceExtensions = []string{".pdf", ".doc", ".docx", ".txt", ".jpg", ".jpeg", ".png"}

// ValidateEvidenceUpload checks if the uploaded file is valid within size limits
func ValidateEvidenceUpload(fileHeader *multipart.FileHeader) error {
	if fileHeader.Size > MaxEvidenceUploadSize {
		return ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	for _, allowed := range allowedEvidenceExtensions {
		if ext == allowed {
			return nil
		}
	}
	return ErrFileTypeNotAllowed
}

// UploadEvidence validates, stores and records an evidence file for a case
func UploadEvidence(ctx context.Context, db *gorm.DB, userID, caseID string, fileHeader *multipart.FileHeader, tags string) (*models.Evidence, error) {
	kase, err := GetUserCase(db, userID, caseID)
	if err != nil {
		return nil, err
	}
	if kase.IsClosed() {
		return nil, ErrCaseClosed
	}

	if err := ValidateEvidenceUpload(fileHeader); err != nil {
		return nil, err
	}

	key := GenerateEvidenceKey(userID, caseID, fileHeader.Filename)
	result, err := Storage.Upload(ctx, fileHeader, key)
	if err != nil {
		return nil, fmt.Errorf("failed to store evidence file: %w", err)
	}

	evidence := &models.Evidence{
		CaseID:           caseID,
		FileName:         result.FileName,
		FileOriginalName: fileHeader.Filename,
		StorageKey:       key,
		FileSize:         result.FileSize,
		MimeType:         result.MimeType,
		Tags:             strings.TrimSpace(tags),
	}

	if err := db.Create(evidence).Error; err != nil {
		// Best effort cleanup of the stored object
		if delErr := Storage.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("failed to record evidence (cleanup also failed: %v): %w", delErr, err)
		}
		return nil, fmt.Errorf("failed to record evidence: %w", err)
	}

	return evidence, nil
}

// ListCaseEvidence returns all evidence rows for a case
func ListCaseEvidence(db *gorm.DB, userID, caseID string) ([]models.Evidence, error) {
	if _, err := GetUserCase(db, userID, caseID); err != nil {
		return nil, err
	}

	var evidence []models.Evidence
	err := db.Where("case_id = ?", caseID).
		Order("created_at DESC").
		Find(&evidence).Error
	return evidence, err
}

// CountCaseEvidence counts evidence files attached to a case. The merit
// scorer reads this count only, never file contents.
func CountCaseEvidence(db *gorm.DB, caseID string) (int64, error) {
	var count int64
	err := db.Model(&models.Evidence{}).Where("case_id = ?", caseID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count evidence: %w", err)
	}
	return count, nil
}

// GetEvidenceDownload returns a reader and content type for an evidence file
func GetEvidenceDownload(ctx context.Context, db *gorm.DB, userID, caseID, evidenceID string) (io.ReadCloser, string, string, error) {
	if _, err := GetUserCase(db, userID, caseID); err != nil {
		return nil, "", "", err
	}

	var evidence models.Evidence
	err := db.First(&evidence, "id = ? AND case_id = ?", evidenceID, caseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", ErrEvidenceNotFound
		}
		return nil, "", "", fmt.Errorf("failed to fetch evidence: %w", err)
	}

	reader, contentType, err := Storage.Get(ctx, evidence.StorageKey)
	if err != nil {
		return nil, "", "", err
	}
	return reader, contentType, evidence.FileOriginalName, nil
}

// GetEvidenceSignedURL generates a temporary download URL for an evidence file
func GetEvidenceSignedURL(ctx context.Context, db *gorm.DB, userID, caseID, evidenceID string) (string, error) {
	if _, err := GetUserCase(db, userID, caseID); err != nil {
		return "", err
	}

	var evidence models.Evidence
	err := db.First(&evidence, "id = ? AND case_id = ?", evidenceID, caseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrEvidenceNotFound
		}
		return "", fmt.Errorf("failed to fetch evidence: %w", err)
	}

	return Storage.GetSignedURL(ctx, evidence.StorageKey, 15*time.Minute)
}
