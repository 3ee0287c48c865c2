package storage

import (
	"context"

	"gorm.io/gorm"

	"civic-reporter-go/internal/platform/errors"
)

// ValidationRepository persists validation pipeline results.
type ValidationRepository struct {
	db *gorm.DB
}

func NewValidationRepository(db *gorm.DB) *ValidationRepository {
	return &ValidationRepository{db: db}
}

func (r *ValidationRepository) Save(ctx context.Context, validation *IssueValidation) error {
	if err := r.db.WithContext(ctx).Create(validation).Error; err != nil {
		return errors.Wrap(errors.KindStorage, "validation.save", "save validation", err)
	}
	return nil
}

func (r *ValidationRepository) ListByIssueID(ctx context.Context, issueID string) ([]*IssueValidation, error) {
	var models []*IssueValidation
	err := r.db.WithContext(ctx).
		Where("issue_id = ?", issueID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(errors.KindStorage, "validation.list_by_issue", "list validations", err)
	}
	return models, nil
}
