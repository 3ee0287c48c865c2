package storage

import (
	"context"

	"gorm.io/gorm"

	"civic-reporter-go/internal/platform/errors"
)

// IssueRepository persists reported issues.
type IssueRepository struct {
	db *gorm.DB
}

func NewIssueRepository(db *gorm.DB) *IssueRepository {
	return &IssueRepository{db: db}
}

func (r *IssueRepository) Save(ctx context.Context, issue *Issue) error {
	if err := r.db.WithContext(ctx).Create(issue).Error; err != nil {
		return errors.Wrap(errors.KindStorage, "issue.save", "save issue", err)
	}
	return nil
}

func (r *IssueRepository) FindByID(ctx context.Context, id string) (*Issue, error) {
	var model Issue
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.Wrap(errors.KindStorage, "issue.find_by_id", "find issue", err)
	}
	return &model, nil
}

func (r *IssueRepository) FindAll(ctx context.Context) ([]*Issue, error) {
	var models []*Issue
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, errors.Wrap(errors.KindStorage, "issue.find_all", "list issues", err)
	}
	return models, nil
}
