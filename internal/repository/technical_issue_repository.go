package repository

import (
	"gorm.io/gorm"

	"support-desk-go/internal/model"
)

// TechnicalIssueRepository persists tickets opened by the technical agent.
type TechnicalIssueRepository interface {
	Create(issue *model.TechnicalIssue) error
}

// technicalIssueRepository is the GORM implementation of
// TechnicalIssueRepository.
type technicalIssueRepository struct {
	db *gorm.DB
}

// NewTechnicalIssueRepository creates a new TechnicalIssueRepository instance.
func NewTechnicalIssueRepository(db *gorm.DB) TechnicalIssueRepository {
	return &technicalIssueRepository{db: db}
}

// Create inserts a new technical issue record.
func (r *technicalIssueRepository) Create(issue *model.TechnicalIssue) error {
	return r.db.Create(issue).Error
}
