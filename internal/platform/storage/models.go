package storage

import "time"

// Issue is a reported civic problem as stored by the platform.
type Issue struct {
	ID            string    `gorm:"primaryKey;size:36"`
	Title         string    `gorm:"not null"`
	Description   string    `gorm:"not null"`
	Category      string    `gorm:"index"`
	Constituency  string    `gorm:"index"`
	PhotoPath     string
	Upvotes       int       `gorm:"default:0"`
	Acknowledged  bool      `gorm:"default:false"`
	AssignedTo    string
	ProofPhotoURL string
	CreatedAt     time.Time
}

// IssueValidation records one run of the submission validation pipeline.
type IssueValidation struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	IssueID    string `gorm:"index;size:36"`
	ImageValid bool
	ImageMsg   string
	Caption    string
	CivicScore string `gorm:"size:3"`
	CreatedAt  time.Time
}
