package models

import (
	"time"
)

// Paper is one uploaded document and its metadata. Rows are written once by
// the upload pipeline and never updated afterwards.
type Paper struct {
	ID               uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ExamName         string    `gorm:"type:text;not null;index:idx_papers_category_exam,priority:2" json:"exam_name"`
	Category         string    `gorm:"type:text;not null;index:idx_papers_category_exam,priority:1" json:"category"`
	ResourceType     string    `gorm:"type:text;not null;index" json:"resource_type"`
	Filename         string    `gorm:"type:text;not null;uniqueIndex" json:"filename"`
	OriginalFilename string    `gorm:"type:text" json:"original_filename"`
	Filepath         string    `gorm:"type:text;not null" json:"filepath"`
	Year             string    `gorm:"type:text" json:"year"`
	Description      string    `gorm:"type:text" json:"description"`
	PageCount        int       `gorm:"default:0" json:"page_count,omitempty"`
	UploadDate       time.Time `gorm:"autoCreateTime;index" json:"upload_date"`
}

func (Paper) TableName() string {
	return "papers"
}
