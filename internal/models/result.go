package models

import "time"

type HomeStats struct {
	TotalPapers     int64 `json:"total_papers"`
	TotalCategories int64 `json:"total_categories"`
}

type CategoryCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// ExamGroup is one exam's papers inside a category listing, newest first.
type ExamGroup struct {
	ExamName string  `json:"exam_name"`
	Papers   []Paper `json:"papers"`
}

type CategoryListing struct {
	Category string      `json:"category"`
	Groups   []ExamGroup `json:"grouped_papers"`
	Exams    []string    `json:"exams"`
}

type ExamListing struct {
	Category string  `json:"category"`
	ExamName string  `json:"exam_name"`
	Papers   []Paper `json:"papers"`
}

type SearchListing struct {
	SearchQuery  string  `json:"search_query"`
	Category     string  `json:"category,omitempty"`
	ResourceType string  `json:"resource_type,omitempty"`
	Papers       []Paper `json:"papers"`
}

type ResourceListing struct {
	ResourceType   string           `json:"resource_type"`
	Resources      []Paper          `json:"resources"`
	ResourceCounts map[string]int64 `json:"resource_counts"`
}

type PaperDetail struct {
	Paper         Paper   `json:"paper"`
	RelatedPapers []Paper `json:"related_papers"`
}

type SitemapEntry struct {
	ID         uint      `json:"id"`
	ExamName   string    `json:"exam_name"`
	Category   string    `json:"category"`
	UploadDate time.Time `json:"upload_date"`
}
