package repositories

import (
	"errors"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/patirananta462-byte/papersharehub/internal/models"
	"github.com/patirananta462-byte/papersharehub/pkg/apperrors"
)

// SearchFilter holds the optional filters of a paper search. Empty fields
// impose no constraint; the rest are combined with AND.
type SearchFilter struct {
	Term         string
	Category     string
	ResourceType string
}

type PaperRepository interface {
	InitSchema() error
	Create(paper *models.Paper) error
	FindByID(id uint) (*models.Paper, error)
	FindByCategory(category string) ([]models.Paper, error)
	FindByExam(examName, category string) ([]models.Paper, error)
	DistinctExamNames(category string) ([]string, error)
	CountByCategory(category string) (int64, error)
	CountAll() (int64, error)
	DistinctCategories() ([]string, error)
	Search(filter SearchFilter) ([]models.Paper, error)
	CountByResourceType() (map[string]int64, error)
	ListByResourceTypeGroup() ([]models.Paper, error)
	ListForSitemap() ([]models.Paper, error)
}

type paperRepository struct {
	db *gorm.DB
}

func NewPaperRepository(db *gorm.DB) PaperRepository {
	return &paperRepository{db: db}
}

// newestFirst breaks upload_date ties by id, which grows with insertion order.
const newestFirst = "upload_date DESC, id DESC"

// InitSchema creates the papers table and its indexes when missing. Safe to
// call on every start.
func (r *paperRepository) InitSchema() error {
	if err := r.db.AutoMigrate(&models.Paper{}); err != nil {
		return apperrors.NewStorageError("init schema", err)
	}
	return nil
}

// Create implements PaperRepository. ID and UploadDate are assigned by the
// database layer and written back into paper.
func (r *paperRepository) Create(paper *models.Paper) error {
	paper.ID = 0
	paper.UploadDate = time.Time{}
	if err := r.db.Create(paper).Error; err != nil {
		return apperrors.NewStorageError("insert", err)
	}
	return nil
}

// FindByID returns nil, nil when no row matches.
func (r *paperRepository) FindByID(id uint) (*models.Paper, error) {
	var paper models.Paper
	if err := r.db.Where("id = ?", id).First(&paper).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.NewStorageError("find by id", err)
	}
	return &paper, nil
}

func (r *paperRepository) FindByCategory(category string) ([]models.Paper, error) {
	var papers []models.Paper
	err := r.db.
		Where("category = ?", category).
		Order("exam_name ASC").
		Order(newestFirst).
		Find(&papers).Error
	if err != nil {
		return nil, apperrors.NewStorageError("find by category", err)
	}
	return papers, nil
}

// FindByExam ignores category when it is empty.
func (r *paperRepository) FindByExam(examName, category string) ([]models.Paper, error) {
	var papers []models.Paper
	err := r.db.
		Scopes(equals("exam_name", examName, true), equals("category", category, false)).
		Order(newestFirst).
		Find(&papers).Error
	if err != nil {
		return nil, apperrors.NewStorageError("find by exam", err)
	}
	return papers, nil
}

func (r *paperRepository) DistinctExamNames(category string) ([]string, error) {
	var names []string
	err := r.db.Model(&models.Paper{}).
		Where("category = ?", category).
		Distinct("exam_name").
		Order("exam_name ASC").
		Pluck("exam_name", &names).Error
	if err != nil {
		return nil, apperrors.NewStorageError("distinct exam names", err)
	}
	return names, nil
}

func (r *paperRepository) CountByCategory(category string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Paper{}).Where("category = ?", category).Count(&count).Error; err != nil {
		return 0, apperrors.NewStorageError("count by category", err)
	}
	return count, nil
}

func (r *paperRepository) CountAll() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Paper{}).Count(&count).Error; err != nil {
		return 0, apperrors.NewStorageError("count all", err)
	}
	return count, nil
}

// DistinctCategories returns every category in use, sorted.
func (r *paperRepository) DistinctCategories() ([]string, error) {
	var categories []string
	if err := r.db.Model(&models.Paper{}).Distinct("category").Pluck("category", &categories).Error; err != nil {
		return nil, apperrors.NewStorageError("distinct categories", err)
	}
	sort.Strings(categories)
	return categories, nil
}

// Search builds one predicate per active filter and joins them with AND.
// Term is a case-insensitive substring match on exam_name, category or
// description; LIKE wildcards inside the term are matched literally.
func (r *paperRepository) Search(filter SearchFilter) ([]models.Paper, error) {
	var papers []models.Paper
	err := r.db.
		Scopes(
			containsAny(filter.Term, "exam_name", "category", "description"),
			equals("category", filter.Category, false),
			equals("resource_type", filter.ResourceType, false),
		).
		Order(newestFirst).
		Find(&papers).Error
	if err != nil {
		return nil, apperrors.NewStorageError("search", err)
	}
	return papers, nil
}

func (r *paperRepository) CountByResourceType() (map[string]int64, error) {
	var rows []struct {
		ResourceType string
		Count        int64
	}
	err := r.db.Model(&models.Paper{}).
		Select("resource_type, COUNT(*) AS count").
		Group("resource_type").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.NewStorageError("count by resource type", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.ResourceType] = row.Count
	}
	return counts, nil
}

// ListByResourceTypeGroup returns every paper ordered by resource type, newest
// first within a type.
func (r *paperRepository) ListByResourceTypeGroup() ([]models.Paper, error) {
	var papers []models.Paper
	if err := r.db.Order("resource_type ASC").Order(newestFirst).Find(&papers).Error; err != nil {
		return nil, apperrors.NewStorageError("list by resource type", err)
	}
	return papers, nil
}

func (r *paperRepository) ListForSitemap() ([]models.Paper, error) {
	var papers []models.Paper
	err := r.db.
		Select("id", "exam_name", "category", "upload_date").
		Order("id DESC").
		Find(&papers).Error
	if err != nil {
		return nil, apperrors.NewStorageError("list for sitemap", err)
	}
	return papers, nil
}

// equals adds "column = value". With required unset an empty value adds nothing.
func equals(column, value string, required bool) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if value == "" && !required {
			return db
		}
		return db.Where(column+" = ?", value)
	}
}

func containsAny(term string, columns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if term == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + escapeLike(strings.ToLower(term)) + "%"

		clauses := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, column := range columns {
			clauses[i] = "LOWER(" + column + `) LIKE ? ESCAPE '\'`
			args[i] = pattern
		}
		return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
