package services

import (
	"errors"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/patirananta462-byte/papersharehub/internal/logger"
	"github.com/patirananta462-byte/papersharehub/internal/metrics"
	"github.com/patirananta462-byte/papersharehub/internal/models"
	"github.com/patirananta462-byte/papersharehub/internal/repositories"
	"github.com/patirananta462-byte/papersharehub/pkg/apperrors"
)

// AllowedExtensions are the accepted upload types, compared lower-cased.
var AllowedExtensions = map[string]bool{
	"pdf": true, "png": true, "jpg": true, "jpeg": true,
	"doc": true, "docx": true, "txt": true,
	"ppt": true, "pptx": true, "zip": true, "rar": true,
}

// UploadInput is one upload request. Text fields are trimmed before use.
type UploadInput struct {
	ExamName     string `form:"exam_name" validate:"required"`
	Category     string `form:"category" validate:"required"`
	ResourceType string `form:"resource_type" validate:"required"`
	Year         string `form:"year"`
	Description  string `form:"description"`

	Filename string    `form:"-"`
	Size     int64     `form:"-"`
	Content  io.Reader `form:"-"`
}

type UploadResult struct {
	ID       uint
	Category string
	Paper    *models.Paper
}

type UploadService interface {
	Upload(in UploadInput) (*UploadResult, error)
}

type uploadService struct {
	paperRepo   repositories.PaperRepository
	storage     StorageService
	inspector   PDFInspector
	stats       *StatsCache
	maxFileSize int64
	validate    *validator.Validate
	log         zerolog.Logger
}

// NewUploadService wires the upload pipeline. maxFileSize <= 0 disables the
// size check; inspector and stats may be nil.
func NewUploadService(
	paperRepo repositories.PaperRepository,
	storage StorageService,
	inspector PDFInspector,
	stats *StatsCache,
	maxFileSize int64,
) UploadService {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})

	return &uploadService{
		paperRepo:   paperRepo,
		storage:     storage,
		inspector:   inspector,
		stats:       stats,
		maxFileSize: maxFileSize,
		validate:    v,
		log:         logger.For("upload"),
	}
}

// Upload validates the input, stores the file and records its metadata. If
// the metadata insert fails the stored file is removed again.
func (s *uploadService) Upload(in UploadInput) (*UploadResult, error) {
	in.ExamName = strings.TrimSpace(in.ExamName)
	in.Category = strings.TrimSpace(in.Category)
	in.ResourceType = strings.TrimSpace(in.ResourceType)
	in.Year = strings.TrimSpace(in.Year)
	in.Description = strings.TrimSpace(in.Description)

	if err := s.check(in); err != nil {
		metrics.RecordUpload(metrics.OutcomeRejected, 0)
		s.log.Info().Err(err).Str("filename", in.Filename).Msg("upload rejected")
		return nil, err
	}

	saved, err := s.storage.SaveFile(s.storage.GenerateStoredName(in.Filename), in.Content)
	if err != nil {
		metrics.RecordUpload(metrics.OutcomeStoreError, 0)
		s.log.Error().Err(err).Str("filename", in.Filename).Msg("❌ failed to save uploaded file")
		return nil, apperrors.NewUploadError("save file", err)
	}
	storedName := saved.Name

	paper := &models.Paper{
		ExamName:         in.ExamName,
		Category:         in.Category,
		ResourceType:     in.ResourceType,
		Filename:         storedName,
		OriginalFilename: in.Filename,
		Filepath:         saved.Path,
		Year:             in.Year,
		Description:      in.Description,
		PageCount:        s.pageCount(storedName, saved.Path),
	}

	if err := s.paperRepo.Create(paper); err != nil {
		if delErr := s.storage.DeleteFile(storedName); delErr != nil {
			s.log.Warn().Err(delErr).Str("stored_name", storedName).Msg("failed to remove file after insert failure")
		}
		metrics.RecordUpload(metrics.OutcomeDBError, 0)
		s.log.Error().Err(err).Str("stored_name", storedName).Msg("❌ failed to save paper record")
		return nil, apperrors.NewUploadError("insert record", err)
	}

	s.stats.Purge()
	metrics.RecordUpload(metrics.OutcomeSuccess, saved.Size)
	metrics.RecordUploadCategory(models.ParseCategory(paper.Category).String())
	s.log.Info().
		Uint("id", paper.ID).
		Str("category", paper.Category).
		Str("exam_name", paper.ExamName).
		Str("stored_name", storedName).
		Int64("bytes", saved.Size).
		Msg("✅ paper uploaded")

	return &UploadResult{ID: paper.ID, Category: paper.Category, Paper: paper}, nil
}

func (s *uploadService) check(in UploadInput) error {
	if err := s.validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return apperrors.NewValidationError(apperrors.MissingField, fieldErrs[0].Field(), "Please fill in all required fields")
		}
		return apperrors.NewValidationError(apperrors.MissingField, "", err.Error())
	}

	if in.Content == nil || strings.TrimSpace(in.Filename) == "" {
		return apperrors.NewValidationError(apperrors.NoFile, "file", "No file selected")
	}

	if !AllowedExtensions[Extension(in.Filename)] {
		return apperrors.NewValidationError(apperrors.BadFileType, "file",
			"Invalid file type. Allowed: PDF, DOC, DOCX, PPT, PPTX, JPG, PNG, ZIP, RAR, TXT")
	}

	if s.maxFileSize > 0 && in.Size > s.maxFileSize {
		return apperrors.NewValidationError(apperrors.TooLarge, "file", "File upload failed. Please try again.")
	}

	return nil
}

// pageCount is best effort; a PDF that does not parse is still accepted.
func (s *uploadService) pageCount(storedName, path string) int {
	if s.inspector == nil || Extension(storedName) != "pdf" {
		return 0
	}
	n, err := s.inspector.PageCount(path)
	if err != nil {
		s.log.Debug().Err(err).Str("stored_name", storedName).Msg("could not count PDF pages")
		return 0
	}
	return n
}
