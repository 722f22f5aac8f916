package main

import (
	"flag"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/patirananta462-byte/papersharehub/internal/config"
	"github.com/patirananta462-byte/papersharehub/internal/logger"
	"github.com/patirananta462-byte/papersharehub/internal/repositories"
	"github.com/patirananta462-byte/papersharehub/internal/services"
	"github.com/patirananta462-byte/papersharehub/pkg/apperrors"
)

// Imports every file below -dir through the upload pipeline. Unless -exam is
// given, a file's exam name is the name of the folder it sits in.
func main() {
	dir := flag.String("dir", "./reference_docs", "folder to import")
	category := flag.String("category", "Other", "category for every imported file")
	exam := flag.String("exam", "", "exam name (default: parent folder name)")
	resourceType := flag.String("type", "question paper", "resource type")
	year := flag.String("year", "", "year")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	log := logger.Get()
	log.Info().Str("dir", *dir).Msg("🚀 Starting paper import...")

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to initialize database")
	}

	storage := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storage.EnsureUploadDir(); err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to create upload directory")
	}

	uploader := services.NewUploadService(
		repositories.NewPaperRepository(db),
		storage,
		services.NewPDFInspector(),
		nil,
		cfg.Storage.MaxFileSize,
	)

	summary := importDir(uploader, importOptions{
		Dir:          *dir,
		Category:     *category,
		ExamName:     *exam,
		ResourceType: *resourceType,
		Year:         *year,
	})

	log.Info().
		Int("successful", summary.Imported).
		Int("skipped", summary.Skipped).
		Int("failed", summary.Failed).
		Msg("📊 Import summary")

	if summary.Failed > 0 {
		log.Warn().Msg("⚠️  Some files failed to import. Please check the logs above.")
		os.Exit(1)
	}

	log.Info().Msg("✅ All files imported successfully!")
}

type importOptions struct {
	Dir          string
	Category     string
	ExamName     string
	ResourceType string
	Year         string
}

type importSummary struct {
	Imported int
	Skipped  int
	Failed   int
}

// importDir uploads every file below opts.Dir. Files the upload rules reject,
// such as unsupported types, are skipped rather than counted as failures.
func importDir(uploader services.UploadService, opts importOptions) importSummary {
	log := logger.For("import")
	var summary importSummary

	walkErr := filepath.WalkDir(opts.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		examName := opts.ExamName
		if examName == "" {
			examName = filepath.Base(filepath.Dir(path))
		}

		f, err := os.Open(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("⚠️  Cannot open file, skipping...")
			summary.Failed++
			return nil
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("⚠️  Cannot stat file, skipping...")
			summary.Failed++
			return nil
		}

		res, err := uploader.Upload(services.UploadInput{
			ExamName:     examName,
			Category:     opts.Category,
			ResourceType: opts.ResourceType,
			Year:         opts.Year,
			Filename:     d.Name(),
			Size:         info.Size(),
			Content:      f,
		})
		if apperrors.IsValidation(err) {
			log.Warn().Err(err).Str("path", path).Msg("⚠️  Rejected by upload rules, skipping...")
			summary.Skipped++
			return nil
		}
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("❌ Failed to import")
			summary.Failed++
			return nil
		}

		log.Info().Uint("id", res.ID).Str("path", path).Str("stored_name", res.Paper.Filename).Msg("📄 Imported")
		summary.Imported++
		return nil
	})
	if walkErr != nil {
		log.Error().Err(walkErr).Msg("❌ Failed to walk import folder")
		summary.Failed++
	}

	return summary
}
