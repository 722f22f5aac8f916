package services

import (
	"fmt"

	"github.com/patirananta462-byte/papersharehub/internal/models"
	"github.com/patirananta462-byte/papersharehub/internal/repositories"
	"github.com/patirananta462-byte/papersharehub/pkg/apperrors"
)

// RelatedLimit caps the related papers shown next to a single paper.
const RelatedLimit = 5

// ResourceTypeAll selects every resource type on the resources view.
const ResourceTypeAll = "all"

type QueryService interface {
	HomeStats() (*models.HomeStats, error)
	CategoryCounts() ([]models.CategoryCount, error)
	CategoryListing(category string) (*models.CategoryListing, error)
	ExamListing(category, examName string) (*models.ExamListing, error)
	Search(filter repositories.SearchFilter) ([]models.Paper, error)
	Resources(resourceType string) (*models.ResourceListing, error)
	PaperDetail(id uint) (*models.PaperDetail, error)
	Related(paper models.Paper) ([]models.Paper, error)
	Sitemap() ([]models.SitemapEntry, error)
}

type queryService struct {
	paperRepo repositories.PaperRepository
	stats     *StatsCache
}

// NewQueryService returns the read side of the repository. stats may be nil.
func NewQueryService(paperRepo repositories.PaperRepository, stats *StatsCache) QueryService {
	return &queryService{paperRepo: paperRepo, stats: stats}
}

func (s *queryService) HomeStats() (*models.HomeStats, error) {
	total, err := s.stats.GetOrLoad("total", s.paperRepo.CountAll)
	if err != nil {
		return nil, err
	}
	categories, err := s.stats.GetOrLoad("categories", func() (int64, error) {
		cats, err := s.paperRepo.DistinctCategories()
		return int64(len(cats)), err
	})
	if err != nil {
		return nil, err
	}
	return &models.HomeStats{TotalPapers: total, TotalCategories: categories}, nil
}

// CategoryCounts reports a count for every advisory category, including
// those with no papers yet.
func (s *queryService) CategoryCounts() ([]models.CategoryCount, error) {
	counts := make([]models.CategoryCount, 0, len(models.Categories))
	for _, c := range models.Categories {
		name := c.String()
		n, err := s.stats.GetOrLoad("category:"+name, func() (int64, error) {
			return s.paperRepo.CountByCategory(name)
		})
		if err != nil {
			return nil, err
		}
		counts = append(counts, models.CategoryCount{Name: name, Count: n})
	}
	return counts, nil
}

func (s *queryService) CategoryListing(category string) (*models.CategoryListing, error) {
	papers, err := s.paperRepo.FindByCategory(category)
	if err != nil {
		return nil, err
	}
	exams, err := s.paperRepo.DistinctExamNames(category)
	if err != nil {
		return nil, err
	}
	return &models.CategoryListing{
		Category: category,
		Groups:   GroupByExam(papers),
		Exams:    exams,
	}, nil
}

// GroupByExam groups papers by exam name in order of first appearance,
// keeping the order of papers within each group.
func GroupByExam(papers []models.Paper) []models.ExamGroup {
	groups := []models.ExamGroup{}
	index := make(map[string]int)
	for _, p := range papers {
		i, ok := index[p.ExamName]
		if !ok {
			i = len(groups)
			index[p.ExamName] = i
			groups = append(groups, models.ExamGroup{ExamName: p.ExamName})
		}
		groups[i].Papers = append(groups[i].Papers, p)
	}
	return groups
}

// ExamListing returns ErrNotFound when the exam has no papers in category.
func (s *queryService) ExamListing(category, examName string) (*models.ExamListing, error) {
	papers, err := s.paperRepo.FindByExam(examName, category)
	if err != nil {
		return nil, err
	}
	if len(papers) == 0 {
		return nil, fmt.Errorf("exam %q in %q: %w", examName, category, apperrors.ErrNotFound)
	}
	return &models.ExamListing{Category: category, ExamName: examName, Papers: papers}, nil
}

func (s *queryService) Search(filter repositories.SearchFilter) ([]models.Paper, error) {
	return s.paperRepo.Search(filter)
}

func (s *queryService) Resources(resourceType string) (*models.ResourceListing, error) {
	if resourceType == "" {
		resourceType = ResourceTypeAll
	}

	var (
		papers []models.Paper
		err    error
	)
	if resourceType == ResourceTypeAll {
		papers, err = s.paperRepo.ListByResourceTypeGroup()
	} else {
		papers, err = s.paperRepo.Search(repositories.SearchFilter{ResourceType: resourceType})
	}
	if err != nil {
		return nil, err
	}

	counts, err := s.paperRepo.CountByResourceType()
	if err != nil {
		return nil, err
	}

	return &models.ResourceListing{
		ResourceType:   resourceType,
		Resources:      papers,
		ResourceCounts: counts,
	}, nil
}

// PaperDetail returns ErrNotFound for an unknown id.
func (s *queryService) PaperDetail(id uint) (*models.PaperDetail, error) {
	paper, err := s.paperRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if paper == nil {
		return nil, fmt.Errorf("paper %d: %w", id, apperrors.ErrNotFound)
	}

	related, err := s.Related(*paper)
	if err != nil {
		return nil, err
	}
	return &models.PaperDetail{Paper: *paper, RelatedPapers: related}, nil
}

// Related returns up to RelatedLimit other papers of the same exam and
// category, newest first.
func (s *queryService) Related(paper models.Paper) ([]models.Paper, error) {
	papers, err := s.paperRepo.FindByExam(paper.ExamName, paper.Category)
	if err != nil {
		return nil, err
	}

	related := make([]models.Paper, 0, RelatedLimit)
	for _, p := range papers {
		if p.ID == paper.ID {
			continue
		}
		related = append(related, p)
		if len(related) == RelatedLimit {
			break
		}
	}
	return related, nil
}

func (s *queryService) Sitemap() ([]models.SitemapEntry, error) {
	papers, err := s.paperRepo.ListForSitemap()
	if err != nil {
		return nil, err
	}
	entries := make([]models.SitemapEntry, len(papers))
	for i, p := range papers {
		entries[i] = models.SitemapEntry{ID: p.ID, ExamName: p.ExamName, Category: p.Category, UploadDate: p.UploadDate}
	}
	return entries, nil
}
