package services

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/patirananta462-byte/papersharehub/internal/models"
	"github.com/patirananta462-byte/papersharehub/internal/repositories"
	"github.com/patirananta462-byte/papersharehub/pkg/apperrors"
)

// fakePaperRepo is an in-memory PaperRepository. createErr, when set, makes
// every insert fail.
type fakePaperRepo struct {
	papers    []models.Paper
	createErr error
	clock     time.Time
	calls     map[string]int
}

func newFakeRepo() *fakePaperRepo {
	return &fakePaperRepo{
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		calls: make(map[string]int),
	}
}

func (f *fakePaperRepo) InitSchema() error { return nil }

func (f *fakePaperRepo) Create(p *models.Paper) error {
	f.calls["Create"]++
	if f.createErr != nil {
		return apperrors.NewStorageError("insert", f.createErr)
	}
	for _, existing := range f.papers {
		if existing.Filename == p.Filename {
			return apperrors.NewStorageError("insert", errors.New("UNIQUE constraint failed: papers.filename"))
		}
	}
	f.clock = f.clock.Add(time.Minute)
	p.ID = uint(len(f.papers) + 1)
	p.UploadDate = f.clock
	f.papers = append(f.papers, *p)
	return nil
}

func (f *fakePaperRepo) FindByID(id uint) (*models.Paper, error) {
	for _, p := range f.papers {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePaperRepo) newestFirst(keep func(models.Paper) bool) []models.Paper {
	var out []models.Paper
	for i := len(f.papers) - 1; i >= 0; i-- {
		if keep(f.papers[i]) {
			out = append(out, f.papers[i])
		}
	}
	return out
}

func (f *fakePaperRepo) FindByCategory(category string) ([]models.Paper, error) {
	out := f.newestFirst(func(p models.Paper) bool { return p.Category == category })
	sort.SliceStable(out, func(i, j int) bool { return out[i].ExamName < out[j].ExamName })
	return out, nil
}

func (f *fakePaperRepo) FindByExam(examName, category string) ([]models.Paper, error) {
	f.calls["FindByExam"]++
	return f.newestFirst(func(p models.Paper) bool {
		return p.ExamName == examName && (category == "" || p.Category == category)
	}), nil
}

func (f *fakePaperRepo) DistinctExamNames(category string) ([]string, error) {
	seen := map[string]bool{}
	var names []string
	for _, p := range f.papers {
		if p.Category == category && !seen[p.ExamName] {
			seen[p.ExamName] = true
			names = append(names, p.ExamName)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (f *fakePaperRepo) CountByCategory(category string) (int64, error) {
	f.calls["CountByCategory"]++
	var n int64
	for _, p := range f.papers {
		if p.Category == category {
			n++
		}
	}
	return n, nil
}

func (f *fakePaperRepo) CountAll() (int64, error) {
	f.calls["CountAll"]++
	return int64(len(f.papers)), nil
}

func (f *fakePaperRepo) DistinctCategories() ([]string, error) {
	seen := map[string]bool{}
	var cats []string
	for _, p := range f.papers {
		if !seen[p.Category] {
			seen[p.Category] = true
			cats = append(cats, p.Category)
		}
	}
	sort.Strings(cats)
	return cats, nil
}

func (f *fakePaperRepo) Search(filter repositories.SearchFilter) ([]models.Paper, error) {
	term := strings.ToLower(filter.Term)
	return f.newestFirst(func(p models.Paper) bool {
		if term != "" &&
			!strings.Contains(strings.ToLower(p.ExamName), term) &&
			!strings.Contains(strings.ToLower(p.Category), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			return false
		}
		if filter.Category != "" && p.Category != filter.Category {
			return false
		}
		return filter.ResourceType == "" || p.ResourceType == filter.ResourceType
	}), nil
}

func (f *fakePaperRepo) CountByResourceType() (map[string]int64, error) {
	counts := map[string]int64{}
	for _, p := range f.papers {
		counts[p.ResourceType]++
	}
	return counts, nil
}

func (f *fakePaperRepo) ListByResourceTypeGroup() ([]models.Paper, error) {
	out := f.newestFirst(func(models.Paper) bool { return true })
	sort.SliceStable(out, func(i, j int) bool { return out[i].ResourceType < out[j].ResourceType })
	return out, nil
}

func (f *fakePaperRepo) ListForSitemap() ([]models.Paper, error) {
	return f.newestFirst(func(models.Paper) bool { return true }), nil
}

type fakeInspector struct {
	pages int
	err   error
	paths []string
}

func (f *fakeInspector) PageCount(path string) (int, error) {
	f.paths = append(f.paths, path)
	return f.pages, f.err
}
