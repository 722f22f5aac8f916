package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/patirananta462-byte/papersharehub/internal/models"
	"github.com/patirananta462-byte/papersharehub/internal/repositories"
	"github.com/patirananta462-byte/papersharehub/pkg/apperrors"
)

func seed(t *testing.T, repo *fakePaperRepo, exam, category, resourceType string) models.Paper {
	t.Helper()
	p := models.Paper{
		ExamName:     exam,
		Category:     category,
		ResourceType: resourceType,
		Filename:     fmt.Sprintf("%s_%d.pdf", exam, len(repo.papers)),
	}
	if err := repo.Create(&p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return p
}

func paperIDs(papers []models.Paper) []uint {
	out := make([]uint, len(papers))
	for i, p := range papers {
		out[i] = p.ID
	}
	return out
}

func sameIDs(a, b []uint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestCategoryListingGroupsByExam(t *testing.T) {
	repo := newFakeRepo()
	phy1 := seed(t, repo, "Physics", "JEE", "notes")
	chem := seed(t, repo, "Chemistry", "JEE", "notes")
	seed(t, repo, "Prelims", "UPSC", "notes")
	phy2 := seed(t, repo, "Physics", "JEE", "book")

	svc := NewQueryService(repo, nil)
	listing, err := svc.CategoryListing("JEE")
	if err != nil {
		t.Fatalf("CategoryListing: %v", err)
	}

	if len(listing.Groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(listing.Groups))
	}
	if g := listing.Groups[0]; g.ExamName != "Chemistry" || !sameIDs(paperIDs(g.Papers), []uint{chem.ID}) {
		t.Errorf("group 0 = %+v", g)
	}
	if g := listing.Groups[1]; g.ExamName != "Physics" || !sameIDs(paperIDs(g.Papers), []uint{phy2.ID, phy1.ID}) {
		t.Errorf("group 1 = %s %v", g.ExamName, paperIDs(g.Papers))
	}
	if len(listing.Exams) != 2 || listing.Exams[0] != "Chemistry" {
		t.Errorf("exams = %v", listing.Exams)
	}
}

func TestCategoryListingEmpty(t *testing.T) {
	svc := NewQueryService(newFakeRepo(), nil)

	listing, err := svc.CategoryListing("NEET")
	if err != nil {
		t.Fatalf("CategoryListing: %v", err)
	}
	if listing.Groups == nil || len(listing.Groups) != 0 {
		t.Errorf("groups = %#v, want empty non-nil", listing.Groups)
	}
}

func TestExamListing(t *testing.T) {
	repo := newFakeRepo()
	a := seed(t, repo, "Prelims", "UPSC", "notes")
	b := seed(t, repo, "Prelims", "UPSC", "book")
	seed(t, repo, "Prelims", "State PSC", "book")

	svc := NewQueryService(repo, nil)
	listing, err := svc.ExamListing("UPSC", "Prelims")
	if err != nil {
		t.Fatalf("ExamListing: %v", err)
	}
	if !sameIDs(paperIDs(listing.Papers), []uint{b.ID, a.ID}) {
		t.Errorf("ids = %v", paperIDs(listing.Papers))
	}

	if _, err := svc.ExamListing("UPSC", "Mains"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("missing exam error = %v, want ErrNotFound", err)
	}
}

func TestPaperDetailRelated(t *testing.T) {
	repo := newFakeRepo()
	var same []models.Paper
	for i := 0; i < 7; i++ {
		same = append(same, seed(t, repo, "Mains", "UPSC", "notes"))
	}
	seed(t, repo, "Mains", "State PSC", "notes")
	seed(t, repo, "Prelims", "UPSC", "notes")

	svc := NewQueryService(repo, nil)
	target := same[3]
	detail, err := svc.PaperDetail(target.ID)
	if err != nil {
		t.Fatalf("PaperDetail: %v", err)
	}
	if detail.Paper.ID != target.ID {
		t.Errorf("paper = %d, want %d", detail.Paper.ID, target.ID)
	}

	want := []uint{same[6].ID, same[5].ID, same[4].ID, same[2].ID, same[1].ID}
	if !sameIDs(paperIDs(detail.RelatedPapers), want) {
		t.Errorf("related = %v, want %v", paperIDs(detail.RelatedPapers), want)
	}
}

func TestPaperDetailNotFound(t *testing.T) {
	svc := NewQueryService(newFakeRepo(), nil)

	if _, err := svc.PaperDetail(99); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestRelatedWithNoSiblings(t *testing.T) {
	repo := newFakeRepo()
	only := seed(t, repo, "Solo", "Other", "notes")

	related, err := NewQueryService(repo, nil).Related(only)
	if err != nil {
		t.Fatalf("Related: %v", err)
	}
	if len(related) != 0 {
		t.Errorf("related = %v", paperIDs(related))
	}
}

func TestResources(t *testing.T) {
	repo := newFakeRepo()
	n1 := seed(t, repo, "A", "UPSC", "notes")
	b1 := seed(t, repo, "B", "UPSC", "book")
	n2 := seed(t, repo, "C", "JEE", "notes")

	svc := NewQueryService(repo, nil)

	all, err := svc.Resources("")
	if err != nil {
		t.Fatalf("Resources: %v", err)
	}
	if all.ResourceType != ResourceTypeAll || !sameIDs(paperIDs(all.Resources), []uint{b1.ID, n2.ID, n1.ID}) {
		t.Errorf("all = %s %v", all.ResourceType, paperIDs(all.Resources))
	}
	if all.ResourceCounts["notes"] != 2 || all.ResourceCounts["book"] != 1 {
		t.Errorf("counts = %v", all.ResourceCounts)
	}

	notes, err := svc.Resources("notes")
	if err != nil {
		t.Fatalf("Resources: %v", err)
	}
	if !sameIDs(paperIDs(notes.Resources), []uint{n2.ID, n1.ID}) {
		t.Errorf("notes = %v", paperIDs(notes.Resources))
	}
}

func TestSearchPassesFilters(t *testing.T) {
	repo := newFakeRepo()
	seed(t, repo, "Mathematics", "JEE", "notes")
	want := seed(t, repo, "Applied Math", "UPSC", "book")

	got, err := NewQueryService(repo, nil).Search(repositories.SearchFilter{Term: "MATH", Category: "UPSC"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if !sameIDs(paperIDs(got), []uint{want.ID}) {
		t.Errorf("ids = %v", paperIDs(got))
	}
}

func TestCategoryCountsCoverFixedList(t *testing.T) {
	repo := newFakeRepo()
	seed(t, repo, "A", "JEE", "notes")
	seed(t, repo, "B", "JEE", "notes")
	seed(t, repo, "C", "Custom", "notes")

	stats := NewStatsCache(32, time.Hour)
	svc := NewQueryService(repo, stats)

	counts, err := svc.CategoryCounts()
	if err != nil {
		t.Fatalf("CategoryCounts: %v", err)
	}
	if len(counts) != len(models.Categories) {
		t.Fatalf("len = %d, want %d", len(counts), len(models.Categories))
	}
	for _, c := range counts {
		want := int64(0)
		if c.Name == "JEE" {
			want = 2
		}
		if c.Count != want {
			t.Errorf("%s = %d, want %d", c.Name, c.Count, want)
		}
	}

	calls := repo.calls["CountByCategory"]
	if _, err := svc.CategoryCounts(); err != nil {
		t.Fatalf("CategoryCounts: %v", err)
	}
	if repo.calls["CountByCategory"] != calls {
		t.Errorf("second call hit the repository %d more times", repo.calls["CountByCategory"]-calls)
	}
}

func TestHomeStats(t *testing.T) {
	repo := newFakeRepo()
	seed(t, repo, "A", "JEE", "notes")
	seed(t, repo, "B", "JEE", "notes")
	seed(t, repo, "C", "Custom", "notes")

	stats, err := NewQueryService(repo, nil).HomeStats()
	if err != nil {
		t.Fatalf("HomeStats: %v", err)
	}
	if stats.TotalPapers != 3 || stats.TotalCategories != 2 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestSitemapNewestIDFirst(t *testing.T) {
	repo := newFakeRepo()
	a := seed(t, repo, "A", "JEE", "notes")
	b := seed(t, repo, "B", "UPSC", "notes")

	entries, err := NewQueryService(repo, nil).Sitemap()
	if err != nil {
		t.Fatalf("Sitemap: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != b.ID || entries[1].ID != a.ID {
		t.Errorf("entries = %+v", entries)
	}
}
