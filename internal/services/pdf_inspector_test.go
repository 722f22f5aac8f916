package services

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPageCountRejectsNonPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.pdf")
	if err := os.WriteFile(path, []byte("this is not a pdf at all"), 0644); err != nil {
		t.Fatal(err)
	}

	n, err := NewPDFInspector().PageCount(path)
	if err == nil {
		t.Fatalf("PageCount = %d, want error", n)
	}
	if n != 0 {
		t.Errorf("PageCount = %d on error, want 0", n)
	}
}

func TestPageCountMissingFile(t *testing.T) {
	if _, err := NewPDFInspector().PageCount(filepath.Join(t.TempDir(), "missing.pdf")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
