package models

import "testing"

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{"JEE", CategoryJEE},
		{"  jee ", CategoryJEE},
		{"ssc cgl/chsl", CategorySSC},
		{"Class 1-12", CategorySchool},
		{"Math Olympiad", CategoryOther},
		{"", CategoryOther},
	}

	for _, tt := range tests {
		if got := ParseCategory(tt.in); got != tt.want {
			t.Errorf("ParseCategory(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCategoriesEndWithOther(t *testing.T) {
	if len(Categories) != 10 {
		t.Fatalf("len(Categories) = %d, want 10", len(Categories))
	}
	if Categories[len(Categories)-1] != CategoryOther {
		t.Errorf("last category = %q, want Other", Categories[len(Categories)-1])
	}
}
