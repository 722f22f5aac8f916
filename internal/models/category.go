package models

import "strings"

// Category is the typed form of a paper's category at the application
// boundary. Storage keeps whatever string was submitted.
type Category string

const (
	CategoryUPSC               Category = "UPSC"
	CategoryNEET               Category = "NEET"
	CategoryJEE                Category = "JEE"
	CategorySSC                Category = "SSC CGL/CHSL"
	CategoryBanking            Category = "Banking Exams"
	CategoryStatePSC           Category = "State PSC"
	CategorySchool             Category = "Class 1-12"
	CategoryUniversityEntrance Category = "University Entrance"
	CategoryPhDEntrance        Category = "PhD Entrance"
	CategoryOther              Category = "Other"
)

// Categories is the advisory list shown on the categories page, in display order.
var Categories = []Category{
	CategoryUPSC,
	CategoryNEET,
	CategoryJEE,
	CategorySSC,
	CategoryBanking,
	CategoryStatePSC,
	CategorySchool,
	CategoryUniversityEntrance,
	CategoryPhDEntrance,
	CategoryOther,
}

// ParseCategory maps a free-text category onto the known list, ignoring case
// and surrounding whitespace. Unknown values fall back to CategoryOther.
func ParseCategory(s string) Category {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c
		}
	}
	return CategoryOther
}

func (c Category) String() string {
	return string(c)
}
