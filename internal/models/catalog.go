package models

// Catalog is the course offering of one campus in one language, as loaded
// from an import file.
type Catalog struct {
	Campus     Campus             `json:"campus"`
	Language   Language           `json:"language"`
	Semesters  []Semester         `json:"semesters"`
	Courses    []Course           `json:"courses"`
	Activities []AcademicActivity `json:"activities"`
}

// ImportSummary counts what an import stored. Rows that already existed are
// included.
type ImportSummary struct {
	CampusID   int64    `json:"campus_id"`
	Language   Language `json:"language"`
	Courses    int      `json:"courses"`
	Activities int      `json:"activities"`
	Meetings   int      `json:"meetings"`
}
