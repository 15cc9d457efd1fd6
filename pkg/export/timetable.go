package export

// Row is one meeting of a retrieved activity in a rendered timetable.
type Row struct {
	Course       string `csv:"course"`
	CourseNumber int64  `csv:"course_number"`
	ActivityID   string `csv:"activity_id"`
	Kind         string `csv:"kind"`
	Lecturer     string `csv:"lecturer"`
	Day          string `csv:"day"`
	Start        string `csv:"start"`
	End          string `csv:"end"`
	Location     string `csv:"location"`
	Capacity     string `csv:"capacity"`
}

var pdfColumns = []struct {
	title string
	width float64
	value func(Row) string
}{
	{"Course", 52, func(r Row) string { return r.Course }},
	{"Activity", 24, func(r Row) string { return r.ActivityID }},
	{"Kind", 22, func(r Row) string { return r.Kind }},
	{"Lecturer", 42, func(r Row) string { return r.Lecturer }},
	{"Day", 26, func(r Row) string { return r.Day }},
	{"Start", 16, func(r Row) string { return r.Start }},
	{"End", 16, func(r Row) string { return r.End }},
	{"Location", 42, func(r Row) string { return r.Location }},
	{"Capacity", 37, func(r Row) string { return r.Capacity }},
}
