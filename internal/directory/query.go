package directory

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/aryannaik/advocate-directory/internal/advocate"
)

// Field is a directory column.
type Field int

const (
	FirstName Field = iota
	LastName
	City
	Degree
	Specialties
	YearsOfExperience
	PhoneNumber
)

// Columns lists every field in display order.
var Columns = []Field{FirstName, LastName, City, Degree, Specialties, YearsOfExperience, PhoneNumber}

var fieldNames = map[Field]string{
	FirstName:         "First Name",
	LastName:          "Last Name",
	City:              "City",
	Degree:            "Degree",
	Specialties:       "Specialties",
	YearsOfExperience: "Years of Experience",
	PhoneNumber:       "Phone Number",
}

func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return "Unknown"
}

// Sortable reports whether the field participates in sorting.
func (f Field) Sortable() bool {
	switch f {
	case FirstName, LastName, City, Degree, YearsOfExperience:
		return true
	}
	return false
}

// Direction is a sort order.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// NewCollator returns the collator used for text columns.
func NewCollator() *collate.Collator {
	return collate.New(language.English)
}

// Filter returns the advocates whose first name, last name, city, degree or
// any specialty contains query, ignoring case. An empty query matches
// everything. The result keeps collection order and never aliases it.
func Filter(collection []advocate.Advocate, query string) []advocate.Advocate {
	q := strings.ToLower(query)
	out := make([]advocate.Advocate, 0, len(collection))
	for _, a := range collection {
		if matches(a, q) {
			out = append(out, a)
		}
	}
	return out
}

func matches(a advocate.Advocate, q string) bool {
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(a.FirstName), q) ||
		strings.Contains(strings.ToLower(a.LastName), q) ||
		strings.Contains(strings.ToLower(a.City), q) ||
		strings.Contains(strings.ToLower(a.Degree), q) {
		return true
	}
	return slices.ContainsFunc(a.Specialties, func(s string) bool {
		return strings.Contains(strings.ToLower(s), q)
	})
}

// Sort returns a stably sorted copy of records. Text fields are ordered with
// c, years of experience numerically. Non-sortable fields return the records
// in their given order. A nil collator uses NewCollator. Collators are not
// safe for concurrent use.
func Sort(records []advocate.Advocate, field Field, dir Direction, c *collate.Collator) []advocate.Advocate {
	out := slices.Clone(records)
	if out == nil {
		out = []advocate.Advocate{}
	}
	if !field.Sortable() {
		return out
	}
	if c == nil {
		c = NewCollator()
	}

	compare := func(a, b advocate.Advocate) int {
		if field == YearsOfExperience {
			return cmp.Compare(a.YearsOfExperience, b.YearsOfExperience)
		}
		return c.CompareString(textValue(a, field), textValue(b, field))
	}
	if dir == Descending {
		asc := compare
		compare = func(a, b advocate.Advocate) int { return asc(b, a) }
	}

	slices.SortStableFunc(out, compare)
	return out
}

func textValue(a advocate.Advocate, f Field) string {
	switch f {
	case FirstName:
		return a.FirstName
	case LastName:
		return a.LastName
	case City:
		return a.City
	case Degree:
		return a.Degree
	}
	return ""
}

// Render computes the rendered view for one combination of inputs.
func Render(collection []advocate.Advocate, query string, field Field, dir Direction) []advocate.Advocate {
	return Sort(Filter(collection, query), field, dir, nil)
}
