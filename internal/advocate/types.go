package advocate

import "time"

// Advocate is one directory entry as confirmed by the store.
type Advocate struct {
	ID                string    `json:"id"`
	FirstName         string    `json:"firstName"`
	LastName          string    `json:"lastName"`
	City              string    `json:"city"`
	Degree            string    `json:"degree"`
	Specialties       []string  `json:"specialties"`
	YearsOfExperience int       `json:"yearsOfExperience"`
	PhoneNumber       int64     `json:"phoneNumber"`
	CreatedAt         time.Time `json:"createdAt"`
}

// NewAdvocate is an advocate that has not been stored yet. The store assigns
// ID and CreatedAt.
type NewAdvocate struct {
	FirstName         string   `json:"firstName"`
	LastName          string   `json:"lastName"`
	City              string   `json:"city"`
	Degree            string   `json:"degree"`
	Specialties       []string `json:"specialties"`
	YearsOfExperience int      `json:"yearsOfExperience"`
	PhoneNumber       int64    `json:"phoneNumber"`
}

// WithID builds the stored form of n.
func (n NewAdvocate) WithID(id string, createdAt time.Time) Advocate {
	specialties := n.Specialties
	if specialties == nil {
		specialties = []string{}
	}
	return Advocate{
		ID:                id,
		FirstName:         n.FirstName,
		LastName:          n.LastName,
		City:              n.City,
		Degree:            n.Degree,
		Specialties:       specialties,
		YearsOfExperience: n.YearsOfExperience,
		PhoneNumber:       n.PhoneNumber,
		CreatedAt:         createdAt,
	}
}
