package seed

import "github.com/aryannaik/advocate-directory/internal/advocate"

var specialties = []string{
	"Bipolar",
	"LGBTQ",
	"Medication/Prescribing",
	"Suicide History/Attempts",
	"General Mental Health (anxiety, depression, stress, grief, life transitions)",
	"Men's issues",
	"Relationship Issues (family, friends, couple, etc)",
	"Trauma & PTSD",
	"Personality disorders",
	"Personal growth",
	"Substance use/abuse",
	"Pediatrics",
	"Women's issues (post-partum, infertility, family planning)",
	"Chronic pain",
	"Weight loss & nutrition",
	"Eating disorders",
	"Diabetic Diet and nutrition",
	"Coaching (leadership, career, academic and wellness)",
	"Life coaching",
	"Obsessive-compulsive disorders",
	"Neuropsychological evaluations & testing (ADHD testing)",
	"Attention and Hyperactivity (ADHD)",
	"Sleep issues",
	"Schizophrenia and psychotic disorders",
	"Learning disorders",
	"Domestic abuse",
}

// pick returns a deterministic slice of specialties for seed row i.
func pick(i int) []string {
	n := 1 + i%3
	out := make([]string, 0, n)
	for j := 0; j < n; j++ {
		out = append(out, specialties[(i*7+j*5)%len(specialties)])
	}
	return out
}

// Advocates returns the static roster used to seed an empty store.
func Advocates() []advocate.NewAdvocate {
	rows := []advocate.NewAdvocate{
		{FirstName: "John", LastName: "Doe", City: "New York", Degree: "MD", YearsOfExperience: 10, PhoneNumber: 5551234567},
		{FirstName: "Jane", LastName: "Smith", City: "Los Angeles", Degree: "PhD", YearsOfExperience: 8, PhoneNumber: 5559876543},
		{FirstName: "Alice", LastName: "Johnson", City: "Chicago", Degree: "MSW", YearsOfExperience: 5, PhoneNumber: 5554567890},
		{FirstName: "Michael", LastName: "Brown", City: "Houston", Degree: "MD", YearsOfExperience: 12, PhoneNumber: 5556543210},
		{FirstName: "Emily", LastName: "Davis", City: "Phoenix", Degree: "PhD", YearsOfExperience: 7, PhoneNumber: 5553210987},
		{FirstName: "Chris", LastName: "Martinez", City: "Philadelphia", Degree: "MSW", YearsOfExperience: 9, PhoneNumber: 5557890123},
		{FirstName: "Jessica", LastName: "Taylor", City: "San Antonio", Degree: "MD", YearsOfExperience: 11, PhoneNumber: 5554561234},
		{FirstName: "David", LastName: "Harris", City: "San Diego", Degree: "PhD", YearsOfExperience: 6, PhoneNumber: 5557896543},
		{FirstName: "Laura", LastName: "Clark", City: "Dallas", Degree: "MSW", YearsOfExperience: 4, PhoneNumber: 5550123456},
		{FirstName: "Daniel", LastName: "Lewis", City: "San Jose", Degree: "MD", YearsOfExperience: 13, PhoneNumber: 5553217654},
		{FirstName: "Sarah", LastName: "Lee", City: "Austin", Degree: "PhD", YearsOfExperience: 10, PhoneNumber: 5551238765},
		{FirstName: "James", LastName: "King", City: "Jacksonville", Degree: "MSW", YearsOfExperience: 5, PhoneNumber: 5556540987},
		{FirstName: "Megan", LastName: "Green", City: "San Francisco", Degree: "MD", YearsOfExperience: 14, PhoneNumber: 5559873456},
		{FirstName: "Joshua", LastName: "Walker", City: "Columbus", Degree: "PhD", YearsOfExperience: 9, PhoneNumber: 5556781234},
		{FirstName: "Amanda", LastName: "Hall", City: "Fort Worth", Degree: "MSW", YearsOfExperience: 3, PhoneNumber: 5559872345},
		{FirstName: "Zoë", LastName: "Álvarez", City: "Boston", Degree: "MD", YearsOfExperience: 2, PhoneNumber: 5552468013},
	}
	for i := range rows {
		rows[i].Specialties = pick(i)
	}
	return rows
}
