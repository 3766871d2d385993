package model

import "time"

// ConsumerProfile carries the attributes qualifiers evaluate against.
type ConsumerProfile struct {
	Age                   int      `json:"age"`
	State                 string   `json:"state"`
	ZipCode               string   `json:"zip_code"`
	Income                int      `json:"income,omitempty"`
	EmploymentStatus      string   `json:"employment_status,omitempty"`
	HouseholdSize         int      `json:"household_size"`
	HasMedicare           bool     `json:"has_medicare"`
	HasMedicaid           bool     `json:"has_medicaid"`
	TobaccoUser           bool     `json:"tobacco_user"`
	PreExistingConditions []string `json:"pre_existing_conditions,omitempty"`
}

// Attributes flattens the profile into the evaluation input for qualifiers.
func (p ConsumerProfile) Attributes() map[string]any {
	return map[string]any{
		"age":                     p.Age,
		"state":                   p.State,
		"zip_code":                p.ZipCode,
		"income":                  p.Income,
		"employment_status":       p.EmploymentStatus,
		"household_size":          p.HouseholdSize,
		"has_medicare":            p.HasMedicare,
		"has_medicaid":            p.HasMedicaid,
		"tobacco_user":            p.TobaccoUser,
		"pre_existing_conditions": p.PreExistingConditions,
	}
}

// Consumer is supplied per request; the core never persists it.
type Consumer struct {
	ID          string          `json:"id"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone,omitempty"`
	DateOfBirth time.Time       `json:"date_of_birth"`
	Profile     ConsumerProfile `json:"profile"`
}
