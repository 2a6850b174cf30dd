package domain

import (
	"strings"
	"time"
)

// Profile is the identity a student registers with. Values are stored as
// given and only checked for presence. Suffix is the one optional field.
type Profile struct {
	LastName   string
	FirstName  string
	MiddleName string
	Suffix     string
	Course     string
	Section    string
	YearLevel  string
}

// FullName renders "Last, First Middle" with the suffix appended when set,
// e.g. "Dela Cruz, Juan Miguel Jr.".
func (p Profile) FullName() string {
	name := strings.TrimSpace(p.LastName + ", " + joinNonEmpty(p.FirstName, p.MiddleName))
	if s := strings.TrimSpace(p.Suffix); s != "" {
		name += " " + s
	}
	return strings.TrimSpace(name)
}

func joinNonEmpty(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

// Account is a verified student record in the account store.
type Account struct {
	ID           string
	Profile      Profile
	StudentID    string // unique, NN-NNNN-NNNNNN
	Email        string // unique, lower-cased
	PasswordHash string // argon2 encoded
	Verified     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (a Account) FullName() string { return a.Profile.FullName() }

// PublicAccount is what clients get back after verify and login.
type PublicAccount struct {
	ID        string `json:"id"`
	StudentID string `json:"studentID"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Course    string `json:"course"`
	Section   string `json:"section"`
	YearLevel string `json:"yearLevel"`
}

func (a Account) Public() PublicAccount {
	return PublicAccount{
		ID:        a.ID,
		StudentID: a.StudentID,
		FullName:  a.FullName(),
		Email:     a.Email,
		Course:    a.Profile.Course,
		Section:   a.Profile.Section,
		YearLevel: a.Profile.YearLevel,
	}
}

// AccountListing is the diagnostic view served by the student listing. It
// still never carries the password hash.
type AccountListing struct {
	PublicAccount
	LastName   string    `json:"lastName"`
	FirstName  string    `json:"firstName"`
	MiddleName string    `json:"middleName"`
	Suffix     string    `json:"suffix,omitempty"`
	Verified   bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (a Account) Listing() AccountListing {
	return AccountListing{
		PublicAccount: a.Public(),
		LastName:      a.Profile.LastName,
		FirstName:     a.Profile.FirstName,
		MiddleName:    a.Profile.MiddleName,
		Suffix:        a.Profile.Suffix,
		Verified:      a.Verified,
		CreatedAt:     a.CreatedAt,
	}
}
