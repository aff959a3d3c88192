package types

import "time"

// Personal holds the identity block of the profile.
type Personal struct {
	FullName string `json:"full_name"`
}

// Links holds the profile's contact links.
type Links struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	GitHub   string `json:"github"`
	LinkedIn string `json:"linkedin"`
	Website  string `json:"website"`
}

// Content holds the profile's narrative content.
type Content struct {
	Summary string `json:"summary"`
}

// Profile is the singleton personal record consumed by export. It is
// read-only input to the engine; the store owns its lifecycle.
type Profile struct {
	Personal  Personal  `json:"personal"`
	Links     Links     `json:"links"`
	Content   Content   `json:"content"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
