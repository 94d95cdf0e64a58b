package user

import "time"

// HRUser is a member of HR staff allowed to use the API. Rows are provisioned
// out of band (cmd/seed); no endpoint mutates them.
type HRUser struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Public returns the user without credential material.
func (u HRUser) Public() HRUserResponse {
	return HRUserResponse{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
	}
}

// HRUserResponse is the user as exposed in API responses.
type HRUserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
