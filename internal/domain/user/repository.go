package user

import "context"

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (HRUser, error)
	// Upsert inserts the user or refreshes name and password for an existing email.
	Upsert(ctx context.Context, u HRUser) (HRUser, error)
}
