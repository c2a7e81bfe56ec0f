package auth

import "context"

type UserRepository interface {
	Create(ctx context.Context, newUser User) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
}
