package services

import (
	"context"

	"github.com/kcetin/venue_booking_app/internal/core/domain"
)

// UserServiceFacade defines user and authentication operations
type UserServiceFacade interface {
	// CreateUser creates a user with a bcrypt-hashed password.
	CreateUser(ctx context.Context, creatorUserID string, username string, name string, password string) (*domain.User, error)

	// AuthenticateUser verifies credentials and returns the matching user.
	AuthenticateUser(ctx context.Context, username string, password string) (*domain.User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}
