package auth

import (
	"time"

	"github.com/heartmarshall/inventory-backend/internal/domain"
)

// AuthResult is returned by Login.
type AuthResult struct {
	AccessToken string
	ExpiresIn   time.Duration
	User        *domain.User
}
