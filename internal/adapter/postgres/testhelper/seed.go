package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/inventory-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates an active user with the given role.
// The password hash is a placeholder and does not verify against any password.
func SeedUser(t *testing.T, pool *pgxpool.Pool, role domain.UserRole) domain.User {
	t.Helper()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	name := "Test User " + suffix
	user := domain.User{
		ID:           uuid.New(),
		Email:        "testuser-" + suffix + "@example.com",
		FullName:     &name,
		PasswordHash: "$2a$04$seedseedseedseedseedseOaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, email, full_name, password_hash, role, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		user.ID, user.Email, user.FullName, user.PasswordHash, string(user.Role), user.IsActive, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert: %v", err)
	}

	return user
}

// SeedItem creates an item with the given quantity and low-stock threshold.
func SeedItem(t *testing.T, pool *pgxpool.Pool, quantity, threshold int) domain.Item {
	t.Helper()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	item := domain.Item{
		ID:                uuid.New(),
		SKU:               "SKU-" + suffix,
		Name:              "Item " + suffix,
		Quantity:          quantity,
		LowStockThreshold: threshold,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO items (id, sku, name, quantity, low_stock_threshold, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		item.ID, item.SKU, item.Name, item.Quantity, item.LowStockThreshold, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedItem insert: %v", err)
	}

	return item
}

// SeedTransaction appends a raw ledger row without touching item quantity.
func SeedTransaction(t *testing.T, pool *pgxpool.Pool, itemID, userID uuid.UUID, kind domain.MovementKind, quantity int) domain.Transaction {
	t.Helper()

	tx := domain.Transaction{ItemID: itemID, UserID: userID, Kind: kind, Quantity: quantity}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO transactions (item_id, user_id, kind, quantity)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		itemID, userID, string(kind), quantity,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedTransaction insert: %v", err)
	}

	return tx
}
