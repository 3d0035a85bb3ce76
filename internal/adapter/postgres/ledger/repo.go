// Package ledger implements the append-only stock movement ledger using PostgreSQL.
package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/inventory-backend/internal/adapter/postgres"
	"github.com/heartmarshall/inventory-backend/internal/domain"
)

const (
	table      = "transactions"
	entityName = "transaction"

	defaultLimit = 50
	maxLimit     = 500
)

var columns = []string{"id", "item_id", "user_id", "kind", "quantity", "created_at"}

// Repo appends and reads ledger entries. There is no update or delete.
type Repo struct {
	db postgres.Querier
}

// New creates a new ledger repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create appends a ledger entry. ID and CreatedAt are assigned by the database.
func (r *Repo) Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("item_id", "user_id", "kind", "quantity").
		Values(tx.ItemID, tx.UserID, string(tx.Kind), tx.Quantity).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	created, err := scanTransaction(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, entityName, "item "+tx.ItemID.String())
	}
	return created, nil
}

// List returns ledger entries newest first, plus the total count for the filter.
func (r *Repo) List(ctx context.Context, f domain.TransactionFilter) ([]domain.Transaction, int, error) {
	where := squirrel.Eq{}
	if f.ItemID != nil {
		where["item_id"] = *f.ItemID
	}
	if f.Kind != nil {
		where["kind"] = string(*f.Kind)
	}

	querier := postgres.QuerierFromCtx(ctx, r.db)

	countQ := postgres.Builder().Select("count(*)").From(table)
	if len(where) > 0 {
		countQ = countQ.Where(where)
	}
	sql, args, err := countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}
	var total int
	if err := querier.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, postgres.MapError(err, entityName, "list")
	}

	listQ := postgres.Builder().
		Select(columns...).
		From(table).
		OrderBy("id DESC").
		Limit(uint64(clampLimit(f.Limit))).
		Offset(uint64(max(f.Offset, 0)))
	if len(where) > 0 {
		listQ = listQ.Where(where)
	}
	sql, args, err = listQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, postgres.MapError(err, entityName, "list")
	}
	defer rows.Close()

	out := make([]domain.Transaction, 0)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, postgres.MapError(err, entityName, "list")
		}
		out = append(out, *tx)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, postgres.MapError(err, entityName, "list")
	}
	return out, total, nil
}

// NetQuantity returns sum(in) - sum(out) for an item. For an item created
// with zero stock this equals its current quantity.
func (r *Repo) NetQuantity(ctx context.Context, itemID uuid.UUID) (int, error) {
	sql, args, err := postgres.Builder().
		Select("COALESCE(SUM(CASE WHEN kind = 'in' THEN quantity ELSE -quantity END), 0)").
		From(table).
		Where(squirrel.Eq{"item_id": itemID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build sum query: %w", err)
	}

	var net int
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&net); err != nil {
		return 0, postgres.MapError(err, entityName, "item "+itemID.String())
	}
	return net, nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		tx   domain.Transaction
		kind string
	)
	if err := row.Scan(&tx.ID, &tx.ItemID, &tx.UserID, &kind, &tx.Quantity, &tx.CreatedAt); err != nil {
		return nil, err
	}
	tx.Kind = domain.MovementKind(kind)
	return &tx, nil
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultLimit
	case limit > maxLimit:
		return maxLimit
	}
	return limit
}
