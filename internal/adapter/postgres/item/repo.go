// Package item implements the Item store using PostgreSQL.
package item

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/inventory-backend/internal/adapter/postgres"
	"github.com/heartmarshall/inventory-backend/internal/domain"
)

const (
	table      = "items"
	entityName = "item"

	defaultLimit = 50
	maxLimit     = 200
)

var columns = []string{
	"id", "sku", "name", "description", "quantity",
	"low_stock_threshold", "price", "created_at", "updated_at",
}

// Repo provides item persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new item repository. db is normally a *pgxpool.Pool.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

// GetByID returns an item by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate returns an item and locks its row until the surrounding
// transaction ends. Must be called inside TxManager.RunInTx.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	if !postgres.InTx(ctx) {
		return nil, fmt.Errorf("%s %s: GetForUpdate outside transaction", entityName, id)
	}
	return r.get(ctx, id, true)
}

func (r *Repo) get(ctx context.Context, id uuid.UUID, lock bool) (*domain.Item, error) {
	q := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})
	if lock {
		q = q.Suffix("FOR UPDATE")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	it, err := scanItem(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, mapNotFound(postgres.MapError(err, entityName, id))
	}
	return it, nil
}

// List returns items matching the filter, ordered by name, plus the total count.
func (r *Repo) List(ctx context.Context, f domain.ItemFilter) ([]domain.Item, int, error) {
	where := squirrel.And{}
	if f.Search != nil && *f.Search != "" {
		pattern := "%" + escapeLike(*f.Search) + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"sku": pattern},
		})
	}
	if f.LowStockOnly {
		where = append(where, squirrel.Expr("quantity <= low_stock_threshold"))
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
		OrderBy("name ASC", "id ASC").
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

	items := make([]domain.Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, 0, postgres.MapError(err, entityName, "list")
		}
		items = append(items, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, postgres.MapError(err, entityName, "list")
	}

	return items, total, nil
}

// ---------------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------------

// Create inserts a new item and returns the persisted row.
func (r *Repo) Create(ctx context.Context, it *domain.Item) (*domain.Item, error) {
	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("id", "sku", "name", "description", "quantity", "low_stock_threshold", "price").
		Values(it.ID, it.SKU, it.Name, it.Description, it.Quantity, it.LowStockThreshold, it.Price).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	created, err := scanItem(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, entityName, it.ID)
	}
	return created, nil
}

// Update applies the present fields of patch. An empty patch returns the
// current row unchanged.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, patch domain.ItemPatch) (*domain.Item, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	q := postgres.Builder().
		Update(table).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns())
	if patch.Name != nil {
		q = q.Set("name", *patch.Name)
	}
	switch {
	case patch.ClearDescription:
		q = q.Set("description", nil)
	case patch.Description != nil:
		q = q.Set("description", *patch.Description)
	}
	if patch.LowStockThreshold != nil {
		q = q.Set("low_stock_threshold", *patch.LowStockThreshold)
	}
	switch {
	case patch.ClearPrice:
		q = q.Set("price", nil)
	case patch.Price != nil:
		q = q.Set("price", *patch.Price)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update: %w", err)
	}

	updated, err := scanItem(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, mapNotFound(postgres.MapError(err, entityName, id))
	}
	return updated, nil
}

// UpdateQuantity adds delta to the item's quantity and returns the new row.
// The WHERE clause refuses to take quantity below zero, so a stale check
// cannot oversell; that case reports domain.ErrInsufficientStock.
func (r *Repo) UpdateQuantity(ctx context.Context, id uuid.UUID, delta int) (*domain.Item, error) {
	sql, args, err := postgres.Builder().
		Update(table).
		Set("quantity", squirrel.Expr("quantity + ?", delta)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Expr("quantity + ? >= 0", delta)).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update: %w", err)
	}

	updated, err := scanItem(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%s %s: %w", entityName, id, domain.ErrInsufficientStock)
	}
	if err != nil {
		return nil, postgres.MapError(err, entityName, id)
	}
	return updated, nil
}

// Delete removes an item. Items referenced by the ledger cannot be deleted
// and report domain.ErrConflict.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := postgres.Builder().
		Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		if postgres.IsPgCode(err, postgres.CodeForeignKeyViolation) {
			return fmt.Errorf("%s %s has ledger entries: %w", entityName, id, domain.ErrConflict)
		}
		return postgres.MapError(err, entityName, id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", entityName, id, domain.ErrItemNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func scanItem(row pgx.Row) (*domain.Item, error) {
	var it domain.Item
	err := row.Scan(
		&it.ID, &it.SKU, &it.Name, &it.Description, &it.Quantity,
		&it.LowStockThreshold, &it.Price, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// mapNotFound narrows a generic not-found into ErrItemNotFound.
func mapNotFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) && !errors.Is(err, domain.ErrItemNotFound) {
		return fmt.Errorf("%w: %w", domain.ErrItemNotFound, err)
	}
	return err
}

func joinColumns() string {
	return strings.Join(columns, ", ")
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

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
