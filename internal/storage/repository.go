package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"stashline/internal/core"

	_ "modernc.org/sqlite"
)

var ErrItemNotFound = errors.New("stash item not found")

const targetDateLayout = "2006-01-02"

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// itemRow mirrors a stash_items row. Monetary values are stored as integer
// cents and the yield as basis points so no floats touch the database.
type itemRow struct {
	id                  string
	name                string
	currentBalanceCents int64
	plannedBudgetCents  int64
	targetAmountCents   sql.NullInt64
	targetDate          sql.NullString
	goalType            string
	apyBps              int64
}

func toRow(item core.StashItem) itemRow {
	row := itemRow{
		id:                  item.ID,
		name:                item.Name,
		currentBalanceCents: item.CurrentBalance.Cents(),
		plannedBudgetCents:  item.PlannedBudget.Cents(),
		goalType:            string(item.GoalType),
		apyBps:              item.APY.Round(4).Shift(4).IntPart(),
	}
	if item.TargetAmount != nil {
		row.targetAmountCents = sql.NullInt64{Int64: item.TargetAmount.Cents(), Valid: true}
	}
	if item.TargetDate != nil {
		row.targetDate = sql.NullString{String: item.TargetDate.UTC().Format(targetDateLayout), Valid: true}
	}
	return row
}

func (row itemRow) toItem() (core.StashItem, error) {
	item := core.StashItem{
		ID:             row.id,
		Name:           row.name,
		CurrentBalance: core.MoneyFromCents(row.currentBalanceCents),
		PlannedBudget:  core.MoneyFromCents(row.plannedBudgetCents),
		GoalType:       core.GoalType(row.goalType),
		APY:            decimal.New(row.apyBps, -4),
	}
	if row.targetAmountCents.Valid {
		target := core.MoneyFromCents(row.targetAmountCents.Int64)
		item.TargetAmount = &target
	}
	if row.targetDate.Valid {
		date, err := time.ParseInLocation(targetDateLayout, row.targetDate.String, time.UTC)
		if err != nil {
			return core.StashItem{}, fmt.Errorf("parse target date %q: %w", row.targetDate.String, err)
		}
		item.TargetDate = &date
	}
	return item, nil
}

func (r *SQLiteRepository) CreateItem(ctx context.Context, item core.StashItem) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("validate item: %w", err)
	}

	row := toRow(item)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO stash_items (id, name, current_balance_cents, planned_budget_cents,
			target_amount_cents, target_date, goal_type, apy_bps)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		row.id, row.name, row.currentBalanceCents, row.plannedBudgetCents,
		row.targetAmountCents, row.targetDate, row.goalType, row.apyBps)
	if err != nil {
		return fmt.Errorf("insert stash item: %w", err)
	}

	slog.InfoContext(ctx, "Stash item created",
		"id", item.ID,
		"name", item.Name,
		"balance_cents", row.currentBalanceCents,
		"goal_type", row.goalType)

	return nil
}

func (r *SQLiteRepository) GetItem(ctx context.Context, id string) (core.StashItem, error) {
	var row itemRow
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, current_balance_cents, planned_budget_cents,
			target_amount_cents, target_date, goal_type, apy_bps
		FROM stash_items WHERE id = ?`, id).
		Scan(&row.id, &row.name, &row.currentBalanceCents, &row.plannedBudgetCents,
			&row.targetAmountCents, &row.targetDate, &row.goalType, &row.apyBps)
	if errors.Is(err, sql.ErrNoRows) {
		return core.StashItem{}, ErrItemNotFound
	}
	if err != nil {
		return core.StashItem{}, fmt.Errorf("get stash item: %w", err)
	}
	return row.toItem()
}

func (r *SQLiteRepository) ListItems(ctx context.Context) ([]core.StashItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, current_balance_cents, planned_budget_cents,
			target_amount_cents, target_date, goal_type, apy_bps
		FROM stash_items ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list stash items: %w", err)
	}
	defer rows.Close()

	var items []core.StashItem
	for rows.Next() {
		var row itemRow
		if err := rows.Scan(&row.id, &row.name, &row.currentBalanceCents, &row.plannedBudgetCents,
			&row.targetAmountCents, &row.targetDate, &row.goalType, &row.apyBps); err != nil {
			return nil, fmt.Errorf("scan stash item: %w", err)
		}
		item, err := row.toItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stash items: %w", err)
	}
	return items, nil
}

func (r *SQLiteRepository) UpdateItem(ctx context.Context, item core.StashItem) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("validate item: %w", err)
	}

	row := toRow(item)
	res, err := r.db.ExecContext(ctx, `
		UPDATE stash_items
		SET name = ?, current_balance_cents = ?, planned_budget_cents = ?,
			target_amount_cents = ?, target_date = ?, goal_type = ?, apy_bps = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		row.name, row.currentBalanceCents, row.plannedBudgetCents,
		row.targetAmountCents, row.targetDate, row.goalType, row.apyBps, row.id)
	if err != nil {
		return fmt.Errorf("update stash item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update stash item: %w", err)
	}
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *SQLiteRepository) DeleteItem(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM stash_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete stash item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete stash item: %w", err)
	}
	if affected == 0 {
		return ErrItemNotFound
	}

	slog.InfoContext(ctx, "Stash item deleted", "id", id)
	return nil
}
