package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"stashline/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "stashline.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository() error = %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func sampleItem() core.StashItem {
	target := core.MoneyFromCents(1200000)
	targetDate := time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC)
	return core.StashItem{
		ID:             "emergency-fund",
		Name:           "Emergency fund",
		CurrentBalance: core.MoneyFromCents(350000),
		PlannedBudget:  core.MoneyFromCents(50000),
		TargetAmount:   &target,
		TargetDate:     &targetDate,
		GoalType:       core.GoalFixedTarget,
		APY:            decimal.New(350, -4), // 3.5%
	}
}

func TestRepositoryRoundtrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	want := sampleItem()
	if err := repo.CreateItem(ctx, want); err != nil {
		t.Fatalf("CreateItem() error = %v", err)
	}

	got, err := repo.GetItem(ctx, want.ID)
	if err != nil {
		t.Fatalf("GetItem() error = %v", err)
	}

	if got.ID != want.ID || got.Name != want.Name {
		t.Errorf("got %q/%q, want %q/%q", got.ID, got.Name, want.ID, want.Name)
	}
	if !got.CurrentBalance.Equal(want.CurrentBalance) {
		t.Errorf("balance = %s, want %s", got.CurrentBalance, want.CurrentBalance)
	}
	if !got.PlannedBudget.Equal(want.PlannedBudget) {
		t.Errorf("budget = %s, want %s", got.PlannedBudget, want.PlannedBudget)
	}
	if got.TargetAmount == nil || !got.TargetAmount.Equal(*want.TargetAmount) {
		t.Errorf("target = %v, want %s", got.TargetAmount, want.TargetAmount)
	}
	if got.TargetDate == nil || !got.TargetDate.Equal(*want.TargetDate) {
		t.Errorf("target date = %v, want %v", got.TargetDate, want.TargetDate)
	}
	if got.GoalType != want.GoalType {
		t.Errorf("goal type = %s, want %s", got.GoalType, want.GoalType)
	}
	if !got.APY.Equal(want.APY) {
		t.Errorf("apy = %s, want %s", got.APY, want.APY)
	}
}

func TestRepositoryOptionalFieldsStayNil(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	item := core.StashItem{
		ID:             "open-ended",
		Name:           "Open ended",
		CurrentBalance: core.MoneyFromCents(1000),
		GoalType:       core.GoalOngoing,
	}
	if err := repo.CreateItem(ctx, item); err != nil {
		t.Fatalf("CreateItem() error = %v", err)
	}

	got, err := repo.GetItem(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetItem() error = %v", err)
	}
	if got.TargetAmount != nil {
		t.Errorf("TargetAmount = %v, want nil", got.TargetAmount)
	}
	if got.TargetDate != nil {
		t.Errorf("TargetDate = %v, want nil", got.TargetDate)
	}
	if !got.APY.IsZero() {
		t.Errorf("APY = %s, want 0", got.APY)
	}
}

func TestRepositoryListOrdersByCreation(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		item := core.StashItem{ID: id, Name: id, GoalType: core.GoalOngoing}
		if err := repo.CreateItem(ctx, item); err != nil {
			t.Fatalf("CreateItem(%s) error = %v", id, err)
		}
	}

	items, err := repo.ListItems(ctx)
	if err != nil {
		t.Fatalf("ListItems() error = %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	for i, id := range []string{"a", "b", "c"} {
		if items[i].ID != id {
			t.Errorf("item %d = %s, want %s", i, items[i].ID, id)
		}
	}
}

func TestRepositoryUpdate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	item := sampleItem()
	if err := repo.CreateItem(ctx, item); err != nil {
		t.Fatalf("CreateItem() error = %v", err)
	}

	item.Name = "Bigger emergency fund"
	item.CurrentBalance = core.MoneyFromCents(400000)
	item.TargetAmount = nil
	item.TargetDate = nil
	item.GoalType = core.GoalOngoing
	if err := repo.UpdateItem(ctx, item); err != nil {
		t.Fatalf("UpdateItem() error = %v", err)
	}

	got, err := repo.GetItem(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetItem() error = %v", err)
	}
	if got.Name != item.Name {
		t.Errorf("name = %q, want %q", got.Name, item.Name)
	}
	if !got.CurrentBalance.Equal(core.MoneyFromCents(400000)) {
		t.Errorf("balance = %s, want 4000", got.CurrentBalance)
	}
	if got.TargetAmount != nil || got.TargetDate != nil {
		t.Error("expected cleared target fields")
	}
}

func TestRepositoryUpdateMissingItem(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.UpdateItem(context.Background(), sampleItem())
	if !errors.Is(err, ErrItemNotFound) {
		t.Errorf("UpdateItem() error = %v, want ErrItemNotFound", err)
	}
}

func TestRepositoryDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	item := sampleItem()
	if err := repo.CreateItem(ctx, item); err != nil {
		t.Fatalf("CreateItem() error = %v", err)
	}
	if err := repo.DeleteItem(ctx, item.ID); err != nil {
		t.Fatalf("DeleteItem() error = %v", err)
	}

	if _, err := repo.GetItem(ctx, item.ID); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("GetItem() after delete error = %v, want ErrItemNotFound", err)
	}
	if err := repo.DeleteItem(ctx, item.ID); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("DeleteItem() twice error = %v, want ErrItemNotFound", err)
	}
}

func TestRepositoryCreateRejectsInvalidItem(t *testing.T) {
	repo := newTestRepo(t)

	item := sampleItem()
	item.ID = "  "
	if err := repo.CreateItem(context.Background(), item); !errors.Is(err, core.ErrEmptyID) {
		t.Errorf("CreateItem() error = %v, want ErrEmptyID", err)
	}
}
