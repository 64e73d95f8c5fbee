package purchase

import (
	"context"
	"errors"
	"testing"

	"brewAdvisor/domain"
)

type fakePurchaseRepo struct {
	created  []domain.Purchase
	history  []domain.Purchase
	lastCall struct{ limit, windowDays int }
}

func (f *fakePurchaseRepo) Create(ctx context.Context, purchase *domain.Purchase) error {
	purchase.ID = uint(len(f.created) + 1)
	f.created = append(f.created, *purchase)
	return nil
}

func (f *fakePurchaseRepo) HistoryForUser(ctx context.Context, userID uint, limit, windowDays int) ([]domain.Purchase, error) {
	f.lastCall.limit = limit
	f.lastCall.windowDays = windowDays
	return f.history, nil
}

func (f *fakePurchaseRepo) WeeklySpending(ctx context.Context, userID uint) (domain.WeeklySpending, error) {
	var spent float64
	for _, p := range f.history {
		spent += p.Price
	}
	return domain.WeeklySpending{UserID: userID, WeeklyBudget: 25.0, SpentThisWeek: spent, Remaining: 25.0 - spent}, nil
}

type fakeBeverageRepo struct {
	beverages map[string]domain.Beverage
}

func (f *fakeBeverageRepo) FindByName(ctx context.Context, name string) (domain.Beverage, error) {
	b, ok := f.beverages[name]
	if !ok {
		return domain.Beverage{}, errors.New("beverage not found")
	}
	return b, nil
}

func newFakeBeverageRepo() *fakeBeverageRepo {
	return &fakeBeverageRepo{beverages: map[string]domain.Beverage{
		"Grande Americano": {ID: 1, Name: "Grande Americano", Category: "Coffee", Price: 3.45},
	}}
}

func TestRecordPurchaseDenormalizesBeverage(t *testing.T) {
	repo := &fakePurchaseRepo{}
	svc := NewPurchaseService(repo, newFakeBeverageRepo())

	p, err := svc.RecordPurchase(context.Background(), 7, "Grande Americano", "Tired")
	if err != nil {
		t.Fatalf("RecordPurchase failed: %v", err)
	}

	if p.UserID != 7 || p.BeverageID != 1 {
		t.Errorf("unexpected identifiers: %+v", p)
	}
	if p.BeverageName != "Grande Americano" || p.Category != "Coffee" || p.Price != 3.45 {
		t.Errorf("beverage snapshot not denormalized: %+v", p)
	}
	if len(repo.created) != 1 {
		t.Errorf("expected one stored purchase, got %d", len(repo.created))
	}
}

func TestRecordPurchaseValidation(t *testing.T) {
	svc := NewPurchaseService(&fakePurchaseRepo{}, newFakeBeverageRepo())

	if _, err := svc.RecordPurchase(context.Background(), 7, "", "Tired"); err == nil {
		t.Error("expected error for missing beverage name")
	}
	if _, err := svc.RecordPurchase(context.Background(), 7, "Grande Americano", ""); err == nil {
		t.Error("expected error for missing mood")
	}
	if _, err := svc.RecordPurchase(context.Background(), 7, "Unknown Drink", "Tired"); err == nil {
		t.Error("expected error for unknown beverage")
	}
}

func TestGetHistoryClampsBounds(t *testing.T) {
	repo := &fakePurchaseRepo{}
	svc := NewPurchaseService(repo, newFakeBeverageRepo())

	if _, err := svc.GetHistory(context.Background(), 7, 0, 0); err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if repo.lastCall.limit != defaultHistoryLimit {
		t.Errorf("zero limit should clamp to %d, got %d", defaultHistoryLimit, repo.lastCall.limit)
	}
	if repo.lastCall.windowDays != defaultHistoryWindowDays {
		t.Errorf("zero window should clamp to %d, got %d", defaultHistoryWindowDays, repo.lastCall.windowDays)
	}

	if _, err := svc.GetHistory(context.Background(), 7, 500, 9000); err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if repo.lastCall.limit != defaultHistoryLimit || repo.lastCall.windowDays != defaultHistoryWindowDays {
		t.Errorf("oversized bounds should clamp, got limit=%d days=%d", repo.lastCall.limit, repo.lastCall.windowDays)
	}

	if _, err := svc.GetHistory(context.Background(), 7, 10, 30); err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if repo.lastCall.limit != 10 || repo.lastCall.windowDays != 30 {
		t.Errorf("in-range bounds should pass through, got limit=%d days=%d", repo.lastCall.limit, repo.lastCall.windowDays)
	}
}
