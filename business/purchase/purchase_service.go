package purchase

import (
	"context"
	"errors"
	"fmt"

	"brewAdvisor/domain"
	"brewAdvisor/pkg/logger"
)

// PurchaseRepository contract interface
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *domain.Purchase) error
	HistoryForUser(ctx context.Context, userID uint, limit, windowDays int) ([]domain.Purchase, error)
	WeeklySpending(ctx context.Context, userID uint) (domain.WeeklySpending, error)
}

// BeverageRepository contract interface
type BeverageRepository interface {
	FindByName(ctx context.Context, name string) (domain.Beverage, error)
}

type purchaseService struct {
	purchaseRepo PurchaseRepository
	beverageRepo BeverageRepository
}

const (
	defaultHistoryLimit      = 50
	defaultHistoryWindowDays = 365
)

func NewPurchaseService(
	purchaseRepo PurchaseRepository,
	beverageRepo BeverageRepository,
) *purchaseService {
	return &purchaseService{
		purchaseRepo: purchaseRepo,
		beverageRepo: beverageRepo,
	}
}

// RecordPurchase stores a purchase with the beverage snapshot denormalized,
// so history scoring never needs a join back to the catalog.
func (s *purchaseService) RecordPurchase(ctx context.Context, userID uint, beverageName, mood string) (domain.Purchase, error) {
	if err := ctx.Err(); err != nil {
		return domain.Purchase{}, fmt.Errorf("context error: %w", err)
	}

	if beverageName == "" {
		return domain.Purchase{}, errors.New("beverage name is required")
	}
	if mood == "" {
		return domain.Purchase{}, errors.New("mood is required")
	}

	beverage, err := s.beverageRepo.FindByName(ctx, beverageName)
	if err != nil {
		logger.Error("Beverage not found for purchase", err)
		return domain.Purchase{}, err
	}

	newPurchase := domain.Purchase{
		UserID:       userID,
		BeverageID:   beverage.ID,
		BeverageName: beverage.Name,
		Category:     beverage.Category,
		Mood:         mood,
		Price:        beverage.Price,
	}

	if err := s.purchaseRepo.Create(ctx, &newPurchase); err != nil {
		logger.Error("Failed to record purchase", err)
		return domain.Purchase{}, err
	}

	return newPurchase, nil
}

// GetHistory returns the user's recent purchases, newest first, bounded by a
// row limit and an age window in days.
func (s *purchaseService) GetHistory(ctx context.Context, userID uint, limit, days int) ([]domain.Purchase, error) {
	if limit <= 0 || limit > defaultHistoryLimit {
		limit = defaultHistoryLimit
	}
	if days <= 0 || days > defaultHistoryWindowDays {
		days = defaultHistoryWindowDays
	}

	purchases, err := s.purchaseRepo.HistoryForUser(ctx, userID, limit, days)
	if err != nil {
		logger.Error("Failed to get purchase history", err)
		return nil, err
	}

	return purchases, nil
}

// GetWeeklySpending returns the current week's budget snapshot.
func (s *purchaseService) GetWeeklySpending(ctx context.Context, userID uint) (domain.WeeklySpending, error) {
	spending, err := s.purchaseRepo.WeeklySpending(ctx, userID)
	if err != nil {
		logger.Error("Failed to get weekly spending", err)
		return domain.WeeklySpending{}, err
	}

	return spending, nil
}
