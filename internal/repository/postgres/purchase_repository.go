package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"brewAdvisor/domain"

	"gorm.io/gorm"
)

type PurchaseRepository struct {
	DB *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{
		DB: db,
	}
}

func (r *PurchaseRepository) Create(ctx context.Context, purchase *domain.Purchase) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(purchase).Error; err != nil {
		return fmt.Errorf("failed to create purchase: %w", err)
	}

	return nil
}

// HistoryForUser returns the newest purchases first, bounded by both a row
// limit and an age window.
func (r *PurchaseRepository) HistoryForUser(ctx context.Context, userID uint, limit, windowDays int) ([]domain.Purchase, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	query := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("purchase_date desc")

	if windowDays > 0 {
		cutoff := time.Now().AddDate(0, 0, -windowDays)
		query = query.Where("purchase_date >= ?", cutoff)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var purchases []domain.Purchase
	if err := query.Find(&purchases).Error; err != nil {
		return nil, fmt.Errorf("failed to find purchases: %w", err)
	}

	return purchases, nil
}

// WeeklySpending sums this week's purchases against the user's weekly budget.
// Weeks start on Monday.
func (r *PurchaseRepository) WeeklySpending(ctx context.Context, userID uint) (domain.WeeklySpending, error) {
	if err := ctx.Err(); err != nil {
		return domain.WeeklySpending{}, fmt.Errorf("context error: %w", err)
	}

	var user domain.User
	if err := r.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.WeeklySpending{}, errors.New("user not found")
		}
		return domain.WeeklySpending{}, fmt.Errorf("failed to find user: %w", err)
	}

	weekStart, weekEnd := currentWeek(time.Now())

	var spent float64
	err := r.DB.WithContext(ctx).
		Model(&domain.Purchase{}).
		Where("user_id = ? AND purchase_date >= ? AND purchase_date < ?", userID, weekStart, weekEnd).
		Select("COALESCE(SUM(price), 0)").
		Scan(&spent).Error
	if err != nil {
		return domain.WeeklySpending{}, fmt.Errorf("failed to sum purchases: %w", err)
	}

	return domain.WeeklySpending{
		UserID:        userID,
		WeeklyBudget:  user.WeeklyBudget,
		SpentThisWeek: spent,
		Remaining:     user.WeeklyBudget - spent,
		WeekStart:     weekStart,
		WeekEnd:       weekEnd,
	}, nil
}

// currentWeek returns the Monday 00:00 boundary pair around t.
func currentWeek(t time.Time) (time.Time, time.Time) {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	year, month, day := t.AddDate(0, 0, -daysSinceMonday).Date()
	weekStart := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	return weekStart, weekStart.AddDate(0, 0, 7)
}
