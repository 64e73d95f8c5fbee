package postgres

import (
	"context"
	"errors"
	"fmt"

	"brewAdvisor/domain"

	"gorm.io/gorm"
)

type BeverageRepository struct {
	DB *gorm.DB
}

func NewBeverageRepository(db *gorm.DB) *BeverageRepository {
	return &BeverageRepository{
		DB: db,
	}
}

func (r *BeverageRepository) Create(ctx context.Context, beverage *domain.Beverage) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(beverage).Error; err != nil {
		return fmt.Errorf("failed to create beverage: %w", err)
	}

	return nil
}

func (r *BeverageRepository) FindByID(ctx context.Context, id uint64) (domain.Beverage, error) {
	if err := ctx.Err(); err != nil {
		return domain.Beverage{}, fmt.Errorf("context error: %w", err)
	}

	var beverage domain.Beverage

	err := r.DB.WithContext(ctx).First(&beverage, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Beverage{}, errors.New("beverage not found")
		}
		return domain.Beverage{}, fmt.Errorf("failed to find beverage: %w", err)
	}

	return beverage, nil
}

func (r *BeverageRepository) FindByName(ctx context.Context, name string) (domain.Beverage, error) {
	if err := ctx.Err(); err != nil {
		return domain.Beverage{}, fmt.Errorf("context error: %w", err)
	}

	var beverage domain.Beverage

	err := r.DB.WithContext(ctx).Where("name = ?", name).First(&beverage).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Beverage{}, errors.New("beverage not found")
		}
		return domain.Beverage{}, fmt.Errorf("failed to find beverage: %w", err)
	}

	return beverage, nil
}

func (r *BeverageRepository) FindAll(ctx context.Context) ([]domain.Beverage, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var beverages []domain.Beverage
	err := r.DB.WithContext(ctx).Order("name asc").Find(&beverages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find beverages: %w", err)
	}

	return beverages, nil
}

// FindByFilter returns beverages tagged with the mood and priced at or below
// the ceiling. Mood matching happens on the comma separated tag column, so
// the LIKE patterns cover first, middle, last, and only positions.
func (r *BeverageRepository) FindByFilter(ctx context.Context, mood string, maxPrice float64) ([]domain.Beverage, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	query := r.DB.WithContext(ctx).Model(&domain.Beverage{})

	if maxPrice > 0 {
		query = query.Where("price <= ?", maxPrice)
	}

	if mood != "" {
		query = query.Where(
			"suitable_moods = ? OR suitable_moods LIKE ? OR suitable_moods LIKE ? OR suitable_moods LIKE ?",
			mood, mood+",%", "%,"+mood, "%,"+mood+",%",
		)
	}

	var beverages []domain.Beverage
	if err := query.Order("name asc").Find(&beverages).Error; err != nil {
		return nil, fmt.Errorf("failed to filter beverages: %w", err)
	}

	return beverages, nil
}

func (r *BeverageRepository) FindByMaxPrice(ctx context.Context, maxPrice float64) ([]domain.Beverage, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var beverages []domain.Beverage

	query := r.DB.WithContext(ctx).Model(&domain.Beverage{})
	if maxPrice > 0 {
		query = query.Where("price <= ?", maxPrice)
	}

	if err := query.Order("price asc").Find(&beverages).Error; err != nil {
		return nil, fmt.Errorf("failed to find beverages by price: %w", err)
	}

	return beverages, nil
}

func (r *BeverageRepository) Update(ctx context.Context, beverage *domain.Beverage) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	var existing domain.Beverage
	if err := r.DB.WithContext(ctx).First(&existing, beverage.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("beverage not found")
		}
		return fmt.Errorf("failed to find beverage: %w", err)
	}

	updateData := map[string]interface{}{
		"name":           beverage.Name,
		"category":       beverage.Category,
		"price":          beverage.Price,
		"suitable_moods": beverage.SuitableMoods,
	}

	result := r.DB.WithContext(ctx).Model(&domain.Beverage{}).Where("id = ?", beverage.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update beverage: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("beverage not found or already deleted")
	}

	return nil
}

func (r *BeverageRepository) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.Beverage{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete beverage: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("beverage not found or already deleted")
	}

	return nil
}
