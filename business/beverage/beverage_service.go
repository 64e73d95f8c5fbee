package beverage

import (
	"context"
	"errors"
	"fmt"

	"brewAdvisor/domain"
	"brewAdvisor/pkg/logger"
)

// BeverageRepository contract interface
type BeverageRepository interface {
	Create(ctx context.Context, beverage *domain.Beverage) error
	FindByID(ctx context.Context, id uint64) (domain.Beverage, error)
	FindByName(ctx context.Context, name string) (domain.Beverage, error)
	FindAll(ctx context.Context) ([]domain.Beverage, error)
	FindByFilter(ctx context.Context, mood string, maxPrice float64) ([]domain.Beverage, error)
	FindByMaxPrice(ctx context.Context, maxPrice float64) ([]domain.Beverage, error)
	Update(ctx context.Context, beverage *domain.Beverage) error
	Delete(ctx context.Context, id uint64) error
}

type beverageService struct {
	beverageRepo BeverageRepository
}

func NewBeverageService(beverageRepo BeverageRepository) *beverageService {
	return &beverageService{
		beverageRepo: beverageRepo,
	}
}

func (s *beverageService) CreateBeverage(ctx context.Context, beverage *domain.Beverage) (domain.Beverage, error) {
	if err := ctx.Err(); err != nil {
		return domain.Beverage{}, fmt.Errorf("context error: %w", err)
	}

	if beverage.Name == "" || beverage.Category == "" {
		return domain.Beverage{}, errors.New("name and category are required")
	}
	if beverage.Price <= 0 {
		return domain.Beverage{}, errors.New("price must be positive")
	}

	// Check for duplicate name
	existing, err := s.beverageRepo.FindByName(ctx, beverage.Name)
	if err == nil && existing.ID > 0 {
		logger.Error("Beverage already exists")
		return domain.Beverage{}, errors.New("beverage already exists")
	}

	if err := s.beverageRepo.Create(ctx, beverage); err != nil {
		logger.Error("Failed to create beverage", err)
		return domain.Beverage{}, err
	}

	return *beverage, nil
}

func (s *beverageService) GetBeverageByID(ctx context.Context, id uint64) (domain.Beverage, error) {
	beverage, err := s.beverageRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to get beverage by ID", err)
		return domain.Beverage{}, err
	}

	return beverage, nil
}

func (s *beverageService) GetAllBeverages(ctx context.Context) ([]domain.Beverage, error) {
	beverages, err := s.beverageRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to get all beverages", err)
		return nil, err
	}

	return beverages, nil
}

// FilterBeverages narrows the catalog by mood tag and price ceiling. Both
// filters are optional.
func (s *beverageService) FilterBeverages(ctx context.Context, mood string, maxPrice float64) ([]domain.Beverage, error) {
	if maxPrice < 0 {
		return nil, errors.New("max price cannot be negative")
	}

	beverages, err := s.beverageRepo.FindByFilter(ctx, mood, maxPrice)
	if err != nil {
		logger.Error("Failed to filter beverages", err)
		return nil, err
	}

	return beverages, nil
}

func (s *beverageService) UpdateBeverage(ctx context.Context, id uint64, updateData *domain.Beverage) (domain.Beverage, error) {
	existing, err := s.beverageRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Beverage not found for update", err)
		return domain.Beverage{}, err
	}

	if updateData.Name != "" {
		existing.Name = updateData.Name
	}
	if updateData.Category != "" {
		existing.Category = updateData.Category
	}
	if updateData.Price > 0 {
		existing.Price = updateData.Price
	}
	if updateData.Price < 0 {
		return domain.Beverage{}, errors.New("price cannot be negative")
	}
	if updateData.SuitableMoods != "" {
		existing.SuitableMoods = updateData.SuitableMoods
	}

	if err := s.beverageRepo.Update(ctx, &existing); err != nil {
		logger.Error("Failed to update beverage", err)
		return domain.Beverage{}, err
	}

	return existing, nil
}

func (s *beverageService) DeleteBeverage(ctx context.Context, id uint64) error {
	if _, err := s.beverageRepo.FindByID(ctx, id); err != nil {
		logger.Error("Beverage not found for deletion", err)
		return err
	}

	if err := s.beverageRepo.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete beverage", err)
		return err
	}

	return nil
}
