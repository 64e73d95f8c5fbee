package rest

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"brewAdvisor/domain"
	"brewAdvisor/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type BeverageService interface {
	CreateBeverage(ctx context.Context, beverage *domain.Beverage) (domain.Beverage, error)
	GetBeverageByID(ctx context.Context, id uint64) (domain.Beverage, error)
	GetAllBeverages(ctx context.Context) ([]domain.Beverage, error)
	FilterBeverages(ctx context.Context, mood string, maxPrice float64) ([]domain.Beverage, error)
	UpdateBeverage(ctx context.Context, id uint64, updateData *domain.Beverage) (domain.Beverage, error)
	DeleteBeverage(ctx context.Context, id uint64) error
}

type BeverageHandler struct {
	beverageService BeverageService
	validator       *validator.Validate
	timeout         time.Duration
}

func NewBeverageHandler(beverageService BeverageService) *BeverageHandler {
	return &BeverageHandler{
		beverageService: beverageService,
		validator:       validator.New(),
		timeout:         10 * time.Second,
	}
}

type BeverageCreateRequest struct {
	Name          string  `json:"name" validate:"required"`
	Category      string  `json:"category" validate:"required"`
	Price         float64 `json:"price" validate:"required,gt=0"`
	SuitableMoods string  `json:"suitable_moods"`
}

type BeverageUpdateRequest struct {
	Name          string  `json:"name,omitempty"`
	Category      string  `json:"category,omitempty"`
	Price         float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	SuitableMoods string  `json:"suitable_moods,omitempty"`
}

type BeverageFilterQuery struct {
	Mood     string  `query:"mood"`
	MaxPrice float64 `query:"max_price"`
}

func (h *BeverageHandler) CreateBeverage(c echo.Context) error {
	var req BeverageCreateRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate beverage create", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	beverage, err := h.beverageService.CreateBeverage(ctx, &domain.Beverage{
		Name:          req.Name,
		Category:      req.Category,
		Price:         req.Price,
		SuitableMoods: req.SuitableMoods,
	})
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(beverage))
}

func (h *BeverageHandler) GetBeverageByID(c echo.Context) error {
	id := c.Param("id")

	var beverageID uint64
	if _, err := fmt.Sscan(id, &beverageID); err != nil {
		logger.Error("Invalid beverage ID", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid beverage ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	beverage, err := h.beverageService.GetBeverageByID(ctx, beverageID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(beverage))
}

// GetAllBeverages returns the catalog, optionally filtered by mood tag and
// price ceiling via query params.
func (h *BeverageHandler) GetAllBeverages(c echo.Context) error {
	var q BeverageFilterQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if q.Mood == "" && q.MaxPrice <= 0 {
		beverages, err := h.beverageService.GetAllBeverages(ctx)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, fres.Response.StatusOK(beverages))
	}

	beverages, err := h.beverageService.FilterBeverages(ctx, q.Mood, q.MaxPrice)
	if err != nil {
		if strings.Contains(err.Error(), "cannot be negative") {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(beverages))
}

func (h *BeverageHandler) UpdateBeverage(c echo.Context) error {
	id := c.Param("id")

	beverageID, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		logger.Error("Invalid beverage ID", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid beverage ID"})
	}

	var req BeverageUpdateRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate beverage update", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	beverage, err := h.beverageService.UpdateBeverage(ctx, beverageID, &domain.Beverage{
		Name:          req.Name,
		Category:      req.Category,
		Price:         req.Price,
		SuitableMoods: req.SuitableMoods,
	})
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(beverage))
}

func (h *BeverageHandler) DeleteBeverage(c echo.Context) error {
	id := c.Param("id")

	beverageID, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		logger.Error("Invalid beverage ID", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid beverage ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.beverageService.DeleteBeverage(ctx, beverageID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Beverage deleted successfully"))
}
