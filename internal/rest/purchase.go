package rest

import (
	"context"
	"net/http"
	"strings"
	"time"

	"brewAdvisor/domain"
	"brewAdvisor/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type PurchaseService interface {
	RecordPurchase(ctx context.Context, userID uint, beverageName, mood string) (domain.Purchase, error)
	GetHistory(ctx context.Context, userID uint, limit, days int) ([]domain.Purchase, error)
	GetWeeklySpending(ctx context.Context, userID uint) (domain.WeeklySpending, error)
}

type PurchaseHandler struct {
	purchaseService PurchaseService
	validator       *validator.Validate
	timeout         time.Duration
}

func NewPurchaseHandler(purchaseService PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService: purchaseService,
		validator:       validator.New(),
		timeout:         10 * time.Second,
	}
}

type PurchaseRequest struct {
	BeverageName string `json:"beverage_name" validate:"required"`
	Mood         string `json:"mood" validate:"required,oneof=Happy Tired Stressed Focused"`
}

type HistoryQuery struct {
	Limit int `query:"limit"`
	Days  int `query:"days"`
}

func (h *PurchaseHandler) RecordPurchase(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req PurchaseRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate purchase", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	purchase, err := h.purchaseService.RecordPurchase(ctx, userID, req.BeverageName, req.Mood)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(purchase))
}

func (h *PurchaseHandler) GetHistory(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var q HistoryQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	purchases, err := h.purchaseService.GetHistory(ctx, userID, q.Limit, q.Days)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(purchases))
}

func (h *PurchaseHandler) GetWeeklySpending(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	spending, err := h.purchaseService.GetWeeklySpending(ctx, userID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(spending))
}
