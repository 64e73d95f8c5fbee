package rest

import (
	"context"
	"net/http"
	"time"

	"brewAdvisor/domain"
	"brewAdvisor/pkg/logger"
	"brewAdvisor/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	RecommendHandler struct {
		validate         *validator.Validate
		recommendService RecommendService
		timeout          time.Duration
	}

	RecommendService interface {
		Recommend(ctx context.Context, userID uint, mood string, budgetCeiling float64) ([]domain.ScoredCandidate, error)
	}

	RecommendQuery struct {
		Mood   string  `query:"mood" validate:"required,oneof=Happy Tired Stressed Focused"`
		Budget float64 `query:"budget" validate:"required,gt=0"`
	}
)

func NewRecommendHandler(svc RecommendService) *RecommendHandler {
	return &RecommendHandler{
		validate:         validator.New(),
		recommendService: svc,
		timeout:          10 * time.Second,
	}
}

// GET /api/v1/recommendations?mood=Tired&budget=6.50
func (h *RecommendHandler) Recommend(c echo.Context) error {
	start := time.Now()

	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var q RecommendQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	recs, err := h.recommendService.Recommend(ctx, userID, q.Mood, q.Budget)
	if err != nil {
		logger.Error("Failed to build recommendations", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	metrics.RecommendRequests.Inc()
	metrics.RecommendLatency.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}
