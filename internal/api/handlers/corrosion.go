package handlers

import (
	"errors"
	"net/http"

	"ventilation-voi/internal/api/models"
	"ventilation-voi/internal/corrosion"

	"github.com/gin-gonic/gin"
)

// CorrosionHandler handles corrosion growth-model fit requests
type CorrosionHandler struct{}

// NewCorrosionHandler creates a new corrosion handler
func NewCorrosionHandler() *CorrosionHandler {
	return &CorrosionHandler{}
}

// Fit handles POST /api/v1/corrosion/fit
func (h *CorrosionHandler) Fit(c *gin.Context) {
	var req models.CorrosionFitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	ms := make([]corrosion.Measurement, len(req.Measurements))
	for i, m := range req.Measurements {
		ms[i] = corrosion.Measurement{
			WallLossMM:        m.WallLossMM,
			ErrorSDMM:         m.ErrorSDMM,
			YearsSinceInstall: m.YearsSinceInstall,
			Missing:           m.Missing,
		}
	}

	post, err := corrosion.Fit(ms, corrosion.FitOptions{
		Iterations: req.Options.Iterations,
		Seed:       req.Options.Seed,
	})
	if err != nil {
		writeFitError(c, err)
		return
	}

	resp := models.CorrosionFitResponse{
		Status:        "completed",
		Draws:         len(post.Rate),
		AcceptRate:    float64(post.Accepted) / float64(post.Proposals),
		RateMeanMM:    post.RateMean(),
		InterceptMean: post.InterceptMean(),
	}
	for _, draws := range post.ImputedMM {
		sum := 0.0
		for _, d := range draws {
			sum += d
		}
		resp.ImputedDepthMeansMM = append(resp.ImputedDepthMeansMM, sum/float64(len(draws)))
	}

	if req.Plan != nil {
		plan, err := corrosion.EvaluatePlan(post, corrosion.InspectionPlan{
			CriticalDepthMM: req.Plan.CriticalDepthMM,
			HorizonYears:    req.Plan.HorizonYears,
			RepairCostUSD:   req.Plan.RepairCostUSD,
			FailureCostUSD:  req.Plan.FailureCostUSD,
		})
		if err != nil {
			writeFitError(c, err)
			return
		}
		resp.Plan = &models.PlanResult{
			FailureProbability: plan.FailureProbability,
			RepairNowCost:      plan.RepairNowCost,
			DoNothingCost:      plan.DoNothingCost,
			ChosenAction:       plan.ChosenAction,
			ExpectedCost:       plan.ExpectedCost,
			InspectionValue:    plan.InspectionValue,
		}
	}

	c.JSON(http.StatusOK, resp)
}

func writeFitError(c *gin.Context, err error) {
	if errors.Is(err, corrosion.ErrNotConverged) {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "NOT_CONVERGED",
				Message: err.Error(),
			},
		})
		return
	}
	var fitErr *corrosion.FitError
	if errors.As(err, &fitErr) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    fitErr.Code,
				Message: fitErr.Message,
			},
		})
		return
	}
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "FIT_ERROR",
			Message: err.Error(),
		},
	})
}
