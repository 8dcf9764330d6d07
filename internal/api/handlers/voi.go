package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"ventilation-voi/internal/analysis"
	"ventilation-voi/internal/api/models"
	"ventilation-voi/internal/config"
	"ventilation-voi/internal/decision"
	"ventilation-voi/internal/dist"
	"ventilation-voi/internal/model"

	"github.com/gin-gonic/gin"
)

// VoiHandler handles decision and value-of-information requests
type VoiHandler struct{}

// NewVoiHandler creates a new VoI handler
func NewVoiHandler() *VoiHandler {
	return &VoiHandler{}
}

// RunVoi handles POST /api/v1/voi
func (h *VoiHandler) RunVoi(c *gin.Context) {
	var req models.VoiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	sc, err := h.buildScenario(req.Config)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_CONFIG",
				Message: err.Error(),
			},
		})
		return
	}

	prior, err := buildPrior(req.Prior)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_PRIOR",
				Message: err.Error(),
			},
		})
		return
	}

	samples := req.Options.Samples
	if samples <= 0 {
		samples = 1000
	}
	drawn, err := dist.StratifiedSample(prior, samples)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_SAMPLING",
				Message: err.Error(),
			},
		})
		return
	}

	engine := decision.New()
	result, err := engine.Run(drawn, sc)
	if err != nil {
		writeEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.buildResponse(sc, result, prior, req.Options.IncludeLedger))
}

// Decide handles POST /api/v1/decide
func (h *VoiHandler) Decide(c *gin.Context) {
	var req models.DecideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	sc, err := h.buildScenario(req.Config)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_CONFIG",
				Message: err.Error(),
			},
		})
		return
	}

	var weights []decision.Weighted
	switch {
	case req.Occupancy != nil:
		if *req.Occupancy < 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "INVALID_REQUEST",
					Message: "occupancy must be >= 0",
				},
			})
			return
		}
		weights = []decision.Weighted{{Occupancy: *req.Occupancy, Weight: 1}}
	case req.Prior != nil:
		prior, err := buildPrior(*req.Prior)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "INVALID_PRIOR",
					Message: err.Error(),
				},
			})
			return
		}
		samples := req.Options.Samples
		if samples <= 0 {
			samples = 1000
		}
		drawn, err := dist.StratifiedSample(prior, samples)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "INVALID_SAMPLING",
					Message: err.Error(),
				},
			})
			return
		}
		weights = decision.WeightsFromSamples(drawn)
	default:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: "either occupancy or prior is required",
			},
		})
		return
	}

	ev, err := decision.NewEvaluator(sc)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_CONFIG",
				Message: err.Error(),
			},
		})
		return
	}
	dec, err := ev.Decide(weights)
	if err != nil {
		writeEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.DecideResponse{
		Action:       dec.Action.Name,
		ExpectedCost: dec.ExpectedCost,
		CostByAction: actionCosts(sc.Actions, dec.CostByAction),
	})
}

// Helper methods

func (h *VoiHandler) buildScenario(req models.ScenarioConfig) (model.Scenario, error) {
	cfg := config.Config{
		RoomFile: req.RoomFile,
		Room: config.RoomConfig{
			Name:                   req.Room.Name,
			VolumeM3:               req.Room.VolumeM3,
			BreathingRateM3PerHour: req.Room.BreathingRateM3PerHour,
			EmissionQuantaPerHour:  req.Room.EmissionQuantaPerHour,
			InfectiousDoseQuanta:   req.Room.InfectiousDoseQuanta,
			HorizonHours:           req.Room.HorizonHours,
			Steps:                  req.Room.Steps,
		},
		SickCostPerCaseUSD: req.SickCostPerCaseUSD,
	}
	for _, a := range req.Actions {
		cfg.Actions = append(cfg.Actions, config.ActionYAML{
			Name:            a.Name,
			FixedCostUSD:    a.FixedCostUSD,
			LossRatePerHour: a.LossRatePerHour,
		})
	}

	// If room_file is set, load it and merge request overrides onto it.
	// Files are looked up in the room preset directory (examples/rooms/).
	if cfg.RoomFile != "" {
		roomDir := os.Getenv("ROOM_DIR")
		if roomDir == "" {
			wd, err := os.Getwd()
			if err == nil {
				roomDir = filepath.Join(wd, "examples", "rooms")
			} else {
				roomDir = "./examples/rooms"
			}
		}
		roomPath := filepath.Join(roomDir, cfg.RoomFile+".yaml")

		loaded, err := config.LoadUnchecked(roomPath)
		if err == nil {
			// Merge: room file is base, request config is override.
			cfg.Room = config.MergeRoom(loaded.Room, cfg.Room)
		} else {
			log.Printf("VoiHandler: Failed to load room file %s: %v", roomPath, err)
		}
	}

	return cfg.ToScenario()
}

func buildPrior(spec models.PriorSpec) (dist.Discrete, error) {
	switch spec.Type {
	case "poisson":
		return dist.NewPoisson(spec.Mean)
	case "empirical":
		return dist.NewEmpirical(spec.Observations)
	default:
		return nil, fmt.Errorf("unsupported prior type: %q", spec.Type)
	}
}

func writeEngineError(c *gin.Context, err error) {
	var evalErr *decision.EvalError
	if errors.As(err, &evalErr) {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    evalErr.Code,
				Message: evalErr.Message,
			},
		})
		return
	}
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "ENGINE_ERROR",
			Message: err.Error(),
		},
	})
}

func actionCosts(actions []model.VentilationAction, costs []float64) []models.ActionCost {
	out := make([]models.ActionCost, len(actions))
	for i, a := range actions {
		out[i] = models.ActionCost{Action: a.Name, ExpectedCost: costs[i]}
	}
	return out
}

func (h *VoiHandler) buildResponse(sc model.Scenario, result *decision.Result, prior dist.Discrete, includeLedger bool) models.VoiResponse {
	summary := analysis.Summarize(result.Ledger)

	resp := models.VoiResponse{
		Status: "completed",
		Summary: models.VoiSummary{
			Samples:              summary.Count,
			Prior:                prior.Name(),
			PriorAction:          result.Prior.Action.Name,
			PriorExpectedCost:    result.Prior.ExpectedCost,
			MeanPosteriorCost:    result.MeanPosteriorCost,
			EVPI:                 result.EVPI,
			CostByAction:         actionCosts(sc.Actions, result.Prior.CostByAction),
			PosteriorActionShare: summary.PosteriorActionShare,
			MinOccupancy:         summary.MinOccupancy,
			MaxOccupancy:         summary.MaxOccupancy,
			MeanOccupancy:        summary.MeanOccupancy,
		},
	}

	if includeLedger {
		resp.Ledger = make([]models.LedgerRow, len(result.Ledger))
		for i, row := range result.Ledger {
			resp.Ledger[i] = models.LedgerRow{
				Index:           row.Index,
				Occupancy:       row.Occupancy,
				PriorAction:     row.PriorAction,
				PriorActionCost: row.PriorActionCost,
				PosteriorAction: row.PosteriorAction,
				PosteriorCost:   row.PosteriorCost,
				InfectionProb:   row.InfectionProb,
				InformationGain: row.InformationGain,
			}
		}
	}
	return resp
}
