package handlers

import (
	"net/http"

	"ventilation-voi/internal/api/models"

	"github.com/gin-gonic/gin"
)

// PriorHandler handles prior-related requests
type PriorHandler struct{}

// NewPriorHandler creates a new prior handler
func NewPriorHandler() *PriorHandler {
	return &PriorHandler{}
}

// ListPriors handles GET /api/v1/priors
func (h *PriorHandler) ListPriors(c *gin.Context) {
	priors := []models.PriorInfo{
		{
			Name:        "poisson",
			Description: "Poisson occupancy prior. Good default when only a mean headcount is known.",
			Parameters: []models.ParameterInfo{
				{
					Name:        "mean",
					Type:        "float",
					Description: "Expected occupancy count",
					Default:     30.0,
				},
			},
		},
		{
			Name:        "empirical",
			Description: "Empirical occupancy prior built from observed headcounts (badge or sensor data).",
			Parameters: []models.ParameterInfo{
				{
					Name:        "observations",
					Type:        "int[]",
					Description: "Observed occupancy counts",
				},
			},
		},
	}

	c.JSON(http.StatusOK, gin.H{"priors": priors})
}
