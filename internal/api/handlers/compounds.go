package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"pitwall/internal/api/models"
	"pitwall/internal/data"
	"pitwall/internal/model"
)

// CompoundsHandler serves the compound parameter catalogue.
type CompoundsHandler struct {
	catalogue  map[string]model.CompoundParams
	dataSource string
}

// NewCompoundsHandler wraps a catalogue. dataSource names where the numbers
// came from ("fallback" or the file they were loaded from).
func NewCompoundsHandler(catalogue map[string]model.CompoundParams, dataSource string) *CompoundsHandler {
	return &CompoundsHandler{catalogue: catalogue, dataSource: dataSource}
}

// GetCompounds handles GET /api/v1/compounds.
//
// Query params: circuit narrows the catalogue to the race nomination,
// year selects the nomination season (default: current year),
// track_temp attaches per-compound temperature multipliers.
func (h *CompoundsHandler) GetCompounds(c *gin.Context) {
	compounds := h.catalogue
	resp := models.CompoundsResponse{DataSource: h.dataSource}

	if circuit := c.Query("circuit"); circuit != "" {
		year := time.Now().Year()
		if yq := c.Query("year"); yq != "" {
			y, err := strconv.Atoi(yq)
			if err != nil {
				c.JSON(http.StatusBadRequest, models.ErrorResponse{
					Error: models.ErrorDetail{
						Code:    "INVALID_REQUEST",
						Message: fmt.Sprintf("year %q is not an integer", yq),
					},
				})
				return
			}
			year = y
		}
		nom := data.GetNomination(year, circuit)
		compounds = data.NominatedCompounds(compounds, nom)
		resp.CircuitKey = data.NormalizeCircuitKey(circuit)
	}

	if tq := c.Query("track_temp"); tq != "" {
		temp, err := strconv.ParseFloat(tq, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "INVALID_REQUEST",
					Message: fmt.Sprintf("track_temp %q is not a number", tq),
				},
			})
			return
		}
		compounds = data.ApplyTempAdjustment(compounds, temp)
		resp.TrackTempC = &temp
		resp.Notes = append(resp.Notes, fmt.Sprintf("Degradation multipliers computed for %.1f°C track temperature.", temp))
	}

	resp.Compounds = compounds
	c.JSON(http.StatusOK, resp)
}
