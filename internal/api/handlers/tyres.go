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

// TyresHandler serves per-race tyre nominations.
type TyresHandler struct{}

func NewTyresHandler() *TyresHandler {
	return &TyresHandler{}
}

// GetNomination handles GET /api/v1/tyres/:circuit.
func (h *TyresHandler) GetNomination(c *gin.Context) {
	circuit := c.Param("circuit")
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
	c.JSON(http.StatusOK, models.TyreNominationResponse{
		CircuitKey: data.NormalizeCircuitKey(circuit),
		Year:       year,
		Slicks:     nom.Codes(),
		Wet:        []string{model.CompoundIntermediate, model.CompoundWet},
	})
}
