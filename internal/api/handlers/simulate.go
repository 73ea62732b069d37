package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pitwall/internal/api/models"
	"pitwall/internal/model"
	"pitwall/internal/sim"
)

// SimulateHandler handles strategy simulation requests.
type SimulateHandler struct {
	engine *sim.Engine
}

func NewSimulateHandler(engine *sim.Engine) *SimulateHandler {
	return &SimulateHandler{engine: engine}
}

// Simulate handles POST /api/v1/simulate.
func (h *SimulateHandler) Simulate(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	cond := model.ConditionDry
	if req.WeatherCondition != "" {
		cond = model.Condition(strings.ToLower(strings.TrimSpace(req.WeatherCondition)))
	}

	simReq := sim.Request{
		Race: model.RaceConfig{
			TotalLaps:      req.TotalLaps,
			PitLossSeconds: req.PitLossSeconds,
			BaseLapTimeS:   req.BaseLapTimeS,
			TrackTempC:     req.TrackTempC,
			CircuitKey:     req.CircuitKey,
		},
		Weather:       model.WeatherState{Condition: cond, RainIntensity: req.RainIntensity},
		Compounds:     req.Compounds,
		Historical:    req.Historical,
		CompoundRoles: req.CompoundRoles,
	}

	result, err := h.engine.Run(simReq)
	if err != nil {
		status, code := classifyEngineError(err)
		c.JSON(status, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    code,
				Message: err.Error(),
			},
		})
		return
	}

	resp := models.SimulateResponse{
		TotalLaps:        req.TotalLaps,
		PitLossSeconds:   req.PitLossSeconds,
		BaseLapTimeS:     req.BaseLapTimeS,
		TrackTempC:       req.TrackTempC,
		WeatherCondition: string(cond),
		RainIntensity:    req.RainIntensity,
		Strategies:       result.Strategies,
		Recommended:      result.Recommended,
		DeltaS:           result.DeltaS,
		Notes:            result.Notes,
		Model:            models.ModelName,
	}
	if req.IncludeRuleHits {
		resp.RuleHits = result.Rules
	}
	c.JSON(http.StatusOK, resp)
}

// classifyEngineError maps the engine's error types onto HTTP status and
// error codes. Unknown errors are reported as internal.
func classifyEngineError(err error) (int, string) {
	var cfgErr *model.ConfigError
	var compErr *model.InvalidCompoundParamsError
	var insuffErr *sim.InsufficientCompoundDataError
	var noLegalErr *sim.NoLegalStrategyError
	switch {
	case errors.As(err, &cfgErr):
		return http.StatusBadRequest, "INVALID_CONFIG"
	case errors.As(err, &compErr):
		return http.StatusBadRequest, "INVALID_COMPOUND_PARAMS"
	case errors.As(err, &insuffErr):
		return http.StatusBadRequest, "INSUFFICIENT_COMPOUND_DATA"
	case errors.As(err, &noLegalErr):
		return http.StatusBadRequest, "NO_LEGAL_STRATEGY"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}
