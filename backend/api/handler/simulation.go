package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"sbml-builder/backend/common"
	"sbml-builder/backend/library/simulator"
	"sbml-builder/backend/model"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type simulateRequest struct {
	Steps  int            `json:"steps"`
	Method string         `json:"method"`
	Config map[string]any `json:"config"`
}

type stochasticRequest struct {
	Runs  int `json:"runs"`
	Steps int `json:"steps"`
}

// SimulateModel godoc
// @Summary Run a deterministic simulation of a stored model
// @Description Blocks until the simulation engine answers. Unknown models are
// @Description rejected before the engine is contacted.
// @Accept json
// @Produce json
// @Param id path int true "model id"
// @Success 200 {object} object
// @Failure 404 {object} common.ErrorResponse
// @Failure 500 {object} common.ErrorResponse
// @Router /api/models/{id}/simulate [post]
func SimulateModel(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := modelIDParam(c)
	if err != nil {
		fail(c, "running simulation", err)
		return
	}
	var req simulateRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		fail(c, "running simulation", err)
		return
	}
	if req.Steps <= 0 {
		req.Steps = simulator.DefaultSteps
	}
	if req.Method == "" {
		req.Method = simulator.DefaultMethod
	}
	config := make(map[string]any, len(req.Config)+1)
	for k, v := range req.Config {
		config[k] = v
	}
	config["method"] = req.Method

	m, err := model.GetModelByID(ctx, id)
	if err != nil {
		fail(c, "running simulation", err)
		return
	}

	results, err := Simulator.RunSimulation(ctx, m.SBMLData.Raw(), req.Steps, config)
	recordSimulation(ctx, id, map[string]any{"steps": req.Steps, "method": req.Method, "config": config}, results, err)
	if err != nil {
		fail(c, "running simulation", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// SimulateStochastic godoc
// @Summary Run a multi-run stochastic simulation of a stored model
// @Accept json
// @Produce json
// @Param id path int true "model id"
// @Success 200 {object} object
// @Failure 404 {object} common.ErrorResponse
// @Failure 500 {object} common.ErrorResponse
// @Router /api/models/{id}/simulate/stochastic [post]
func SimulateStochastic(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := modelIDParam(c)
	if err != nil {
		fail(c, "running stochastic simulation", err)
		return
	}
	var req stochasticRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		fail(c, "running stochastic simulation", err)
		return
	}
	if req.Runs <= 0 {
		req.Runs = simulator.DefaultRuns
	}
	if req.Steps <= 0 {
		req.Steps = simulator.DefaultSteps
	}

	m, err := model.GetModelByID(ctx, id)
	if err != nil {
		fail(c, "running stochastic simulation", err)
		return
	}

	results, err := Simulator.RunStochastic(ctx, m.SBMLData.Raw(), req.Runs, req.Steps)
	recordSimulation(ctx, id, map[string]any{"method": "stochastic", "runs": req.Runs, "steps": req.Steps}, results, err)
	if err != nil {
		fail(c, "running stochastic simulation", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// recordSimulation keeps the history row for a finished run. It never fails
// the request: the engine's answer is what the caller asked for.
func recordSimulation(ctx context.Context, modelID int64, config map[string]any, results json.RawMessage, runErr error) {
	sim := &model.Simulation{ModelID: modelID}
	if raw, err := json.Marshal(config); err == nil {
		sim.Config = datatypes.JSON(raw)
	}
	if runErr != nil {
		raw, _ := json.Marshal(map[string]string{"error": runErr.Error()})
		sim.Results = datatypes.JSON(raw)
		sim.SetStatus(model.SimulationFailed)
	} else {
		sim.Results = datatypes.JSON(results)
		sim.SetStatus(model.SimulationCompleted)
	}
	if err := model.CreateSimulation(context.WithoutCancel(ctx), sim); err != nil {
		common.SysError("failed to record simulation for model " + formatID(modelID) + ": " + err.Error())
	}
}

// ListSimulations godoc
// @Summary Simulation history of a model, newest first
// @Produce json
// @Param id path int true "model id"
// @Success 200 {object} object
// @Failure 404 {object} common.ErrorResponse
// @Router /api/models/{id}/simulations [get]
func ListSimulations(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := modelIDParam(c)
	if err != nil {
		fail(c, "listing simulations", err)
		return
	}
	if _, err := model.GetModelByID(ctx, id); err != nil {
		fail(c, "listing simulations", err)
		return
	}
	simulations, err := model.GetSimulationsByModelID(ctx, id)
	if err != nil {
		fail(c, "listing simulations", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"simulations": simulations})
}

// GetSimulationStatus relays the engine's status for an engine-side simulation id.
func GetSimulationStatus(c *gin.Context) {
	raw, err := Simulator.Status(c.Request.Context(), c.Param("sim_id"))
	if err != nil {
		fail(c, "getting simulation status", err)
		return
	}
	relayJSON(c, raw)
}

func GetSimulationResults(c *gin.Context) {
	raw, err := Simulator.Results(c.Request.Context(), c.Param("sim_id"))
	if err != nil {
		fail(c, "getting simulation results", err)
		return
	}
	relayJSON(c, raw)
}

// CancelSimulation asks the engine to stop a running simulation. In-flight
// gateway calls to the engine are not affected.
func CancelSimulation(c *gin.Context) {
	raw, err := Simulator.Cancel(c.Request.Context(), c.Param("sim_id"))
	if err != nil {
		fail(c, "cancelling simulation", err)
		return
	}
	relayJSON(c, raw)
}

func ListMethods(c *gin.Context) {
	raw, err := Simulator.Methods(c.Request.Context())
	if err != nil {
		fail(c, "getting simulation methods", err)
		return
	}
	relayJSON(c, raw)
}

// relayJSON passes an engine answer through unchanged.
func relayJSON(c *gin.Context, raw json.RawMessage) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}
