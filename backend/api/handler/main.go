package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"sbml-builder/backend/api/middleware"
	"sbml-builder/backend/common"
	apperrors "sbml-builder/backend/common/errors"
	"sbml-builder/backend/library/ccapp"
	"sbml-builder/backend/library/health"
	"sbml-builder/backend/library/simulator"
	"sbml-builder/backend/model"

	"github.com/gin-gonic/gin"
)

// Engines and probes used by the handlers; installed once by Setup.
var (
	ModelEngine   *ccapp.Client
	Simulator     *simulator.Client
	HealthChecker *health.Checker
)

// Setup wires the engine clients and registers their health probes alongside
// the store's.
func Setup(modelEngine *ccapp.Client, sim *simulator.Client, healthTimeout time.Duration) {
	ModelEngine = modelEngine
	Simulator = sim

	checker := health.NewChecker(healthTimeout)
	checker.Register(ccapp.ServiceName, func(ctx context.Context) bool {
		return modelEngine.CheckHealth(ctx, healthTimeout)
	})
	checker.Register(simulator.ServiceName, func(ctx context.Context) bool {
		return sim.CheckHealth(ctx, healthTimeout)
	})
	checker.Register("database", func(ctx context.Context) bool {
		return model.Ping(ctx) == nil
	})
	HealthChecker = checker
}

// fail logs err with the operation it interrupted and writes the error response.
func fail(c *gin.Context, operation string, err error) {
	entry := common.Logger.WithField("request_id", c.GetString(middleware.RequestIDKey))
	if errors.Is(err, apperrors.ErrModelNotFound) || errors.Is(err, apperrors.ErrNotFound) {
		entry.Infof("%s: %v", operation, err)
	} else {
		entry.Errorf("error %s: %v", operation, err)
	}
	_ = c.Error(err)
	common.RespError(c, err)
}

// modelIDParam parses :id. Ids that are not integers cannot name a model.
func modelIDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.ErrModelNotFound
	}
	return id, nil
}

// bindOptionalJSON decodes the body into obj; an absent body leaves the
// defaults in place.
func bindOptionalJSON(c *gin.Context, obj any) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(obj); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
