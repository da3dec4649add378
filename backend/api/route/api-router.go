package route

import (
	"sbml-builder/backend/api/handler"

	"github.com/gin-gonic/gin"
)

// SetApiRouter registers the JSON API. No route requires authentication.
func SetApiRouter(route *gin.Engine) {
	route.GET("/health", handler.GetHealth)

	apiRouter := route.Group("/api")
	{
		modelRoute := apiRouter.Group("/models")
		{
			modelRoute.GET("", handler.ListModels)
			modelRoute.POST("", handler.CreateModel)
			modelRoute.GET("/:id", handler.GetModel)
			modelRoute.DELETE("/:id", handler.DeleteModel)

			modelRoute.GET("/:id/components", handler.ListComponents)
			modelRoute.POST("/:id/components", handler.AddComponent)
			modelRoute.POST("/:id/interactions", handler.AddInteraction)

			modelRoute.POST("/:id/simulate", handler.SimulateModel)
			modelRoute.POST("/:id/simulate/stochastic", handler.SimulateStochastic)
			modelRoute.GET("/:id/simulations", handler.ListSimulations)

			modelRoute.GET("/:id/export/sbml", handler.ExportSBML)
			modelRoute.GET("/:id/engine", handler.GetEngineModel)
			modelRoute.GET("/:id/engine/sbml", handler.ExportEngineSBML)
		}

		apiRouter.POST("/sbml/validate", handler.ValidateSBML)
		apiRouter.GET("/methods", handler.ListMethods)

		simulationRoute := apiRouter.Group("/simulations")
		{
			simulationRoute.GET("/:sim_id", handler.GetSimulationStatus)
			simulationRoute.GET("/:sim_id/status", handler.GetSimulationStatus)
			simulationRoute.GET("/:sim_id/results", handler.GetSimulationResults)
			simulationRoute.POST("/:sim_id/cancel", handler.CancelSimulation)
			// The bundled frontend calls /stop.
			simulationRoute.POST("/:sim_id/stop", handler.CancelSimulation)
		}
	}
}
