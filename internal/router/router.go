package router

import (
	"github.com/gin-gonic/gin"

	"itinera/internal/handler"
	"itinera/internal/middleware"
)

// Setup wires handlers into a gin engine with the standard middleware chain.
func Setup(parseHandler *handler.ParseHandler, healthHandler *handler.HealthHandler) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())

	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	v1 := r.Group("/api/v1")
	{
		parser := v1.Group("/parser")
		{
			parser.POST("/trigger", parseHandler.Trigger)
			parser.GET("/status/:jobID", parseHandler.GetStatus)
			parser.GET("/active-jobs", parseHandler.ListActive)
			parser.GET("/results", parseHandler.ListResults)
			parser.GET("/results/:driveFileID", parseHandler.GetResult)
			parser.GET("/export", parseHandler.Export)
		}
	}

	return r
}
