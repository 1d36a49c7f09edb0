// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"
)

// RecordRouteHandler defines the interface for record handlers.
// All record handlers must implement these methods.
type RecordRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	SetDeletionMark(c *gin.Context)
}

// RegisterRecordRoutes registers standard CRUD routes for a record type.
// This eliminates the need to manually wire up routes for each record.
//
// Usage:
//
//	repo := record_repo.NewReagentRepo(txManager)
//	service := reagent.NewService(repo, txManager)
//	handler := handlers.NewReagentHandler(baseHandler, service)
//	RegisterRecordRoutes(records.Group("/reagents"), handler)
func RegisterRecordRoutes(group *gin.RouterGroup, handler RecordRouteHandler) {
	group.GET("", handler.List)
	group.POST("", handler.Create)
	group.GET("/:id", handler.Get)
	group.PUT("/:id", handler.Update)
	group.DELETE("/:id", handler.Delete)
	group.POST("/:id/deletion-mark", handler.SetDeletionMark)
}
