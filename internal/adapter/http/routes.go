package http

import (
	"github.com/labstack/echo/v4"
)

// Handlers groups everything Register mounts.
type Handlers struct {
	Health       *Handler
	Applications *ApplicationHandler
	Approvals    *ApprovalHandler
	Guarantors   *GuarantorHandler
	Repayments   *RepaymentHandler
	Config       *ConfigHandler
}

// Register mounts the health probes at the root and the API under /api/v1.
// mw runs on every /api/v1 route, in order (identity first, then idempotency).
func Register(e *echo.Echo, h Handlers, mw ...echo.MiddlewareFunc) {
	e.GET("/health", h.Health.Health)
	e.GET("/health/ready", h.Health.Ready)

	api := e.Group("/api/v1", mw...)

	api.POST("/applications", h.Applications.Submit)
	api.GET("/applications", h.Applications.ListMine)
	api.GET("/applications/:application_id", h.Applications.Get)
	api.POST("/applications/:application_id/guarantors", h.Guarantors.Attach)
	api.POST("/applications/:application_id/actions", h.Approvals.Act)
	api.POST("/applications/:application_id/disburse", h.Approvals.Disburse)
	api.GET("/applications/:application_id/schedule", h.Repayments.Schedule)

	api.GET("/repayments", h.Repayments.ListMine)
	api.POST("/installments/:installment_id/pay", h.Repayments.Pay)

	api.GET("/reviews/queue", h.Approvals.Queue)

	api.GET("/guarantors/eligible", h.Guarantors.Eligible)
	api.GET("/guarantor-requests", h.Guarantors.Requests)
	api.POST("/guarantor-requests/:assignment_id/respond", h.Guarantors.Respond)

	api.GET("/config", h.Config.Get)
	api.PUT("/config", h.Config.Update)
}
