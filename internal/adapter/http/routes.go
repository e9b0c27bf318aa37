package http

import (
	"github.com/labstack/echo/v4"

	"sme-credit-backend/internal/adapter/middleware"
)

// Routes groups the handlers mounted by Register.
type Routes struct {
	Health       *Handler
	Companies    *CompanyHandler
	Applications *ApplicationHandler
	Admin        *AdminHandler
	// Idempotency guards borrower POST/DELETE routes when set.
	Idempotency echo.MiddlewareFunc
}

func (r Routes) Register(e *echo.Echo) {
	if e.Validator == nil {
		e.Validator = NewValidator()
	}
	e.GET("/health", r.Health.Health)

	owner := []echo.MiddlewareFunc{middleware.RequireOwner()}
	if r.Idempotency != nil {
		owner = append(owner, r.Idempotency)
	}
	api := e.Group("/api", owner...)
	api.GET("/industries", r.Companies.Industries)
	api.POST("/companies", r.Companies.Create)
	api.DELETE("/companies/:id", r.Companies.Delete)
	api.POST("/companies/:id/documents", r.Companies.AttachDocument)
	api.POST("/companies/:id/offers", r.Applications.RequestOffer)
	api.GET("/applications", r.Applications.ListMine)
	api.POST("/applications/:id/confirm", r.Applications.Confirm)

	admin := e.Group("/api/admin", middleware.RequireAdmin())
	admin.GET("/applications", r.Admin.List)
	admin.GET("/applications/:id", r.Admin.Get)
	admin.GET("/applications/:id/transitions", r.Admin.Transitions)
	admin.PATCH("/applications/:id/status", r.Admin.UpdateStatus)
}
