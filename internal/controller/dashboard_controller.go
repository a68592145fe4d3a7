package controller

import (
	"insight-center-be/internal/dto"
	"insight-center-be/internal/pkg/serverutils"
	"insight-center-be/internal/service"
	"insight-center-be/pkg/store"

	"github.com/gofiber/fiber/v2"
)

type IDashboardController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	Navigate(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type dashboardController struct {
	navigationService service.INavigationService
}

func NewDashboardController(navigationService service.INavigationService) IDashboardController {
	return &dashboardController{
		navigationService: navigationService,
	}
}

func (c *dashboardController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/dashboard")
	h.Get("", c.Show)
	h.Post("/navigate", c.Navigate)
	h.Post("/search", c.Search)
	h.Post("/clear", c.Clear)
	h.Get("/health", c.Health)
}

// Show renders the dashboard. On the first visit of a session the view and
// pincode query parameters seed the state; later visits ignore them.
func (c *dashboardController) Show(ctx *fiber.Ctx) error {
	params := map[string]string{}
	for _, key := range []string{store.ParamView, store.ParamPincode} {
		if v := ctx.Query(key); v != "" {
			params[key] = v
		}
	}

	return c.render(ctx, "Dashboard rendered", service.RenderRequest{URLParams: params})
}

func (c *dashboardController) Navigate(ctx *fiber.Ctx) error {
	var req dto.NavigateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	return c.render(ctx, "View changed", service.RenderRequest{
		Event: &service.RenderEvent{Kind: service.EventNavigate, View: req.View},
	})
}

func (c *dashboardController) Search(ctx *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	return c.render(ctx, "Search applied", service.RenderRequest{
		Event: &service.RenderEvent{Kind: service.EventSearch, Query: req.Query},
	})
}

func (c *dashboardController) Clear(ctx *fiber.Ctx) error {
	return c.render(ctx, "Selection cleared", service.RenderRequest{
		Event: &service.RenderEvent{Kind: service.EventClear},
	})
}

func (c *dashboardController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Data health", c.navigationService.Health(ctx.UserContext())))
}

func (c *dashboardController) render(ctx *fiber.Ctx, message string, req service.RenderRequest) error {
	res, err := c.navigationService.Render(ctx.UserContext(), serverutils.SessionID(ctx), req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse(message, res))
}
