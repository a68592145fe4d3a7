package controller

import (
	"time"

	"insight-center-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Liveness(ctx *fiber.Ctx) error
}

type healthController struct {
	startedAt time.Time
}

func NewHealthController() IHealthController {
	return &healthController{startedAt: time.Now()}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Liveness)
}

func (c *healthController) Liveness(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("ok", fiber.Map{
		"uptime_seconds": int64(time.Since(c.startedAt).Seconds()),
	}))
}
