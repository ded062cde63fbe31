package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"solar-projects-backend/controllers"
	projecthandler "solar-projects-backend/lib/project"
	apimodels "solar-projects-backend/models/api"
)

type dashboardApiController struct {
	controllers.BaseAPIController
}

func InitDashboardApiRouters(app *fiber.App) {
	controller := dashboardApiController{}
	app.Route("dashboard", func(router fiber.Router) {
		router.Get("stats", controller.stats)
	})
}

// @Summary Dashboard statistics
// @Tags Dashboard
// @Description Project counts, pending approvals and regional breakdown
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=projectapimodels.DashboardStats}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dashboard/stats [get]
func (c *dashboardApiController) stats(ctx *fiber.Ctx) error {
	stats, err := projecthandler.Instance.GetDashboardStats()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "dashboard stats failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(stats))
}
