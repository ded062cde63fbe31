package ws

import (
	"solar-projects-backend/lib/notification/audience"
	wsclient "solar-projects-backend/lib/ws/client"
	connectionhub "solar-projects-backend/lib/ws/hub/connection-hub"
	"solar-projects-backend/middleware"
	"solar-projects-backend/models"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func InitWs(app *fiber.App) {
	app.Use("", func(ctx *fiber.Ctx) error {
		ctx.Locals("userID", middleware.GetUserID(ctx))
		ctx.Locals("userRole", string(middleware.GetUserRole(ctx)))
		return ctx.Next()
	})
	app.Get("/", websocket.New(pushHandler))
}

// @Summary System pushes
// @Tags Websocket
// @Description Realtime notification stream
// @Param   Authorization		header		string		true		"Authorization token"
// @Success 200 {object} wsmodels.ServerMessage
// @Failure 400
// @Failure 403
// @Failure 500
// @router /ws [get]
func pushHandler(c *websocket.Conn) {
	userID := c.Locals("userID").(string)
	role := models.UserRole(c.Locals("userRole").(string))

	groups := []string{audience.GroupUser(userID), audience.GroupAll}
	if role != "" {
		groups = append(groups, audience.GroupRole(role))
	}

	sessionID := connectionhub.Instance.AddClient(userID, c, groups)
	defer func() {
		connectionhub.Instance.DeleteClient(sessionID)
	}()
	client := wsclient.NewClient(userID, sessionID, c)
	client.Dispatch()
}
