package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"solar-projects-backend/controllers"
	"solar-projects-backend/lib/notification"
	"solar-projects-backend/middleware"
	apimodels "solar-projects-backend/models/api"
	notificationapimodels "solar-projects-backend/models/api/notification"
)

type notificationApiController struct {
	controllers.BaseAPIController
}

func InitNotificationApiRouters(app *fiber.App) {
	controller := notificationApiController{}
	app.Route("notification", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Get("unread_count", controller.unreadCount)
		router.Put("read_all", controller.markAllRead)
		router.Put(":id/read", controller.markRead)
	})
}

// @Summary Notification list
// @Tags Notification
// @Description The caller's notifications, newest first
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 notificationapimodels.NotificationFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]notificationapimodels.NotificationView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notification/list [post]
func (c *notificationApiController) list(ctx *fiber.Ctx) error {
	var payload notificationapimodels.NotificationFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	list, rowCount, err := notification.Instance.GetList(userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "notification list failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Unread count
// @Tags Notification
// @Description Number of unread notifications for the caller
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=int64}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notification/unread_count [get]
func (c *notificationApiController) unreadCount(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)
	count, err := notification.Instance.UnreadCount(userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "notification unread count failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(count))
}

// @Summary Mark notification read
// @Tags Notification
// @Description Mark one notification as read, repeat calls are a no-op
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"notification ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notification/{id}/read [put]
func (c *notificationApiController) markRead(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	err = notification.Instance.MarkRead(id, userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "notification mark read failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Mark all read
// @Tags Notification
// @Description Mark every unread notification of the caller as read
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=int64}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notification/read_all [put]
func (c *notificationApiController) markAllRead(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)
	updated, err := notification.Instance.MarkAllRead(userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "notification mark all read failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(updated))
}
