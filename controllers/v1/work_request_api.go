package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"solar-projects-backend/controllers"
	workrequesthandler "solar-projects-backend/lib/work-request"
	"solar-projects-backend/middleware"
	apimodels "solar-projects-backend/models/api"
	workrequestapimodels "solar-projects-backend/models/api/work-request"
)

type workRequestApiController struct {
	controllers.BaseAPIController
}

func InitWorkRequestApiRouters(app *fiber.App) {
	controller := workRequestApiController{}
	app.Route("work_request", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Post("export", controller.export)
		router.Post("export_pdf", controller.exportPDF)
		router.Post("", middleware.WriteRoleRequired(), controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", middleware.WriteRoleRequired(), controller.update)
			idRoute.Delete("", middleware.WriteRoleRequired(), controller.delete)
			idRoute.Put("assign", middleware.ManagerRoleRequired(), controller.assign)
			idRoute.Put("start", middleware.WriteRoleRequired(), controller.start)
			idRoute.Put("complete", middleware.WriteRoleRequired(), controller.complete)
		})
	})
}

// @Summary Work request list
// @Tags Work request
// @Description Filtered work request list with pagination
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 workrequestapimodels.WorkRequestFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]workrequestapimodels.WorkRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/work_request/list [post]
func (c *workRequestApiController) list(ctx *fiber.Ctx) error {
	var payload workrequestapimodels.WorkRequestFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := workrequesthandler.Instance.GetList(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "work request list failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Export work requests
// @Tags Work request
// @Description Export the filtered list as an xlsx workbook
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 workrequestapimodels.WorkRequestFilter	true	"request body"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/work_request/export [post]
func (c *workRequestApiController) export(ctx *fiber.Ctx) error {
	var payload workrequestapimodels.WorkRequestFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	buf, err := workrequesthandler.Instance.ExportList(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "work request export failed")
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="work_requests.xlsx"`)
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}

// @Summary Export work requests as pdf
// @Tags Work request
// @Description Export the filtered list as a pdf document
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 workrequestapimodels.WorkRequestFilter	true	"request body"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/work_request/export_pdf [post]
func (c *workRequestApiController) exportPDF(ctx *fiber.Ctx) error {
	var payload workrequestapimodels.WorkRequestFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	data, err := workrequesthandler.Instance.ExportListPDF(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "work request pdf export failed")
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="work_requests.pdf"`)
	return ctx.Status(fiber.StatusOK).Send(data)
}

// @Summary Create work request
// @Tags Work request
// @Description Create a draft work request
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 workrequestapimodels.WorkRequestData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/work_request [post]
func (c *workRequestApiController) create(ctx *fiber.Ctx) error {
	var payload workrequestapimodels.WorkRequestData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	id, err := workrequesthandler.Instance.Create(userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "work request create failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Get work request
// @Tags Work request
// @Description Get work request by id
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"rec ID"
// @Success 200 {object} apimodels.Response{data=workrequestapimodels.WorkRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/work_request/{id} [get]
func (c *workRequestApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := workrequesthandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "work request get failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Update work request
// @Tags Work request
// @Description Update a draft work request
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"rec ID"
// @Param	body body	 workrequestapimodels.WorkRequestData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/work_request/{id} [put]
func (c *workRequestApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload workrequestapimodels.WorkRequestData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = workrequesthandler.Instance.Update(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "work request update failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Delete work request
// @Tags Work request
// @Description Delete a work request without a pending approval
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/work_request/{id} [delete]
func (c *workRequestApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = workrequesthandler.Instance.Delete(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "work request delete failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Assign work request
// @Tags Work request
// @Description Assign the request to a user
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"rec ID"
// @Param	body body	 workrequestapimodels.AssignRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/work_request/{id}/assign [put]
func (c *workRequestApiController) assign(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload workrequestapimodels.AssignRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	err = workrequesthandler.Instance.Assign(id, userID, payload.AssignedToID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "work request assign failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Start work request
// @Tags Work request
// @Description Move an approved request to in progress
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/work_request/{id}/start [put]
func (c *workRequestApiController) start(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	err = workrequesthandler.Instance.Start(id, userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "work request start failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Complete work request
// @Tags Work request
// @Description Complete an approved or in-progress request
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"rec ID"
// @Param	body body	 workrequestapimodels.CompleteRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/work_request/{id}/complete [put]
func (c *workRequestApiController) complete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload workrequestapimodels.CompleteRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	err = workrequesthandler.Instance.Complete(id, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "work request complete failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
