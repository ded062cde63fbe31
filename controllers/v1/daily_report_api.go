package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"solar-projects-backend/controllers"
	dailyreport "solar-projects-backend/lib/daily-report"
	"solar-projects-backend/middleware"
	apimodels "solar-projects-backend/models/api"
	dailyreportapimodels "solar-projects-backend/models/api/daily-report"
)

type dailyReportApiController struct {
	controllers.BaseAPIController
}

func InitDailyReportApiRouters(app *fiber.App) {
	controller := dailyReportApiController{}
	app.Route("daily_report", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Post("export", middleware.ManagerRoleRequired(), controller.export)
		router.Post("export_pdf", middleware.ManagerRoleRequired(), controller.exportPDF)
		router.Post("", middleware.WriteRoleRequired(), controller.create)
		router.Put("bulk_status", middleware.ManagerRoleRequired(), controller.bulkStatus)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", middleware.WriteRoleRequired(), controller.update)
			idRoute.Delete("", middleware.WriteRoleRequired(), controller.delete)
			idRoute.Put("submit", middleware.WriteRoleRequired(), controller.submit)
			idRoute.Put("approve", middleware.ManagerRoleRequired(), controller.approve)
			idRoute.Put("reject", middleware.ManagerRoleRequired(), controller.reject)
			idRoute.Post("attachment", middleware.WriteRoleRequired(), controller.addAttachment)
		})
		router.Route("attachment/:id", func(attRoute fiber.Router) {
			attRoute.Get("", controller.getAttachment)
			attRoute.Delete("", middleware.WriteRoleRequired(), controller.deleteAttachment)
		})
	})
}

// @Summary Daily report list
// @Tags Daily report
// @Description Filtered daily report list with pagination
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dailyreportapimodels.DailyReportFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]dailyreportapimodels.DailyReportView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/daily_report/list [post]
func (c *dailyReportApiController) list(ctx *fiber.Ctx) error {
	var payload dailyreportapimodels.DailyReportFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := dailyreport.Instance.GetList(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "daily report list failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Export daily reports
// @Tags Daily report
// @Description Export the filtered list as an xlsx workbook
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dailyreportapimodels.DailyReportFilter	true	"request body"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/daily_report/export [post]
func (c *dailyReportApiController) export(ctx *fiber.Ctx) error {
	var payload dailyreportapimodels.DailyReportFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	buf, err := dailyreport.Instance.ExportList(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "daily report export failed")
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="daily_reports.xlsx"`)
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}

// @Summary Export daily reports as pdf
// @Tags Daily report
// @Description Export the filtered list as a pdf document
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dailyreportapimodels.DailyReportFilter	true	"request body"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/daily_report/export_pdf [post]
func (c *dailyReportApiController) exportPDF(ctx *fiber.Ctx) error {
	var payload dailyreportapimodels.DailyReportFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	data, err := dailyreport.Instance.ExportListPDF(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "daily report pdf export failed")
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="daily_reports.pdf"`)
	return ctx.Status(fiber.StatusOK).Send(data)
}

// @Summary Create daily report
// @Tags Daily report
// @Description Create a draft daily report
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dailyreportapimodels.DailyReportData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/daily_report [post]
func (c *dailyReportApiController) create(ctx *fiber.Ctx) error {
	var payload dailyreportapimodels.DailyReportData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	id, err := dailyreport.Instance.Create(userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "daily report create failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Get daily report
// @Tags Daily report
// @Description Get daily report by id
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"rec ID"
// @Success 200 {object} apimodels.Response{data=dailyreportapimodels.DailyReportView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/daily_report/{id} [get]
func (c *dailyReportApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := dailyreport.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "daily report get failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Update daily report
// @Tags Daily report
// @Description Update an unsubmitted daily report
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"rec ID"
// @Param	body body	 dailyreportapimodels.DailyReportData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/daily_report/{id} [put]
func (c *dailyReportApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload dailyreportapimodels.DailyReportData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	err = dailyreport.Instance.Update(id, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "daily report update failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Delete daily report
// @Tags Daily report
// @Description Delete a report that has not been approved
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/daily_report/{id} [delete]
func (c *dailyReportApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = dailyreport.Instance.Delete(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "daily report delete failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Submit daily report
// @Tags Daily report
// @Description Submit the report for review
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/daily_report/{id}/submit [put]
func (c *dailyReportApiController) submit(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	err = dailyreport.Instance.Submit(id, userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "daily report submit failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Approve daily report
// @Tags Daily report
// @Description Approve a submitted report
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/daily_report/{id}/approve [put]
func (c *dailyReportApiController) approve(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	err = dailyreport.Instance.Approve(id, userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "daily report approve failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Reject daily report
// @Tags Daily report
// @Description Reject a submitted report with a reason
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"rec ID"
// @Param	body body	 dailyreportapimodels.RejectRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/daily_report/{id}/reject [put]
func (c *dailyReportApiController) reject(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload dailyreportapimodels.RejectRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	err = dailyreport.Instance.Reject(id, userID, payload.Reason)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "daily report reject failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Bulk status change
// @Tags Daily report
// @Description Approve or reject several reports, item by item
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dailyreportapimodels.BulkStatusRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/daily_report/bulk_status [put]
func (c *dailyReportApiController) bulkStatus(ctx *fiber.Ctx) error {
	var payload dailyreportapimodels.BulkStatusRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	succeeded, failed := dailyreport.Instance.BulkSetStatus(userID, payload)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(map[string]int{
		"succeeded": succeeded,
		"failed":    failed,
	}))
}

// @Summary Upload attachment
// @Tags Daily report
// @Description Attach a file to the report
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"report ID"
// @Param   file        		formData	file	true	"attachment"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/daily_report/{id}/attachment [post]
func (c *dailyReportApiController) addAttachment(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("file is required"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("unable to read file"))
	}
	defer file.Close()
	data := make([]byte, fileHeader.Size)
	if _, err = file.Read(data); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("unable to read file"))
	}
	userID := middleware.GetUserID(ctx)
	attachmentID, err := dailyreport.Instance.AddAttachment(ctx.UserContext(), id, userID,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "attachment upload failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(attachmentID))
}

// @Summary Download attachment
// @Tags Daily report
// @Description Download an attachment by id
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"attachment ID"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/daily_report/attachment/{id} [get]
func (c *dailyReportApiController) getAttachment(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	fileName, data, err := dailyreport.Instance.GetAttachment(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "attachment download failed")
	}
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.Status(fiber.StatusOK).Send(data)
}

// @Summary Delete attachment
// @Tags Daily report
// @Description Delete an attachment by id
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"attachment ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/daily_report/attachment/{id} [delete]
func (c *dailyReportApiController) deleteAttachment(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = dailyreport.Instance.DeleteAttachment(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "attachment delete failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
