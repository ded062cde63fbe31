package apiv1

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"solar-projects-backend/controllers"
	"solar-projects-backend/lib/work-request/approval"
	"solar-projects-backend/middleware"
	apimodels "solar-projects-backend/models/api"
	workrequestapimodels "solar-projects-backend/models/api/work-request"
)

type workRequestApprovalsApiController struct {
	controllers.BaseAPIController
}

func InitWorkRequestApprovalsApiRouters(app *fiber.App) {
	controller := workRequestApprovalsApiController{}
	app.Route("work_request", func(router fiber.Router) {
		router.Get("approval/pending", middleware.ManagerRoleRequired(), controller.pending)
		router.Get("approval/statistics", middleware.ManagerRoleRequired(), controller.statistics)
		router.Put("approval/bulk", middleware.ManagerRoleRequired(), controller.bulk)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Put("submit", controller.submit)
			idRoute.Put("approval", middleware.ManagerRoleRequired(), controller.process)
			idRoute.Get("approval/status", controller.status)
			idRoute.Get("approval/history", controller.history)
		})
	})
}

// @Summary Submit for approval
// @Tags Work request approval
// @Description Submit a draft request into the approval chain
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"rec ID"
// @Param	body body	 workrequestapimodels.SubmitRequest	false	"request body"
// @Success 200 {object} apimodels.Response{data=workrequestapimodels.WorkRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/work_request/{id}/submit [put]
func (c *workRequestApprovalsApiController) submit(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload workrequestapimodels.SubmitRequest
	if len(ctx.Body()) > 0 {
		if err = c.BodyParser(ctx, &payload); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
	}
	userID := middleware.GetUserID(ctx)
	resp, err := approval.Instance.SubmitForApproval(id, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "approval submit failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Decide approval
// @Tags Work request approval
// @Description Approve, reject or escalate the pending approval
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"rec ID"
// @Param	body body	 workrequestapimodels.ApprovalRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=workrequestapimodels.WorkRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/work_request/{id}/approval [put]
func (c *workRequestApprovalsApiController) process(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload workrequestapimodels.ApprovalRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	role := middleware.GetUserRole(ctx)
	resp, err := approval.Instance.ProcessApproval(id, userID, role, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "approval decision failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Bulk approval
// @Tags Work request approval
// @Description Apply one decision to several requests, item by item
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 workrequestapimodels.BulkApprovalRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=workrequestapimodels.BulkApprovalResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/work_request/approval/bulk [put]
func (c *workRequestApprovalsApiController) bulk(ctx *fiber.Ctx) error {
	var payload workrequestapimodels.BulkApprovalRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	role := middleware.GetUserRole(ctx)
	result := approval.Instance.BulkApproval(userID, role, payload)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Approval status
// @Tags Work request approval
// @Description Current position of the request in the approval chain
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"rec ID"
// @Success 200 {object} apimodels.Response{data=workrequestapimodels.ApprovalStatusView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/work_request/{id}/approval/status [get]
func (c *workRequestApprovalsApiController) status(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := approval.Instance.GetApprovalStatus(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "approval status failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Approval history
// @Tags Work request approval
// @Description Full decision audit trail of the request
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"rec ID"
// @Success 200 {object} apimodels.Response{data=[]workrequestapimodels.ApprovalRecordView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/work_request/{id}/approval/history [get]
func (c *workRequestApprovalsApiController) history(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := approval.Instance.GetApprovalHistory(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "approval history failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Pending approvals
// @Tags Work request approval
// @Description Requests waiting on the calling approver
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]workrequestapimodels.PendingApprovalView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/work_request/approval/pending [get]
func (c *workRequestApprovalsApiController) pending(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)
	resp, err := approval.Instance.GetPendingApprovals(userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "pending approvals failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Approval statistics
// @Tags Work request approval
// @Description Aggregate approval figures, optionally since a date
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   since       		query   string  false	"RFC3339 lower bound"
// @Success 200 {object} apimodels.Response{data=workrequestapimodels.ApprovalStatistics}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/work_request/approval/statistics [get]
func (c *workRequestApprovalsApiController) statistics(ctx *fiber.Ctx) error {
	var since *time.Time
	if raw := ctx.Query("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("since must be RFC3339"))
		}
		since = &parsed
	}
	resp, err := approval.Instance.GetApprovalStatistics(since)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "approval statistics failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
