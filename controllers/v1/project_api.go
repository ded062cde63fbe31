package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"solar-projects-backend/controllers"
	projecthandler "solar-projects-backend/lib/project"
	"solar-projects-backend/middleware"
	apimodels "solar-projects-backend/models/api"
	projectapimodels "solar-projects-backend/models/api/project"
)

type projectApiController struct {
	controllers.BaseAPIController
}

func InitProjectApiRouters(app *fiber.App) {
	controller := projectApiController{}
	app.Route("project", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Post("", middleware.ManagerRoleRequired(), controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", middleware.ManagerRoleRequired(), controller.update)
			idRoute.Delete("", middleware.AdminRoleRequired(), controller.delete)
			idRoute.Put("location", middleware.ManagerRoleRequired(), controller.updateLocation)
			idRoute.Get("task", controller.listTasks)
			idRoute.Post("task", middleware.WriteRoleRequired(), controller.createTask)
		})
		router.Route("task/:id", func(taskRoute fiber.Router) {
			taskRoute.Put("", middleware.WriteRoleRequired(), controller.updateTask)
			taskRoute.Delete("", middleware.WriteRoleRequired(), controller.deleteTask)
		})
	})
}

// @Summary Project list
// @Tags Project
// @Description Filtered project list with pagination
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 projectapimodels.ProjectFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]projectapimodels.ProjectView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/project/list [post]
func (c *projectApiController) list(ctx *fiber.Ctx) error {
	var payload projectapimodels.ProjectFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := projecthandler.Instance.GetList(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "project list failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Create project
// @Tags Project
// @Description Create project
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 projectapimodels.ProjectData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/project [post]
func (c *projectApiController) create(ctx *fiber.Ctx) error {
	var payload projectapimodels.ProjectData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := projecthandler.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "project create failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Get project
// @Tags Project
// @Description Get project by id
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"rec ID"
// @Success 200 {object} apimodels.Response{data=projectapimodels.ProjectView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/project/{id} [get]
func (c *projectApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := projecthandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "project get failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Update project
// @Tags Project
// @Description Update project
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"rec ID"
// @Param	body body	 projectapimodels.ProjectData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/project/{id} [put]
func (c *projectApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload projectapimodels.ProjectData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = projecthandler.Instance.Update(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "project update failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Delete project
// @Tags Project
// @Description Delete project with its tasks and reports
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/project/{id} [delete]
func (c *projectApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = projecthandler.Instance.Delete(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "project delete failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

type locationPayload struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// @Summary Update project location
// @Tags Project
// @Description Move the project site on the map
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/project/{id}/location [put]
func (c *projectApiController) updateLocation(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload locationPayload
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if payload.Latitude < -90 || payload.Latitude > 90 || payload.Longitude < -180 || payload.Longitude > 180 {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("coordinates are out of range"))
	}
	err = projecthandler.Instance.UpdateLocation(id, payload.Latitude, payload.Longitude)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "project location update failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Project task list
// @Tags Project task
// @Description Tasks of the project
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"project ID"
// @Success 200 {object} apimodels.Response{data=[]projectapimodels.TaskView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/project/{id}/task [get]
func (c *projectApiController) listTasks(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := projecthandler.Instance.GetTasks(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "task list failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Create task
// @Tags Project task
// @Description Create a task in the project
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"project ID"
// @Param	body body	 projectapimodels.TaskData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/project/{id}/task [post]
func (c *projectApiController) createTask(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload projectapimodels.TaskData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	taskID, err := projecthandler.Instance.CreateTask(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "task create failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(taskID))
}

// @Summary Update task
// @Tags Project task
// @Description Update a task
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"task ID"
// @Param	body body	 projectapimodels.TaskData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/project/task/{id} [put]
func (c *projectApiController) updateTask(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload projectapimodels.TaskData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = projecthandler.Instance.UpdateTask(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "task update failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Delete task
// @Tags Project task
// @Description Delete a task
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"task ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/project/task/{id} [delete]
func (c *projectApiController) deleteTask(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = projecthandler.Instance.DeleteTask(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "task delete failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
