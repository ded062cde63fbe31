package project

import (
	"time"

	log "github.com/sirupsen/logrus"

	"solar-projects-backend/db"
	dailyreportstore "solar-projects-backend/lib/daily-report/store"
	"solar-projects-backend/lib/notification"
	"solar-projects-backend/lib/notification/audience"
	projectstore "solar-projects-backend/lib/project/store"
	projecttaskstore "solar-projects-backend/lib/project/task-store"
	apperror "solar-projects-backend/lib/utils/app-error"
	workrequeststore "solar-projects-backend/lib/work-request/store"
	"solar-projects-backend/models"
	projectapimodels "solar-projects-backend/models/api/project"
	dbmodels "solar-projects-backend/models/db"
)

type Provider interface {
	Create(data projectapimodels.ProjectData) (id string, err error)
	Update(id string, data projectapimodels.ProjectData) error
	Delete(id string) error
	GetByID(id string) (*projectapimodels.ProjectView, error)
	GetList(filter projectapimodels.ProjectFilter) (list []projectapimodels.ProjectView, rowCount int64, err error)
	UpdateLocation(id string, lat, lng float64) error

	CreateTask(projectID string, data projectapimodels.TaskData) (id string, err error)
	UpdateTask(taskID string, data projectapimodels.TaskData) error
	DeleteTask(taskID string) error
	GetTasks(projectID string) ([]projectapimodels.TaskView, error)

	GetDashboardStats() (*projectapimodels.DashboardStats, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:     projectstore.NewInstance(db.DB),
		taskStore: projecttaskstore.NewInstance(db.DB),
		wrStore:   workrequeststore.NewInstance(db.DB),
		drStore:   dailyreportstore.NewInstance(db.DB),
	}
}

type impl struct {
	store     projectstore.Provider
	taskStore projecttaskstore.Provider
	wrStore   workrequeststore.Provider
	drStore   dailyreportstore.Provider
}

func (i impl) Create(data projectapimodels.ProjectData) (string, error) {
	status := data.Status
	if status == "" {
		status = models.ProjectStatusPlanning
	}
	rec := dbmodels.Project{
		ProjectName:      data.ProjectName,
		Address:          data.Address,
		ClientInfo:       data.ClientInfo,
		Status:           status,
		StartDate:        data.StartDate,
		EstimatedEndDate: data.EstimatedEndDate,
		ProjectManagerID: data.ProjectManagerID,
		Latitude:         data.Latitude,
		Longitude:        data.Longitude,
		TotalCapacityKw:  data.TotalCapacityKw,
		PvModuleCount:    data.PvModuleCount,
		ConnectionType:   data.ConnectionType,
		FtsValue:         data.FtsValue,
		RevenueValue:     data.RevenueValue,
		PqmValue:         data.PqmValue,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return "", err
	}
	log.WithField("project_id", id).Info("project created")
	i.notify(notification.DispatchEvent{
		Event: audience.Event{
			Type:      models.NotifyProjectCreated,
			ProjectID: id,
			Latitude:  data.Latitude,
			Longitude: data.Longitude,
		},
		Payload: map[string]interface{}{"project_id": id, "project_name": data.ProjectName},
	})
	return id, nil
}

func (i impl) Update(id string, data projectapimodels.ProjectData) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperror.NotFound("project not found")
	}
	updMap := map[string]interface{}{
		"project_name":       data.ProjectName,
		"address":            data.Address,
		"client_info":        data.ClientInfo,
		"start_date":         data.StartDate,
		"estimated_end_date": data.EstimatedEndDate,
		"project_manager_id": data.ProjectManagerID,
		"latitude":           data.Latitude,
		"longitude":          data.Longitude,
		"total_capacity_kw":  data.TotalCapacityKw,
		"pv_module_count":    data.PvModuleCount,
		"connection_type":    data.ConnectionType,
		"fts_value":          data.FtsValue,
		"revenue_value":      data.RevenueValue,
		"pqm_value":          data.PqmValue,
	}
	statusChanged := data.Status != "" && data.Status != rec.Status
	if statusChanged {
		updMap["status"] = data.Status
		if data.Status == models.ProjectStatusCompleted {
			now := time.Now()
			updMap["actual_end_date"] = now
		}
	}
	err = i.store.Update(id, updMap)
	if err != nil {
		return err
	}
	eventType := models.NotifyProjectUpdated
	if statusChanged {
		eventType = models.NotifyProjectStatusChanged
	}
	i.notify(notification.DispatchEvent{
		Event: audience.Event{
			Type:      eventType,
			ProjectID: id,
			Latitude:  data.Latitude,
			Longitude: data.Longitude,
		},
		Payload: map[string]interface{}{"project_id": id, "status": data.Status},
	})
	return nil
}

func (i impl) Delete(id string) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperror.NotFound("project not found")
	}
	err = i.store.Delete(id)
	if err != nil {
		return err
	}
	i.notify(notification.DispatchEvent{
		Event: audience.Event{
			Type:      models.NotifyProjectDeleted,
			Latitude:  rec.Latitude,
			Longitude: rec.Longitude,
		},
		Payload: map[string]interface{}{"project_id": id},
	})
	return nil
}

func (i impl) GetByID(id string) (*projectapimodels.ProjectView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperror.NotFound("project not found")
	}
	view := projectapimodels.ConvertProjectToView(*rec)
	return &view, nil
}

func (i impl) GetList(filter projectapimodels.ProjectFilter) ([]projectapimodels.ProjectView, int64, error) {
	list, rowCount, err := i.store.GetList(filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]projectapimodels.ProjectView, 0, len(list))
	for _, rec := range list {
		result = append(result, projectapimodels.ConvertProjectToView(rec))
	}
	return result, rowCount, nil
}

func (i impl) UpdateLocation(id string, lat, lng float64) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperror.NotFound("project not found")
	}
	err = i.store.Update(id, map[string]interface{}{
		"latitude":  lat,
		"longitude": lng,
	})
	if err != nil {
		return err
	}
	i.notify(notification.DispatchEvent{
		Event: audience.Event{
			Type:      models.NotifyProjectLocation,
			ProjectID: id,
			Latitude:  &lat,
			Longitude: &lng,
		},
		Payload: map[string]interface{}{
			"project_id": id,
			"latitude":   lat,
			"longitude":  lng,
			"region":     audience.RegionForCoordinates(lat, lng),
		},
	})
	return nil
}

func (i impl) CreateTask(projectID string, data projectapimodels.TaskData) (string, error) {
	project, err := i.store.GetByID(projectID)
	if err != nil {
		return "", err
	}
	if project == nil {
		return "", apperror.NotFound("project not found")
	}
	status := data.Status
	if status == "" {
		status = models.TaskStatusNotStarted
	}
	rec := dbmodels.ProjectTask{
		ProjectID:     projectID,
		Title:         data.Title,
		Description:   data.Description,
		Status:        status,
		AssignedToID:  data.AssignedToID,
		DueDate:       data.DueDate,
		WeightPercent: data.WeightPercent,
		ProgressNotes: data.ProgressNotes,
	}
	id, err := i.taskStore.Create(rec)
	if err != nil {
		return "", err
	}
	err = i.recomputeCompletion(projectID)
	if err != nil {
		return "", err
	}
	i.notify(notification.DispatchEvent{
		Event: audience.Event{
			Type:      models.NotifyTaskCreated,
			ProjectID: projectID,
		},
		Payload: map[string]interface{}{"task_id": id, "project_id": projectID},
	})
	return id, nil
}

func (i impl) UpdateTask(taskID string, data projectapimodels.TaskData) error {
	rec, err := i.taskStore.GetByID(taskID)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperror.NotFound("task not found")
	}
	updMap := map[string]interface{}{
		"title":          data.Title,
		"description":    data.Description,
		"assigned_to_id": data.AssignedToID,
		"due_date":       data.DueDate,
		"weight_percent": data.WeightPercent,
		"progress_notes": data.ProgressNotes,
	}
	statusChanged := data.Status != "" && data.Status != rec.Status
	if statusChanged {
		updMap["status"] = data.Status
		if data.Status == models.TaskStatusCompleted {
			now := time.Now()
			updMap["completed_at"] = now
		} else {
			updMap["completed_at"] = nil
		}
	}
	err = i.taskStore.Update(taskID, updMap)
	if err != nil {
		return err
	}
	err = i.recomputeCompletion(rec.ProjectID)
	if err != nil {
		return err
	}
	eventType := models.NotifyTaskUpdated
	if statusChanged {
		eventType = models.NotifyTaskStatusChanged
	}
	i.notify(notification.DispatchEvent{
		Event: audience.Event{
			Type:      eventType,
			ProjectID: rec.ProjectID,
		},
		Payload: map[string]interface{}{"task_id": taskID, "status": data.Status},
	})
	return nil
}

func (i impl) DeleteTask(taskID string) error {
	rec, err := i.taskStore.GetByID(taskID)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperror.NotFound("task not found")
	}
	err = i.taskStore.Delete(taskID)
	if err != nil {
		return err
	}
	err = i.recomputeCompletion(rec.ProjectID)
	if err != nil {
		return err
	}
	i.notify(notification.DispatchEvent{
		Event: audience.Event{
			Type:      models.NotifyTaskDeleted,
			ProjectID: rec.ProjectID,
		},
		Payload: map[string]interface{}{"task_id": taskID},
	})
	return nil
}

func (i impl) GetTasks(projectID string) ([]projectapimodels.TaskView, error) {
	list, err := i.taskStore.GetByProject(projectID)
	if err != nil {
		return nil, err
	}
	result := make([]projectapimodels.TaskView, 0, len(list))
	for _, rec := range list {
		result = append(result, projectapimodels.ConvertTaskToView(rec))
	}
	return result, nil
}

func (i impl) recomputeCompletion(projectID string) error {
	tasks, err := i.taskStore.GetByProject(projectID)
	if err != nil {
		return err
	}
	return i.store.Update(projectID, map[string]interface{}{
		"completion_percentage": WeightedCompletion(tasks),
	})
}

func (i impl) GetDashboardStats() (*projectapimodels.DashboardStats, error) {
	stats := projectapimodels.DashboardStats{
		GeneratedAt: time.Now(),
	}
	var err error
	stats.TotalProjects, err = i.store.CountByStatus(nil)
	if err != nil {
		return nil, err
	}
	stats.ActiveProjects, err = i.store.CountByStatus([]models.ProjectStatus{models.ProjectStatusInProgress})
	if err != nil {
		return nil, err
	}
	stats.CompletedProjects, err = i.store.CountByStatus([]models.ProjectStatus{models.ProjectStatusCompleted})
	if err != nil {
		return nil, err
	}
	stats.PendingWorkRequests, err = i.wrStore.CountByStatus([]models.WorkRequestStatus{
		models.WRStatusPendingManagerApproval,
		models.WRStatusPendingAdminApproval,
	})
	if err != nil {
		return nil, err
	}
	stats.OpenDailyReports, err = i.drStore.CountByStatus([]models.DailyReportStatus{
		models.DRStatusDraft,
		models.DRStatusSubmitted,
	})
	if err != nil {
		return nil, err
	}
	projects, err := i.store.GetAllWithCoordinates()
	if err != nil {
		return nil, err
	}
	stats.Regions = ComputeRegionStats(projects)
	return &stats, nil
}

func (i impl) notify(ev notification.DispatchEvent) {
	if notification.Instance == nil {
		return
	}
	err := notification.Instance.Dispatch(ev)
	if err != nil {
		log.WithError(err).WithField("event", string(ev.Type)).Error("notification dispatch failed")
	}
}
