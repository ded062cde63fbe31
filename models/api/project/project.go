package projectapimodels

import (
	"time"

	"github.com/pkg/errors"

	"solar-projects-backend/models"
	apimodels "solar-projects-backend/models/api"
	dbmodels "solar-projects-backend/models/db"
)

type ProjectData struct {
	ProjectName      string               `json:"project_name"`
	Address          string               `json:"address"`
	ClientInfo       string               `json:"client_info"`
	Status           models.ProjectStatus `json:"status"`
	StartDate        *time.Time           `json:"start_date"`
	EstimatedEndDate *time.Time           `json:"estimated_end_date"`
	ProjectManagerID *string              `json:"project_manager_id"`
	Latitude         *float64             `json:"latitude"`
	Longitude        *float64             `json:"longitude"`
	TotalCapacityKw  *float64             `json:"total_capacity_kw"`
	PvModuleCount    *int                 `json:"pv_module_count"`
	ConnectionType   string               `json:"connection_type"`
	FtsValue         *float64             `json:"fts_value"`
	RevenueValue     *float64             `json:"revenue_value"`
	PqmValue         *float64             `json:"pqm_value"`
}

func (p ProjectData) Validate() error {
	if p.ProjectName == "" {
		return errors.New("project name is required")
	}
	if p.Latitude != nil && (*p.Latitude < -90 || *p.Latitude > 90) {
		return errors.New("latitude is out of range")
	}
	if p.Longitude != nil && (*p.Longitude < -180 || *p.Longitude > 180) {
		return errors.New("longitude is out of range")
	}
	if p.TotalCapacityKw != nil && *p.TotalCapacityKw < 0 {
		return errors.New("total capacity must not be negative")
	}
	return nil
}

type ProjectView struct {
	ProjectData
	ID                   string     `json:"id"`
	ActualEndDate        *time.Time `json:"actual_end_date"`
	ProjectManagerName   string     `json:"project_manager_name"`
	CompletionPercentage float64    `json:"completion_percentage"`
	TaskCount            int        `json:"task_count"`
	CreatedAt            time.Time  `json:"created_at"`
}

func ConvertProjectToView(rec dbmodels.Project) ProjectView {
	view := ProjectView{
		ProjectData: ProjectData{
			ProjectName:      rec.ProjectName,
			Address:          rec.Address,
			ClientInfo:       rec.ClientInfo,
			Status:           rec.Status,
			StartDate:        rec.StartDate,
			EstimatedEndDate: rec.EstimatedEndDate,
			ProjectManagerID: rec.ProjectManagerID,
			Latitude:         rec.Latitude,
			Longitude:        rec.Longitude,
			TotalCapacityKw:  rec.TotalCapacityKw,
			PvModuleCount:    rec.PvModuleCount,
			ConnectionType:   rec.ConnectionType,
			FtsValue:         rec.FtsValue,
			RevenueValue:     rec.RevenueValue,
			PqmValue:         rec.PqmValue,
		},
		ID:                   rec.ID,
		ActualEndDate:        rec.ActualEndDate,
		CompletionPercentage: rec.CompletionPercentage,
		TaskCount:            len(rec.Tasks),
		CreatedAt:            rec.CreatedAt,
	}
	if rec.ProjectManager != nil {
		view.ProjectManagerName = rec.ProjectManager.GetDisplayName()
	}
	return view
}

type ProjectFilter struct {
	apimodels.Pagination
	Status    models.ProjectStatus `json:"status"`
	ManagerID string               `json:"manager_id"`
	Search    string               `json:"search"` // matches project name or address
}

type TaskData struct {
	Title         string                   `json:"title"`
	Description   string                   `json:"description"`
	Status        models.ProjectTaskStatus `json:"status"`
	AssignedToID  *string                  `json:"assigned_to_id"`
	DueDate       *time.Time               `json:"due_date"`
	WeightPercent float64                  `json:"weight_percent"`
	ProgressNotes string                   `json:"progress_notes"`
}

func (t TaskData) Validate() error {
	if t.Title == "" {
		return errors.New("task title is required")
	}
	if t.WeightPercent < 0 || t.WeightPercent > 100 {
		return errors.New("task weight must be between 0 and 100")
	}
	return nil
}

type TaskView struct {
	TaskData
	ID             string     `json:"id"`
	ProjectID      string     `json:"project_id"`
	AssignedToName string     `json:"assigned_to_name"`
	CompletedAt    *time.Time `json:"completed_at"`
	CreatedAt      time.Time  `json:"created_at"`
}

func ConvertTaskToView(rec dbmodels.ProjectTask) TaskView {
	view := TaskView{
		TaskData: TaskData{
			Title:         rec.Title,
			Description:   rec.Description,
			Status:        rec.Status,
			AssignedToID:  rec.AssignedToID,
			DueDate:       rec.DueDate,
			WeightPercent: rec.WeightPercent,
			ProgressNotes: rec.ProgressNotes,
		},
		ID:          rec.ID,
		ProjectID:   rec.ProjectID,
		CompletedAt: rec.CompletedAt,
		CreatedAt:   rec.CreatedAt,
	}
	if rec.AssignedTo != nil {
		view.AssignedToName = rec.AssignedTo.GetDisplayName()
	}
	return view
}

// RegionStats aggregates projects inside one geographic bucket.
type RegionStats struct {
	Region          models.RegionBucket `json:"region"`
	ProjectCount    int                 `json:"project_count"`
	CompletedCount  int                 `json:"completed_count"`
	InProgressCount int                 `json:"in_progress_count"`
	TotalCapacityKw float64             `json:"total_capacity_kw"`
	TotalPvModules  int                 `json:"total_pv_modules"`
	AvgCompletion   float64             `json:"avg_completion"`
}

type DashboardStats struct {
	TotalProjects       int64         `json:"total_projects"`
	ActiveProjects      int64         `json:"active_projects"`
	CompletedProjects   int64         `json:"completed_projects"`
	PendingWorkRequests int64         `json:"pending_work_requests"`
	OpenDailyReports    int64         `json:"open_daily_reports"`
	Regions             []RegionStats `json:"regions"`
	GeneratedAt         time.Time     `json:"generated_at"`
}
