package project

import (
	"testing"

	"github.com/stretchr/testify/require"

	"solar-projects-backend/models"
	dbmodels "solar-projects-backend/models/db"
)

func site(lat, lng float64, status models.ProjectStatus, capacityKw float64, modules int, completion float64) dbmodels.Project {
	return dbmodels.Project{
		Status:               status,
		Latitude:             &lat,
		Longitude:            &lng,
		TotalCapacityKw:      &capacityKw,
		PvModuleCount:        &modules,
		CompletionPercentage: completion,
	}
}

func TestComputeRegionStats(t *testing.T) {
	t.Run(`no projects still lists every bucket`, func(t *testing.T) {
		stats := ComputeRegionStats(nil)
		require.Len(t, stats, 3)
		require.Equal(t, models.RegionNorthern, stats[0].Region)
		require.Equal(t, models.RegionWestern, stats[1].Region)
		require.Equal(t, models.RegionCentral, stats[2].Region)
		for _, s := range stats {
			require.Zero(t, s.ProjectCount)
		}
	})

	t.Run(`projects aggregate into their buckets`, func(t *testing.T) {
		projects := []dbmodels.Project{
			site(19.0, 99.0, models.ProjectStatusInProgress, 100, 200, 40),
			site(19.5, 100.0, models.ProjectStatusCompleted, 50, 100, 100),
			site(16.0, 98.5, models.ProjectStatusInProgress, 30, 60, 20),
			site(14.0, 100.5, models.ProjectStatusPlanning, 10, 20, 0),
		}
		stats := ComputeRegionStats(projects)

		northern := stats[0]
		require.Equal(t, 2, northern.ProjectCount)
		require.Equal(t, 1, northern.CompletedCount)
		require.Equal(t, 1, northern.InProgressCount)
		require.Equal(t, 150.0, northern.TotalCapacityKw)
		require.Equal(t, 300, northern.TotalPvModules)
		require.Equal(t, 70.0, northern.AvgCompletion)

		western := stats[1]
		require.Equal(t, 1, western.ProjectCount)
		require.Equal(t, 20.0, western.AvgCompletion)

		central := stats[2]
		require.Equal(t, 1, central.ProjectCount)
	})

	t.Run(`projects without coordinates land in central`, func(t *testing.T) {
		stats := ComputeRegionStats([]dbmodels.Project{
			{Status: models.ProjectStatusPlanning},
		})
		require.Equal(t, 1, stats[2].ProjectCount)
	})
}

func TestWeightedCompletion(t *testing.T) {
	t.Run(`no tasks means zero`, func(t *testing.T) {
		require.Zero(t, WeightedCompletion(nil))
	})

	t.Run(`unweighted tasks count equally`, func(t *testing.T) {
		tasks := []dbmodels.ProjectTask{
			{Status: models.TaskStatusCompleted},
			{Status: models.TaskStatusCompleted},
			{Status: models.TaskStatusInProgress},
			{Status: models.TaskStatusNotStarted},
		}
		require.InDelta(t, 50.0, WeightedCompletion(tasks), 0.001)
	})

	t.Run(`explicit weights dominate`, func(t *testing.T) {
		tasks := []dbmodels.ProjectTask{
			{Status: models.TaskStatusCompleted, WeightPercent: 70},
			{Status: models.TaskStatusNotStarted, WeightPercent: 30},
		}
		require.InDelta(t, 70.0, WeightedCompletion(tasks), 0.001)
	})

	t.Run(`unweighted tasks share the remainder`, func(t *testing.T) {
		// 60 explicit, two tasks share the remaining 40 at 20 each.
		tasks := []dbmodels.ProjectTask{
			{Status: models.TaskStatusCompleted, WeightPercent: 60},
			{Status: models.TaskStatusCompleted},
			{Status: models.TaskStatusNotStarted},
		}
		require.InDelta(t, 80.0, WeightedCompletion(tasks), 0.001)
	})

	t.Run(`nothing done means zero`, func(t *testing.T) {
		tasks := []dbmodels.ProjectTask{
			{Status: models.TaskStatusNotStarted, WeightPercent: 100},
		}
		require.Zero(t, WeightedCompletion(tasks))
	})
}
