package project

import (
	"solar-projects-backend/lib/notification/audience"
	"solar-projects-backend/lib/utils/helpers"
	"solar-projects-backend/models"
	projectapimodels "solar-projects-backend/models/api/project"
	dbmodels "solar-projects-backend/models/db"
)

// ComputeRegionStats buckets projects by region and aggregates their
// installation figures. The result always lists every bucket, in a
// fixed order, so the dashboard layout stays stable.
func ComputeRegionStats(projects []dbmodels.Project) []projectapimodels.RegionStats {
	buckets := []models.RegionBucket{
		models.RegionNorthern,
		models.RegionWestern,
		models.RegionCentral,
	}
	byRegion := map[models.RegionBucket]*projectapimodels.RegionStats{}
	result := make([]projectapimodels.RegionStats, len(buckets))
	for n, bucket := range buckets {
		result[n] = projectapimodels.RegionStats{Region: bucket}
		byRegion[bucket] = &result[n]
	}

	completionSum := map[models.RegionBucket]float64{}
	for _, p := range projects {
		bucket := audience.RegionForProject(p.Latitude, p.Longitude)
		stats := byRegion[bucket]
		stats.ProjectCount++
		stats.TotalCapacityKw += helpers.Float64OrZero(p.TotalCapacityKw)
		if p.PvModuleCount != nil {
			stats.TotalPvModules += *p.PvModuleCount
		}
		completionSum[bucket] += p.CompletionPercentage
		switch p.Status {
		case models.ProjectStatusCompleted:
			stats.CompletedCount++
		case models.ProjectStatusInProgress:
			stats.InProgressCount++
		}
	}
	for bucket, stats := range byRegion {
		if stats.ProjectCount > 0 {
			stats.AvgCompletion = completionSum[bucket] / float64(stats.ProjectCount)
		}
	}
	return result
}

// WeightedCompletion derives a project's completion percentage from its
// tasks. Tasks without an explicit weight share the remainder equally.
func WeightedCompletion(tasks []dbmodels.ProjectTask) float64 {
	if len(tasks) == 0 {
		return 0
	}
	totalWeight := 0.0
	unweighted := 0
	for _, t := range tasks {
		if t.WeightPercent > 0 {
			totalWeight += t.WeightPercent
		} else {
			unweighted++
		}
	}
	defaultWeight := 0.0
	if unweighted > 0 && totalWeight < 100 {
		defaultWeight = (100 - totalWeight) / float64(unweighted)
	}

	done := 0.0
	denominator := 0.0
	for _, t := range tasks {
		weight := t.WeightPercent
		if weight <= 0 {
			weight = defaultWeight
		}
		denominator += weight
		if t.Status == models.TaskStatusCompleted {
			done += weight
		}
	}
	if denominator == 0 {
		return 0
	}
	return done / denominator * 100
}
