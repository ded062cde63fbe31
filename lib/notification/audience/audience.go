package audience

import (
	"fmt"

	"solar-projects-backend/models"
)

// Group name builders. Every subscriber group the hub knows about is
// produced here so naming stays consistent between the dispatcher and
// the socket layer.
const (
	GroupAll        = "all"
	GroupMapViewers = "map_viewers"
)

func GroupUser(userID string) string {
	return "user_" + userID
}

func GroupProject(projectID string) string {
	return "project_" + projectID
}

func GroupRole(role models.UserRole) string {
	return "role_" + string(role)
}

func GroupRegion(bucket models.RegionBucket) string {
	return "region_" + string(bucket)
}

func GroupFacility(facilityType string) string {
	return "facility_" + facilityType
}

// Event describes one dispatched notification from the resolver's point
// of view. Only the fields relevant to the event type need to be set.
type Event struct {
	Type         models.NotificationType
	ProjectID    string
	RecipientIDs []string // explicit user targets
	Latitude     *float64
	Longitude    *float64
	FacilityType string
	Broadcast    bool
}

// Resolve maps an event to its target groups. The result is
// deterministic: same event, same groups in the same order.
func Resolve(ev Event) []string {
	groups := []string{}
	seen := map[string]struct{}{}
	add := func(group string) {
		if _, ok := seen[group]; ok {
			return
		}
		seen[group] = struct{}{}
		groups = append(groups, group)
	}

	for _, id := range ev.RecipientIDs {
		if id != "" {
			add(GroupUser(id))
		}
	}
	if ev.ProjectID != "" {
		add(GroupProject(ev.ProjectID))
	}

	switch ev.Type {
	case models.NotifyWorkRequestSubmitted, models.NotifyApprovalRequired, models.NotifyApprovalReminder:
		add(GroupRole(models.UserRoleManager))
		add(GroupRole(models.UserRoleAdmin))
	case models.NotifyWorkRequestEscalated, models.NotifyWorkRequestOverdue:
		add(GroupRole(models.UserRoleAdmin))
	case models.NotifyDashboardStats:
		add(GroupRole(models.UserRoleManager))
		add(GroupRole(models.UserRoleAdmin))
	case models.NotifyProjectCreated, models.NotifyProjectDeleted:
		add(GroupRole(models.UserRoleManager))
		add(GroupRole(models.UserRoleAdmin))
	case models.NotifyUserCreated, models.NotifyUserRoleChanged:
		add(GroupRole(models.UserRoleAdmin))
	}

	if hasMapAudience(ev.Type) {
		if ev.Latitude != nil && ev.Longitude != nil {
			add(GroupRegion(RegionForCoordinates(*ev.Latitude, *ev.Longitude)))
		}
		add(GroupMapViewers)
	}
	if ev.FacilityType != "" {
		add(GroupFacility(ev.FacilityType))
	}

	// Broadcast-class events reach everyone on top of their entity and
	// role groups, so connected clients outside those groups still see
	// announcements and project lifecycle changes.
	if ev.Broadcast || isBroadcastClass(ev.Type) || len(groups) == 0 {
		add(GroupAll)
	}
	return groups
}

func isBroadcastClass(nt models.NotificationType) bool {
	switch nt {
	case models.NotifySystemAnnouncement,
		models.NotifyProjectCreated,
		models.NotifyProjectDeleted:
		return true
	}
	return false
}

func hasMapAudience(nt models.NotificationType) bool {
	switch nt {
	case models.NotifyProjectCreated,
		models.NotifyProjectUpdated,
		models.NotifyProjectDeleted,
		models.NotifyProjectLocation,
		models.NotifyWaterFacilityUpdate:
		return true
	}
	return false
}

// RegionForCoordinates buckets a site into one of the Thailand regions
// used for regional routing. Sites outside every box fall back to
// central.
func RegionForCoordinates(lat, lng float64) models.RegionBucket {
	switch {
	case lat >= 18 && lat <= 20.5 && lng >= 98 && lng <= 101.5:
		return models.RegionNorthern
	case lat >= 15.5 && lat < 18 && lng >= 98 && lng <= 99.5:
		return models.RegionWestern
	case lat >= 13 && lat < 18 && lng >= 99.5 && lng <= 102:
		return models.RegionCentral
	}
	return models.RegionCentral
}

// RegionForProject is a convenience wrapper for records with optional
// coordinates.
func RegionForProject(lat, lng *float64) models.RegionBucket {
	if lat == nil || lng == nil {
		return models.RegionCentral
	}
	return RegionForCoordinates(*lat, *lng)
}

// String implements a debug form used in logs.
func (e Event) String() string {
	return fmt.Sprintf("%s(project=%s recipients=%d)", e.Type, e.ProjectID, len(e.RecipientIDs))
}
