package audience

import (
	"testing"

	"github.com/stretchr/testify/require"

	"solar-projects-backend/models"
)

func TestRegionForCoordinates(t *testing.T) {
	t.Run(`northern box`, func(t *testing.T) {
		require.Equal(t, models.RegionNorthern, RegionForCoordinates(19.0, 99.0))
		require.Equal(t, models.RegionNorthern, RegionForCoordinates(18.0, 98.0))
		require.Equal(t, models.RegionNorthern, RegionForCoordinates(20.5, 101.5))
	})
	t.Run(`western box`, func(t *testing.T) {
		require.Equal(t, models.RegionWestern, RegionForCoordinates(16.0, 98.5))
		require.Equal(t, models.RegionWestern, RegionForCoordinates(15.5, 98.0))
	})
	t.Run(`central box`, func(t *testing.T) {
		require.Equal(t, models.RegionCentral, RegionForCoordinates(14.0, 100.5))
		require.Equal(t, models.RegionCentral, RegionForCoordinates(13.0, 99.5))
	})
	t.Run(`western wins over central on the boundary`, func(t *testing.T) {
		// lat 16 lng 99.5 is on the edge of both boxes, western is
		// checked first and keeps the site.
		require.Equal(t, models.RegionWestern, RegionForCoordinates(16.0, 99.5))
	})
	t.Run(`outside every box falls back to central`, func(t *testing.T) {
		require.Equal(t, models.RegionCentral, RegionForCoordinates(7.0, 100.0))
		require.Equal(t, models.RegionCentral, RegionForCoordinates(0, 0))
	})
	t.Run(`missing coordinates fall back to central`, func(t *testing.T) {
		lat := 19.0
		require.Equal(t, models.RegionCentral, RegionForProject(nil, nil))
		require.Equal(t, models.RegionCentral, RegionForProject(&lat, nil))
	})
}

func TestResolve(t *testing.T) {
	t.Run(`broadcast targets everyone`, func(t *testing.T) {
		groups := Resolve(Event{Type: models.NotifyWorkRequestApproved, Broadcast: true})
		require.Equal(t, []string{GroupAll}, groups)

		groups = Resolve(Event{Type: models.NotifySystemAnnouncement})
		require.Equal(t, []string{GroupAll}, groups)
	})

	t.Run(`broadcast keeps the entity groups`, func(t *testing.T) {
		groups := Resolve(Event{Type: models.NotifySystemAnnouncement, ProjectID: "p1"})
		require.Equal(t, []string{"project_p1", GroupAll}, groups)

		groups = Resolve(Event{Type: models.NotifyWorkRequestApproved, RecipientIDs: []string{"u1"}, Broadcast: true})
		require.Equal(t, []string{"user_u1", GroupAll}, groups)
	})

	t.Run(`project lifecycle events reach everyone on top of their groups`, func(t *testing.T) {
		lat, lng := 19.0, 99.0
		groups := Resolve(Event{
			Type:      models.NotifyProjectCreated,
			ProjectID: "p1",
			Latitude:  &lat,
			Longitude: &lng,
		})
		require.Equal(t, []string{
			"project_p1", "role_manager", "role_administrator",
			"region_northern", GroupMapViewers, GroupAll,
		}, groups)

		groups = Resolve(Event{Type: models.NotifyProjectDeleted, ProjectID: "p2"})
		require.Contains(t, groups, GroupAll)
		require.Contains(t, groups, "project_p2")
	})

	t.Run(`recipients come first, then project, then roles`, func(t *testing.T) {
		groups := Resolve(Event{
			Type:         models.NotifyApprovalRequired,
			ProjectID:    "p1",
			RecipientIDs: []string{"u1", "u2"},
		})
		require.Equal(t, []string{
			"user_u1", "user_u2", "project_p1",
			"role_manager", "role_administrator",
		}, groups)
	})

	t.Run(`deterministic and deduplicated`, func(t *testing.T) {
		ev := Event{
			Type:         models.NotifyWorkRequestEscalated,
			ProjectID:    "p1",
			RecipientIDs: []string{"u1", "u1", "", "u2"},
		}
		first := Resolve(ev)
		require.Equal(t, []string{"user_u1", "user_u2", "project_p1", "role_administrator"}, first)
		for n := 0; n < 10; n++ {
			require.Equal(t, first, Resolve(ev))
		}
	})

	t.Run(`map events add region and map viewers`, func(t *testing.T) {
		lat, lng := 19.0, 99.0
		groups := Resolve(Event{
			Type:      models.NotifyProjectLocation,
			ProjectID: "p1",
			Latitude:  &lat,
			Longitude: &lng,
		})
		require.Equal(t, []string{"project_p1", "region_northern", GroupMapViewers}, groups)
	})

	t.Run(`map events without coordinates still reach map viewers`, func(t *testing.T) {
		groups := Resolve(Event{Type: models.NotifyProjectUpdated, ProjectID: "p1"})
		require.Equal(t, []string{"project_p1", GroupMapViewers}, groups)
	})

	t.Run(`facility type adds a facility group`, func(t *testing.T) {
		groups := Resolve(Event{
			Type:         models.NotifyWaterFacilityUpdate,
			ProjectID:    "p1",
			FacilityType: "pump_station",
		})
		require.Contains(t, groups, "facility_pump_station")
		require.Contains(t, groups, GroupMapViewers)
	})

	t.Run(`no resolvable audience falls back to everyone`, func(t *testing.T) {
		groups := Resolve(Event{Type: models.NotifyWorkRequestCompleted})
		require.Equal(t, []string{GroupAll}, groups)
	})
}
