package wsclient

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsJoinable(t *testing.T) {
	t.Run(`own user group is allowed`, func(t *testing.T) {
		require.True(t, isJoinable("user_u1", "u1"))
	})
	t.Run(`another user's group is rejected`, func(t *testing.T) {
		require.False(t, isJoinable("user_u2", "u1"))
	})
	t.Run(`role groups are never self-service`, func(t *testing.T) {
		require.False(t, isJoinable("role_administrator", "u1"))
		require.False(t, isJoinable("role_manager", "u1"))
	})
	t.Run(`shared groups are open`, func(t *testing.T) {
		require.True(t, isJoinable("project_p1", "u1"))
		require.True(t, isJoinable("region_northern", "u1"))
		require.True(t, isJoinable("map_viewers", "u1"))
		require.True(t, isJoinable("all", "u1"))
	})
}
