package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWorkRequestStatus(t *testing.T) {
	require.True(t, WRStatusPendingManagerApproval.IsPending())
	require.True(t, WRStatusPendingAdminApproval.IsPending())
	require.False(t, WRStatusDraft.IsPending())
	require.False(t, WRStatusApproved.IsPending())

	require.True(t, WRStatusRejected.IsTerminal())
	require.True(t, WRStatusCompleted.IsTerminal())
	require.False(t, WRStatusInProgress.IsTerminal())
}

func TestDailyReportStatusTransitions(t *testing.T) {
	allowed := map[DailyReportStatus][]DailyReportStatus{
		DRStatusDraft:     {DRStatusSubmitted},
		DRStatusSubmitted: {DRStatusApproved, DRStatusRejected},
		DRStatusRejected:  {DRStatusSubmitted},
		DRStatusApproved:  {},
	}
	all := []DailyReportStatus{DRStatusDraft, DRStatusSubmitted, DRStatusApproved, DRStatusRejected}
	for from, targets := range allowed {
		for _, to := range all {
			want := false
			for _, target := range targets {
				if to == target {
					want = true
				}
			}
			require.Equal(t, want, from.IsAllowChange(to), "%s -> %s", from, to)
		}
	}
}

func TestCanApprove(t *testing.T) {
	require.True(t, UserRoleManager.CanApprove(ApprovalLevelManager))
	require.True(t, UserRoleAdmin.CanApprove(ApprovalLevelManager))
	require.True(t, UserRoleAdmin.CanApprove(ApprovalLevelAdmin))
	require.False(t, UserRoleManager.CanApprove(ApprovalLevelAdmin))
	require.False(t, UserRoleUser.CanApprove(ApprovalLevelManager))
	require.False(t, UserRoleViewer.CanApprove(ApprovalLevelAdmin))
}
