package workrequestapimodels

import (
	"testing"

	"github.com/stretchr/testify/require"

	"solar-projects-backend/lib/utils/helpers"
)

func TestApprovalRequestValidate(t *testing.T) {
	t.Run(`approve needs nothing extra`, func(t *testing.T) {
		require.NoError(t, ApprovalRequest{Action: "Approve"}.Validate())
	})
	t.Run(`reject requires a reason`, func(t *testing.T) {
		require.Error(t, ApprovalRequest{Action: "Reject"}.Validate())
		require.NoError(t, ApprovalRequest{Action: "Reject", RejectionReason: "over budget"}.Validate())
	})
	t.Run(`escalate requires a reason`, func(t *testing.T) {
		require.Error(t, ApprovalRequest{Action: "Escalate"}.Validate())
		require.NoError(t, ApprovalRequest{Action: "Escalate", EscalationReason: "on leave"}.Validate())
	})
	t.Run(`unknown actions are rejected`, func(t *testing.T) {
		require.Error(t, ApprovalRequest{Action: "Defer"}.Validate())
	})
}

func TestBulkApprovalRequestValidate(t *testing.T) {
	t.Run(`ids are required`, func(t *testing.T) {
		require.Error(t, BulkApprovalRequest{
			ApprovalRequest: ApprovalRequest{Action: "Approve"},
		}.Validate())
	})
	t.Run(`approve and reject pass through`, func(t *testing.T) {
		require.NoError(t, BulkApprovalRequest{
			WorkRequestIDs:  []string{"wr1"},
			ApprovalRequest: ApprovalRequest{Action: "Approve"},
		}.Validate())
		require.NoError(t, BulkApprovalRequest{
			WorkRequestIDs:  []string{"wr1"},
			ApprovalRequest: ApprovalRequest{Action: "Reject", RejectionReason: "over budget"},
		}.Validate())
	})
	t.Run(`escalate is not a bulk action`, func(t *testing.T) {
		require.Error(t, BulkApprovalRequest{
			WorkRequestIDs: []string{"wr1"},
			ApprovalRequest: ApprovalRequest{
				Action:           "Escalate",
				EscalationReason: "on leave",
				EscalateToID:     helpers.StrPtr("u2"),
			},
		}.Validate())
	})
}
