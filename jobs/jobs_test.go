package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRunJobs(t *testing.T) {
	ctrl := gomock.NewController(t)
	reminders := NewMockReminderSender(ctrl)
	bills := NewMockOverdueSweeper(ctrl)
	ctx := context.Background()

	reminders.EXPECT().SendDueReminders(ctx).Return(2, nil)
	bills.EXPECT().RefreshOverdue(ctx).Return(0, errors.New("mongo unavailable"))

	RunFollowUpReminders(ctx, reminders)
	RunOverdueSweep(ctx, bills)
}

func TestStartScheduler(t *testing.T) {
	ctrl := gomock.NewController(t)
	c, err := StartScheduler(Schedule{FollowUpReminders: "0 8 * * *", OverdueSweep: "5 0 * * *"},
		NewMockReminderSender(ctrl), NewMockOverdueSweeper(ctrl))
	require.NoError(t, err)
	defer c.Stop()
	assert.Len(t, c.Entries(), 2)
}

func TestStartScheduler_BadSpec(t *testing.T) {
	ctrl := gomock.NewController(t)
	_, err := StartScheduler(Schedule{FollowUpReminders: "every morning", OverdueSweep: "5 0 * * *"},
		NewMockReminderSender(ctrl), NewMockOverdueSweeper(ctrl))
	assert.Error(t, err)
}
