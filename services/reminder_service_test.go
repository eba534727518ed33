package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"barberflow-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type sentMessage struct {
	channel, to, body string
}

type fakeSender struct {
	sent []sentMessage
	err  error
}

func (s *fakeSender) Send(_ context.Context, channel, to, body string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.sent = append(s.sent, sentMessage{channel: channel, to: to, body: body})
	return "SM123", nil
}

func TestSendDailyReminders(t *testing.T) {
	b := newBookingFixture(t, 5)
	sender := &fakeSender{}
	reminders := NewReminderService(b.db, sender, zap.NewNop(), func() time.Time { return testNow })

	// Tomorrow 11:00 local.
	tomorrow := b.input()
	tomorrow.ScheduledAt = time.Date(2025, 6, 16, 14, 0, 0, 0, time.UTC)
	due := b.book(t, tomorrow, models.StatusConfirmed)

	later := b.input()
	later.ScheduledAt = time.Date(2025, 6, 18, 14, 0, 0, 0, time.UTC)
	b.book(t, later, models.StatusPending)

	canceled := b.input()
	canceled.ScheduledAt = time.Date(2025, 6, 16, 16, 0, 0, 0, time.UTC)
	b.book(t, canceled, models.StatusCanceled)

	sent, err := reminders.SendDailyReminders(b.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, ChannelSMS, sender.sent[0].channel)
	assert.Equal(t, "+5511999998888", sender.sent[0].to)
	assert.Contains(t, sender.sent[0].body, "Carlos")
	assert.Contains(t, sender.sent[0].body, "Barber Shop")
	assert.Contains(t, sender.sent[0].body, "16/06/2025")
	assert.Contains(t, sender.sent[0].body, "11:00")

	var logs []models.ReminderLog
	require.NoError(t, b.db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, due.ID, logs[0].AppointmentID)
	assert.Equal(t, "sent", logs[0].Status)

	sent, err = reminders.SendDailyReminders(b.ctx)
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Len(t, sender.sent, 1)
}

func TestFailedReminderIsRetried(t *testing.T) {
	b := newBookingFixture(t, 5)
	sender := &fakeSender{err: errors.New("provider down")}
	reminders := NewReminderService(b.db, sender, zap.NewNop(), func() time.Time { return testNow })

	in := b.input()
	in.ScheduledAt = time.Date(2025, 6, 16, 14, 0, 0, 0, time.UTC)
	b.book(t, in, models.StatusPending)

	sent, err := reminders.SendDailyReminders(b.ctx)
	require.NoError(t, err)
	assert.Zero(t, sent)

	var failed models.ReminderLog
	require.NoError(t, b.db.First(&failed).Error)
	assert.Equal(t, "failed", failed.Status)
	assert.Equal(t, "provider down", failed.ErrorMessage)

	sender.err = nil
	sent, err = reminders.SendDailyReminders(b.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
}

func TestRemindersRespectCompanySettings(t *testing.T) {
	b := newBookingFixture(t, 5)
	sender := &fakeSender{}
	reminders := NewReminderService(b.db, sender, zap.NewNop(), func() time.Time { return testNow })

	in := b.input()
	in.ScheduledAt = time.Date(2025, 6, 16, 14, 0, 0, 0, time.UTC)
	b.book(t, in, models.StatusPending)

	on, off := true, false
	_, err := b.svc.Settings.Update(b.ctx, b.company.ID, SettingsUpdate{WhatsAppNotifications: &on})
	require.NoError(t, err)
	sent, err := reminders.SendDailyReminders(b.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, ChannelWhatsApp, sender.sent[0].channel)

	require.NoError(t, b.db.Where("1 = 1").Delete(&models.ReminderLog{}).Error)
	_, err = b.svc.Settings.Update(b.ctx, b.company.ID, SettingsUpdate{SendReminders: &off})
	require.NoError(t, err)
	sent, err = reminders.SendDailyReminders(b.ctx)
	require.NoError(t, err)
	assert.Zero(t, sent)
}

func TestReminderChannel(t *testing.T) {
	settings := &models.CompanySettings{WhatsAppNotifications: true, SMSNotifications: true}
	assert.Equal(t, ChannelWhatsApp, reminderChannel(settings, "+5511999998888"))
	assert.Equal(t, ChannelSMS, reminderChannel(settings, "11999998888"))

	settings.SMSNotifications = false
	assert.Empty(t, reminderChannel(settings, "11999998888"))
}
