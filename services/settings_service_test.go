package services

import (
	"encoding/json"
	"testing"

	"barberflow-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateSettings(t *testing.T) {
	f := newFixture(t)
	_, company := f.registerOwner(t, "owner@example.com")

	interval, deposit, off := 45, 30.0, false
	settings, err := f.svc.Settings.Update(f.ctx, company.ID, SettingsUpdate{
		AppointmentInterval:   &interval,
		DepositPercentage:     &deposit,
		NotifyCancellations:   &off,
		WhatsAppNotifications: &off,
	})
	require.NoError(t, err)
	assert.Equal(t, 45, settings.AppointmentInterval)
	assert.InDelta(t, 30.0, settings.DepositPercentage, 0.001)
	assert.False(t, settings.NotifyCancellations)
	assert.True(t, settings.NotifyNewAppointments)

	zero, negative, tooMuch := 0, -5, 120.0
	_, err = f.svc.Settings.Update(f.ctx, company.ID, SettingsUpdate{AppointmentInterval: &zero})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = f.svc.Settings.Update(f.ctx, company.ID, SettingsUpdate{PreparationMinutes: &negative})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = f.svc.Settings.Update(f.ctx, company.ID, SettingsUpdate{DepositPercentage: &tooMuch})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.Settings.Get(f.ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateWorkingHours(t *testing.T) {
	f := newFixture(t)
	_, company := f.registerOwner(t, "owner@example.com")

	hours, err := f.svc.Settings.UpdateWorkingHours(f.ctx, company.ID, map[string]models.DayHours{
		"Monday": {Open: "09:00", Close: "18:00"},
		"sunday": {Closed: true},
	})
	require.NoError(t, err)

	var days map[string]models.DayHours
	require.NoError(t, json.Unmarshal(hours.Days, &days))
	assert.Equal(t, "09:00", days["monday"].Open)
	assert.True(t, days["sunday"].Closed)

	settings, err := f.svc.Settings.Get(f.ctx, company.ID)
	require.NoError(t, err)
	require.NotNil(t, settings.WorkingHours)
	assert.JSONEq(t, string(hours.Days), string(settings.WorkingHours.Days))

	bad := []map[string]models.DayHours{
		{"funday": {Open: "09:00", Close: "18:00"}},
		{"monday": {Open: "9am", Close: "18:00"}},
		{"monday": {Open: "18:00", Close: "09:00"}},
	}
	for _, days := range bad {
		_, err := f.svc.Settings.UpdateWorkingHours(f.ctx, company.ID, days)
		assert.ErrorIs(t, err, ErrValidation)
	}
}
