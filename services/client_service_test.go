package services

import (
	"testing"
	"time"

	"barberflow-backend/models"
	"barberflow-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientPortalRegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	_, company := f.registerOwner(t, "owner@example.com")

	client, token, err := f.svc.Clients.Register(f.ctx, ClientRegisterInput{
		CompanySlug: company.Slug,
		Name:        "Carlos",
		Email:       "carlos@example.com",
		Password:    "secret123",
		Phone:       "+55 11 99999-8888",
	})
	require.NoError(t, err)
	assert.Equal(t, company.ID, client.CompanyID)
	assert.Equal(t, "+5511999998888", client.Phone)

	id, err := utils.ParseToken(token, utils.TokenKindClient, []byte("test-secret"))
	require.NoError(t, err)
	assert.Equal(t, client.ID, id)
	_, err = utils.ParseToken(token, utils.TokenKindUser, []byte("test-secret"))
	assert.ErrorIs(t, err, utils.ErrWrongTokenKind)

	_, _, err = f.svc.Clients.Register(f.ctx, ClientRegisterInput{
		CompanySlug: company.Slug, Name: "Again", Email: "carlos@example.com", Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrEmailInUse)

	_, _, err = f.svc.Clients.Register(f.ctx, ClientRegisterInput{
		CompanySlug: "missing", Name: "Nobody", Email: "nobody@example.com", Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrNotFound)

	logged, _, err := f.svc.Clients.Login(f.ctx, "", "carlos@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, client.ID, logged.ID)

	logged, _, err = f.svc.Clients.Login(f.ctx, company.Slug, "carlos@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, client.ID, logged.ID)

	_, _, err = f.svc.Clients.Login(f.ctx, "", "carlos@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = f.svc.Clients.Login(f.ctx, "missing", "carlos@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestStaffCreatedClientCannotLogIn(t *testing.T) {
	f := newFixture(t)
	owner, company := f.registerOwner(t, "owner@example.com")
	_, err := f.svc.Clients.Create(f.ctx, owner.ID, ClientInput{CompanyID: company.ID, Name: "Walk In", Email: "walkin@example.com"})
	require.NoError(t, err)

	_, _, err = f.svc.Clients.Login(f.ctx, "", "walkin@example.com", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestPortalBookingHonoursAdvanceNotice(t *testing.T) {
	b := newBookingFixture(t, 5)
	notice := 120
	_, err := b.svc.Settings.Update(b.ctx, b.company.ID, SettingsUpdate{AdvanceNoticeMinutes: &notice})
	require.NoError(t, err)

	client, _, err := b.svc.Clients.Register(b.ctx, ClientRegisterInput{
		CompanySlug: b.company.Slug, Name: "Portal", Email: "portal@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	booking := PortalBookingInput{
		UserID:      b.owner.ID,
		ScheduledAt: testNow.Add(time.Hour),
		Services:    []ServiceLineInput{{ServiceID: b.haircut.ID}},
	}
	_, err = b.svc.Clients.Book(b.ctx, client.ID, booking)
	assert.ErrorIs(t, err, ErrValidation)

	booking.ScheduledAt = testNow.Add(3 * time.Hour)
	appointment, err := b.svc.Clients.Book(b.ctx, client.ID, booking)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, appointment.Status)
	assert.Equal(t, client.ID, appointment.ClientID)

	mine, err := b.svc.Clients.Appointments(b.ctx, client.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, appointment.ID, mine[0].ID)
}

func TestListOwnClients(t *testing.T) {
	b := newBookingFixture(t, 5)
	staff := b.addStaff(t, b.company.ID, "staff@example.com", models.RoleUser)
	created := b.addClient(t, b.company.ID, staff.ID, "Created By Staff")
	served := b.addClient(t, b.company.ID, b.owner.ID, "Served By Staff")
	b.addClient(t, b.company.ID, b.owner.ID, "Someone Else")

	in := b.input()
	in.UserID = staff.ID
	in.ClientID = served.ID
	b.book(t, in, models.StatusPending)

	all, err := b.svc.Clients.List(b.ctx, b.company.ID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	own, err := b.svc.Clients.List(b.ctx, b.company.ID, uintPtr(staff.ID))
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Equal(t, created.ID, own[0].ID)
	assert.Equal(t, served.ID, own[1].ID)

	ok, err := b.svc.Clients.IsOwnedBy(b.ctx, served, staff.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = b.svc.Clients.IsOwnedBy(b.ctx, b.client, staff.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
