package services

import (
	"testing"
	"time"

	"barberflow-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingFixture struct {
	*fixture
	owner   *models.User
	company *models.Company
	client  *models.Client
	haircut *models.Service
	pomade  *models.Product
}

func newBookingFixture(t *testing.T, stock int) *bookingFixture {
	f := newFixture(t)
	owner, company := f.registerOwner(t, "owner@example.com")
	return &bookingFixture{
		fixture: f,
		owner:   owner,
		company: company,
		client:  f.addClient(t, company.ID, owner.ID, "Carlos"),
		haircut: f.addService(t, company.ID, "Haircut", 50),
		pomade:  f.addProduct(t, company.ID, "Pomade", 20, stock),
	}
}

func (b *bookingFixture) input(products ...ProductLineInput) AppointmentInput {
	return AppointmentInput{
		CompanyID:   b.company.ID,
		UserID:      b.owner.ID,
		ClientID:    b.client.ID,
		ScheduledAt: testNow.Add(48 * time.Hour),
		Services:    []ServiceLineInput{{ServiceID: b.haircut.ID}},
		Products:    products,
	}
}

func (b *bookingFixture) stock(t *testing.T) int {
	t.Helper()
	product, err := b.svc.Products.Get(b.ctx, b.pomade.ID)
	require.NoError(t, err)
	return product.Stock
}

func TestCreateAppointmentPricesLinesAndTakesStock(t *testing.T) {
	b := newBookingFixture(t, 5)

	appointment, err := b.svc.Appointments.Create(b.ctx, b.input(
		ProductLineInput{ProductID: b.pomade.ID, Quantity: intPtr(2)},
		ProductLineInput{ProductID: b.pomade.ID},
	), SourceStaff)
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, appointment.Status)
	require.Len(t, appointment.Services, 1)
	assert.Equal(t, 1, appointment.Services[0].Quantity)
	require.Len(t, appointment.Products, 2)
	assert.InDelta(t, 110.0, appointment.Total(), 0.001)
	require.NotNil(t, appointment.Client)
	assert.Equal(t, "Carlos", appointment.Client.Name)

	assert.Equal(t, 2, b.stock(t))
}

func TestCreateAppointmentRollsBackOnInsufficientStock(t *testing.T) {
	b := newBookingFixture(t, 1)

	_, err := b.svc.Appointments.Create(b.ctx, b.input(
		ProductLineInput{ProductID: b.pomade.ID},
		ProductLineInput{ProductID: b.pomade.ID, Quantity: intPtr(2)},
	), SourceStaff)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Pomade")

	var count int64
	require.NoError(t, b.db.Model(&models.Appointment{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Equal(t, 1, b.stock(t))
}

func TestCreateAppointmentRejectsForeignEntities(t *testing.T) {
	b := newBookingFixture(t, 5)
	_, other := b.registerOwner(t, "other@example.com")
	foreign := b.addService(t, other.ID, "Foreign", 10)
	outsider := b.addStaff(t, other.ID, "outsider@example.com", models.RoleUser)

	in := b.input()
	in.Services = []ServiceLineInput{{ServiceID: foreign.ID}}
	_, err := b.svc.Appointments.Create(b.ctx, in, SourceStaff)
	assert.ErrorIs(t, err, ErrValidation)

	in = b.input()
	in.UserID = outsider.ID
	_, err = b.svc.Appointments.Create(b.ctx, in, SourceStaff)
	assert.ErrorIs(t, err, ErrValidation)

	in = b.input()
	in.Services = nil
	_, err = b.svc.Appointments.Create(b.ctx, in, SourceStaff)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAppointmentStatusTransitions(t *testing.T) {
	b := newBookingFixture(t, 5)
	appointment := b.book(t, b.input(ProductLineInput{ProductID: b.pomade.ID, Quantity: intPtr(3)}), models.StatusPending)
	assert.Equal(t, 2, b.stock(t))

	confirmed, err := b.svc.Appointments.UpdateStatus(b.ctx, appointment.ID, models.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, confirmed.Status)

	_, err = b.svc.Appointments.UpdateStatus(b.ctx, appointment.ID, models.StatusPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = b.svc.Appointments.UpdateStatus(b.ctx, appointment.ID, models.StatusCanceled)
	require.NoError(t, err)
	assert.Equal(t, 5, b.stock(t))

	_, err = b.svc.Appointments.UpdateStatus(b.ctx, appointment.ID, models.StatusCompleted)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = b.svc.Appointments.UpdateStatus(b.ctx, appointment.ID, models.AppointmentStatus("LOST"))
	assert.ErrorIs(t, err, ErrValidation)

	notes := "late"
	_, err = b.svc.Appointments.Update(b.ctx, appointment.ID, AppointmentUpdate{Notes: &notes})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeleteOpenAppointmentRestocks(t *testing.T) {
	b := newBookingFixture(t, 5)
	open := b.book(t, b.input(ProductLineInput{ProductID: b.pomade.ID, Quantity: intPtr(2)}), models.StatusPending)
	done := b.book(t, b.input(ProductLineInput{ProductID: b.pomade.ID}), models.StatusCompleted)
	assert.Equal(t, 2, b.stock(t))

	require.NoError(t, b.svc.Appointments.Delete(b.ctx, open.ID))
	require.NoError(t, b.svc.Appointments.Delete(b.ctx, done.ID))
	assert.Equal(t, 4, b.stock(t))

	_, err := b.svc.Appointments.Get(b.ctx, open.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := b.svc.Appointments.List(b.ctx, AppointmentFilter{CompanyID: b.company.ID})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListAndPendingFilters(t *testing.T) {
	b := newBookingFixture(t, 5)
	staff := b.addStaff(t, b.company.ID, "staff@example.com", models.RoleUser)

	first := b.book(t, b.input(), models.StatusPending)
	in := b.input()
	in.UserID = staff.ID
	in.ScheduledAt = testNow.Add(24 * time.Hour)
	second := b.book(t, in, models.StatusPending)
	b.book(t, b.input(), models.StatusCompleted)

	pending, err := b.svc.Appointments.Pending(b.ctx, b.company.ID, nil)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, second.ID, pending[0].ID)
	assert.Equal(t, first.ID, pending[1].ID)

	mine, err := b.svc.Appointments.List(b.ctx, AppointmentFilter{CompanyID: b.company.ID, UserID: uintPtr(staff.ID)})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, second.ID, mine[0].ID)

	completed, err := b.svc.Appointments.List(b.ctx, AppointmentFilter{CompanyID: b.company.ID, Status: models.StatusCompleted})
	require.NoError(t, err)
	assert.Len(t, completed, 1)
}
