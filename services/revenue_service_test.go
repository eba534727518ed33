package services

import (
	"testing"
	"time"

	"barberflow-backend/models"
	"barberflow-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reportFixture struct {
	*bookingFixture
	staff *models.User
	beard *models.Service
	june  ReportFilter
}

func newReportFixture(t *testing.T) *reportFixture {
	b := newBookingFixture(t, 100)
	period, err := utils.ResolvePeriod("2025-06-01", "2025-06-30", "", testNow)
	require.NoError(t, err)
	return &reportFixture{
		bookingFixture: b,
		staff:          b.addStaff(t, b.company.ID, "staff@example.com", models.RoleUser),
		beard:          b.addService(t, b.company.ID, "Beard", 30),
		june:           ReportFilter{CompanyID: b.company.ID, Period: period},
	}
}

func (r *reportFixture) at(t *testing.T, userID uint, when time.Time, status models.AppointmentStatus, services []ServiceLineInput, products []ProductLineInput) *models.Appointment {
	t.Helper()
	return r.book(t, AppointmentInput{
		CompanyID:   r.company.ID,
		UserID:      userID,
		ClientID:    r.client.ID,
		ScheduledAt: when,
		Services:    services,
		Products:    products,
	}, status)
}

func TestRevenueSummary(t *testing.T) {
	r := newReportFixture(t)
	haircut := []ServiceLineInput{{ServiceID: r.haircut.ID, Quantity: 2}}
	pomade := []ProductLineInput{{ProductID: r.pomade.ID}}

	// Current month: 2x50 + 20 = 120, plus 30 from the staff member.
	r.at(t, r.owner.ID, time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC), models.StatusCompleted, haircut, pomade)
	r.at(t, r.staff.ID, time.Date(2025, 6, 12, 15, 0, 0, 0, time.UTC), models.StatusCompleted,
		[]ServiceLineInput{{ServiceID: r.beard.ID}}, nil)
	r.at(t, r.owner.ID, time.Date(2025, 6, 13, 15, 0, 0, 0, time.UTC), models.StatusCanceled, haircut, nil)
	r.at(t, r.owner.ID, time.Date(2025, 6, 14, 15, 0, 0, 0, time.UTC), models.StatusConfirmed, haircut, nil)
	// Previous month: 200.
	r.at(t, r.owner.ID, time.Date(2025, 5, 10, 15, 0, 0, 0, time.UTC), models.StatusCompleted,
		[]ServiceLineInput{{ServiceID: r.haircut.ID, Quantity: 4}}, nil)

	summary, err := r.svc.Revenue.Summary(r.ctx, r.june)
	require.NoError(t, err)
	assert.InDelta(t, 150.0, summary.Total, 0.001)
	assert.InDelta(t, 130.0, summary.ServicesRevenue, 0.001)
	assert.InDelta(t, 20.0, summary.ProductsRevenue, 0.001)
	assert.Equal(t, 2, summary.Appointments)
	assert.InDelta(t, 75.0, summary.AverageTicket, 0.001)
	assert.InDelta(t, 200.0, summary.PreviousTotal, 0.001)
	assert.InDelta(t, -25.0, summary.Trend, 0.001)
	assert.InDelta(t, 100.0, summary.AppointmentsTrend, 0.001)

	staffOnly := r.june
	staffOnly.UserID = uintPtr(r.staff.ID)
	summary, err = r.svc.Revenue.Summary(r.ctx, staffOnly)
	require.NoError(t, err)
	assert.InDelta(t, 30.0, summary.Total, 0.001)
	assert.Zero(t, summary.PreviousTotal)
	assert.InDelta(t, 100.0, summary.Trend, 0.001)
}

func TestRevenueByStaffAndTopServices(t *testing.T) {
	r := newReportFixture(t)
	r.at(t, r.owner.ID, time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC), models.StatusCompleted,
		[]ServiceLineInput{{ServiceID: r.haircut.ID}}, nil)
	r.at(t, r.staff.ID, time.Date(2025, 6, 11, 15, 0, 0, 0, time.UTC), models.StatusCompleted,
		[]ServiceLineInput{{ServiceID: r.beard.ID, Quantity: 3}}, nil)
	r.at(t, r.staff.ID, time.Date(2025, 6, 12, 15, 0, 0, 0, time.UTC), models.StatusCompleted,
		[]ServiceLineInput{{ServiceID: r.beard.ID}}, nil)

	staff, err := r.svc.Revenue.ByStaff(r.ctx, r.june)
	require.NoError(t, err)
	require.Len(t, staff, 2)
	assert.Equal(t, r.staff.ID, staff[0].UserID)
	assert.InDelta(t, 120.0, staff[0].Total, 0.001)
	assert.Equal(t, 2, staff[0].Appointments)
	assert.Equal(t, r.owner.ID, staff[1].UserID)
	assert.Equal(t, "Owner", staff[1].Name)

	top, err := r.svc.Revenue.TopServices(r.ctx, r.june, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, r.beard.ID, top[0].ServiceID)
	assert.Equal(t, "Beard", top[0].Name)
	assert.Equal(t, 4, top[0].Count)
	assert.InDelta(t, 120.0, top[0].Revenue, 0.001)
}
