package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"barberflow-backend/config"
	"barberflow-backend/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testNow is 12:00 on 2025-06-15 in local (UTC-3) time.
var testNow = time.Date(2025, 6, 15, 15, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), config.GormConfig(false))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, models.AutoMigrate(db))
	return db
}

type fixture struct {
	db  *gorm.DB
	svc *Services
	ctx context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	return &fixture{
		db:  db,
		svc: New(db, Options{JWTSecret: []byte("test-secret"), Now: func() time.Time { return testNow }}),
		ctx: context.Background(),
	}
}

func (f *fixture) registerOwner(t *testing.T, email string) (*models.User, *models.Company) {
	t.Helper()
	res, err := f.svc.Auth.Register(f.ctx, RegisterInput{
		Name:        "Owner",
		Email:       email,
		Password:    "password123",
		CompanyName: "Barber Shop",
	})
	require.NoError(t, err)
	require.NotNil(t, res.Company)
	return res.User, res.Company
}

func (f *fixture) addStaff(t *testing.T, companyID uint, email string, role models.Role) *models.User {
	t.Helper()
	user, err := f.svc.Users.CreateStaff(f.ctx, StaffInput{
		Name:      "Staff " + email,
		Email:     email,
		Password:  "password123",
		Role:      role,
		CompanyID: companyID,
	})
	require.NoError(t, err)
	return user
}

func (f *fixture) addClient(t *testing.T, companyID, createdBy uint, name string) *models.Client {
	t.Helper()
	client, err := f.svc.Clients.Create(f.ctx, createdBy, ClientInput{
		CompanyID: companyID,
		Name:      name,
		Phone:     "+5511999998888",
	})
	require.NoError(t, err)
	return client
}

func (f *fixture) addService(t *testing.T, companyID uint, name string, price float64) *models.Service {
	t.Helper()
	service, err := f.svc.Catalog.Create(f.ctx, ServiceInput{CompanyID: companyID, Name: name, Price: price, Duration: 30})
	require.NoError(t, err)
	return service
}

func (f *fixture) addProduct(t *testing.T, companyID uint, name string, price float64, stock int) *models.Product {
	t.Helper()
	product, err := f.svc.Products.Create(f.ctx, ProductInput{CompanyID: companyID, Name: name, Price: price, Stock: stock})
	require.NoError(t, err)
	return product
}

func (f *fixture) book(t *testing.T, in AppointmentInput, status models.AppointmentStatus) *models.Appointment {
	t.Helper()
	appointment, err := f.svc.Appointments.Create(f.ctx, in, SourceStaff)
	require.NoError(t, err)
	if status != models.StatusPending {
		appointment, err = f.svc.Appointments.UpdateStatus(f.ctx, appointment.ID, status)
		require.NoError(t, err)
	}
	return appointment
}

func intPtr(v int) *int { return &v }

func uintPtr(v uint) *uint { return &v }
