package services

import (
	"testing"

	"barberflow-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceCreationFansOutCommissionRules(t *testing.T) {
	f := newFixture(t)
	_, company := f.registerOwner(t, "owner@example.com")
	f.addStaff(t, company.ID, "one@example.com", models.RoleUser)
	f.addStaff(t, company.ID, "two@example.com", models.RoleUser)

	// A member without a commission account gets no rule.
	loose := models.User{Name: "Loose", Email: "loose@example.com", Password: "password123"}
	require.NoError(t, f.db.Create(&loose).Error)
	require.NoError(t, f.db.Create(&models.CompanyMember{CompanyID: company.ID, UserID: loose.ID}).Error)

	service := f.addService(t, company.ID, "Haircut", 50)

	var rules []models.CommissionRule
	require.NoError(t, f.db.Where("service_id = ?", service.ID).Find(&rules).Error)
	assert.Len(t, rules, 3)
	for _, rule := range rules {
		assert.Equal(t, models.CommissionPercentage, rule.Type)
		assert.InDelta(t, 40.0, rule.Value, 0.001)
	}
}

func TestServiceCreationSkipsMembersWithoutConfig(t *testing.T) {
	f := newFixture(t)
	owner, company := f.registerOwner(t, "owner@example.com")
	require.NoError(t, f.db.Where("company_id = ?", company.ID).Delete(&models.CommissionConfig{}).Error)

	service := f.addService(t, company.ID, "Shave", 30)
	assert.NotZero(t, service.ID)

	var rules int64
	require.NoError(t, f.db.Model(&models.CommissionRule{}).Where("service_id = ?", service.ID).Count(&rules).Error)
	assert.Zero(t, rules)
	assert.NotZero(t, owner.ID)
}

func TestNewStaffGetsRulesForExistingServices(t *testing.T) {
	f := newFixture(t)
	_, company := f.registerOwner(t, "owner@example.com")
	f.addService(t, company.ID, "Haircut", 50)
	f.addService(t, company.ID, "Beard", 25)

	staff := f.addStaff(t, company.ID, "staff@example.com", models.RoleUser)

	config, err := f.svc.Commissions.GetConfig(f.ctx, company.ID, staff.ID)
	require.NoError(t, err)
	assert.Len(t, config.Rules, 2)
}

func TestCatalogListAndDelete(t *testing.T) {
	f := newFixture(t)
	_, company := f.registerOwner(t, "owner@example.com")
	haircut := f.addService(t, company.ID, "Haircut", 50)
	inactive := false
	_, err := f.svc.Catalog.Create(f.ctx, ServiceInput{CompanyID: company.ID, Name: "Retired", Price: 10, IsActive: &inactive})
	require.NoError(t, err)

	all, err := f.svc.Catalog.List(f.ctx, company.ID, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := f.svc.Catalog.List(f.ctx, company.ID, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, haircut.ID, active[0].ID)

	require.NoError(t, f.svc.Catalog.Delete(f.ctx, haircut.ID))
	_, err = f.svc.Catalog.Get(f.ctx, haircut.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.Catalog.Create(f.ctx, ServiceInput{CompanyID: company.ID, Name: "Free", Price: -1})
	assert.ErrorIs(t, err, ErrValidation)
}
