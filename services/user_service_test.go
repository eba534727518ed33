package services

import (
	"testing"

	"barberflow-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateStaffBootstrap(t *testing.T) {
	f := newFixture(t)
	_, company := f.registerOwner(t, "owner@example.com")

	staff, err := f.svc.Users.CreateStaff(f.ctx, StaffInput{
		Name:        "Ana",
		Email:       "ana@example.com",
		Password:    "password123",
		CompanyID:   company.ID,
		Permissions: []string{"viewAllClients"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, staff.Role)
	require.NotNil(t, staff.Permission)
	assert.True(t, staff.Permission.ViewAllClients)
	assert.True(t, staff.Permission.ViewOwnAppointments)
	assert.False(t, staff.Permission.ManageAppointments)

	assert.NoError(t, f.svc.Companies.Authorize(f.ctx, staff.ID, company.ID))
	goals, err := f.svc.Goals.List(f.ctx, company.ID, staff.ID, 2025)
	require.NoError(t, err)
	assert.Len(t, goals, 7)

	_, err = f.svc.Users.CreateStaff(f.ctx, StaffInput{
		Name: "Root", Email: "root@example.com", Password: "password123", Role: models.RoleAdmin, CompanyID: company.ID,
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.Users.CreateStaff(f.ctx, StaffInput{
		Name: "Twin", Email: "ana@example.com", Password: "password123", CompanyID: company.ID,
	})
	assert.ErrorIs(t, err, ErrEmailInUse)
}

func TestUpdateUserRoleRebuildsPermissions(t *testing.T) {
	f := newFixture(t)
	owner, company := f.registerOwner(t, "owner@example.com")
	staff := f.addStaff(t, company.ID, "staff@example.com", models.RoleUser)

	role := models.RoleManager
	name := "Promoted"
	updated, err := f.svc.Users.Update(f.ctx, owner.ID, staff.ID, UserUpdate{Name: &name, Role: &role})
	require.NoError(t, err)
	assert.Equal(t, "Promoted", updated.Name)
	assert.Equal(t, models.RoleManager, updated.Role)
	assert.True(t, updated.Permission.ManageAppointments)

	taken := "owner@example.com"
	_, err = f.svc.Users.Update(f.ctx, staff.ID, staff.ID, UserUpdate{Email: &taken})
	assert.ErrorIs(t, err, ErrEmailInUse)
}

func TestSharesCompany(t *testing.T) {
	f := newFixture(t)
	owner, company := f.registerOwner(t, "owner@example.com")
	staff := f.addStaff(t, company.ID, "staff@example.com", models.RoleUser)
	stranger, _ := f.registerOwner(t, "stranger@example.com")

	ok, err := f.svc.Users.SharesCompany(f.ctx, owner.ID, staff.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.svc.Users.SharesCompany(f.ctx, stranger.ID, staff.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSharesCompanyRequiresEveryMembership(t *testing.T) {
	f := newFixture(t)
	ownerA, companyA := f.registerOwner(t, "a@example.com")
	ownerB, _ := f.registerOwner(t, "b@example.com")
	require.NoError(t, f.db.Create(&models.CompanyMember{CompanyID: companyA.ID, UserID: ownerB.ID}).Error)

	ok, err := f.svc.Users.SharesCompany(f.ctx, ownerA.ID, ownerB.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = f.svc.Users.SharesCompany(f.ctx, ownerB.ID, ownerA.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCredentialsChangeOnlyForAccountHolder(t *testing.T) {
	f := newFixture(t)
	owner, company := f.registerOwner(t, "owner@example.com")
	staff := f.addStaff(t, company.ID, "staff@example.com", models.RoleUser)

	password := "chosen-by-boss"
	_, err := f.svc.Users.Update(f.ctx, owner.ID, staff.ID, UserUpdate{Password: &password})
	assert.ErrorIs(t, err, ErrForbidden)
	email := "boss-owned@example.com"
	_, err = f.svc.Users.Update(f.ctx, owner.ID, staff.ID, UserUpdate{Email: &email})
	assert.ErrorIs(t, err, ErrForbidden)

	_, _, err = f.svc.Auth.Login(f.ctx, "staff@example.com", "chosen-by-boss")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	password = "my-new-secret"
	_, err = f.svc.Users.Update(f.ctx, staff.ID, staff.ID, UserUpdate{Password: &password})
	require.NoError(t, err)
	_, _, err = f.svc.Auth.Login(f.ctx, "staff@example.com", "my-new-secret")
	assert.NoError(t, err)
}

func TestDeleteUser(t *testing.T) {
	f := newFixture(t)
	owner, company := f.registerOwner(t, "owner@example.com")
	staff := f.addStaff(t, company.ID, "staff@example.com", models.RoleUser)

	assert.ErrorIs(t, f.svc.Users.Delete(f.ctx, owner.ID), ErrValidation)
	require.NoError(t, f.svc.Users.Delete(f.ctx, staff.ID))

	_, err := f.svc.Users.Get(f.ctx, staff.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	members, err := f.svc.Companies.Members(f.ctx, company.ID)
	require.NoError(t, err)
	assert.Len(t, members, 1)
}
