package services

import (
	"context"
	"errors"

	"barberflow-backend/models"

	"gorm.io/gorm"
)

type PermissionService struct {
	db *gorm.DB
}

func NewPermissionService(db *gorm.DB) *PermissionService {
	return &PermissionService{db: db}
}

// FindByUserID returns the live permission row of a user.
func (s *PermissionService) FindByUserID(ctx context.Context, userID uint) (*models.Permission, error) {
	var perm models.Permission
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&perm).Error; err != nil {
		return nil, translate(err, "permission")
	}
	return &perm, nil
}

// Assign rebuilds the permission row of a user from a role preset plus extras.
func (s *PermissionService) Assign(ctx context.Context, actorID, userID uint, role models.Role, extras []string) (*models.Permission, error) {
	if !role.Valid() {
		return nil, validationError("invalid role %q", role)
	}
	var perm *models.Permission
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return translate(err, "user")
		}
		if err := authorizeRoleChange(tx, actorID, userID, role); err != nil {
			return err
		}
		var err error
		perm, err = assignPermissions(tx, userID, role, extras)
		if err != nil {
			return err
		}
		if user.Role != role {
			return tx.Model(&user).Update("role", role).Error
		}
		return nil
	})
	return perm, err
}

// authorizeRoleChange lets only an ADMIN grant the ADMIN role or change their
// own permissions.
func authorizeRoleChange(tx *gorm.DB, actorID, targetID uint, role models.Role) error {
	var actor models.User
	if err := tx.Select("id", "role").First(&actor, actorID).Error; err != nil {
		return translate(err, "user")
	}
	if actor.Role == models.RoleAdmin {
		return nil
	}
	if actorID == targetID {
		return forbidden("you cannot change your own permissions")
	}
	if role == models.RoleAdmin {
		return forbidden("only an ADMIN can grant the ADMIN role")
	}
	return nil
}

// assignPermissions overwrites the existing row in place, restoring it if it
// was soft deleted, so a user never ends up with two rows.
func assignPermissions(tx *gorm.DB, userID uint, role models.Role, extras []string) (*models.Permission, error) {
	var perm models.Permission
	err := tx.Unscoped().Where("user_id = ?", userID).First(&perm).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		perm = models.Permission{UserID: userID}
		perm.ApplyRole(role, extras)
		if err := tx.Create(&perm).Error; err != nil {
			return nil, err
		}
		return &perm, nil
	case err != nil:
		return nil, err
	}

	perm.ApplyRole(role, extras)
	perm.DeletedAt = gorm.DeletedAt{}
	if err := tx.Unscoped().Save(&perm).Error; err != nil {
		return nil, err
	}
	return &perm, nil
}

// Update flips individual flags. Any unknown name rejects the whole update.
func (s *PermissionService) Update(ctx context.Context, actorID, userID uint, flags map[string]bool) (*models.Permission, error) {
	if len(flags) == 0 {
		return nil, validationError("no permissions given")
	}
	for name := range flags {
		if !models.IsPermissionName(name) {
			return nil, validationError("unknown permission %q", name)
		}
	}
	if actorID == userID {
		if err := authorizeRoleChange(s.db.WithContext(ctx), actorID, userID, ""); err != nil {
			return nil, err
		}
	}
	perm, err := s.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	for name, value := range flags {
		perm.Set(models.PermissionName(name), value)
	}
	if err := s.db.WithContext(ctx).Save(perm).Error; err != nil {
		return nil, err
	}
	return perm, nil
}

func (s *PermissionService) Delete(ctx context.Context, userID uint) error {
	result := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Permission{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound("permission")
	}
	return nil
}
