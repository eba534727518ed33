package services

import (
	"context"
	"strings"
	"time"

	"barberflow-backend/models"
	"barberflow-backend/utils"

	"gorm.io/gorm"
)

type UserService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewUserService(db *gorm.DB, now func() time.Time) *UserService {
	return &UserService{db: db, now: now}
}

type StaffInput struct {
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Password    string      `json:"password"`
	Phone       string      `json:"phone"`
	Role        models.Role `json:"role"`
	CompanyID   uint        `json:"companyId"`
	Permissions []string    `json:"permissions"`
}

type UserUpdate struct {
	Name     *string      `json:"name"`
	Email    *string      `json:"email"`
	Phone    *string      `json:"phone"`
	Password *string      `json:"password"`
	Role     *models.Role `json:"role"`
}

// CreateStaff is the administrative bootstrap of a staff account: the user,
// their permissions, the membership, a commission account and this year's
// goals, all or nothing.
func (s *UserService) CreateStaff(ctx context.Context, in StaffInput) (*models.User, error) {
	if strings.TrimSpace(in.Name) == "" || in.Email == "" || in.Password == "" {
		return nil, validationError("name, email and password are required")
	}
	if in.Role == "" {
		in.Role = models.RoleUser
	}
	if in.Role != models.RoleManager && in.Role != models.RoleUser {
		return nil, validationError("role must be MANAGER or USER")
	}
	if in.Phone != "" && !utils.ValidatePhone(in.Phone) {
		return nil, validationError("invalid phone number")
	}

	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureEmailFree(tx, in.Email, 0); err != nil {
			return err
		}
		user = models.User{
			Name:     strings.TrimSpace(in.Name),
			Email:    in.Email,
			Password: in.Password,
			Phone:    utils.CleanPhone(in.Phone),
			Role:     in.Role,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		perm, err := assignPermissions(tx, user.ID, user.Role, in.Permissions)
		if err != nil {
			return err
		}
		user.Permission = perm
		if _, err := addMember(tx, in.CompanyID, user.ID); err != nil {
			return err
		}
		if _, err := ensureCommissionConfig(tx, user.ID, in.CompanyID); err != nil {
			return err
		}
		_, err = provisionGoals(tx, user.ID, in.CompanyID, s.now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Preload("Permission").First(&user, id).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &user, nil
}

// Exists backs the token middleware: a deleted user's token stops working.
func (s *UserService) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// SharesCompany reports whether target belongs to a company actor can access
// and to no company actor cannot access.
func (s *UserService) SharesCompany(ctx context.Context, actorID, targetID uint) (bool, error) {
	db := s.db.WithContext(ctx)
	var count int64
	err := db.Model(&models.CompanyMember{}).
		Where("user_id = ? AND company_id IN (?)", targetID, accessibleCompanyIDs(db, actorID)).
		Count(&count).Error
	if err != nil || count == 0 {
		return false, err
	}
	foreign, err := foreignCompanies(db, actorID, targetID)
	return foreign == 0, err
}

// Update changes a profile on behalf of actorID. Email and password belong to
// the account holder alone.
func (s *UserService) Update(ctx context.Context, actorID, id uint, in UserUpdate) (*models.User, error) {
	if actorID != id && (in.Email != nil || in.Password != nil) {
		return nil, forbidden("only the account holder can change email or password")
	}
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{}
		if in.Name != nil {
			if strings.TrimSpace(*in.Name) == "" {
				return validationError("name cannot be empty")
			}
			updates["name"] = strings.TrimSpace(*in.Name)
		}
		if in.Email != nil && *in.Email != user.Email {
			if *in.Email == "" {
				return validationError("email cannot be empty")
			}
			if err := ensureEmailFree(tx, *in.Email, id); err != nil {
				return err
			}
			updates["email"] = *in.Email
		}
		if in.Phone != nil {
			if *in.Phone != "" && !utils.ValidatePhone(*in.Phone) {
				return validationError("invalid phone number")
			}
			updates["phone"] = utils.CleanPhone(*in.Phone)
		}
		if in.Password != nil {
			if len(*in.Password) < 6 {
				return validationError("password must be at least 6 characters")
			}
			hashed, err := utils.HashPassword(*in.Password)
			if err != nil {
				return err
			}
			updates["password"] = hashed
		}
		if in.Role != nil && *in.Role != user.Role {
			if !in.Role.Valid() {
				return validationError("invalid role %q", *in.Role)
			}
			if err := authorizeRoleChange(tx, actorID, id, *in.Role); err != nil {
				return err
			}
			updates["role"] = *in.Role
			if _, err := assignPermissions(tx, id, *in.Role, nil); err != nil {
				return err
			}
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete soft deletes the user together with their memberships.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owned int64
		if err := tx.Model(&models.Company{}).Where("owner_id = ?", id).Count(&owned).Error; err != nil {
			return err
		}
		if owned > 0 {
			return validationError("a company owner cannot be deleted")
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.CompanyMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
}

// Me returns the caller with permissions and accessible companies.
func (s *UserService) Me(ctx context.Context, id uint) (*models.User, []models.Company, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	companies, err := NewCompanyService(s.db).ListForUser(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return user, companies, nil
}
