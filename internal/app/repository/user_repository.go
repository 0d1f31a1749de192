package repository

import (
	"time"

	"github.com/aionlab/aion-backend/internal/app/model"
	"github.com/aionlab/aion-backend/pkg/logger"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	Update(user *model.User) error
	Delete(id uint) error
	CreateLoginAudit(audit *model.LoginAudit) error
	FindLoginAudits(userID uint, limit int) ([]model.LoginAudit, error)
	CreatePasswordReset(reset *model.PasswordReset) error
	FindPasswordResetByToken(token string) (*model.PasswordReset, error)
	MarkPasswordResetUsed(id uint) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	logger.Debug("Creating user in database", map[string]interface{}{
		"email": user.Email,
	})

	if err := r.db.Create(user).Error; err != nil {
		logger.Error("Failed to create user in database", err, map[string]interface{}{
			"email": user.Email,
		})
		return err
	}

	logger.Debug("User created in database", map[string]interface{}{
		"user_id": user.ID,
	})
	return nil
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find user by ID in database", err, map[string]interface{}{
				"user_id": id,
			})
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find user by email in database", err, map[string]interface{}{
				"email": email,
			})
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(user *model.User) error {
	if err := r.db.Save(user).Error; err != nil {
		logger.Error("Failed to update user in database", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return err
	}
	return nil
}

func (r *userRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.User{}, id).Error; err != nil {
		logger.Error("Failed to delete user from database", err, map[string]interface{}{
			"user_id": id,
		})
		return err
	}
	return nil
}

func (r *userRepository) CreateLoginAudit(audit *model.LoginAudit) error {
	if err := r.db.Create(audit).Error; err != nil {
		logger.Error("Failed to record login audit", err, map[string]interface{}{
			"user_id": audit.UserID,
		})
		return err
	}
	return nil
}

func (r *userRepository) FindLoginAudits(userID uint, limit int) ([]model.LoginAudit, error) {
	if limit <= 0 {
		limit = 20
	}
	var audits []model.LoginAudit
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&audits).Error
	if err != nil {
		logger.Error("Failed to list login audits", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return audits, nil
}

func (r *userRepository) CreatePasswordReset(reset *model.PasswordReset) error {
	if err := r.db.Create(reset).Error; err != nil {
		logger.Error("Failed to create password reset token", err, map[string]interface{}{
			"user_id": reset.UserID,
		})
		return err
	}
	return nil
}

func (r *userRepository) FindPasswordResetByToken(token string) (*model.PasswordReset, error) {
	var reset model.PasswordReset
	if err := r.db.Where("token = ?", token).First(&reset).Error; err != nil {
		return nil, err
	}
	return &reset, nil
}

func (r *userRepository) MarkPasswordResetUsed(id uint) error {
	now := time.Now()
	return r.db.Model(&model.PasswordReset{}).
		Where("id = ?", id).
		Update("used_at", &now).Error
}
