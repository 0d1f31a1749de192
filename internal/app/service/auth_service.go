package service

import (
	"context"
	"errors"
	"time"

	"github.com/aionlab/aion-backend/internal/app/model"
	"github.com/aionlab/aion-backend/internal/app/repository"
	"github.com/aionlab/aion-backend/pkg/logger"
	"github.com/aionlab/aion-backend/pkg/redis"
	"github.com/aionlab/aion-backend/pkg/util"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists = errors.New("이미 사용 중인 이메일입니다")
	ErrInvalidCredentials = errors.New("이메일 또는 비밀번호가 올바르지 않습니다")
	ErrUserNotFound       = errors.New("사용자를 찾을 수 없습니다")
	ErrResetTokenInvalid  = errors.New("유효하지 않은 비밀번호 재설정 토큰입니다")
	ErrResetTokenExpired  = errors.New("비밀번호 재설정 토큰이 만료되었습니다")
)

const passwordResetExpiry = 30 * time.Minute

type AuthService interface {
	Register(email, password, name, phone, birthDate string) (*model.User, *util.TokenPair, error)
	Login(email, password, ip, userAgent string) (*model.User, *util.TokenPair, error)
	Logout(ctx context.Context, accessToken string, expiry time.Duration) error
	GetUserByID(id uint) (*model.User, error)
	UpdateProfile(userID uint, name, phone, birthDate string) (*model.User, error)
	DeleteAccount(userID uint) error
	RequestPasswordReset(email string) (string, error)
	ResetPassword(token, newPassword string) error
	GetLoginHistory(userID uint, limit int) ([]model.LoginAudit, error)
}

type authService struct {
	userRepo      repository.UserRepository
	jwtSecret     string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	jwtSecret string,
	accessExpiry, refreshExpiry time.Duration,
) AuthService {
	return &authService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

func (s *authService) Register(email, password, name, phone, birthDate string) (*model.User, *util.TokenPair, error) {
	logger.Info("Attempting user registration", map[string]interface{}{
		"email": email,
		"name":  name,
	})

	existingUser, err := s.userRepo.FindByEmail(email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing user", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, err
	}
	if existingUser != nil {
		logger.Warn("Registration failed: email already exists", map[string]interface{}{
			"email": email,
		})
		return nil, nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := util.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hashedPassword,
		Name:         name,
		Phone:        phone,
		BirthDate:    birthDate,
		Role:         model.RoleUser,
	}

	if err := s.userRepo.Create(user); err != nil {
		logger.Error("Failed to create user in database", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, err
	}

	tokens, err := util.GenerateTokenPair(
		user.ID,
		user.Email,
		string(user.Role),
		s.jwtSecret,
		s.accessExpiry,
		s.refreshExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"user_id": user.ID,
			"email":   email,
		})
		return nil, nil, err
	}

	logger.Info("User registered successfully", map[string]interface{}{
		"user_id": user.ID,
		"email":   email,
		"role":    user.Role,
	})

	return user, tokens, nil
}

func (s *authService) Login(email, password, ip, userAgent string) (*model.User, *util.TokenPair, error) {
	logger.Info("Login attempt", map[string]interface{}{
		"email": email,
	})

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: user not found", map[string]interface{}{
				"email": email,
			})
			return nil, nil, ErrInvalidCredentials
		}
		logger.Error("Failed to find user", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, err
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login failed: invalid password", map[string]interface{}{
			"email":   email,
			"user_id": user.ID,
		})
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := util.GenerateTokenPair(
		user.ID,
		user.Email,
		string(user.Role),
		s.jwtSecret,
		s.accessExpiry,
		s.refreshExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"user_id": user.ID,
			"email":   email,
		})
		return nil, nil, err
	}

	// 로그인 기록은 부가 정보라 실패해도 로그인을 막지 않는다
	audit := &model.LoginAudit{
		UserID:    user.ID,
		IP:        ip,
		UserAgent: userAgent,
	}
	if err := s.userRepo.CreateLoginAudit(audit); err != nil {
		logger.Warn("Failed to record login audit", map[string]interface{}{
			"user_id": user.ID,
		})
	}

	logger.Info("User logged in successfully", map[string]interface{}{
		"user_id": user.ID,
		"email":   email,
		"role":    user.Role,
	})

	return user, tokens, nil
}

func (s *authService) Logout(ctx context.Context, accessToken string, expiry time.Duration) error {
	if err := redis.BlacklistToken(ctx, accessToken, expiry); err != nil {
		logger.Error("Failed to blacklist access token", err, nil)
		return err
	}
	return nil
}

func (s *authService) GetUserByID(id uint) (*model.User, error) {
	logger.Debug("Fetching user by ID", map[string]interface{}{
		"user_id": id,
	})

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("User not found", map[string]interface{}{
				"user_id": id,
			})
			return nil, ErrUserNotFound
		}
		logger.Error("Failed to fetch user", err, map[string]interface{}{
			"user_id": id,
		})
		return nil, err
	}

	return user, nil
}

func (s *authService) UpdateProfile(userID uint, name, phone, birthDate string) (*model.User, error) {
	logger.Info("Updating user profile", map[string]interface{}{
		"user_id": userID,
	})

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("User not found for profile update", map[string]interface{}{
				"user_id": userID,
			})
			return nil, ErrUserNotFound
		}
		logger.Error("Failed to fetch user for profile update", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	updated := false
	if name != "" && name != user.Name {
		user.Name = name
		updated = true
	}
	if phone != "" && phone != user.Phone {
		user.Phone = phone
		updated = true
	}
	if birthDate != "" && birthDate != user.BirthDate {
		user.BirthDate = birthDate
		updated = true
	}

	if !updated {
		logger.Debug("No changes detected for user profile", map[string]interface{}{
			"user_id": userID,
		})
		return user, nil
	}

	if err := s.userRepo.Update(user); err != nil {
		logger.Error("Failed to update user profile", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("User profile updated successfully", map[string]interface{}{
		"user_id": user.ID,
	})

	return user, nil
}

func (s *authService) DeleteAccount(userID uint) error {
	logger.Info("Deleting user account", map[string]interface{}{
		"user_id": userID,
	})

	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.userRepo.Delete(userID); err != nil {
		logger.Error("Failed to delete user account", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}

	logger.Info("User account deleted", map[string]interface{}{
		"user_id": userID,
	})
	return nil
}

func (s *authService) RequestPasswordReset(email string) (string, error) {
	logger.Info("Password reset requested", map[string]interface{}{
		"email": email,
	})

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 계정 존재 여부를 노출하지 않는다
			logger.Warn("Password reset requested for unknown email", map[string]interface{}{
				"email": email,
			})
			return "", nil
		}
		return "", err
	}

	reset := &model.PasswordReset{
		UserID:    user.ID,
		Token:     uuid.New().String(),
		ExpiresAt: time.Now().Add(passwordResetExpiry),
	}

	if err := s.userRepo.CreatePasswordReset(reset); err != nil {
		logger.Error("Failed to create password reset", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return "", err
	}

	return reset.Token, nil
}

func (s *authService) ResetPassword(token, newPassword string) error {
	reset, err := s.userRepo.FindPasswordResetByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResetTokenInvalid
		}
		return err
	}

	if reset.UsedAt != nil {
		return ErrResetTokenInvalid
	}
	if time.Now().After(reset.ExpiresAt) {
		return ErrResetTokenExpired
	}

	user, err := s.userRepo.FindByID(reset.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	hashedPassword, err := util.HashPassword(newPassword)
	if err != nil {
		logger.Error("Failed to hash new password", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return err
	}

	user.PasswordHash = hashedPassword
	if err := s.userRepo.Update(user); err != nil {
		logger.Error("Failed to update password", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return err
	}

	if err := s.userRepo.MarkPasswordResetUsed(reset.ID); err != nil {
		logger.Warn("Failed to mark password reset as used", map[string]interface{}{
			"reset_id": reset.ID,
		})
	}

	logger.Info("Password reset completed", map[string]interface{}{
		"user_id": user.ID,
	})
	return nil
}

func (s *authService) GetLoginHistory(userID uint, limit int) ([]model.LoginAudit, error) {
	audits, err := s.userRepo.FindLoginAudits(userID, limit)
	if err != nil {
		logger.Error("Failed to fetch login history", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return audits, nil
}
