package service

import (
	"testing"
	"time"

	"github.com/aionlab/aion-backend/internal/app/model"
	"github.com/aionlab/aion-backend/internal/app/repository"
	"github.com/aionlab/aion-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (AuthService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	svc := NewAuthService(
		repository.NewUserRepository(testDB),
		"test-secret",
		15*time.Minute,
		7*24*time.Hour,
	)
	return svc, testDB
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	user, tokens, err := svc.Register("new@example.com", "password123", "홍길동", "010-1234-5678", "1990-01-01")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	_, _, err := svc.Register("dup@example.com", "password123", "홍길동", "", "")
	require.NoError(t, err)

	_, _, err = svc.Register("dup@example.com", "another456", "김철수", "", "")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, testDB := setupAuthServiceTest(t)

	_, _, err := svc.Register("login@example.com", "password123", "홍길동", "", "")
	require.NoError(t, err)

	user, tokens, err := svc.Login("login@example.com", "password123", "127.0.0.1", "test-agent")
	require.NoError(t, err)
	assert.Equal(t, "login@example.com", user.Email)
	assert.NotEmpty(t, tokens.AccessToken)

	// 로그인 기록이 남아야 한다
	var audit model.LoginAudit
	require.NoError(t, testDB.Where("user_id = ?", user.ID).First(&audit).Error)
	assert.Equal(t, "127.0.0.1", audit.IP)
	assert.Equal(t, "test-agent", audit.UserAgent)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	_, _, err := svc.Register("wrong@example.com", "password123", "홍길동", "", "")
	require.NoError(t, err)

	_, _, err = svc.Login("wrong@example.com", "badpassword", "127.0.0.1", "test-agent")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	_, _, err := svc.Login("nobody@example.com", "password123", "127.0.0.1", "test-agent")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	user, _, err := svc.Register("profile@example.com", "password123", "홍길동", "", "")
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(user.ID, "김철수", "010-9999-8888", "")
	require.NoError(t, err)
	assert.Equal(t, "김철수", updated.Name)
	assert.Equal(t, "010-9999-8888", updated.Phone)

	_, err = svc.UpdateProfile(9999, "아무개", "", "")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_DeleteAccount(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	user, _, err := svc.Register("delete@example.com", "password123", "홍길동", "", "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAccount(user.ID))

	_, err = svc.GetUserByID(user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_RequestPasswordReset_UnknownEmail(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	// 계정 존재 여부를 숨기기 위해 에러 없이 빈 토큰을 돌려준다
	token, err := svc.RequestPasswordReset("nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestAuthService_ResetPassword_Flow(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	_, _, err := svc.Register("reset@example.com", "oldpassword", "홍길동", "", "")
	require.NoError(t, err)

	token, err := svc.RequestPasswordReset("reset@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, svc.ResetPassword(token, "newpassword"))

	// 이전 비밀번호는 더 이상 유효하지 않다
	_, _, err = svc.Login("reset@example.com", "oldpassword", "127.0.0.1", "test-agent")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login("reset@example.com", "newpassword", "127.0.0.1", "test-agent")
	assert.NoError(t, err)

	// 사용한 토큰은 재사용할 수 없다
	err = svc.ResetPassword(token, "anotherpassword")
	assert.ErrorIs(t, err, ErrResetTokenInvalid)
}

func TestAuthService_ResetPassword_InvalidToken(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	err := svc.ResetPassword("no-such-token", "newpassword")
	assert.ErrorIs(t, err, ErrResetTokenInvalid)
}

func TestAuthService_ResetPassword_ExpiredToken(t *testing.T) {
	svc, testDB := setupAuthServiceTest(t)

	user, _, err := svc.Register("expired@example.com", "password123", "홍길동", "", "")
	require.NoError(t, err)

	reset := &model.PasswordReset{
		UserID:    user.ID,
		Token:     "expired-token",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, testDB.Create(reset).Error)

	err = svc.ResetPassword("expired-token", "newpassword")
	assert.ErrorIs(t, err, ErrResetTokenExpired)
}

func TestAuthService_GetLoginHistory(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	user, _, err := svc.Register("history@example.com", "password123", "홍길동", "", "")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, _, err := svc.Login("history@example.com", "password123", "127.0.0.1", "test-agent")
		require.NoError(t, err)
	}

	audits, err := svc.GetLoginHistory(user.ID, 2)
	require.NoError(t, err)
	assert.Len(t, audits, 2)
}
