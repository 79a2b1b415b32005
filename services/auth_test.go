package services

import (
	"testing"
	"time"

	"justice_bot_go/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db.AutoMigrate(&models.User{}, &models.Session{}, &models.PasswordResetToken{})
	return db
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	assert.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, CheckPassword("correct horse battery staple", hash))
	assert.False(t, CheckPassword("wrong password", hash))
}

func TestGenerateSessionToken(t *testing.T) {
	token1, err := GenerateSessionToken()
	assert.NoError(t, err)
	assert.Len(t, token1, SessionTokenLength*2) // hex encoding

	token2, err := GenerateSessionToken()
	assert.NoError(t, err)
	assert.NotEqual(t, token1, token2)
}

func TestRegisterUser(t *testing.T) {
	db := setupAuthTestDB()

	user, err := RegisterUser(db, RegisterInput{
		Email:     "New.User@Example.com",
		Password:  "supersecret1",
		FirstName: "New",
		LastName:  "User",
	})
	assert.NoError(t, err)
	assert.Equal(t, "new.user@example.com", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Equal(t, "ON", user.Province)
	assert.NotEqual(t, "supersecret1", user.PasswordHash)

	// Duplicate email rejected
	_, err = RegisterUser(db, RegisterInput{Email: "new.user@example.com", Password: "supersecret1"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterUserShortPassword(t *testing.T) {
	db := setupAuthTestDB()
	_, err := RegisterUser(db, RegisterInput{Email: "a@b.com", Password: "short"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestAuthenticateUser(t *testing.T) {
	db := setupAuthTestDB()
	_, err := RegisterUser(db, RegisterInput{Email: "dana@example.com", Password: "supersecret1"})
	assert.NoError(t, err)

	user, err := AuthenticateUser(db, "dana@example.com", "supersecret1")
	assert.NoError(t, err)
	assert.NotNil(t, user.LastLoginAt)

	_, err = AuthenticateUser(db, "dana@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = AuthenticateUser(db, "nobody@example.com", "supersecret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateDisabledUser(t *testing.T) {
	db := setupAuthTestDB()
	user, err := RegisterUser(db, RegisterInput{Email: "gone@example.com", Password: "supersecret1"})
	assert.NoError(t, err)
	db.Model(user).Update("is_active", false)

	_, err = AuthenticateUser(db, "gone@example.com", "supersecret1")
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestSessionLifecycle(t *testing.T) {
	db := setupAuthTestDB()
	user, _ := RegisterUser(db, RegisterInput{Email: "s@example.com", Password: "supersecret1"})

	session, err := CreateSession(db, user.ID, "127.0.0.1", "test-agent")
	assert.NoError(t, err)
	assert.NotEmpty(t, session.Token)

	validated, err := ValidateSession(db, session.Token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, validated.UserID)
	assert.Equal(t, user.Email, validated.User.Email)

	assert.NoError(t, DeleteSession(db, session.Token))
	_, err = ValidateSession(db, session.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestValidateExpiredSession(t *testing.T) {
	db := setupAuthTestDB()
	user, _ := RegisterUser(db, RegisterInput{Email: "e@example.com", Password: "supersecret1"})

	session, err := CreateSession(db, user.ID, "", "")
	assert.NoError(t, err)
	db.Model(session).Update("expires_at", time.Now().Add(-time.Hour))

	_, err = ValidateSession(db, session.Token)
	assert.ErrorIs(t, err, ErrSessionExpired)

	// Expired sessions are purged on validation
	var count int64
	db.Model(&models.Session{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCleanupExpiredSessions(t *testing.T) {
	db := setupAuthTestDB()
	user, _ := RegisterUser(db, RegisterInput{Email: "c@example.com", Password: "supersecret1"})

	fresh, _ := CreateSession(db, user.ID, "", "")
	stale, _ := CreateSession(db, user.ID, "", "")
	db.Model(stale).Update("expires_at", time.Now().Add(-time.Minute))

	assert.NoError(t, CleanupExpiredSessions(db))

	var count int64
	db.Model(&models.Session{}).Count(&count)
	assert.Equal(t, int64(1), count)

	_, err := ValidateSession(db, fresh.Token)
	assert.NoError(t, err)
}

func TestPasswordResetFlow(t *testing.T) {
	db := setupAuthTestDB()
	user, _ := RegisterUser(db, RegisterInput{Email: "r@example.com", Password: "supersecret1"})
	session, _ := CreateSession(db, user.ID, "", "")

	reset, err := CreatePasswordResetToken(db, "r@example.com")
	assert.NoError(t, err)
	assert.NotNil(t, reset)

	assert.NoError(t, ResetPassword(db, reset.Token, "brandnewpassword"))

	// New password works, old one does not, and sessions were revoked
	_, err = AuthenticateUser(db, "r@example.com", "brandnewpassword")
	assert.NoError(t, err)
	_, err = AuthenticateUser(db, "r@example.com", "supersecret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = ValidateSession(db, session.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// The token is single-use
	assert.ErrorIs(t, ResetPassword(db, reset.Token, "anotherpassword1"), ErrResetTokenInvalid)
}

func TestPasswordResetUnknownEmail(t *testing.T) {
	db := setupAuthTestDB()

	// No error and no token, so callers cannot probe for accounts
	reset, err := CreatePasswordResetToken(db, "ghost@example.com")
	assert.NoError(t, err)
	assert.Nil(t, reset)
}

func TestResetPasswordBadToken(t *testing.T) {
	db := setupAuthTestDB()
	assert.ErrorIs(t, ResetPassword(db, "bogus", "longenoughpassword"), ErrResetTokenInvalid)
}
