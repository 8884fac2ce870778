package services

import (
	"testing"
	"time"

	"dar_almal_go/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db.AutoMigrate(&models.User{}, &models.Session{})
	return db
}

func TestPasswordHashing(t *testing.T) {
	password := "SecretPass123!"

	hash, err := HashPassword(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	assert.True(t, CheckPassword(password, hash))
	assert.False(t, CheckPassword("WrongPass", hash))
}

func TestAuthContextCapability(t *testing.T) {
	assert.True(t, NewAdminAuthContext("user-1", "session-1").CanManageBranches())

	// The zero value carries no capability
	assert.False(t, AuthContext{}.CanManageBranches())
	// Neither does a context without a user, however constructed
	assert.False(t, NewAdminAuthContext("", "session-1").CanManageBranches())
}

func TestSessionLifecycle(t *testing.T) {
	db := setupAuthTestDB()

	user := &models.User{Name: "Admin", Email: "admin@example.com", Password: "x", IsActive: true}
	assert.NoError(t, db.Create(user).Error)

	// 1. Create session
	session, err := CreateSession(db, user.ID, "127.0.0.1", "TestAgent")
	assert.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, user.ID, session.UserID)
	assert.WithinDuration(t, time.Now().Add(DefaultSessionDuration), session.ExpiresAt, 10*time.Second)

	// 2. Validate
	valid, err := ValidateSession(db, session.Token)
	assert.NoError(t, err)
	assert.Equal(t, session.ID, valid.ID)
	assert.Equal(t, user.Email, valid.User.Email)

	// 3. Unknown token
	_, err = ValidateSession(db, "invalid-token")
	assert.Error(t, err)

	// 4. Delete (logout)
	assert.NoError(t, DeleteSession(db, session.Token))
	_, err = ValidateSession(db, session.Token)
	assert.Error(t, err)
}

func TestSessionExpiry(t *testing.T) {
	db := setupAuthTestDB()

	session := &models.Session{
		ID:        "expired-session",
		UserID:    "user-exp",
		Token:     "expired-token",
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	assert.NoError(t, db.Create(session).Error)

	// Validation rejects and removes the expired session
	_, err := ValidateSession(db, "expired-token")
	assert.Error(t, err)

	var count int64
	db.Model(&models.Session{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCleanupExpiredSessions(t *testing.T) {
	db := setupAuthTestDB()

	db.Create(&models.Session{ID: "s1", UserID: "u1", Token: "t1", ExpiresAt: time.Now().Add(-time.Hour)})
	db.Create(&models.Session{ID: "s2", UserID: "u1", Token: "t2", ExpiresAt: time.Now().Add(time.Hour)})

	assert.NoError(t, CleanupExpiredSessions(db))

	var count int64
	db.Model(&models.Session{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
