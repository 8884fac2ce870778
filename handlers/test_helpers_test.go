package handlers

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"dar_almal_go/config"
	"dar_almal_go/console"
	"dar_almal_go/db"
	"dar_almal_go/middleware"
	"dar_almal_go/models"
	"dar_almal_go/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// noMatchGeocoder stands in for Nominatim in handler tests
type noMatchGeocoder struct{}

func (noMatchGeocoder) Search(ctx context.Context, address string) (*services.Coordinates, error) {
	return nil, services.ErrNoMatch
}

func setupTestDB(t *testing.T) *gorm.DB {
	// Unique shared memory name isolates tests while keeping one database
	// across the pooled connections
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	err = testDB.AutoMigrate(&models.Branch{}, &models.User{}, &models.Session{})
	assert.NoError(t, err)

	// Set globals the handlers read
	db.DB = testDB
	if services.Storage == nil {
		services.Storage = services.NewLocalStorage(t.TempDir())
	}
	InitConsoles(console.NewManager(testDB, noMatchGeocoder{}))

	return testDB
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	c.Set("config", &config.Config{
		Environment:   "test",
		ContactEmail:  "info@dar-almal.com",
		EmailTestMode: true,
	})

	return e, c, rec
}

// asAdmin injects the AuthContext the session middleware would have set
func asAdmin(c echo.Context) services.AuthContext {
	authz := services.NewAdminAuthContext("user-"+uuid.New().String(), "session-"+uuid.New().String())
	c.Set(middleware.ContextKeyAuth, authz)
	return authz
}

func createTestBranch(t *testing.T, testDB *gorm.DB, nameAr, governorate, status string) *models.Branch {
	branch := &models.Branch{
		NameAr:      nameAr,
		AddressAr:   "عنوان",
		Phone:       "0991234567",
		Governorate: governorate,
		Status:      status,
	}
	assert.NoError(t, testDB.Create(branch).Error)
	return branch
}
