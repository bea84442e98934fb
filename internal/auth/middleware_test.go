package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"carecircle/internal/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func setupAuthTest(t *testing.T) (sqlmock.Sqlmock, *gin.Engine) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB, PreferSimpleProtocol: true}), &gorm.Config{
		NamingStrategy:         schema.NamingStrategy{SingularTable: true},
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.DB = db

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/whoami", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"caregiver_id": c.GetString("caregiver_id")})
	})
	return mock, router
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	_, router := setupAuthTest(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsUnknownToken(t *testing.T) {
	mock, router := setupAuthTest(t)

	mock.ExpectQuery(`SELECT \* FROM "caregiver_profile"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareResolvesProfile(t *testing.T) {
	mock, router := setupAuthTest(t)

	mock.ExpectQuery(`SELECT \* FROM "caregiver_profile"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "full_name", "api_token"}).
			AddRow("cg-1", "anna@example.com", "Anna Ortiz", "tok-1"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cg-1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCronSecretMiddleware(t *testing.T) {
	t.Setenv("CRON_SECRET", "s3cret")

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/jobs/ping", CronSecretMiddleware(), func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/jobs/ping", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/jobs/ping", nil)
	req.Header.Set("X-Cron-Secret", "s3cret")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
