package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"carecircle/internal/reminders"
	"carecircle/internal/services"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func newMockEngine(t *testing.T) (*reminders.Engine, sqlmock.Sqlmock) {
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

	return reminders.NewEngine(db, services.NewEmailService(), services.NewSMSService()), mock
}

func newJobRouter(engine *reminders.Engine) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewJobHandlers(engine)
	router.POST("/jobs/appointment-reminders", h.RunAppointmentReminders)
	router.POST("/jobs/refill-reminders", h.RunMedicationRefillReminders)
	router.POST("/jobs/trial-reminders", h.RunTrialReminders)
	return router
}

func TestJobEndpointReturnsSummary(t *testing.T) {
	engine, mock := newMockEngine(t)
	router := newJobRouter(engine)

	mock.ExpectQuery(`SELECT \* FROM "appointment"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/jobs/appointment-reminders", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var summary reminders.BatchSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, "appointment reminders processed", summary.Message)
	assert.Equal(t, 0, summary.Processed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobEndpointScanFailureReturns500(t *testing.T) {
	engine, mock := newMockEngine(t)
	router := newJobRouter(engine)

	mock.ExpectQuery(`SELECT \* FROM "medication"`).
		WillReturnError(gorm.ErrInvalidDB)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/jobs/refill-reminders", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "error")
}

func TestTrialJobEndpoint(t *testing.T) {
	engine, mock := newMockEngine(t)
	router := newJobRouter(engine)

	mock.ExpectQuery(`SELECT \* FROM "caregiver_profile"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/jobs/trial-reminders", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
