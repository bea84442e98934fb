package handlers

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

func setupTeamTest(t *testing.T) (sqlmock.Sqlmock, *gin.Engine) {
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
	router.GET("/team/accept", AcceptInvite)
	return mock, router
}

func TestAcceptInviteMarksMembershipAccepted(t *testing.T) {
	mock, router := setupTeamTest(t)

	mock.ExpectQuery(`SELECT \* FROM "team_membership"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "caregiver_id", "email", "name", "status", "invite_token"}).
			AddRow("tm-1", "cg-1", "helper@example.com", "Maya Lin", "pending", "tok-abc"))
	mock.ExpectExec(`UPDATE "team_membership" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/team/accept?token=tok-abc", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Welcome aboard")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcceptInviteAlreadyAccepted(t *testing.T) {
	mock, router := setupTeamTest(t)

	// No UPDATE expected: accepting twice is a no-op.
	mock.ExpectQuery(`SELECT \* FROM "team_membership"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "invite_token"}).
			AddRow("tm-1", "accepted", "tok-abc"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/team/accept?token=tok-abc", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "already joined")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcceptInviteUnknownToken(t *testing.T) {
	mock, router := setupTeamTest(t)

	mock.ExpectQuery(`SELECT \* FROM "team_membership"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/team/accept?token=nope", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAcceptInviteMissingToken(t *testing.T) {
	_, router := setupTeamTest(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/team/accept", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
