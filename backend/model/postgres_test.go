package model

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	require.NoError(t, Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{DisableAutomaticPing: true}))
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return mock
}

func TestPingReportsStoreFailure(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	err := Ping(context.Background())
	assert.ErrorContains(t, err, "connection refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllModelsPropagatesQueryError(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "models" ORDER BY created_at DESC`).
		WillReturnError(errors.New(`relation "models" does not exist`))

	_, err := GetAllModels(context.Background())
	assert.ErrorContains(t, err, `relation "models" does not exist`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetModelByIDOnPostgres(t *testing.T) {
	mock := setupMockDB(t)
	rows := sqlmock.NewRows([]string{"id", "name", "description", "sbml_data"}).
		AddRow(7, "Toggle Switch", "", `{"sbml":"<sbml/>"}`)
	mock.ExpectQuery(`SELECT \* FROM "models" WHERE "models"."id" = \$1`).
		WillReturnRows(rows)

	m, err := GetModelByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Toggle Switch", m.Name)
	assert.Equal(t, Document(`{"sbml":"<sbml/>"}`), m.SBMLData)
	assert.NoError(t, mock.ExpectationsWereMet())
}
