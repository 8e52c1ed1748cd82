package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"equipment-tracker/internal/model"
)

// A helper function to create a mock database connection.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

var equipmentColumns = []string{"id", "name", "type", "status", "last_cleaned", "created_at", "updated_at"}

func TestGormStore_List(t *testing.T) {
	now := time.Now().UTC()
	gormDB, mock := newTestDB(t)
	s := NewGormStore(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "equipment" ORDER BY id DESC`)).
		WillReturnRows(sqlmock.NewRows(equipmentColumns).
			AddRow(2, "Tank-2", "Tank", "Inactive", nil, now, now).
			AddRow(1, "Mixer-1", "Mixer", "Active", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), now, now))

	items, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(2), items[0].ID)
	assert.Nil(t, items[0].LastCleaned)
	assert.Equal(t, model.TypeMixer, items[1].Type)
	require.NotNil(t, items[1].LastCleaned)
	assert.Equal(t, "2024-01-15", items[1].LastCleaned.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_ListEmptyIsNotNil(t *testing.T) {
	gormDB, mock := newTestDB(t)
	s := NewGormStore(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "equipment"`)).
		WillReturnRows(sqlmock.NewRows(equipmentColumns))

	items, err := s.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestGormStore_Create(t *testing.T) {
	now := time.Now().UTC()
	gormDB, mock := newTestDB(t)
	s := NewGormStore(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "equipment"`)).
		WithArgs("Mixer-1", "Mixer", "Active", nil, Any{}, Any{}).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectCommit()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "equipment" WHERE "equipment"."id" = $1`)).
		WillReturnRows(sqlmock.NewRows(equipmentColumns).
			AddRow(7, "Mixer-1", "Mixer", "Active", nil, now, now))

	got, err := s.Create(context.Background(), EquipmentInput{
		Name:   "Mixer-1",
		Type:   model.TypeMixer,
		Status: model.StatusActive,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, model.StatusActive, got.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_CreateStorageFailure(t *testing.T) {
	gormDB, mock := newTestDB(t)
	s := NewGormStore(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "equipment"`)).
		WillReturnError(errors.New("new row violates check constraint"))
	mock.ExpectRollback()

	_, err := s.Create(context.Background(), EquipmentInput{
		Name:   "Tank-9",
		Type:   model.TypeTank,
		Status: model.StatusActive,
	})
	var se *StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "create", se.Op)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_Update(t *testing.T) {
	now := time.Now().UTC()
	cleaned := model.Date{Year: 2024, Month: time.January, Day: 15}

	testCases := []struct {
		name             string
		mockExpectations func(mock sqlmock.Sqlmock)
		expectedErr      error
	}{
		{
			name: "existing row is replaced and read back",
			mockExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE "equipment" SET`)).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "equipment" WHERE "equipment"."id" = $1`)).
					WillReturnRows(sqlmock.NewRows(equipmentColumns).
						AddRow(3, "Mixer-1", "Mixer", "Under Maintenance", cleaned.Time(), now, now))
			},
		},
		{
			name: "unknown id is not found",
			mockExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE "equipment" SET`)).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectCommit()
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "equipment" WHERE "equipment"."id" = $1`)).
					WillReturnRows(sqlmock.NewRows(equipmentColumns))
			},
			expectedErr: ErrNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gormDB, mock := newTestDB(t)
			s := NewGormStore(gormDB)
			tc.mockExpectations(mock)

			got, err := s.Update(context.Background(), 3, EquipmentInput{
				Name:        "Mixer-1",
				Type:        model.TypeMixer,
				Status:      model.StatusUnderMaintenance,
				LastCleaned: &cleaned,
			})

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, model.StatusUnderMaintenance, got.Status)
				require.NotNil(t, got.LastCleaned)
				assert.Equal(t, cleaned, *got.LastCleaned)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGormStore_Delete(t *testing.T) {
	testCases := []struct {
		name         string
		rowsAffected int64
		execErr      error
		check        func(t *testing.T, err error)
	}{
		{
			name:         "existing row",
			rowsAffected: 1,
			check:        func(t *testing.T, err error) { assert.NoError(t, err) },
		},
		{
			name:         "unknown id",
			rowsAffected: 0,
			check:        func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrNotFound) },
		},
		{
			name:    "connection lost",
			execErr: errors.New("connection reset by peer"),
			check: func(t *testing.T, err error) {
				var se *StorageError
				assert.ErrorAs(t, err, &se)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gormDB, mock := newTestDB(t)
			s := NewGormStore(gormDB)

			mock.ExpectBegin()
			exec := mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "equipment" WHERE "equipment"."id" = $1`)).
				WithArgs(42)
			if tc.execErr != nil {
				exec.WillReturnError(tc.execErr)
				mock.ExpectRollback()
			} else {
				exec.WillReturnResult(sqlmock.NewResult(0, tc.rowsAffected))
				mock.ExpectCommit()
			}

			tc.check(t, s.Delete(context.Background(), 42))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// Any is a helper for sqlmock to match any argument.
type Any struct{}

// Match satisfies the sqlmock.Argument interface
func (a Any) Match(v driver.Value) bool {
	return true
}
