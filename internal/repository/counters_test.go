package repository

import (
	"regexp"
	"testing"

	"snsapp/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestPostRepository_AdjustLikeCount(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "posts" SET "like_count"=like_count + $1 WHERE id = $2 AND "posts"."deleted_at" IS NULL`)).
		WithArgs(1, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := db.Transaction(func(tx *gorm.DB) error {
		return repo.AdjustLikeCount(tx, 7, 1)
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_AdjustCommentCount_MissingRow(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "posts"`)).
		WithArgs(1, 99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := db.Transaction(func(tx *gorm.DB) error {
		return repo.AdjustCommentCount(tx, 99, 1)
	})
	assert.True(t, models.HasCode(err, models.CodeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_AdjustLikeCount_DecrementReadsBack(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "posts" SET "like_count"=like_count + $1 WHERE id = $2 AND "posts"."deleted_at" IS NULL`)).
		WithArgs(-1, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// Decrements read the value back to detect underflow.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "like_count" FROM "posts" WHERE id = $1 AND "posts"."deleted_at" IS NULL`)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"like_count"}).AddRow(-1))
	mock.ExpectCommit()

	err := db.Transaction(func(tx *gorm.DB) error {
		return repo.AdjustLikeCount(tx, 7, -1)
	})
	// A negative value is reported, not treated as an error.
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
