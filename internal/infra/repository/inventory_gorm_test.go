package repository_test

import (
	"context"
	"regexp"
	"testing"

	infraRepo "app/internal/infra/repository"
	repo "app/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// sqlmockを挟んだ*gorm.DBを作る
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	assert.NoError(t, err)

	return gdb, mock
}

func TestInventoryGorm_DecreaseStockIfEnough_Success(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "products" SET "stock_qty"=stock_qty - $1 WHERE id = $2 AND stock_qty >= $3`)).
		WithArgs(int64(2), int64(10), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	r := infraRepo.NewInventoryGormRepository(gdb)

	ok, err := r.DecreaseStockIfEnough(context.Background(), 10, 2)
	assert.NoError(t, err)
	assert.True(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// 条件付きUPDATEが0行なら在庫不足
func TestInventoryGorm_DecreaseStockIfEnough_Insufficient(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "products" SET "stock_qty"=stock_qty - $1 WHERE id = $2 AND stock_qty >= $3`)).
		WithArgs(int64(5), int64(10), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	r := infraRepo.NewInventoryGormRepository(gdb)

	ok, err := r.DecreaseStockIfEnough(context.Background(), 10, 5)
	assert.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInventoryGorm_IncreaseStock_NotFound(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "products" SET "stock_qty"=stock_qty + $1 WHERE id = $2`)).
		WithArgs(int64(1), int64(999)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	r := infraRepo.NewInventoryGormRepository(gdb)

	err := r.IncreaseStock(context.Background(), 999, 1)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestInventoryGorm_SetStock(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "products" SET "stock_qty"=$1 WHERE id = $2`)).
		WithArgs(int64(25), int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	r := infraRepo.NewInventoryGormRepository(gdb)

	err := r.SetStock(context.Background(), 10, 25)
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
