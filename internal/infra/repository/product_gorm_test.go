package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	infraRepo "app/internal/infra/repository"
	repo "app/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestProductGorm_FindByID_NotFound(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products" WHERE "products"."id" = $1 ORDER BY "products"."id" LIMIT $2`)).
		WithArgs(int64(99), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	r := infraRepo.NewProductGormRepository(gdb)

	_, err := r.FindByID(context.Background(), 99)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestProductGorm_FindByID_Success(t *testing.T) {
	gdb, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "name", "price", "stock_qty", "created_at"}).
		AddRow(int64(10), "Tshirt", 499.0, int64(5), time.Now())

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products" WHERE "products"."id" = $1 ORDER BY "products"."id" LIMIT $2`)).
		WithArgs(int64(10), 1).
		WillReturnRows(rows)

	r := infraRepo.NewProductGormRepository(gdb)

	p, err := r.FindByID(context.Background(), 10)
	assert.NoError(t, err)
	assert.Equal(t, "Tshirt", p.Name)
	assert.Equal(t, int64(5), p.StockQty)
}

func TestProductGorm_CountLowStock(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "products" WHERE stock_qty < $1`)).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(7)))

	r := infraRepo.NewProductGormRepository(gdb)

	n, err := r.CountLowStock(context.Background(), 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), n)
}
