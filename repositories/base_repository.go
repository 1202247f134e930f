package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound kayıt bulunamadığında repository katmanının döndürdüğü hata.
var ErrNotFound = errors.New("kayıt bulunamadı")

// IBaseRepository tüm repository'lerin paylaştığı temel işlemler.
type IBaseRepository[T any] interface {
	Create(ctx context.Context, entity *T) error
	FindByID(ctx context.Context, id uint) (*T, error)
}

// BaseRepository IBaseRepository'nin generik GORM implementasyonu.
type BaseRepository[T any] struct {
	db                 *gorm.DB
	allowedSortColumns map[string]bool
}

// NewBaseRepository yeni bir generik base repository oluşturur.
func NewBaseRepository[T any](db *gorm.DB) *BaseRepository[T] {
	return &BaseRepository[T]{db: db, allowedSortColumns: map[string]bool{}}
}

// SetAllowedSortColumns sıralamaya izin verilen sütunları belirler.
func (r *BaseRepository[T]) SetAllowedSortColumns(columns []string) {
	r.allowedSortColumns = make(map[string]bool, len(columns))
	for _, c := range columns {
		r.allowedSortColumns[c] = true
	}
}

// SortColumnAllowed sütunun sıralamada kullanılabilir olup olmadığını döndürür.
func (r *BaseRepository[T]) SortColumnAllowed(column string) bool {
	return r.allowedSortColumns[column]
}

// Create yeni kaydı oluşturur.
func (r *BaseRepository[T]) Create(ctx context.Context, entity *T) error {
	return getDB(ctx, r.db).Create(entity).Error
}

// FindByID kaydı birincil anahtarıyla bulur.
func (r *BaseRepository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	if id == 0 {
		return nil, errors.New("geçersiz ID")
	}
	var entity T
	err := getDB(ctx, r.db).First(&entity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// getDB context'te taşınan transaction varsa onu, yoksa verilen bağlantıyı kullanır.
func getDB(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return db.WithContext(ctx)
}

type contextKey string

// txContextKey transaction'ın context üzerinde taşındığı anahtar.
const txContextKey contextKey = "tx"

// ContextWithTx transaction'ı context'e ekler; servis katmanı
// birden fazla repository çağrısını aynı transaction'da koşturmak için kullanır.
func ContextWithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txContextKey, tx)
}
