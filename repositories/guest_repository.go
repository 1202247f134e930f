package repositories

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"seslidavet.link/configs/configslog"
	"seslidavet.link/models"
)

// IGuestRepository davetli veritabanı işlemleri için arayüz.
type IGuestRepository interface {
	AddBatch(ctx context.Context, eventID uint, guests []models.Guest) ([]models.Guest, error)
	FindByID(ctx context.Context, id uint) (*models.Guest, error)
	FindAllByEventID(ctx context.Context, eventID uint) ([]models.Guest, error)
	UpdateCallStatus(ctx context.Context, id uint, status models.CallStatus) error
	CountByEventID(ctx context.Context, eventID uint) (int64, error)
}

// GuestRepository IGuestRepository arayüzünü uygular.
type GuestRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.Guest]
}

// NewGuestRepository yeni bir GuestRepository örneği oluşturur.
func NewGuestRepository(db *gorm.DB) IGuestRepository {
	return &GuestRepository{db: db, base: NewBaseRepository[models.Guest](db)}
}

// NewGuestRepositoryTx transaction'a bağlı repository oluşturur.
func NewGuestRepositoryTx(tx *gorm.DB) IGuestRepository {
	return NewGuestRepository(tx)
}

// AddBatch davetlileri tek seferde oluşturur. Hepsi ya da hiçbiri:
// toplu ekleme tek transaction'da yapılır.
func (r *GuestRepository) AddBatch(ctx context.Context, eventID uint, guests []models.Guest) ([]models.Guest, error) {
	if eventID == 0 {
		return nil, errors.New("geçersiz Event ID")
	}
	if len(guests) == 0 {
		return []models.Guest{}, nil
	}
	for i := range guests {
		guests[i].EventID = eventID
		if guests[i].CallStatus == "" {
			guests[i].CallStatus = models.CallStatusNotCalled
		}
	}
	if err := getDB(ctx, r.db).Create(&guests).Error; err != nil {
		configslog.Log.Error("GuestRepository.AddBatch: DB hatası", zap.Uint("eventID", eventID), zap.Error(err))
		return nil, err
	}
	return guests, nil
}

// FindByID davetliyi ID ile bulur.
func (r *GuestRepository) FindByID(ctx context.Context, id uint) (*models.Guest, error) {
	return r.base.FindByID(ctx, id)
}

// FindAllByEventID etkinliğin tüm davetlilerini döndürür.
func (r *GuestRepository) FindAllByEventID(ctx context.Context, eventID uint) ([]models.Guest, error) {
	if eventID == 0 {
		return nil, errors.New("geçersiz Event ID")
	}
	var guests []models.Guest
	err := getDB(ctx, r.db).Where("event_id = ?", eventID).Order("id asc").Find(&guests).Error
	if err != nil {
		configslog.Log.Error("GuestRepository.FindAllByEventID: DB hatası", zap.Uint("eventID", eventID), zap.Error(err))
		return nil, err
	}
	return guests, nil
}

// UpdateCallStatus davetlinin arama durumunu günceller.
// Son yazan kazanır; durum korumaları servis katmanında yapılır.
func (r *GuestRepository) UpdateCallStatus(ctx context.Context, id uint, status models.CallStatus) error {
	if id == 0 {
		return errors.New("geçersiz Guest ID")
	}
	result := getDB(ctx, r.db).Model(&models.Guest{}).Where("id = ?", id).Update("call_status", status)
	if result.Error != nil {
		configslog.Log.Error("GuestRepository.UpdateCallStatus: DB hatası", zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByEventID etkinliğin davetli sayısını döndürür.
func (r *GuestRepository) CountByEventID(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&models.Guest{}).Where("event_id = ?", eventID).Count(&count).Error
	return count, err
}

var _ IGuestRepository = (*GuestRepository)(nil)
