package repositories

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"seslidavet.link/configs/configslog"
	"seslidavet.link/models"
)

// IRSVPRepository RSVP veritabanı işlemleri için arayüz.
// Kayıtlar append-only'dir; güncelleme/upsert yoktur.
type IRSVPRepository interface {
	Create(ctx context.Context, rsvp *models.RSVP) error
	FindAllByEventID(ctx context.Context, eventID uint) ([]models.RSVP, error)
	CountsByResponse(ctx context.Context, eventID uint) (map[models.RSVPResponse]int64, error)
}

// RSVPRepository IRSVPRepository arayüzünü uygular.
type RSVPRepository struct {
	db *gorm.DB
}

// NewRSVPRepository yeni bir RSVPRepository örneği oluşturur.
func NewRSVPRepository(db *gorm.DB) IRSVPRepository {
	return &RSVPRepository{db: db}
}

// NewRSVPRepositoryTx transaction'a bağlı repository oluşturur.
func NewRSVPRepositoryTx(tx *gorm.DB) IRSVPRepository {
	return &RSVPRepository{db: tx}
}

// Create yeni bir RSVP satırı ekler.
func (r *RSVPRepository) Create(ctx context.Context, rsvp *models.RSVP) error {
	if rsvp == nil || rsvp.GuestID == 0 || rsvp.EventID == 0 {
		return errors.New("geçersiz RSVP verisi (GuestID veya EventID eksik)")
	}
	if err := getDB(ctx, r.db).Create(rsvp).Error; err != nil {
		configslog.Log.Error("RSVPRepository.Create: DB hatası",
			zap.Uint("guestID", rsvp.GuestID), zap.Uint("eventID", rsvp.EventID), zap.Error(err))
		return err
	}
	return nil
}

// FindAllByEventID etkinliğin tüm RSVP kayıtlarını döndürür.
func (r *RSVPRepository) FindAllByEventID(ctx context.Context, eventID uint) ([]models.RSVP, error) {
	if eventID == 0 {
		return nil, errors.New("geçersiz Event ID")
	}
	var rsvps []models.RSVP
	err := getDB(ctx, r.db).Where("event_id = ?", eventID).Order("created_at asc").Find(&rsvps).Error
	if err != nil {
		configslog.Log.Error("RSVPRepository.FindAllByEventID: DB hatası", zap.Uint("eventID", eventID), zap.Error(err))
		return nil, err
	}
	return rsvps, nil
}

// CountsByResponse yanıt türüne göre gruplanmış sayıları döndürür.
func (r *RSVPRepository) CountsByResponse(ctx context.Context, eventID uint) (map[models.RSVPResponse]int64, error) {
	if eventID == 0 {
		return nil, errors.New("geçersiz Event ID")
	}

	type row struct {
		Response models.RSVPResponse
		Count    int64
	}
	var rows []row
	err := getDB(ctx, r.db).Model(&models.RSVP{}).
		Select("response, count(id) as count").
		Where("event_id = ?", eventID).
		Group("response").
		Scan(&rows).Error
	if err != nil {
		configslog.Log.Error("RSVPRepository.CountsByResponse: DB hatası", zap.Uint("eventID", eventID), zap.Error(err))
		return nil, err
	}

	counts := make(map[models.RSVPResponse]int64, len(rows))
	for _, r := range rows {
		counts[r.Response] = r.Count
	}
	return counts, nil
}

var _ IRSVPRepository = (*RSVPRepository)(nil)
