package repositories

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"seslidavet.link/configs/configslog"
	"seslidavet.link/models"
	"seslidavet.link/pkg/queryparams"
)

// IEventRepository etkinlik veritabanı işlemleri için arayüz.
type IEventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id uint) (*models.Event, error)
	FindByIDWithGuests(ctx context.Context, id uint) (*models.Event, error)
	UpdateStatus(ctx context.Context, id uint, status models.EventStatus) error
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	FindAllByEmailPaginated(ctx context.Context, email string, params queryparams.ListParams) ([]models.Event, int64, error)
}

// EventRepository IEventRepository arayüzünü uygular.
type EventRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.Event]
}

// NewEventRepository yeni bir EventRepository örneği oluşturur.
func NewEventRepository(db *gorm.DB) IEventRepository {
	base := NewBaseRepository[models.Event](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "event_date", "status"})
	return &EventRepository{db: db, base: base}
}

// NewEventRepositoryTx transaction'a bağlı repository oluşturur.
func NewEventRepositoryTx(tx *gorm.DB) IEventRepository {
	return NewEventRepository(tx)
}

// Create yeni bir etkinlik oluşturur.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	if event == nil {
		return errors.New("geçersiz etkinlik verisi")
	}
	if err := r.base.Create(ctx, event); err != nil {
		configslog.Log.Error("EventRepository.Create: DB hatası", zap.Error(err))
		return err
	}
	return nil
}

// FindByID etkinliği ID ile bulur.
func (r *EventRepository) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	return r.base.FindByID(ctx, id)
}

// FindByIDWithGuests etkinliği davetlileriyle birlikte yükler.
func (r *EventRepository) FindByIDWithGuests(ctx context.Context, id uint) (*models.Event, error) {
	if id == 0 {
		return nil, errors.New("geçersiz Event ID")
	}
	var event models.Event
	err := getDB(ctx, r.db).Preload("Guests").First(&event, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("EventRepository.FindByIDWithGuests: DB hatası", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &event, nil
}

// UpdateStatus sadece status alanını günceller.
func (r *EventRepository) UpdateStatus(ctx context.Context, id uint, status models.EventStatus) error {
	return r.UpdateFields(ctx, id, map[string]interface{}{"status": status})
}

// UpdateFields verilen alanları günceller. Satır yoksa ErrNotFound döner.
func (r *EventRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	if id == 0 {
		return errors.New("geçersiz Event ID")
	}
	result := getDB(ctx, r.db).Model(&models.Event{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		configslog.Log.Error("EventRepository.UpdateFields: DB hatası", zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindAllByEmailPaginated kullanıcının etkinliklerini sayfalayarak bulur (yeniden eskiye).
func (r *EventRepository) FindAllByEmailPaginated(ctx context.Context, email string, params queryparams.ListParams) ([]models.Event, int64, error) {
	if email == "" {
		return nil, 0, errors.New("geçersiz e-posta")
	}

	var events []models.Event
	var totalCount int64
	db := getDB(ctx, r.db)

	query := db.Model(&models.Event{}).Where("user_email = ?", email)
	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("EventRepository.Count: DB hatası", zap.String("email", email), zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return events, 0, nil
	}

	orderColumn := "id"
	if r.base.SortColumnAllowed(params.SortBy) {
		orderColumn = params.SortBy
	}
	err := query.
		Order(orderColumn + " " + params.OrderBy).
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&events).Error
	if err != nil {
		configslog.Log.Error("EventRepository.Find: DB hatası", zap.String("email", email), zap.Error(err))
		return nil, totalCount, err
	}
	return events, totalCount, nil
}

var _ IEventRepository = (*EventRepository)(nil)
