package models

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel tüm modellere gömülen ortak alanlar.
type BaseModel struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
