package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products (kategori).
type Category struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Nama      string    `gorm:"column:nama;not null" json:"nama"`
	Products  []Product `gorm:"foreignKey:KategoriID" json:"products,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName overrides the default pluralization.
func (Category) TableName() string {
	return "categories"
}
