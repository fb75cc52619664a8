package models

import (
	"time"

	"github.com/google/uuid"
)

// Supplier is an optional source for stock-in transactions.
type Supplier struct {
	ID           uuid.UUID     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Nama         string        `gorm:"column:nama;not null" json:"nama"`
	Alamat       string        `gorm:"column:alamat" json:"alamat"`
	Telepon      string        `gorm:"column:telepon" json:"telepon"`
	Email        string        `gorm:"column:email" json:"email"`
	Transactions []Transaction `gorm:"foreignKey:SupplierID" json:"transactions,omitempty"`
	CreatedAt    time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Supplier) TableName() string {
	return "suppliers"
}
