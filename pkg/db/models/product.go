package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a stocked inventory item (produk).
type Product struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Nama       string          `gorm:"column:nama;not null" json:"nama"`
	Merk       string          `gorm:"column:merk" json:"merk"`
	Stok       int             `gorm:"column:stok;not null;default:0" json:"stok"`
	Harga      decimal.Decimal `gorm:"column:harga;type:numeric(12,2);not null" json:"harga"`
	KategoriID uuid.UUID       `gorm:"column:kategori_id;type:uuid;not null" json:"kategori_id"`
	Category   *Category       `gorm:"foreignKey:KategoriID" json:"category,omitempty"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}
