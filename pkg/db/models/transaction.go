package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Areandra/Kelvin/pkg/enums"
)

// Transaction records a single stock movement against a product.
type Transaction struct {
	ID         uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProdukID   uuid.UUID             `gorm:"column:produk_id;type:uuid;not null" json:"produk_id"`
	Product    *Product              `gorm:"foreignKey:ProdukID" json:"product,omitempty"`
	Tipe       enums.TransactionType `gorm:"column:tipe;not null" json:"tipe"`
	Jumlah     int                   `gorm:"column:jumlah;not null" json:"jumlah"`
	Catatan    *string               `gorm:"column:catatan" json:"catatan,omitempty"`
	SupplierID *uuid.UUID            `gorm:"column:supplier_id;type:uuid" json:"supplier_id,omitempty"`
	Supplier   *Supplier             `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	CreatedAt  time.Time             `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time             `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}
