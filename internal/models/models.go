package models

import "github.com/Skotchmaster/flogin/internal/domain"

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"           json:"id"`
	Username     string `gorm:"size:64;uniqueIndex;not null"       json:"username"`
	PasswordHash string `gorm:"column:password_hash;not null"      json:"-"`
	Role         string `gorm:"size:50"                            json:"role,omitempty"`
}

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name        string          `gorm:"size:100;not null"         json:"name"`
	Price       int             `gorm:"not null"                  json:"price"`
	Quantity    int             `gorm:"not null"                  json:"quantity"`
	Description *string         `gorm:"size:500"                  json:"description"`
	Category    domain.Category `gorm:"size:50;not null"          json:"category"`
}

const (
	ProductCreated = "product_created"
	ProductUpdated = "product_updated"
	ProductDeleted = "product_deleted"
)

// ProductEvent describes a committed change to a product.
type ProductEvent struct {
	Type      string   `json:"type"`
	ProductID uint     `json:"productID"`
	Name      string   `json:"name,omitempty"`
	Product   *Product `json:"product,omitempty"`
}
