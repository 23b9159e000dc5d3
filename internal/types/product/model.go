package product

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product mirrors the catalog collaborator's record; only the fields the
// order flow reads are modelled here.
type Product struct {
	ID          uuid.UUID       `db:"id" json:"productId"`
	Name        string          `db:"name" json:"name"`
	Description string          `db:"description" json:"description"`
	Category    string          `db:"category" json:"category"`
	SubCategory string          `db:"sub_category" json:"subCategory"`
	Image       string          `db:"image" json:"image"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Sizes       []string        `db:"sizes" json:"sizes"`
}
