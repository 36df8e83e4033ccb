package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type Property struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type Paper struct {
	ID           int64           `json:"id" db:"id"`
	Name         string          `json:"name" db:"name"`
	Price        decimal.Decimal `json:"price" db:"price"`
	Stock        int             `json:"stock" db:"stock"`
	Discontinued bool            `json:"discontinued" db:"discontinued"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
	Properties   []Property      `json:"properties" db:"-"`
}

// PaperSummary is the catalog listing view of a paper.
type PaperSummary struct {
	ID           int64           `json:"id" db:"id"`
	Name         string          `json:"name" db:"name"`
	Price        decimal.Decimal `json:"price" db:"price"`
	Stock        int             `json:"stock" db:"stock"`
	Discontinued bool            `json:"discontinued" db:"discontinued"`
	Properties   []Property      `json:"properties,omitempty" db:"-"`
}

type PriceRange struct {
	Min decimal.Decimal `json:"minimum_range" db:"min_price"`
	Max decimal.Decimal `json:"maximum_range" db:"max_price"`
}

type Order struct {
	ID           int64           `json:"id" db:"id"`
	CustomerID   int64           `json:"customer_id" db:"customer_id"`
	OrderDate    time.Time       `json:"order_date" db:"order_date"`
	DeliveryDate time.Time       `json:"delivery_date" db:"delivery_date"`
	Status       string          `json:"status" db:"status"`
	TotalAmount  decimal.Decimal `json:"total_amount" db:"total_amount"`
	Deleted      bool            `json:"deleted" db:"deleted"`
	Entries      []OrderEntry    `json:"entries,omitempty" db:"-"`
}

// OrderSummary is what customers and the placement workflow see of an order.
type OrderSummary struct {
	ID           int64           `json:"id" db:"id"`
	OrderDate    time.Time       `json:"order_date" db:"order_date"`
	DeliveryDate time.Time       `json:"delivery_date" db:"delivery_date"`
	Status       string          `json:"status" db:"status"`
	TotalAmount  decimal.Decimal `json:"total_amount" db:"total_amount"`
}

type OrderEntry struct {
	ID        int64           `json:"id" db:"id"`
	OrderID   int64           `json:"order_id" db:"order_id"`
	PaperID   int64           `json:"paper_id" db:"paper_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price" db:"unit_price"`
}

// OrderEntryView joins an entry with the paper it references.
type OrderEntryView struct {
	ID         int64           `json:"id" db:"id"`
	PaperID    int64           `json:"paper_id" db:"paper_id"`
	PaperName  string          `json:"paper_name" db:"paper_name"`
	Quantity   int             `json:"quantity" db:"quantity"`
	Price      decimal.Decimal `json:"price" db:"unit_price"`
	Properties []Property      `json:"paper_properties" db:"-"`
}
