package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type (
	CompanyID  int64
	ProductID  int64
	SupplierID int64
	OrderID    string
)

type Product struct {
	ProductID            ProductID
	CompanyID            CompanyID
	Name                 string
	Description          string
	SKU                  string
	UnitOfMeasure        string
	CurrentStock         int
	ReorderThresholdDays int
	PredictedDaysLeft    *int
	NeedsReorder         bool
}

type Supplier struct {
	SupplierID SupplierID
	Name       string
	Type       string
	Email      string
	Phone      string
	Website    string
	Address    string
}

// A SupplierQuote is one historical (company, supplier, product)
// purchase record, denormalized with supplier and product info
// at the store-read boundary.
type SupplierQuote struct {
	SupplierID       SupplierID
	SupplierName     string
	ProductID        ProductID
	ProductName      string
	Description      string
	SKU              string
	UnitOfMeasure    string
	UnitPrice        decimal.Decimal
	Discount         *float64
	LastPurchaseDate *time.Time
	OwnHistory       bool
}

// A ResolvedSupplier is the single quote selected to price a cart line.
type ResolvedSupplier struct {
	SupplierID       SupplierID
	SupplierName     string
	UnitPrice        decimal.Decimal
	Discount         *float64
	LastPurchaseDate *time.Time
	OwnHistory       bool
}

type CartLine struct {
	ProductID     ProductID
	Name          string
	SKU           string
	UnitOfMeasure string
	Quantity      int
	UnitPrice     decimal.Decimal
	SupplierID    *SupplierID
	SupplierName  string
}

// LineTotal returns Quantity times UnitPrice, unrounded.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type OrderLine struct {
	ProductID     ProductID
	Name          string
	SKU           string
	UnitOfMeasure string
	Quantity      int
	UnitPrice     decimal.Decimal
	SupplierID    SupplierID
	SupplierName  string
}

// An Order is the immutable submission snapshot produced from a cart.
// OrderID is empty until the persistence collaborator assigns one.
type Order struct {
	OrderID     OrderID
	CompanyID   CompanyID
	Lines       []OrderLine
	Total       decimal.Decimal
	SubmittedAt time.Time
}

type User struct {
	UserID    int64
	CompanyID CompanyID
	Email     string
	Password  string
}

type Session struct {
	Token     string
	CompanyID CompanyID
}
