package service

import (
	"context"

	models "inventory-billing/model"

	"github.com/shopspring/decimal"
)

type ServiceInterface interface {
	Menu() []models.StockRecord
	AddToCart(ctx context.Context, productID string, qty int) (models.LineItem, error)
	Items() []models.LineItem
	Subtotal() decimal.Decimal
	GenerateBill(ctx context.Context, customer models.Customer) (models.Bill, error)
}
