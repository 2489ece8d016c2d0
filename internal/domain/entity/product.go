package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product material promocional distribuible. El precio se usa solo para el
// resumen de facturación; las cantidades del ledger son unidades discretas.
type Product struct {
	ID        string
	Code      string
	Name      string
	Unit      string
	Price     decimal.Decimal
	IsActive  bool
	CreatedAt time.Time
}
