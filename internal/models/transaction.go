package models

import "time"

// TransactionType enumerates transaction kinds
type TransactionType string

const (
	TxIncome      TransactionType = "INGRESO"
	TxExpense     TransactionType = "EGRESO"
	TxTransfer    TransactionType = "TRANSFERENCIA"
	TxCardPayment TransactionType = "PAGO_TARJETA"
)

// Transaction represents a financial transaction between accounts
type Transaction struct {
	ID            int64           `json:"id"`
	Type          TransactionType `json:"type"`
	Amount        float64         `json:"amount"`
	Description   string          `json:"description"`
	Date          time.Time       `json:"date"`
	FromAccountID *int64          `json:"from_account_id,omitempty"`
	ToAccountID   *int64          `json:"to_account_id,omitempty"`
	UserID        int64           `json:"user_id"`
	CreatedAt     string          `json:"created_at"`
}
