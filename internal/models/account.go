package models

// AccountType enumerates the kinds of accounts the dashboard tracks
type AccountType string

const (
	AccountBank       AccountType = "BANK"
	AccountCreditCard AccountType = "CREDIT_CARD"
	AccountCash       AccountType = "CASH"
	AccountWallet     AccountType = "WALLET"
)

// Account represents a bank account, credit card, cash box or wallet.
// For credit cards Balance is the owed debt, not available funds.
type Account struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	BankName    string      `json:"bank_name,omitempty"`
	Type        AccountType `json:"type"`
	Currency    string      `json:"currency"`
	Balance     float64     `json:"balance"`
	CreditLimit *float64    `json:"credit_limit,omitempty"`
	PaymentDay  *int        `json:"payment_day,omitempty"`
	CutoffDay   *int        `json:"cutoff_day,omitempty"`
	IsActive    bool        `json:"is_active"`
	CreatedAt   string      `json:"created_at"`
	UpdatedAt   string      `json:"updated_at"`
}

// IsCreditCard reports whether the account balance is debt
func (a Account) IsCreditCard() bool {
	return a.Type == AccountCreditCard
}

// DisplayName returns the account name with its bank, e.g. "Visa Oro (BI)"
func (a Account) DisplayName() string {
	if a.BankName == "" {
		return a.Name
	}
	return a.Name + " (" + a.BankName + ")"
}

// BalanceAdjustment is the history reason of a manually set balance
const BalanceAdjustment = "AJUSTE"

// BalanceHistory records a balance change caused by a transaction or by a
// manual adjustment. AccountName and Currency are filled when listing.
type BalanceHistory struct {
	ID              int64   `json:"id"`
	AccountID       int64   `json:"account_id"`
	AccountName     string  `json:"account_name,omitempty"`
	Currency        string  `json:"currency,omitempty"`
	PreviousBalance float64 `json:"previous_balance"`
	NewBalance      float64 `json:"new_balance"`
	Change          float64 `json:"change"`
	Reason          string  `json:"reason"`
	Notes           string  `json:"notes,omitempty"`
	TransactionID   *int64  `json:"transaction_id,omitempty"`
	UserID          *int64  `json:"user_id,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

// BalanceAfter returns the account balance once amount leaves (outgoing) or
// arrives at the account. Spending on a credit card increases its debt and
// paying it reduces the debt.
func (a Account) BalanceAfter(amount float64, outgoing bool) float64 {
	switch {
	case a.IsCreditCard() && outgoing, !a.IsCreditCard() && !outgoing:
		return a.Balance + amount
	default:
		return a.Balance - amount
	}
}
