package models

// EventKind is the direction of a projected event
type EventKind string

const (
	EventIncome      EventKind = "income"
	EventExpense     EventKind = "expense"
	EventCardPayment EventKind = "card_payment"
)

// EventSource tells where a projected event comes from
type EventSource string

const (
	SourceHistory   EventSource = "projected_from_history"
	SourceRecurring EventSource = "recurring"
	SourceCardDue   EventSource = "card_due"
)

// Confidence grades how reliable a projected event is
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// RecurringPattern is a description whose amounts cluster tightly over history
type RecurringPattern struct {
	Key        string          `json:"key"`
	Amounts    []float64       `json:"amounts"`
	Days       []int           `json:"days"`
	Type       TransactionType `json:"type"`
	AvgAmount  float64         `json:"avg_amount"`
	StdDev     float64         `json:"std_dev"`
	AvgDay     int             `json:"avg_day"`
	Confidence Confidence      `json:"confidence"`
}

// ProjectedEvent is a dated cash movement expected within the horizon
type ProjectedEvent struct {
	Date        string      `json:"date"` // Format: YYYY-MM-DD
	Kind        EventKind   `json:"kind"`
	Amount      float64     `json:"amount"`
	Description string      `json:"description"`
	Source      EventSource `json:"source"`
	Confidence  Confidence  `json:"confidence"`
}

// DailyProjection represents the projected balance for a specific day
type DailyProjection struct {
	Date    string           `json:"date"` // Format: YYYY-MM-DD
	Label   string           `json:"label"`
	Balance float64          `json:"balance"`
	Income  float64          `json:"income"`
	Expense float64          `json:"expense"`
	Events  []ProjectedEvent `json:"events"`
}

// LowestPoint is the day with the minimum projected balance
type LowestPoint struct {
	Date    string  `json:"date"`
	Label   string  `json:"label"`
	Balance float64 `json:"balance"`
}

// CardPayment describes a credit card's payment schedule
type CardPayment struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	BankName   string  `json:"bank_name,omitempty"`
	Balance    float64 `json:"balance"`
	PaymentDay *int    `json:"payment_day,omitempty"`
	CutoffDay  *int    `json:"cutoff_day,omitempty"`
}

// CashFlowReport is the projection returned to the dashboard
type CashFlowReport struct {
	Days                int               `json:"days"`
	Currency            string            `json:"currency"`
	CurrentBalance      float64           `json:"current_balance"`
	CurrentDebt         float64           `json:"current_debt"`
	ProjectedEndBalance float64           `json:"projected_end_balance"`
	ProjectedIncome     float64           `json:"projected_income"`
	ProjectedExpenses   float64           `json:"projected_expenses"`
	LowestPoint         LowestPoint       `json:"lowest_point"`
	AvgDailyIncome      float64           `json:"avg_daily_income"`
	AvgDailyExpense     float64           `json:"avg_daily_expense"`
	DailyProjection     []DailyProjection `json:"daily_projection"`
	UpcomingEvents      []ProjectedEvent  `json:"upcoming_events"`
	CreditCardPayments  []CardPayment     `json:"credit_card_payments"`
}

// BalanceSummary is the "have vs owe" overview
type BalanceSummary struct {
	Currency  string  `json:"currency"`
	Available float64 `json:"available"`
	Debt      float64 `json:"debt"`
	Net       float64 `json:"net"`
}
