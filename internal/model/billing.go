package model

import "time"

// Billing record types.
const (
	BillingTypeOrder        = "order"
	BillingTypeSubscription = "subscription"
)

// BillingRecord is a row of the billing table. A row is either a one-off
// order (order_id/product_name/amount) or a subscription (plan/price).
type BillingRecord struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	CustomerID      string    `gorm:"index;size:64;not null" json:"customerId"`
	OrderID         string    `gorm:"size:64" json:"orderId"`
	ProductName     string    `gorm:"size:255" json:"productName"`
	Amount          float64   `json:"amount"`
	Plan            string    `gorm:"size:64" json:"plan"`
	Price           float64   `json:"price"`
	Status          string    `gorm:"size:32" json:"status"`
	BillingType     string    `gorm:"size:16" json:"billingType"`
	NextBillingDate string    `gorm:"size:10" json:"nextBillingDate"`
	PaymentMethod   string    `gorm:"size:64" json:"paymentMethod"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (BillingRecord) TableName() string {
	return "billing"
}

// BillingItem is the normalized view handed to the billing agent, unifying
// orders and subscriptions.
type BillingItem struct {
	OrderID         string
	ProductName     string
	Amount          float64
	Status          string
	Type            string
	NextBillingDate string
	PaymentMethod   string
}
