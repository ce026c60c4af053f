package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"support-desk-go/internal/model"
)

// BillingRepository reads customer billing records.
type BillingRepository interface {
	FindByCustomerID(customerID string) ([]model.BillingItem, error)
}

// billingRepository is the GORM implementation of BillingRepository.
type billingRepository struct {
	db *gorm.DB
}

// NewBillingRepository creates a new BillingRepository instance.
func NewBillingRepository(db *gorm.DB) BillingRepository {
	return &billingRepository{db: db}
}

// FindByCustomerID returns the customer's billing rows, newest first,
// normalized into the unified order/subscription view.
func (r *billingRepository) FindByCustomerID(customerID string) ([]model.BillingItem, error) {
	var records []model.BillingRecord
	err := r.db.Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	items := make([]model.BillingItem, 0, len(records))
	for _, rec := range records {
		items = append(items, normalizeBillingRecord(rec))
	}
	return items, nil
}

// normalizeBillingRecord maps a raw billing row to the unified item format.
// Rows carrying an order id are orders; everything else is a subscription.
func normalizeBillingRecord(rec model.BillingRecord) model.BillingItem {
	if rec.BillingType == model.BillingTypeOrder || rec.OrderID != "" {
		orderID := rec.OrderID
		if orderID == "" {
			orderID = fmt.Sprintf("O%d", rec.ID)
		}
		productName := rec.ProductName
		if productName == "" {
			productName = "Unknown Product"
		}
		return model.BillingItem{
			OrderID:     orderID,
			ProductName: productName,
			Amount:      rec.Amount,
			Status:      normalizeStatus(rec.Status),
			Type:        model.BillingTypeOrder,
		}
	}

	plan := rec.Plan
	if plan == "" {
		plan = "Unknown Plan"
	}
	return model.BillingItem{
		OrderID:         fmt.Sprintf("SUB-%d", rec.ID),
		ProductName:     fmt.Sprintf("%s Subscription", plan),
		Amount:          rec.Price,
		Status:          normalizeStatus(rec.Status),
		Type:            model.BillingTypeSubscription,
		NextBillingDate: rec.NextBillingDate,
		PaymentMethod:   rec.PaymentMethod,
	}
}

func normalizeStatus(status string) string {
	if status == "" {
		return "UNKNOWN"
	}
	return strings.ToUpper(status)
}
