// Package repository defines the data access interfaces and implementations.
package repository

import (
	"gorm.io/gorm"

	"support-desk-go/internal/model"
)

// AccountRepository persists customer account records.
type AccountRepository interface {
	FindByCustomerID(customerID string) (*model.Account, error)
	UpdatePhone(customerID, phone string) error
	UpdateDOB(customerID, dob string) error
	GetEmail(customerID string) (string, error)
}

// accountRepository is the GORM implementation of AccountRepository.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new AccountRepository instance.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// FindByCustomerID looks up an account by its customer id.
func (r *accountRepository) FindByCustomerID(customerID string) (*model.Account, error) {
	var account model.Account
	err := r.db.Where("customer_id = ?", customerID).First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// UpdatePhone sets a new phone number for the customer.
func (r *accountRepository) UpdatePhone(customerID, phone string) error {
	return r.db.Model(&model.Account{}).
		Where("customer_id = ?", customerID).
		Update("phone", phone).Error
}

// UpdateDOB sets a new date of birth for the customer.
func (r *accountRepository) UpdateDOB(customerID, dob string) error {
	return r.db.Model(&model.Account{}).
		Where("customer_id = ?", customerID).
		Update("dob", dob).Error
}

// GetEmail returns the customer's email address.
func (r *accountRepository) GetEmail(customerID string) (string, error) {
	account, err := r.FindByCustomerID(customerID)
	if err != nil {
		return "", err
	}
	return account.Email, nil
}
