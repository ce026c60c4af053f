package model

import "time"

// Account is a customer account record. Only phone and date of birth are
// editable through the chat channel.
type Account struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID string    `gorm:"uniqueIndex;size:64;not null" json:"customerId"`
	Name       string    `gorm:"size:255" json:"name"`
	Email      string    `gorm:"size:255" json:"email"`
	Phone      string    `gorm:"size:32" json:"phone"`
	DOB        string    `gorm:"size:10" json:"dob"` // YYYY-MM-DD
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Account) TableName() string {
	return "accounts"
}
