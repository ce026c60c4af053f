package model

import "time"

// TechnicalIssue is a ticket opened by the technical agent on behalf of a
// customer.
type TechnicalIssue struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	CustomerID  string     `gorm:"index;size:64;not null" json:"customerId"`
	IssueType   string     `gorm:"size:64;not null" json:"issueType"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Status      string     `gorm:"size:32;not null" json:"status"`
	Solution    string     `gorm:"type:text" json:"solution"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	ResolvedAt  *time.Time `json:"resolvedAt"`
}

func (TechnicalIssue) TableName() string {
	return "technical_issues"
}
