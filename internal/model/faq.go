package model

import "time"

// FAQ is a help article matched against user questions by keyword overlap.
type FAQ struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Question  string    `gorm:"type:text;not null" json:"question"`
	Answer    string    `gorm:"type:text;not null" json:"answer"`
	Keywords  []string  `gorm:"serializer:json" json:"keywords"`
	Priority  int       `gorm:"default:5" json:"priority"`
	IsActive  bool      `gorm:"default:true;index" json:"isActive"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (FAQ) TableName() string {
	return "faqs"
}
