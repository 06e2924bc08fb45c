package model

import "time"

type Feedback struct {
	ID           uint      `json:"_id" gorm:"primaryKey"`
	Content      string    `json:"content" gorm:"type:text;not null"`
	Email        string    `json:"email" gorm:"size:255;not null"`
	Username     string    `json:"username" gorm:"size:100"`
	IsNew        bool      `json:"isNew" gorm:"not null;default:true;index"`
	IsBookmarked bool      `json:"isBookmarked" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
