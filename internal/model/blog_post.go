package model

import "time"

type BlogPost struct {
	ID          uint      `json:"_id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Content     string    `json:"content" gorm:"type:text;not null"`
	Category    string    `json:"category" gorm:"size:100;not null;index"`
	Tags        []string  `json:"tags" gorm:"serializer:json"`
	IsPublished bool      `json:"isPublished" gorm:"not null;default:false;index"`
	PostedByID  uint      `json:"-" gorm:"not null;index"`
	PostedBy    User      `json:"-" gorm:"foreignKey:PostedByID;references:ID"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
