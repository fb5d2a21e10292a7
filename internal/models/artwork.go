package models

import "time"

// Artwork is a finally-accepted generated text persisted with its
// presentation metadata. The generation loop never writes these
// directly; the artwork service does, on explicit save.
type Artwork struct {
	ID          uint   `gorm:"primaryKey"`
	Category    string `gorm:"size:64;not null;index"`
	Title       string `gorm:"size:255;not null"`
	Content     string `gorm:"type:text;not null"`
	Author      string `gorm:"size:255;index"`
	Status      string `gorm:"size:16;not null;default:public"`
	Tags        string `gorm:"size:255"`
	Readability string `gorm:"size:32"`
	PublishDate *time.Time
	MaxTokens   int
	ImageURL    string `gorm:"size:512"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
