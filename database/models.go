package database

import (
	"time"

	"gorm.io/gorm"
)

// Post is a blog post. The column names match the hosted posts table, where
// the secondary language (Bengali) lives in title_bn/excerpt_bn.
type Post struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"not null" json:"title"`
	TitleAlt      string    `gorm:"column:title_bn" json:"title_bn,omitempty"`
	Body          string    `gorm:"column:excerpt;type:text;not null" json:"excerpt"`
	BodyAlt       string    `gorm:"column:excerpt_bn;type:text" json:"excerpt_bn,omitempty"`
	Category      string    `gorm:"default:General" json:"category"`
	PublishedDate string    `gorm:"column:date" json:"date"`
	ImageURL      string    `gorm:"column:image_url" json:"image_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Column names used for partial updates.
const (
	ColumnTitle    = "title"
	ColumnTitleAlt = "title_bn"
	ColumnBody     = "excerpt"
	ColumnBodyAlt  = "excerpt_bn"
	ColumnCategory = "category"
	ColumnImageURL = "image_url"
)

type AdminUser struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex"`
	PasswordHash []byte
	SessionToken string `gorm:"index"`
}
