package store

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	ProductCode       string `gorm:"uniqueIndex"`
	Name              string
	ProductType       string // legacy free-text classifier, kept until migration completes
	CategoryID        *uint
	Category          *Category
	SubcategoryID     *uint
	Subcategory       *Subcategory
	Images            pq.StringArray `gorm:"type:text[]"`
	Features          pq.StringArray `gorm:"type:text[]"`
	TechnicalFeatures pq.StringArray `gorm:"type:text[]"`
	Price             string
	PDFManual         string
	Order             int
}

type Category struct {
	gorm.Model
	Name          string
	Val           string `gorm:"uniqueIndex"`
	Href          string
	Order         int
	Subcategories []Subcategory `gorm:"foreignKey:ParentID"`
}

type Subcategory struct {
	gorm.Model
	ParentID uint `gorm:"index"`
	Name     string
	Val      string `gorm:"uniqueIndex"`
	Href     string
	Order    int
}

type BlogPost struct {
	gorm.Model
	Slug        string `gorm:"uniqueIndex"`
	Title       string
	Date        time.Time
	Author      string
	Category    string
	Content     string
	Excerpt     string
	Image       string
	OriginalURL string
	Order       int
}

type Comment struct {
	gorm.Model
	PostID  uint   `gorm:"index"`
	Slug    string `gorm:"index"`
	Name    string
	Content string
	Date    time.Time
}

type Client struct {
	gorm.Model
	ImageURL string
	Order    int
}

type Service struct {
	gorm.Model
	Title       string
	Icon        string
	Description string
	Link        string
	Order       int
}
