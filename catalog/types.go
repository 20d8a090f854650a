// Package catalog holds the content types shared by the HTTP API and the
// storage backends, plus the category matching rules for product listings.
package catalog

// CategoryRef is a denormalized category reference carried on a product.
// Depending on the storage backend it holds either just an id or the
// embedded {val, name} pair.
type CategoryRef struct {
	ID   string `json:"_id,omitempty"`
	Name string `json:"name,omitempty"`
	Val  string `json:"val,omitempty"`
}

type Product struct {
	ID                string       `json:"_id,omitempty"`
	ProductCode       string       `json:"product_code"`
	ProductName       string       `json:"product_name"`
	ProductType       string       `json:"product_type,omitempty"`
	Category          *CategoryRef `json:"category,omitempty"`
	Subcategory       *CategoryRef `json:"subcategory,omitempty"`
	Images            []string     `json:"images,omitempty"`
	Features          []string     `json:"features,omitempty"`
	TechnicalFeatures []string     `json:"technical_features,omitempty"`
	Price             string       `json:"price,omitempty"`
	PDFManual         string       `json:"pdf_manual,omitempty"`
	Order             int          `json:"order,omitempty"`
}

type Subcategory struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name"`
	Val   string `json:"val"`
	Href  string `json:"href,omitempty"`
	Order int    `json:"order,omitempty"`
}

type Category struct {
	ID            string        `json:"_id,omitempty"`
	Name          string        `json:"name"`
	Val           string        `json:"val"`
	Href          string        `json:"href,omitempty"`
	Order         int           `json:"order,omitempty"`
	Subcategories []Subcategory `json:"subcategories,omitempty"`
}

type Service struct {
	ID          string `json:"_id,omitempty"`
	Title       string `json:"title"`
	Icon        string `json:"icon,omitempty"`
	Description string `json:"description"`
	Link        string `json:"link,omitempty"`
	Order       int    `json:"order,omitempty"`
}

// Content is the bundle served to the public site: products, services and
// the client logo carousel (image URLs).
type Content struct {
	Products []Product `json:"products"`
	Services []Service `json:"services"`
	Clients  []string  `json:"clients"`
}

type BlogPost struct {
	ID          string `json:"id,omitempty"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Author      string `json:"author"`
	Category    string `json:"category,omitempty"`
	Content     string `json:"content"`
	Excerpt     string `json:"excerpt,omitempty"`
	Image       string `json:"image,omitempty"`
	OriginalURL string `json:"originalUrl,omitempty"`
	Order       int    `json:"order,omitempty"`
}

type Comment struct {
	ID      string `json:"id"`
	Slug    string `json:"slug"`
	Name    string `json:"name"`
	Content string `json:"content"`
	Date    string `json:"date"`
}
