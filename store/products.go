package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/SiddharthNagaych-aigod/axel-guard-prod/catalog"
	"github.com/SiddharthNagaych-aigod/axel-guard-prod/reconcile"
)

func (s *Store) Products(ctx context.Context) ([]catalog.Product, error) {
	var products []Product
	if err := s.database.WithContext(ctx).
		Preload("Category").
		Preload("Subcategory").
		Order("\"order\"").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products: %v", err)
	}

	out := make([]catalog.Product, len(products))
	for i, p := range products {
		out[i] = catalog.Product{
			ID:                idString(p.ID),
			ProductCode:       p.ProductCode,
			ProductName:       p.Name,
			ProductType:       p.ProductType,
			Category:          categoryRef(p.Category),
			Subcategory:       subcategoryRef(p.Subcategory),
			Images:            []string(p.Images),
			Features:          []string(p.Features),
			TechnicalFeatures: []string(p.TechnicalFeatures),
			Price:             p.Price,
			PDFManual:         p.PDFManual,
			Order:             p.Order,
		}
	}
	return out, nil
}

// SaveProducts upserts each incoming product by id when it carries one,
// else by product_code. A product whose category reference cannot be
// resolved is logged and skipped; the rest of the batch continues. Products
// absent from the incoming list are untouched.
func (s *Store) SaveProducts(ctx context.Context, incoming []catalog.Product, reorder bool) error {
	if reorder {
		reconcile.Reorder(incoming, func(p *catalog.Product, pos int) { p.Order = pos })
	}
	incoming = reconcile.DedupeLastWins(incoming, func(p catalog.Product) string { return p.ProductCode })

	db := s.database.WithContext(ctx)
	for _, p := range incoming {
		categoryID, ok := s.resolveCategoryID(ctx, p.Category)
		if !ok {
			slog.Warn("skipping product, unresolved category", "product_code", p.ProductCode, "category", p.Category.Val)
			continue
		}
		subcategoryID, ok := s.resolveSubcategoryID(ctx, p.Subcategory)
		if !ok {
			slog.Warn("skipping product, unresolved subcategory", "product_code", p.ProductCode, "subcategory", p.Subcategory.Val)
			continue
		}

		record := Product{
			ProductCode:       p.ProductCode,
			Name:              p.ProductName,
			ProductType:       p.ProductType,
			CategoryID:        categoryID,
			SubcategoryID:     subcategoryID,
			Images:            pq.StringArray(p.Images),
			Features:          pq.StringArray(p.Features),
			TechnicalFeatures: pq.StringArray(p.TechnicalFeatures),
			Price:             p.Price,
			PDFManual:         p.PDFManual,
			Order:             p.Order,
		}

		if id, ok := parseID(p.ID); ok {
			record.ID = id
			if err := db.Model(&Product{}).Where("id = ?", id).Updates(toProductColumns(record)).Error; err != nil {
				return fmt.Errorf("failed to save product %s: %v", p.ProductCode, err)
			}
			continue
		}

		var existing Product
		err := db.First(&existing, "product_code = ?", p.ProductCode).Error
		switch {
		case err == nil:
			if err := db.Model(&existing).Updates(toProductColumns(record)).Error; err != nil {
				return fmt.Errorf("failed to save product %s: %v", p.ProductCode, err)
			}
		case err == gorm.ErrRecordNotFound:
			if err := db.Create(&record).Error; err != nil {
				return fmt.Errorf("failed to create product %s: %v", p.ProductCode, err)
			}
		default:
			return fmt.Errorf("failed to look up product %s: %v", p.ProductCode, err)
		}
	}
	return nil
}

// toProductColumns builds an explicit column map so zero values (cleared
// price, order 0) still overwrite.
func toProductColumns(p Product) map[string]any {
	return map[string]any{
		"product_code":       p.ProductCode,
		"name":               p.Name,
		"product_type":       p.ProductType,
		"category_id":        p.CategoryID,
		"subcategory_id":     p.SubcategoryID,
		"images":             p.Images,
		"features":           p.Features,
		"technical_features": p.TechnicalFeatures,
		"price":              p.Price,
		"pdf_manual":         p.PDFManual,
		"order":              p.Order,
	}
}

func (s *Store) DeleteProduct(ctx context.Context, code string) error {
	res := s.database.WithContext(ctx).Where("product_code = ?", code).Delete(&Product{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete product %s: %v", code, res.Error)
	}
	if res.RowsAffected == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

// resolveCategoryID turns an incoming category reference into a foreign
// key. References resolve by id first, then by slug, then by display name.
// A nil reference is valid (uncategorized product); a reference that
// matches nothing is the caller's signal to skip the entity.
func (s *Store) resolveCategoryID(ctx context.Context, ref *catalog.CategoryRef) (*uint, bool) {
	if ref == nil {
		return nil, true
	}
	if id, ok := parseID(ref.ID); ok {
		return &id, true
	}
	var c Category
	db := s.database.WithContext(ctx)
	if ref.Val != "" {
		if err := db.First(&c, "val = ?", ref.Val).Error; err == nil {
			id := c.ID
			return &id, true
		}
	}
	if ref.Name != "" {
		if err := db.First(&c, "lower(name) = lower(?)", ref.Name).Error; err == nil {
			id := c.ID
			return &id, true
		}
	}
	return nil, false
}

func (s *Store) resolveSubcategoryID(ctx context.Context, ref *catalog.CategoryRef) (*uint, bool) {
	if ref == nil {
		return nil, true
	}
	if id, ok := parseID(ref.ID); ok {
		return &id, true
	}
	var sub Subcategory
	db := s.database.WithContext(ctx)
	if ref.Val != "" {
		if err := db.First(&sub, "val = ?", ref.Val).Error; err == nil {
			id := sub.ID
			return &id, true
		}
	}
	if ref.Name != "" {
		if err := db.First(&sub, "lower(name) = lower(?)", ref.Name).Error; err == nil {
			id := sub.ID
			return &id, true
		}
	}
	return nil, false
}

func (s *Store) Services(ctx context.Context) ([]catalog.Service, error) {
	var services []Service
	if err := s.database.WithContext(ctx).Order("\"order\"").Find(&services).Error; err != nil {
		return nil, fmt.Errorf("failed to get services: %v", err)
	}
	out := make([]catalog.Service, len(services))
	for i, sv := range services {
		out[i] = catalog.Service{
			ID:          idString(sv.ID),
			Title:       sv.Title,
			Icon:        sv.Icon,
			Description: sv.Description,
			Link:        sv.Link,
			Order:       sv.Order,
		}
	}
	return out, nil
}

// Clients returns the logo carousel as a bare URL list, the shape the
// public site consumes.
func (s *Store) Clients(ctx context.Context) ([]string, error) {
	var clients []Client
	if err := s.database.WithContext(ctx).Order("\"order\"").Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("failed to get clients: %v", err)
	}
	urls := make([]string, len(clients))
	for i, c := range clients {
		urls[i] = c.ImageURL
	}
	return urls, nil
}

func (s *Store) Content(ctx context.Context) (catalog.Content, error) {
	products, err := s.Products(ctx)
	if err != nil {
		return catalog.Content{}, err
	}
	services, err := s.Services(ctx)
	if err != nil {
		return catalog.Content{}, err
	}
	clients, err := s.Clients(ctx)
	if err != nil {
		return catalog.Content{}, err
	}
	return catalog.Content{Products: products, Services: services, Clients: clients}, nil
}
