package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SiddharthNagaych-aigod/axel-guard-prod/catalog"
	"github.com/SiddharthNagaych-aigod/axel-guard-prod/reconcile"
)

// Categories returns the category tree with subcategories nested under
// their parents, both levels sorted by order.
func (s *Store) Categories(ctx context.Context) ([]catalog.Category, error) {
	db := s.database.WithContext(ctx)

	var categories []Category
	if err := db.Order("\"order\"").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get categories: %v", err)
	}
	var subcategories []Subcategory
	if err := db.Order("\"order\"").Find(&subcategories).Error; err != nil {
		return nil, fmt.Errorf("failed to get subcategories: %v", err)
	}

	out := make([]catalog.Category, len(categories))
	for i, c := range categories {
		node := catalog.Category{
			ID:    idString(c.ID),
			Name:  c.Name,
			Val:   c.Val,
			Href:  c.Href,
			Order: c.Order,
		}
		for _, sub := range subcategories {
			if sub.ParentID != c.ID {
				continue
			}
			node.Subcategories = append(node.Subcategories, catalog.Subcategory{
				ID:    idString(sub.ID),
				Name:  sub.Name,
				Val:   sub.Val,
				Href:  sub.Href,
				Order: sub.Order,
			})
		}
		out[i] = node
	}
	return out, nil
}

// SaveCategories syncs the full category tree. Each category upserts by id,
// then by val; its subcategory set is replaced (subcategories missing from
// the payload are deleted for that parent). Categories absent from a
// payload that carries ids are deleted along with their subcategories --
// the categories POST is a full-tree sync, unlike the product save. A
// payload of entirely new, id-less categories is additive and deletes
// nothing.
func (s *Store) SaveCategories(ctx context.Context, incoming []catalog.Category) error {
	incoming = reconcile.DedupeLastWins(incoming, func(c catalog.Category) string { return c.Val })
	reconcile.Reorder(incoming, func(c *catalog.Category, pos int) { c.Order = pos })

	db := s.database.WithContext(ctx)
	keepIDs := make([]uint, 0, len(incoming))
	hasIDs := false
	for _, cat := range incoming {
		if _, ok := parseID(cat.ID); ok {
			hasIDs = true
			break
		}
	}

	for _, cat := range incoming {
		record, err := s.upsertCategory(ctx, cat)
		if err != nil {
			return err
		}
		keepIDs = append(keepIDs, record.ID)

		if err := s.syncSubcategories(ctx, record.ID, cat.Subcategories); err != nil {
			return err
		}
	}

	if hasIDs && len(keepIDs) > 0 {
		var stale []Category
		if err := db.Where("id NOT IN ?", keepIDs).Find(&stale).Error; err != nil {
			return fmt.Errorf("failed to list stale categories: %v", err)
		}
		for _, c := range stale {
			if err := db.Where("parent_id = ?", c.ID).Delete(&Subcategory{}).Error; err != nil {
				return fmt.Errorf("failed to delete subcategories of %s: %v", c.Val, err)
			}
			if err := db.Delete(&Category{}, c.ID).Error; err != nil {
				return fmt.Errorf("failed to delete category %s: %v", c.Val, err)
			}
		}
	}
	return nil
}

func (s *Store) upsertCategory(ctx context.Context, cat catalog.Category) (Category, error) {
	db := s.database.WithContext(ctx)
	cols := map[string]any{
		"name":  cat.Name,
		"val":   cat.Val,
		"href":  cat.Href,
		"order": cat.Order,
	}

	if id, ok := parseID(cat.ID); ok {
		var existing Category
		if err := db.First(&existing, id).Error; err == nil {
			if err := db.Model(&existing).Updates(cols).Error; err != nil {
				return Category{}, fmt.Errorf("failed to update category %s: %v", cat.Val, err)
			}
			return existing, nil
		}
	}

	var existing Category
	err := db.First(&existing, "val = ?", cat.Val).Error
	switch {
	case err == nil:
		if err := db.Model(&existing).Updates(cols).Error; err != nil {
			return Category{}, fmt.Errorf("failed to update category %s: %v", cat.Val, err)
		}
		return existing, nil
	case err == gorm.ErrRecordNotFound:
		record := Category{Name: cat.Name, Val: cat.Val, Href: cat.Href, Order: cat.Order}
		if err := db.Create(&record).Error; err != nil {
			return Category{}, fmt.Errorf("failed to create category %s: %v", cat.Val, err)
		}
		return record, nil
	default:
		return Category{}, fmt.Errorf("failed to look up category %s: %v", cat.Val, err)
	}
}

func (s *Store) syncSubcategories(ctx context.Context, parentID uint, subs []catalog.Subcategory) error {
	db := s.database.WithContext(ctx)

	subs = reconcile.DedupeLastWins(subs, func(s catalog.Subcategory) string { return s.Val })
	reconcile.Reorder(subs, func(s *catalog.Subcategory, pos int) { s.Order = pos })

	keepIDs := make([]uint, 0, len(subs))
	for _, sub := range subs {
		cols := map[string]any{
			"parent_id": parentID,
			"name":      sub.Name,
			"val":       sub.Val,
			"href":      sub.Href,
			"order":     sub.Order,
		}

		var existing Subcategory
		var err error
		if id, ok := parseID(sub.ID); ok {
			err = db.First(&existing, id).Error
		} else {
			err = db.First(&existing, "val = ?", sub.Val).Error
		}

		switch {
		case err == nil:
			if err := db.Model(&existing).Updates(cols).Error; err != nil {
				return fmt.Errorf("failed to update subcategory %s: %v", sub.Val, err)
			}
			keepIDs = append(keepIDs, existing.ID)
		case err == gorm.ErrRecordNotFound:
			record := Subcategory{ParentID: parentID, Name: sub.Name, Val: sub.Val, Href: sub.Href, Order: sub.Order}
			if err := db.Create(&record).Error; err != nil {
				return fmt.Errorf("failed to create subcategory %s: %v", sub.Val, err)
			}
			keepIDs = append(keepIDs, record.ID)
		default:
			return fmt.Errorf("failed to look up subcategory %s: %v", sub.Val, err)
		}
	}

	// Subcategories dropped from the payload are removed for this parent.
	q := db.Where("parent_id = ?", parentID)
	if len(keepIDs) > 0 {
		q = q.Where("id NOT IN ?", keepIDs)
	}
	if err := q.Delete(&Subcategory{}).Error; err != nil {
		return fmt.Errorf("failed to prune subcategories: %v", err)
	}
	return nil
}
