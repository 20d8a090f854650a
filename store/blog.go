package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/SiddharthNagaych-aigod/axel-guard-prod/catalog"
	"github.com/SiddharthNagaych-aigod/axel-guard-prod/reconcile"
)

// BlogPosts returns all posts, editor order first, newest date next.
func (s *Store) BlogPosts(ctx context.Context) ([]catalog.BlogPost, error) {
	var posts []BlogPost
	if err := s.database.WithContext(ctx).
		Order("\"order\"").Order("date desc").
		Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to get blog posts: %v", err)
	}

	out := make([]catalog.BlogPost, len(posts))
	for i, p := range posts {
		out[i] = catalog.BlogPost{
			ID:          idString(p.ID),
			Slug:        p.Slug,
			Title:       p.Title,
			Date:        formatDate(p.Date),
			Author:      p.Author,
			Category:    p.Category,
			Content:     p.Content,
			Excerpt:     p.Excerpt,
			Image:       p.Image,
			OriginalURL: p.OriginalURL,
			Order:       p.Order,
		}
	}
	return out, nil
}

// SaveBlogPosts upserts the submitted posts, assigning each one's order
// from its array position. Posts update by id when present, else by slug;
// unknown slugs create new records. Stored posts missing from the payload
// stay untouched.
func (s *Store) SaveBlogPosts(ctx context.Context, incoming []catalog.BlogPost) error {
	reconcile.Reorder(incoming, func(p *catalog.BlogPost, pos int) { p.Order = pos })
	incoming = reconcile.DedupeLastWins(incoming, func(p catalog.BlogPost) string { return p.Slug })

	db := s.database.WithContext(ctx)
	for _, p := range incoming {
		cols := map[string]any{
			"slug":     p.Slug,
			"title":    p.Title,
			"date":     parseDate(p.Date),
			"author":   p.Author,
			"category": p.Category,
			"content":  p.Content,
			"excerpt":  p.Excerpt,
			"image":    p.Image,
			"order":    p.Order,
		}
		if p.OriginalURL != "" {
			cols["original_url"] = p.OriginalURL
		}

		var existing BlogPost
		var err error
		if id, ok := parseID(p.ID); ok {
			err = db.First(&existing, id).Error
		} else {
			err = db.First(&existing, "slug = ?", p.Slug).Error
		}

		switch {
		case err == nil:
			if err := db.Model(&existing).Updates(cols).Error; err != nil {
				return fmt.Errorf("failed to update blog post %s: %v", p.Slug, err)
			}
		case err == gorm.ErrRecordNotFound:
			record := BlogPost{
				Slug:        p.Slug,
				Title:       p.Title,
				Date:        parseDate(p.Date),
				Author:      p.Author,
				Category:    p.Category,
				Content:     p.Content,
				Excerpt:     p.Excerpt,
				Image:       p.Image,
				OriginalURL: p.OriginalURL,
				Order:       p.Order,
			}
			if err := db.Create(&record).Error; err != nil {
				return fmt.Errorf("failed to create blog post %s: %v", p.Slug, err)
			}
		default:
			return fmt.Errorf("failed to look up blog post %s: %v", p.Slug, err)
		}
	}
	return nil
}

// DeleteBlogPost removes a single post and its comments, by numeric id or
// by slug.
func (s *Store) DeleteBlogPost(ctx context.Context, id string) error {
	db := s.database.WithContext(ctx)

	var post BlogPost
	var err error
	if pk, ok := parseID(id); ok {
		err = db.First(&post, pk).Error
	} else {
		err = db.First(&post, "slug = ?", id).Error
	}
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return catalog.ErrNotFound
		}
		return fmt.Errorf("failed to look up blog post %s: %v", id, err)
	}

	if err := db.Where("post_id = ? OR slug = ?", post.ID, post.Slug).Delete(&Comment{}).Error; err != nil {
		return fmt.Errorf("failed to delete comments of %s: %v", post.Slug, err)
	}
	if err := db.Delete(&post).Error; err != nil {
		return fmt.Errorf("failed to delete blog post %s: %v", post.Slug, err)
	}
	return nil
}

// Comments returns a post's comments, newest first.
func (s *Store) Comments(ctx context.Context, slug string) ([]catalog.Comment, error) {
	var comments []Comment
	if err := s.database.WithContext(ctx).
		Where("slug = ?", slug).
		Order("date desc").
		Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("failed to get comments: %v", err)
	}

	out := make([]catalog.Comment, len(comments))
	for i, c := range comments {
		out[i] = catalog.Comment{
			ID:      idString(c.ID),
			Slug:    c.Slug,
			Name:    c.Name,
			Content: c.Content,
			Date:    formatDate(c.Date),
		}
	}
	return out, nil
}

func (s *Store) AddComment(ctx context.Context, c catalog.Comment) (catalog.Comment, error) {
	db := s.database.WithContext(ctx)

	record := Comment{
		Slug:    c.Slug,
		Name:    c.Name,
		Content: c.Content,
		Date:    time.Now().UTC(),
	}
	if c.Date != "" {
		record.Date = parseDate(c.Date)
	}

	// Link to the parent post when it exists; a comment on a slug that has
	// no stored post keeps the denormalized slug only.
	var post BlogPost
	if err := db.First(&post, "slug = ?", c.Slug).Error; err == nil {
		record.PostID = post.ID
	}

	if err := db.Create(&record).Error; err != nil {
		return catalog.Comment{}, fmt.Errorf("failed to save comment: %v", err)
	}

	c.ID = idString(record.ID)
	c.Date = formatDate(record.Date)
	return c, nil
}
