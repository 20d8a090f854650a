// Package content is the blob-backed content repository used in the file
// and cloud operating modes. Collections are persisted wholesale as JSON
// documents and reconciled on save.
package content

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/SiddharthNagaych-aigod/axel-guard-prod/catalog"
	"github.com/SiddharthNagaych-aigod/axel-guard-prod/reconcile"
	"github.com/SiddharthNagaych-aigod/axel-guard-prod/storage"
)

const (
	contentFile    = "content.json"
	categoriesFile = "categories.json"
	blogFile       = "blog-posts.json"
	commentsFile   = "comments.json"
)

// Repository reads and writes the site content through a storage.Blob.
type Repository struct {
	blob storage.Blob
}

func New(blob storage.Blob) *Repository {
	return &Repository{blob: blob}
}

// storedProduct carries both the storage field name and the API field name
// for the product title. Early revisions of content.json used "name", later
// ones "product_name"; reads accept either, writes emit both so older
// consumers keep working.
type storedProduct struct {
	catalog.Product
	Name string `json:"name,omitempty"`
}

type storedContent struct {
	Products []storedProduct   `json:"products"`
	Services []catalog.Service `json:"services"`
	Clients  []string          `json:"clients"`
}

func (r *Repository) readContent(ctx context.Context) (storedContent, error) {
	var c storedContent
	if err := r.blob.ReadJSON(ctx, contentFile, &c); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storedContent{}, nil
		}
		return storedContent{}, err
	}
	return c, nil
}

func (r *Repository) writeContent(ctx context.Context, c storedContent) error {
	for i := range c.Products {
		c.Products[i].Name = c.Products[i].ProductName
	}
	return r.blob.WriteJSON(ctx, contentFile, c)
}

// Content returns the full public bundle: products, services, clients.
func (r *Repository) Content(ctx context.Context) (catalog.Content, error) {
	c, err := r.readContent(ctx)
	if err != nil {
		return catalog.Content{}, err
	}
	out := catalog.Content{
		Products: normalizeProducts(c.Products),
		Services: c.Services,
		Clients:  c.Clients,
	}
	if out.Clients == nil {
		out.Clients = []string{}
	}
	if out.Services == nil {
		out.Services = []catalog.Service{}
	}
	sortByOrder(out.Products, func(p catalog.Product) int { return p.Order })
	sortByOrder(out.Services, func(s catalog.Service) int { return s.Order })
	return out, nil
}

func (r *Repository) Products(ctx context.Context) ([]catalog.Product, error) {
	c, err := r.readContent(ctx)
	if err != nil {
		return nil, err
	}
	products := normalizeProducts(c.Products)
	sortByOrder(products, func(p catalog.Product) int { return p.Order })
	return products, nil
}

// SaveProducts reconciles the incoming list against the stored collection:
// update by id or product_code, append when new, last-wins dedupe by code.
// Stored products absent from the incoming list survive; only an explicit
// delete removes a record. With reorder set, order fields are reassigned
// from the submitted array positions.
func (r *Repository) SaveProducts(ctx context.Context, incoming []catalog.Product, reorder bool) error {
	if reorder {
		reconcile.Reorder(incoming, func(p *catalog.Product, pos int) { p.Order = pos })
	}

	c, err := r.readContent(ctx)
	if err != nil {
		return err
	}
	existing := normalizeProducts(c.Products)

	merged := reconcile.Merge(existing, incoming,
		func(p catalog.Product) string { return p.ID },
		func(p catalog.Product) string { return p.ProductCode },
	)
	merged = reconcile.DedupeLastWins(merged, func(p catalog.Product) string { return p.ProductCode })

	c.Products = make([]storedProduct, len(merged))
	for i, p := range merged {
		c.Products[i] = storedProduct{Product: p}
	}
	if err := r.writeContent(ctx, c); err != nil {
		return fmt.Errorf("failed to save products: %v", err)
	}
	return nil
}

// DeleteProduct removes the product with the given code and persists the
// remaining collection.
func (r *Repository) DeleteProduct(ctx context.Context, code string) error {
	c, err := r.readContent(ctx)
	if err != nil {
		return err
	}
	products := normalizeProducts(c.Products)
	remaining, removed := reconcile.Remove(products, func(p catalog.Product) string { return p.ProductCode }, code)
	if !removed {
		return catalog.ErrNotFound
	}
	c.Products = make([]storedProduct, len(remaining))
	for i, p := range remaining {
		c.Products[i] = storedProduct{Product: p}
	}
	return r.writeContent(ctx, c)
}

func (r *Repository) Services(ctx context.Context) ([]catalog.Service, error) {
	c, err := r.readContent(ctx)
	if err != nil {
		return nil, err
	}
	sortByOrder(c.Services, func(s catalog.Service) int { return s.Order })
	return c.Services, nil
}

func (r *Repository) Clients(ctx context.Context) ([]string, error) {
	c, err := r.readContent(ctx)
	if err != nil {
		return nil, err
	}
	if c.Clients == nil {
		return []string{}, nil
	}
	return c.Clients, nil
}

func (r *Repository) Categories(ctx context.Context) ([]catalog.Category, error) {
	var cats []catalog.Category
	if err := r.blob.ReadJSON(ctx, categoriesFile, &cats); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []catalog.Category{}, nil
		}
		return nil, err
	}
	sortByOrder(cats, func(c catalog.Category) int { return c.Order })
	for i := range cats {
		sortByOrder(cats[i].Subcategories, func(s catalog.Subcategory) int { return s.Order })
	}
	return cats, nil
}

// SaveCategories replaces the category tree. The categories POST carries
// the complete tree, so a category missing from the payload is gone along
// with its subcategories. Slugs are deduplicated last-wins and order fields
// reassigned from array positions.
func (r *Repository) SaveCategories(ctx context.Context, cats []catalog.Category) error {
	cats = reconcile.DedupeLastWins(cats, func(c catalog.Category) string { return c.Val })
	reconcile.Reorder(cats, func(c *catalog.Category, pos int) { c.Order = pos })
	for i := range cats {
		subs := reconcile.DedupeLastWins(cats[i].Subcategories, func(s catalog.Subcategory) string { return s.Val })
		reconcile.Reorder(subs, func(s *catalog.Subcategory, pos int) { s.Order = pos })
		cats[i].Subcategories = subs
	}
	if err := r.blob.WriteJSON(ctx, categoriesFile, cats); err != nil {
		return fmt.Errorf("failed to save categories: %v", err)
	}
	return nil
}

func (r *Repository) BlogPosts(ctx context.Context) ([]catalog.BlogPost, error) {
	var posts []catalog.BlogPost
	if err := r.blob.ReadJSON(ctx, blogFile, &posts); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []catalog.BlogPost{}, nil
		}
		return nil, err
	}
	sortPosts(posts)
	return posts, nil
}

// SaveBlogPosts reconciles edited or reordered posts. The submitted array
// position always becomes the post's order, matching the drag-and-drop
// editor. New posts (no id, unknown slug) are created with a fresh id.
func (r *Repository) SaveBlogPosts(ctx context.Context, incoming []catalog.BlogPost) error {
	reconcile.Reorder(incoming, func(p *catalog.BlogPost, pos int) { p.Order = pos })
	for i := range incoming {
		if incoming[i].ID == "" {
			incoming[i].ID = uuid.NewString()
		}
	}

	existing, err := r.BlogPosts(ctx)
	if err != nil {
		return err
	}
	merged := reconcile.Merge(existing, incoming,
		func(p catalog.BlogPost) string { return p.ID },
		func(p catalog.BlogPost) string { return p.Slug },
	)
	merged = reconcile.DedupeLastWins(merged, func(p catalog.BlogPost) string { return p.Slug })

	if err := r.blob.WriteJSON(ctx, blogFile, merged); err != nil {
		return fmt.Errorf("failed to save blog posts: %v", err)
	}
	return nil
}

// DeleteBlogPost removes a single post by id or slug.
func (r *Repository) DeleteBlogPost(ctx context.Context, id string) error {
	posts, err := r.BlogPosts(ctx)
	if err != nil {
		return err
	}
	remaining, removed := reconcile.Remove(posts, func(p catalog.BlogPost) string { return p.ID }, id)
	if !removed {
		remaining, removed = reconcile.Remove(posts, func(p catalog.BlogPost) string { return p.Slug }, id)
	}
	if !removed {
		return catalog.ErrNotFound
	}
	return r.blob.WriteJSON(ctx, blogFile, remaining)
}

// Comments returns the comments for a post, newest first.
func (r *Repository) Comments(ctx context.Context, slug string) ([]catalog.Comment, error) {
	var all []catalog.Comment
	if err := r.blob.ReadJSON(ctx, commentsFile, &all); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []catalog.Comment{}, nil
		}
		return nil, err
	}
	comments := make([]catalog.Comment, 0, len(all))
	for _, c := range all {
		if c.Slug == slug {
			comments = append(comments, c)
		}
	}
	sort.SliceStable(comments, func(i, j int) bool { return comments[i].Date > comments[j].Date })
	return comments, nil
}

func (r *Repository) AddComment(ctx context.Context, c catalog.Comment) (catalog.Comment, error) {
	var all []catalog.Comment
	if err := r.blob.ReadJSON(ctx, commentsFile, &all); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return catalog.Comment{}, err
	}
	c.ID = uuid.NewString()
	if c.Date == "" {
		c.Date = time.Now().UTC().Format(time.RFC3339)
	}
	all = append(all, c)
	if err := r.blob.WriteJSON(ctx, commentsFile, all); err != nil {
		return catalog.Comment{}, fmt.Errorf("failed to save comment: %v", err)
	}
	return c, nil
}

func normalizeProducts(stored []storedProduct) []catalog.Product {
	products := make([]catalog.Product, len(stored))
	for i, sp := range stored {
		p := sp.Product
		if p.ProductName == "" {
			p.ProductName = sp.Name
		}
		products[i] = p
	}
	return products
}

// sortPosts orders by the editor-assigned order first, then newest date.
func sortPosts(posts []catalog.BlogPost) {
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].Order != posts[j].Order {
			return posts[i].Order < posts[j].Order
		}
		return posts[i].Date > posts[j].Date
	})
}

func sortByOrder[T any](items []T, order func(T) int) {
	sort.SliceStable(items, func(i, j int) bool { return order(items[i]) < order(items[j]) })
}
