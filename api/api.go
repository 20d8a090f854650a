package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SiddharthNagaych-aigod/axel-guard-prod/catalog"
	"github.com/SiddharthNagaych-aigod/axel-guard-prod/crm"
)

// ContentStore is everything the HTTP layer needs from a storage backend.
// Both the blob-backed repository and the database store satisfy it; the
// backend is picked once at startup, handlers never branch on it.
type ContentStore interface {
	Content(ctx context.Context) (catalog.Content, error)
	Products(ctx context.Context) ([]catalog.Product, error)
	SaveProducts(ctx context.Context, products []catalog.Product, reorder bool) error
	DeleteProduct(ctx context.Context, code string) error
	Categories(ctx context.Context) ([]catalog.Category, error)
	SaveCategories(ctx context.Context, cats []catalog.Category) error
	BlogPosts(ctx context.Context) ([]catalog.BlogPost, error)
	SaveBlogPosts(ctx context.Context, posts []catalog.BlogPost) error
	DeleteBlogPost(ctx context.Context, id string) error
	Comments(ctx context.Context, slug string) ([]catalog.Comment, error)
	AddComment(ctx context.Context, c catalog.Comment) (catalog.Comment, error)
}

// LeadRelay forwards contact-form submissions to the CRM.
type LeadRelay interface {
	Submit(ctx context.Context, lead crm.Lead) crm.Result
}

type API struct {
	engine *gin.Engine
}

func setupRouter(s ContentStore, relay LeadRelay) *gin.Engine {
	r := gin.Default()

	// Ping test
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Full public bundle: products, services, client logos
	r.GET("/api/content", func(c *gin.Context) {
		content, err := s.Content(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load content"})
			return
		}
		c.JSON(http.StatusOK, content)
	})

	// Ordered product list, optionally filtered by category slug
	r.GET("/api/products", func(c *gin.Context) {
		products, err := s.Products(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load products"})
			return
		}

		if filter := c.Query("category"); filter != "" {
			cats, err := s.Categories(c.Request.Context())
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load products"})
				return
			}
			products = catalog.FilterProducts(products, filter, cats)
		}
		c.JSON(http.StatusOK, products)
	})

	// Bulk save from the admin editor
	r.POST("/api/products", func(c *gin.Context) {
		var req SaveProductsRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Products == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data format"})
			return
		}

		if err := s.SaveProducts(c.Request.Context(), req.Products, req.Reorder); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save products"})
			return
		}
		c.JSON(http.StatusOK, StatusResponse{Success: true, Message: "Products updated successfully"})
	})

	r.DELETE("/api/products", func(c *gin.Context) {
		code := c.Query("code")
		if code == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing product code"})
			return
		}
		if err := s.DeleteProduct(c.Request.Context(), code); err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		c.JSON(http.StatusOK, StatusResponse{Success: true, Message: "Product deleted"})
	})

	r.GET("/api/categories", func(c *gin.Context) {
		cats, err := s.Categories(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load categories"})
			return
		}
		c.JSON(http.StatusOK, cats)
	})

	// Full category tree sync, cascading to subcategories
	r.POST("/api/categories", func(c *gin.Context) {
		var cats []catalog.Category
		if err := c.ShouldBindJSON(&cats); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data format"})
			return
		}

		if err := s.SaveCategories(c.Request.Context(), cats); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save categories"})
			return
		}
		c.JSON(http.StatusOK, StatusResponse{Success: true, Message: "Categories updated successfully"})
	})

	r.GET("/api/blog", func(c *gin.Context) {
		posts, err := s.BlogPosts(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
			return
		}
		c.JSON(http.StatusOK, posts)
	})

	r.POST("/api/blog", func(c *gin.Context) {
		var req SavePostsRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Posts == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
			return
		}

		if err := s.SaveBlogPosts(c.Request.Context(), req.Posts); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save posts"})
			return
		}
		c.JSON(http.StatusOK, StatusResponse{Success: true})
	})

	r.DELETE("/api/blog", func(c *gin.Context) {
		id := c.Query("id")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing post id"})
			return
		}
		if err := s.DeleteBlogPost(c.Request.Context(), id); err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
			return
		}
		c.JSON(http.StatusOK, StatusResponse{Success: true})
	})

	r.GET("/api/blog/:slug/comments", func(c *gin.Context) {
		comments, err := s.Comments(c.Request.Context(), c.Param("slug"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load comments"})
			return
		}
		c.JSON(http.StatusOK, comments)
	})

	r.POST("/api/blog/:slug/comments", func(c *gin.Context) {
		var input CommentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
			return
		}

		comment, err := s.AddComment(c.Request.Context(), catalog.Comment{
			Slug:    c.Param("slug"),
			Name:    input.Name,
			Content: input.Content,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save comment"})
			return
		}
		c.JSON(http.StatusCreated, comment)
	})

	// Contact form / chatbot lead capture
	r.POST("/api/leads", func(c *gin.Context) {
		var lead crm.Lead
		if err := c.ShouldBindJSON(&lead); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name and mobile are required"})
			return
		}
		c.JSON(http.StatusOK, relay.Submit(c.Request.Context(), lead))
	})

	return r
}

func New(store ContentStore, relay LeadRelay) (*API, error) {
	return &API{
		engine: setupRouter(store, relay),
	}, nil
}

func (a *API) Run(port string) {
	a.engine.Run(":" + port)
}

// Handler exposes the router for tests.
func (a *API) Handler() http.Handler {
	return a.engine
}
