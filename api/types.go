package api

import "github.com/SiddharthNagaych-aigod/axel-guard-prod/catalog"

// SaveProductsRequest is the admin editor's bulk save. Reorder makes the
// array positions authoritative for the order fields.
type SaveProductsRequest struct {
	Products []catalog.Product `json:"products"`
	Reorder  bool              `json:"reorder"`
}

type SavePostsRequest struct {
	Posts []catalog.BlogPost `json:"posts"`
}

type CommentInput struct {
	Name    string `json:"name" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
