package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudStore keeps blobs as raw resources in Cloudinary under
// <prefix>/data/<name>. Reads fetch the public delivery URL directly and
// fall back to a bundled local seed file when the cloud object is missing
// or unreachable; the cloud copy is only created by the next successful
// write, never re-seeded automatically.
type CloudStore struct {
	cloudName string
	prefix    string

	deliveryBase string

	cld    *cloudinary.Cloudinary
	seed   *FileStore
	client *http.Client
}

// CloudOption adjusts a CloudStore; used by tests to point at a stub server.
type CloudOption func(*CloudStore)

func WithEndpoints(deliveryBase, uploadBase string) CloudOption {
	return func(c *CloudStore) {
		c.deliveryBase = deliveryBase
		c.cld.Config.API.UploadPrefix = uploadBase
		// Upload holds its own copy of the configuration.
		c.cld.Upload.Config.API.UploadPrefix = uploadBase
	}
}

func WithHTTPClient(hc *http.Client) CloudOption {
	return func(c *CloudStore) { c.client = hc }
}

// NewCloudStore builds a cloud-backed blob store. seedDir holds the bundled
// JSON files served when a cloud read fails.
func NewCloudStore(cloudName, apiKey, apiSecret, prefix, seedDir string, opts ...CloudOption) (*CloudStore, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to configure cloud storage: %v", err)
	}

	c := &CloudStore{
		cloudName:    cloudName,
		prefix:       prefix,
		deliveryBase: "https://res.cloudinary.com",
		cld:          cld,
		seed:         NewFileStore(seedDir),
		client:       &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *CloudStore) publicID(name string) string {
	return c.prefix + "/data/" + name
}

func (c *CloudStore) ReadJSON(ctx context.Context, name string, v any) error {
	url := fmt.Sprintf("%s/%s/raw/upload/%s", c.deliveryBase, c.cloudName, c.publicID(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %v", name, err)
	}
	req.Header.Set("Cache-Control", "no-store")

	res, err := c.client.Do(req)
	if err != nil {
		slog.Warn("cloud read failed, serving local seed", "blob", name, "error", err)
		return c.seed.ReadJSON(ctx, name, v)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		slog.Warn("cloud blob unavailable, serving local seed", "blob", name, "status", res.StatusCode)
		return c.seed.ReadJSON(ctx, name, v)
	}

	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		slog.Warn("cloud blob unreadable, serving local seed", "blob", name, "error", err)
		return c.seed.ReadJSON(ctx, name, v)
	}
	return nil
}

// WriteJSON uploads the blob as a raw resource with overwrite and CDN
// invalidation. Writes target the cloud only; the seed files are never
// rewritten.
func (c *CloudStore) WriteJSON(ctx context.Context, name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %v", name, err)
	}

	res, err := c.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		PublicID:     c.publicID(name),
		ResourceType: "raw",
		Overwrite:    api.Bool(true),
		Invalidate:   api.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %v", name, err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("failed to upload %s: %s", name, res.Error.Message)
	}
	return nil
}
