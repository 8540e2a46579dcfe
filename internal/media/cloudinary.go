// Package media talks to the Cloudinary media host.
package media

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/admin/search"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/joshua-takyi/agenda/internal/metrics"
)

const dependencyName = "cloudinary"

// SearchLimit caps the assets a search returns.
const SearchLimit = 30

// ErrFolderNotFound is returned by DeleteFolder when there is nothing to delete.
var ErrFolderNotFound = errors.New("folder not found")

type Asset struct {
	PublicID  string `json:"public_id"`
	Folder    string `json:"folder,omitempty"`
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
	Format    string `json:"format,omitempty"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
	Bytes     int    `json:"bytes,omitempty"`
}

type SearchResult struct {
	TotalCount int     `json:"total_count"`
	Assets     []Asset `json:"resources"`
}

// PrefixDeletion reports one round of delete-by-prefix.
type PrefixDeletion struct {
	Deleted int
	Partial bool
}

type Cloudinary struct {
	cld          *cloudinary.Cloudinary
	uploadPreset string
}

func NewCloudinary(cld *cloudinary.Cloudinary, uploadPreset string) *Cloudinary {
	return &Cloudinary{cld: cld, uploadPreset: uploadPreset}
}

// DataURI encodes image bytes the way the host accepts inline uploads.
func DataURI(image []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(image)
}

// PublicID joins folder and image name.
func PublicID(folder, name string) string {
	return strings.Trim(folder, "/") + "/" + strings.Trim(name, "/")
}

// UploadImage stores image under folder/name, replacing any previous version.
func (c *Cloudinary) UploadImage(ctx context.Context, folder, name string, image []byte) (*Asset, error) {
	defer observe(time.Now())

	res, err := c.cld.Upload.Upload(ctx, DataURI(image), uploader.UploadParams{
		Folder:       folder,
		PublicID:     name,
		UploadPreset: c.uploadPreset,
		Overwrite:    api.Bool(true),
	})
	if err := hostError("upload", err, res, func() string { return res.Error.Message }); err != nil {
		return nil, err
	}

	return &Asset{
		PublicID:  res.PublicID,
		Folder:    folder,
		SecureURL: res.SecureURL,
		URL:       res.URL,
		Format:    res.Format,
		Width:     res.Width,
		Height:    res.Height,
		Bytes:     res.Bytes,
	}, nil
}

// DestroyImage deletes one asset and returns the host's verdict
// ("ok" or "not found").
func (c *Cloudinary) DestroyImage(ctx context.Context, publicID string) (string, error) {
	defer observe(time.Now())

	res, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err := hostError("destroy", err, res, func() string { return res.Error.Message }); err != nil {
		return "", err
	}
	return res.Result, nil
}

// DeleteByPrefix runs one round of bulk deletion. Partial is set when the
// host stopped before deleting everything under prefix.
func (c *Cloudinary) DeleteByPrefix(ctx context.Context, prefix string) (*PrefixDeletion, error) {
	defer observe(time.Now())

	res, err := c.cld.Admin.DeleteAssetsByPrefix(ctx, admin.DeleteAssetsByPrefixParams{
		Prefix: api.CldAPIArray{prefix},
	})
	if err := hostError("delete by prefix", err, res, func() string { return res.Error.Message }); err != nil {
		return nil, err
	}
	return &PrefixDeletion{Deleted: len(res.Deleted), Partial: res.Partial}, nil
}

// DeleteFolder removes an empty folder. A missing folder yields ErrFolderNotFound.
func (c *Cloudinary) DeleteFolder(ctx context.Context, folder string) error {
	defer observe(time.Now())

	res, err := c.cld.Admin.DeleteFolder(ctx, admin.DeleteFolderParams{Folder: folder})
	if err == nil && res != nil && isNotFound(res.Error.Message) {
		return ErrFolderNotFound
	}
	return hostError("delete folder", err, res, func() string { return res.Error.Message })
}

// Search runs a search expression, newest public ids first.
func (c *Cloudinary) Search(ctx context.Context, expression string) (*SearchResult, error) {
	defer observe(time.Now())

	res, err := c.cld.Admin.Search(ctx, search.Query{
		Expression: expression,
		SortBy:     []search.SortByField{{"public_id": search.Descending}},
		MaxResults: SearchLimit,
	})
	if err := hostError("search", err, res, func() string { return res.Error.Message }); err != nil {
		return nil, err
	}

	out := &SearchResult{TotalCount: res.TotalCount, Assets: make([]Asset, 0, len(res.Assets))}
	for _, a := range res.Assets {
		out.Assets = append(out.Assets, Asset{
			PublicID:  a.PublicID,
			Folder:    a.Folder,
			SecureURL: a.SecureURL,
			URL:       a.URL,
		})
	}
	return out, nil
}

func hostError[T any](op string, err error, res *T, message func() string) error {
	if err != nil {
		metrics.ExternalRequestsTotal.WithLabelValues(dependencyName, "error").Inc()
		return fmt.Errorf("cloudinary %s failed: %w", op, err)
	}
	if res == nil {
		metrics.ExternalRequestsTotal.WithLabelValues(dependencyName, "error").Inc()
		return fmt.Errorf("cloudinary %s returned no result", op)
	}
	if msg := message(); msg != "" {
		metrics.ExternalRequestsTotal.WithLabelValues(dependencyName, "error").Inc()
		return fmt.Errorf("cloudinary %s failed: %s", op, msg)
	}
	metrics.ExternalRequestsTotal.WithLabelValues(dependencyName, "ok").Inc()
	return nil
}

func isNotFound(msg string) bool {
	msg = strings.ToLower(msg)
	return strings.Contains(msg, "not found") || strings.Contains(msg, "can't find")
}

func observe(start time.Time) {
	metrics.ExternalRequestDuration.WithLabelValues(dependencyName).Observe(time.Since(start).Seconds())
}
