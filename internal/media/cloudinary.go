package media

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"hearthwick-api/pkg/uid"
)

// Asset is one stored media item.
type Asset struct {
	ID        string    `json:"id"` // Cloudinary public ID
	URL       string    `json:"url"`
	Format    string    `json:"format,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// ListPage is one page of the media library.
type ListPage struct {
	Assets     []Asset `json:"assets"`
	NextCursor string  `json:"nextCursor,omitempty"`
}

const listPageSize = 30

// Library is the Cloudinary-backed media library used by the admin panel.
type Library struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewLibrary creates a library from a cloudinary:// URL. An empty URL returns
// a nil library; the admin media routes are simply not mounted then.
func NewLibrary(cloudinaryURL, folder string) (*Library, error) {
	if cloudinaryURL == "" {
		return nil, nil
	}
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("create cloudinary client: %w", err)
	}
	return &Library{cld: cld, folder: folder}, nil
}

// UploadBase64 stores a base64-encoded image and returns its durable URL and
// ID. data may be a bare base64 string or a full data: URI.
func (l *Library) UploadBase64(ctx context.Context, data, filename string) (Asset, error) {
	if !strings.HasPrefix(data, "data:") {
		data = "data:image/png;base64," + data
	}

	publicID := slugify(filename)
	if publicID == "" {
		publicID = "upload"
	}
	// Suffix with a short unique id so re-uploading the same filename never
	// overwrites an asset a page may still reference.
	publicID = fmt.Sprintf("%s-%s", publicID, uid.New()[:8])

	res, err := l.cld.Upload.Upload(ctx, data, uploader.UploadParams{
		PublicID: publicID,
		Folder:   l.folder,
	})
	if err != nil {
		return Asset{}, fmt.Errorf("cloudinary upload: %w", err)
	}

	return Asset{
		ID:        res.PublicID,
		URL:       res.SecureURL,
		Format:    res.Format,
		CreatedAt: res.CreatedAt,
	}, nil
}

// List returns one page of assets, newest first, with an opaque cursor for
// the next page.
func (l *Library) List(ctx context.Context, cursor string) (ListPage, error) {
	res, err := l.cld.Admin.Assets(ctx, admin.AssetsParams{
		AssetType:  api.Image,
		Prefix:     l.folder,
		MaxResults: listPageSize,
		NextCursor: cursor,
	})
	if err != nil {
		return ListPage{}, fmt.Errorf("cloudinary list: %w", err)
	}

	page := ListPage{NextCursor: res.NextCursor}
	for _, a := range res.Assets {
		page.Assets = append(page.Assets, Asset{
			ID:        a.PublicID,
			URL:       a.SecureURL,
			Format:    a.Format,
			CreatedAt: a.CreatedAt,
		})
	}
	return page, nil
}

// Delete removes an asset by its public ID.
func (l *Library) Delete(ctx context.Context, publicID string) error {
	res, err := l.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	if res.Result != "ok" {
		return fmt.Errorf("cloudinary destroy: %s", res.Result)
	}
	return nil
}

// slugify turns a filename into a safe public ID fragment.
func slugify(filename string) string {
	base := strings.TrimSuffix(filename, path.Ext(filename))
	var b strings.Builder
	for _, r := range strings.ToLower(base) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
