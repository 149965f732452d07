// Package uploads wraps image storage behind a small interface so handlers
// and tests do not care where files land.
package uploads

import (
	"bytes"
	"context"

	cld "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type Uploader interface {
	UploadBytes(ctx context.Context, folder, publicID string, data []byte) (string, error)
	Destroy(ctx context.Context, publicID string) error
}

type CloudinaryUploader struct {
	cld *cld.Cloudinary
}

// NewCloudinary builds an uploader from a CLOUDINARY_URL-style DSN.
func NewCloudinary(url string) (*CloudinaryUploader, error) {
	c, err := cld.NewFromURL(url)
	if err != nil {
		return nil, err
	}
	return &CloudinaryUploader{cld: c}, nil
}

func (u *CloudinaryUploader) UploadBytes(ctx context.Context, folder, publicID string, data []byte) (string, error) {
	res, err := u.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:       folder,
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return "", err
	}
	return res.SecureURL, nil
}

func (u *CloudinaryUploader) Destroy(ctx context.Context, publicID string) error {
	_, err := u.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}
