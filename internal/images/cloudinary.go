package images

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"rewear/internal/config"
)

// Uploader stores an item photo and returns the full-size and thumbnail
// delivery URLs. Tests swap in a fake; production uses Cloudinary.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, publicID string) (url, thumbURL string, err error)
}

const (
	imageEager = "q_auto,f_auto,w_800,c_fill"
	thumbWidth = 200
)

var eagerAsyncFalse = false

type cloudinaryUploader struct {
	cld       *cloudinary.Cloudinary
	cloudName string
	folder    string
}

func NewCloudinary(cfg config.Cloudinary) (Uploader, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, err
	}
	return &cloudinaryUploader{cld: cld, cloudName: cfg.CloudName, folder: cfg.Folder}, nil
}

func (u *cloudinaryUploader) Upload(ctx context.Context, file io.Reader, publicID string) (string, string, error) {
	res, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:     u.folder,
		PublicID:   publicID,
		Eager:      imageEager,
		EagerAsync: &eagerAsyncFalse,
	})
	if err != nil {
		return "", "", err
	}
	thumb := ""
	if len(res.Eager) > 0 {
		thumb = res.Eager[0].SecureURL
	}
	if thumb == "" {
		thumb = optimizedURL(u.cloudName, res.PublicID, thumbWidth)
	}
	return res.SecureURL, thumb, nil
}

// optimizedURL builds a transformation URL for an already-uploaded public ID.
func optimizedURL(cloudName, publicID string, width int) string {
	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/q_auto,f_auto,w_%d,c_fill/%s",
		cloudName, width, publicID)
}
