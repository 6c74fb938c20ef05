package admin

import (
	"context"

	"product-admin/internal/client"
)

// ImageSelection is the result of a completed image pick
type ImageSelection struct {
	ID  int
	URL string
}

// ImagePicker asynchronously selects a single image. A nil selection with
// a nil error means the user cancelled. The form consumes this as an
// injected capability rather than depending on a concrete media UI.
type ImagePicker func(ctx context.Context) (*ImageSelection, error)

// MediaLibraryPicker builds an ImagePicker over the API's media library
// using the supplied chooser to pick one asset (or nil to cancel).
func MediaLibraryPicker(api API, choose func([]client.MediaAsset) *client.MediaAsset) ImagePicker {
	return func(ctx context.Context) (*ImageSelection, error) {
		assets, err := api.ListMedia(ctx)
		if err != nil {
			return nil, err
		}

		asset := choose(assets)
		if asset == nil {
			return nil, nil
		}

		url := asset.ThumbnailURL
		if url == "" {
			url = asset.URL
		}

		return &ImageSelection{ID: asset.ID, URL: url}, nil
	}
}
