package capture

import (
	"bytes"
	"fmt"

	"github.com/sunshineplan/imgconv"

	"go-screenshot-cache/internal/models"
)

// Downscale shrinks an image wider than opts.MaxWidth, keeping its aspect ratio.
// Images already within bounds are returned untouched.
func Downscale(data []byte, opts models.CaptureOptions) ([]byte, error) {
	if opts.MaxWidth <= 0 {
		return data, nil
	}

	img, err := imgconv.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("error decoding screenshot: %w", err)
	}

	if img.Bounds().Dx() <= opts.MaxWidth {
		return data, nil
	}

	resized := imgconv.Resize(img, &imgconv.ResizeOption{Width: opts.MaxWidth})

	var buf bytes.Buffer
	if err := imgconv.Write(&buf, resized, formatOption(opts)); err != nil {
		return nil, fmt.Errorf("error encoding screenshot: %w", err)
	}
	return buf.Bytes(), nil
}

func formatOption(opts models.CaptureOptions) *imgconv.FormatOption {
	if opts.Format == models.MediaTypePNG {
		return &imgconv.FormatOption{Format: imgconv.PNG}
	}
	return &imgconv.FormatOption{
		Format:       imgconv.JPEG,
		EncodeOption: []imgconv.EncodeOption{imgconv.Quality(opts.Quality)},
	}
}
