package detector

import (
	"bytes"
	"fmt"
	"image"
	"math"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// MaxImageBytes is the upload size ceiling for image analysis.
const MaxImageBytes = 5 * 1024 * 1024

// DecodeError reports an image payload that could not be decoded.
type DecodeError struct {
	Err error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid image: %v", e.Err)
}

// Unwrap returns the underlying decode failure.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// MetadataReader reports how many metadata tags an image payload carries.
// Camera files typically carry a rich EXIF block, generated images none.
type MetadataReader interface {
	TagCount(data []byte) (int, error)
}

// Output sizes favored by the common image generators, matched in either
// orientation.
var aiDimensions = [][2]int{
	{512, 512}, {1024, 1024}, {768, 768},
	{1792, 1024}, {1024, 1792},
	{1024, 576}, {576, 1024},
}

var aiAspectRatios = []float64{1.0, 1.5, 0.67, 1.77, 0.56, 1.91}

// ImageDetector labels decoded images using pixel and metadata heuristics.
type ImageDetector struct {
	jitter   JitterFunc
	metadata MetadataReader
}

// NewImageDetector constructs an image detector. A nil metadata reader
// falls back to the EXIF-backed reader, a nil jitter to UniformJitter.
func NewImageDetector(metadata MetadataReader, jitter JitterFunc) *ImageDetector {
	if metadata == nil {
		metadata = ExifReader{}
	}
	if jitter == nil {
		jitter = UniformJitter
	}
	return &ImageDetector{jitter: jitter, metadata: metadata}
}

// Analyze decodes the payload and scores it. Bytes that fail the header
// probe or the full decode yield a *DecodeError and no score.
func (d *ImageDetector) Analyze(data []byte) (Result, error) {
	// Header probe before the full decode rejects truncated or
	// mislabeled payloads cheaply, then the pixel data is decoded for
	// the channel walk.
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return Result{}, &DecodeError{Err: err}
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Result{}, &DecodeError{Err: err}
	}

	ai, human := d.imageScores(img, data)
	return finalize(ai, human, 0.5, d.jitter, 65, 88), nil
}

// imageScores evaluates the six image signals and returns the raw tallies.
func (d *ImageDetector) imageScores(img image.Image, data []byte) (aiScore, humanScore int) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	// 1. Known generator output sizes.
	for _, dim := range aiDimensions {
		if (width == dim[0] && height == dim[1]) || (width == dim[1] && height == dim[0]) {
			aiScore += 3
			break
		}
	}

	// 2. Diffusion models emit latent-grid multiples.
	if (width%128 == 0 && height%128 == 0) || (width%64 == 0 && height%64 == 0) {
		aiScore += 2
	} else {
		humanScore++
	}

	// 3. Aspect ratio near a generator preset.
	ratio := 1.0
	if height > 0 {
		ratio = float64(width) / float64(height)
	}
	for _, preset := range aiAspectRatios {
		if math.Abs(ratio-preset) < 0.05 {
			aiScore++
			break
		}
	}

	// 4. Compression density typical of generated JPEG output.
	if pixels := width * height; pixels > 0 {
		bytesPerPixel := float64(len(data)) / float64(pixels)
		if bytesPerPixel >= 2.0 && bytesPerPixel <= 4.0 {
			aiScore++
		}
	}

	// 5. Per-channel extrema. Skipped silently when there are no pixels
	// to walk.
	if ext, ok := channelExtrema(img); ok {
		var total float64
		boundaryHit := false
		for i := 0; i < 3; i++ {
			total += float64(ext.max[i]) - float64(ext.min[i])
			if ext.min[i] == 0 || ext.max[i] == 255 {
				boundaryHit = true
			}
		}
		avgRange := total / 3
		if avgRange > 200 {
			aiScore += 2
		} else if avgRange < 150 {
			humanScore++
		}
		if boundaryHit {
			aiScore++
		}
	}

	// 6. Metadata tag count. A failed read still signals weakly toward
	// generated content.
	tags, err := d.metadata.TagCount(data)
	switch {
	case err != nil:
		aiScore++
	case tags > 5:
		humanScore += 3
	default:
		aiScore += 2
	}

	return aiScore, humanScore
}

type extrema struct {
	min [3]uint8
	max [3]uint8
}

// channelExtrema walks every pixel as 8-bit RGB and records per-channel
// min and max values.
func channelExtrema(img image.Image) (extrema, bool) {
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return extrema{}, false
	}

	ext := extrema{min: [3]uint8{255, 255, 255}}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			channels := [3]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
			for i, v := range channels {
				if v < ext.min[i] {
					ext.min[i] = v
				}
				if v > ext.max[i] {
					ext.max[i] = v
				}
			}
		}
	}
	return ext, true
}
