package detector

import (
	"bytes"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// ExifReader counts EXIF tags using goexif. Payloads that carry no EXIF
// block at all (plain PNG, stripped JPEG, WebP) report zero tags rather
// than an error, mirroring how cameraless formats behave.
type ExifReader struct{}

// TagCount implements MetadataReader.
func (ExifReader) TagCount(data []byte) (int, error) {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil && exif.IsCriticalError(err) {
		// No usable EXIF data in the payload.
		return 0, nil
	}
	if x == nil {
		return 0, nil
	}

	count := 0
	walker := tagCounter(func() { count++ })
	if err := x.Walk(walker); err != nil {
		return 0, err
	}
	return count, nil
}

type tagCounter func()

// Walk implements exif.Walker.
func (f tagCounter) Walk(name exif.FieldName, tag *tiff.Tag) error {
	f()
	return nil
}
