package internal

import (
	"bytes"
	crand "crypto/rand"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"math/rand/v2"
	"os"
	"time"
)

// Options describes one generation run.
type Options struct {
	OutputDir     string
	Width         int
	Height        int
	NumImages     int
	NumDuplicates int

	// Rand, when set, supplies both pixel bytes and duplicate picks so a run
	// can be reproduced. Filenames stay random regardless.
	Rand *rand.ChaCha8
}

// Result lists the files written by Generate.
type Result struct {
	Unique     []string
	Duplicates []string
	Elapsed    time.Duration
}

// Generate writes NumImages random PNG images into OutputDir, then
// NumDuplicates byte copies of uniformly chosen ones under new names.
// Progress lines go to out; per-file events go to logger (may be nil).
//
// Errors stop the run immediately. Files already written are left in place.
func Generate(opts Options, out io.Writer, logger *Logger) (*Result, error) {
	if opts.NumDuplicates > 0 && opts.NumImages < 1 {
		return nil, CategorizeError(ErrorCategoryEmptyPopulation, opts.OutputDir, ErrEmptyPopulation)
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, CategorizeError(ErrorCategoryDirectory, opts.OutputDir, err)
	}

	var pixels io.Reader = crand.Reader
	pick := rand.IntN
	if opts.Rand != nil {
		pixels = opts.Rand
		pick = rand.New(opts.Rand).IntN
	}

	result := &Result{}

	fmt.Fprintf(out, "Generating %d unique PNG images in '%s'...\n", opts.NumImages, opts.OutputDir)
	start := time.Now()

	for i := 0; i < opts.NumImages; i++ {
		data, err := randomPNG(pixels, opts.Width, opts.Height)
		if err != nil {
			return nil, CategorizeError(ErrorCategoryEncode, opts.OutputDir, err)
		}

		path, err := randomPath(opts.OutputDir)
		if err != nil {
			return nil, CategorizeError(ErrorCategoryIO, opts.OutputDir, err)
		}

		if err := writeFileAtomic(path, data); err != nil {
			return nil, CategorizeError(ErrorCategoryIO, path, err)
		}

		result.Unique = append(result.Unique, path)
		logger.Log("unique %s", path)
	}

	fmt.Fprintf(out, "Creating %d duplicate PNG images in '%s'...\n", opts.NumDuplicates, opts.OutputDir)

	for i := 0; i < opts.NumDuplicates; i++ {
		src := result.Unique[pick(len(result.Unique))]

		dest, err := randomPath(opts.OutputDir)
		if err != nil {
			return nil, CategorizeError(ErrorCategoryIO, opts.OutputDir, err)
		}

		if err := copyFileAtomic(src, dest); err != nil {
			return nil, CategorizeError(ErrorCategoryIO, dest, fmt.Errorf("failed to copy %s: %w", src, err))
		}

		result.Duplicates = append(result.Duplicates, dest)
		logger.Log("duplicate %s -> %s", src, dest)
	}

	result.Elapsed = time.Since(start)
	fmt.Fprintln(out, "Image generation and duplication complete.")
	fmt.Fprintf(out, "Time taken: %.2f seconds\n", result.Elapsed.Seconds())

	return result, nil
}

const (
	// maxDimension is the largest width or height a PNG header can carry.
	maxDimension = 1<<31 - 1
	// maxPixels caps the NRGBA buffer at 1 TiB.
	maxPixels = 1 << 38
)

// validSize reports whether a width x height NRGBA buffer can be allocated
// without overflowing int.
func validSize(width, height int) bool {
	if width <= 0 || height <= 0 || width > maxDimension || height > maxDimension {
		return false
	}
	area := int64(width) * int64(height)
	return area <= maxPixels && area <= math.MaxInt/4
}

// randomPNG reads width*height*3 random RGB bytes from r and encodes them as
// an opaque truecolor PNG.
func randomPNG(r io.Reader, width, height int) ([]byte, error) {
	if !validSize(width, height) {
		return nil, png.FormatError(fmt.Sprintf("invalid image size %dx%d", width, height))
	}

	rgb := make([]byte, width*height*3)
	if _, err := io.ReadFull(r, rgb); err != nil {
		return nil, fmt.Errorf("failed to read random pixels: %w", err)
	}

	// An NRGBA image with every alpha at 255 is written by image/png as
	// 8-bit RGB (color type 2), with no alpha channel or palette.
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i, j := 0, 0; i < len(rgb); i, j = i+3, j+4 {
		img.Pix[j] = rgb[i]
		img.Pix[j+1] = rgb[i+1]
		img.Pix[j+2] = rgb[i+2]
		img.Pix[j+3] = 0xff
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
