package internal

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyPopulation is returned when duplicates are requested but there are
// no unique images to copy from.
var ErrEmptyPopulation = errors.New("no unique images to duplicate")

// ErrorCategory represents the type of error encountered
type ErrorCategory string

const (
	ErrorCategoryDirectory       ErrorCategory = "directory_creation" // Output folder could not be created
	ErrorCategoryIO              ErrorCategory = "io"                 // Write or copy failed mid-run
	ErrorCategoryEncode          ErrorCategory = "encode"             // PNG encoder rejected the pixel data
	ErrorCategoryEmptyPopulation ErrorCategory = "empty_population"   // Duplicates requested without uniques
)

// GenerateError represents a categorized error during corpus generation
type GenerateError struct {
	Path       string
	Category   ErrorCategory
	Err        error
	Suggestion string // User-friendly suggestion to fix
}

func (e *GenerateError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("[%s] %v", e.Category, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Category, e.Path, e.Err)
}

func (e *GenerateError) Unwrap() error {
	return e.Err
}

// CategorizeError wraps err into a GenerateError of the given category and
// attaches a suggestion based on the underlying OS error.
func CategorizeError(category ErrorCategory, path string, err error) *GenerateError {
	if err == nil {
		return nil
	}

	genErr := &GenerateError{
		Path:     path,
		Category: category,
		Err:      err,
	}

	errStr := strings.ToLower(err.Error())
	switch {
	case errors.Is(err, ErrEmptyPopulation):
		genErr.Suggestion = "Generate at least one unique image when requesting duplicates"

	case strings.Contains(errStr, "no space left"):
		genErr.Suggestion = "Free up disk space on the destination drive and run again"

	case strings.Contains(errStr, "permission denied"):
		genErr.Suggestion = "Check write permissions on the output directory"

	case strings.Contains(errStr, "read-only file system"):
		genErr.Suggestion = "Destination filesystem is read-only - check mount options"

	case strings.Contains(errStr, "not a directory"):
		genErr.Suggestion = "A file exists where a directory is expected in the output path"

	case strings.Contains(errStr, "too many open files"):
		genErr.Suggestion = "System file descriptor limit reached - increase ulimit"

	case strings.Contains(errStr, "invalid image size"):
		genErr.Suggestion = "Width and height must be positive and small enough to fit in memory"

	default:
		genErr.Suggestion = "Files written before the failure remain in the output directory"
	}

	return genErr
}

// IsCategory reports whether err is a GenerateError of the given category.
func IsCategory(err error, category ErrorCategory) bool {
	var genErr *GenerateError
	return errors.As(err, &genErr) && genErr.Category == category
}
