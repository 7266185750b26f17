package curriculum

import "fmt"

// GenerationError reports that no valid Design could be produced. It wraps
// the provider, parse or validation error.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("curriculum generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ImageError reports a failed illustration. Generate logs and absorbs it.
type ImageError struct {
	Err error
}

func (e *ImageError) Error() string {
	return fmt.Sprintf("illustration failed: %v", e.Err)
}

func (e *ImageError) Unwrap() error { return e.Err }
