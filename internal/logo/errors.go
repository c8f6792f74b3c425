package logo

import "errors"

var (
	ErrEmpty          = errors.New("logo: empty file")
	ErrNotImage       = errors.New("logo: file is not an image")
	ErrTooLarge       = errors.New("logo: file exceeds size limit")
	ErrInvalidDataURI = errors.New("logo: invalid data URI")
)
