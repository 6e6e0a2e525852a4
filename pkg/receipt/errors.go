package receipt

import "errors"

// ErrDecodeImage is reported when the uploaded file cannot be decoded as an image.
var ErrDecodeImage = errors.New("image decode failed")

// ErrEmptyText marks a recognition pass that produced no usable text.
var ErrEmptyText = errors.New("recognizer returned empty text")
