package preview

import "errors"

var (
	ErrTemplate          = errors.New("preview template failed")
	ErrUnsupportedFormat = errors.New("unsupported snapshot format")
	ErrBrowserConnect    = errors.New("failed to connect to browser")
	ErrPageCreate        = errors.New("failed to create browser page")
	ErrPageLoad          = errors.New("failed to load page")
	ErrCapture           = errors.New("snapshot capture failed")
)
