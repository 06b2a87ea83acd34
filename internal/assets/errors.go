package assets

import "errors"

var (
	ErrComponentNotFound = errors.New("component template not found")
	ErrPageNotFound      = errors.New("page template not found")
	ErrInvalidAssetName  = errors.New("invalid asset name")
	ErrInvalidBasePath   = errors.New("invalid template directory")
	ErrAssetRead         = errors.New("failed to read template")

	// ErrPathTraversal marks a template that resolves outside its directory.
	ErrPathTraversal = errors.New("path traversal detected")
)
