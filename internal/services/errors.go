package services

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist
	ErrNotFound = errors.New("entity not found")
	// ErrCategoryInUse blocks deletion of a category that still has artworks
	ErrCategoryInUse = errors.New("category has existing artworks")
	// ErrDuplicateName is returned on a unique-name collision
	ErrDuplicateName = errors.New("name already exists")
	// ErrDuplicateSlug is returned on a unique-slug collision
	ErrDuplicateSlug = errors.New("slug already exists")
	// ErrNoCategories is returned when an artwork is saved without any valid category
	ErrNoCategories = errors.New("at least one valid category is required")
	// ErrUpload wraps storage-backend failures so handlers can tell them
	// apart from invalid input
	ErrUpload = errors.New("upload failed")
)
