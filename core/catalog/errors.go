package catalog

import "errors"

var (
	// ErrHashCollision means two structurally different records produced the same key.
	ErrHashCollision = errors.New("hash collision")
	// ErrDanglingReference means a foreign key points at a record missing from the dataset.
	ErrDanglingReference = errors.New("dangling reference")
	// ErrDuplicateRelease means two sources describe the same product version.
	ErrDuplicateRelease = errors.New("duplicate release")
)
