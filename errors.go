package loomclient

import "errors"

var (
	// ErrBuilderUsed is an exported constant or variable used by the storefront client.
	ErrBuilderUsed = errors.New("builder already used")
	// ErrBaseURLRequired is an exported constant or variable used by the storefront client.
	ErrBaseURLRequired = errors.New("api base url is required")
	// ErrNotLoggedIn is an exported constant or variable used by the storefront client.
	ErrNotLoggedIn = errors.New("not logged in")
)
