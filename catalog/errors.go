package catalog

import "errors"

// ErrNotFound is returned by any backend when the requested entity does
// not exist. Handlers surface it as HTTP 404.
var ErrNotFound = errors.New("not found")
