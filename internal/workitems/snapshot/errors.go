package snapshot

import "errors"

// ErrEmptyStore is returned by callers that require at least one item
// to operate on; Load itself succeeds on an empty store per §8
// "Empty store -> empty do-now list".
var ErrEmptyStore = errors.New("snapshot: store is empty")
