package store

import "errors"

// ErrNoBundle indicates a directory without a manifest.
var ErrNoBundle = errors.New("no data bundle")

// ErrCorrupt indicates a bundle whose files disagree with its manifest.
var ErrCorrupt = errors.New("data bundle is corrupt")
