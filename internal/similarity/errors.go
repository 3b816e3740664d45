package similarity

import "errors"

// ErrNotInitialized indicates a query against an engine that has no sense
// trees or similarity table loaded.
var ErrNotInitialized = errors.New("similarity engine is not initialized")

// ErrNotFound indicates a word or sense that is not annotated.
var ErrNotFound = errors.New("not annotated")

// ErrDegenerate indicates a non-leaf node pair whose structural term has an
// empty denominator. It means the tree was built inconsistently.
var ErrDegenerate = errors.New("degenerate node pair")

// ErrEmptyTree indicates two sense trees without any sememe.
var ErrEmptyTree = errors.New("both sense trees are empty")
