package sememe

import "errors"

// ErrInvalidID indicates a sememe id that is not of the form "English|Chinese".
var ErrInvalidID = errors.New("invalid sememe id")

// ErrMissingPair indicates that neither ordering of a sememe pair is present
// in the similarity table.
var ErrMissingPair = errors.New("sememe pair missing from similarity table")
