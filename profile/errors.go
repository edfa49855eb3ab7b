package profile

import "errors"

// ErrEmptyInput indicates no tau vectors, or no lambda vectors, to plot.
var ErrEmptyInput = errors.New("profile: empty input")
