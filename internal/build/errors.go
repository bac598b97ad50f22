package build

import "errors"

// ErrNilConfig is returned when Run is called without a configuration.
var ErrNilConfig = errors.New("styleguide: nil config")
