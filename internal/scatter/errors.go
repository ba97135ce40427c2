package scatter

import "errors"

// ErrInvalidConfiguration is returned when a rebuild cannot start from the
// current points and shape parameters.
var ErrInvalidConfiguration = errors.New("invalid scatter configuration")
