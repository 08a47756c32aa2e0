package account

import (
	"errors"
)

var ErrInvalidSecret = errors.New("invalid secret key")
