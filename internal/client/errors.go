package client

import "errors"

var ErrEmptyDomain = errors.New("domain must be non-empty")
