package documents

import "errors"

var ErrInvalidBody = errors.New("documents: request body must be a JSON object")
