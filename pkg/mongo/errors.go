package mongo

import (
	"errors"
	"fmt"

	"github.com/platdesign/i18ngoose/pkg/document"
)

var (
	ErrFailedToConnectToMongo = errors.New("failed to connect to mongo")
	ErrHealthcheckFailed      = errors.New("mongo healthcheck failed")
	ErrNotFound               = fmt.Errorf("mongo: %w", document.ErrNotFound)
	ErrDuplicateID            = fmt.Errorf("mongo: %w", document.ErrDuplicateID)
	ErrMissingID              = errors.New("mongo: document has no id")
)
