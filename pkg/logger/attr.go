package logger

import (
	"log/slog"
	"strconv"
)

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Language records a language code under the key "lang".
// An empty code returns an empty Attr.
func Language(code string) slog.Attr {
	if code == "" {
		return slog.Attr{}
	}
	return slog.String("lang", code)
}

// DocumentID records a document identifier under the key "document_id".
// An empty id returns an empty Attr.
func DocumentID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("document_id", id)
}

// Schema records a schema name under the key "schema".
func Schema(name string) slog.Attr {
	return slog.String("schema", name)
}

// Collection records a storage collection under the key "collection".
func Collection(name string) slog.Attr {
	return slog.String("collection", name)
}
