// Package logger builds slog loggers for the i18n document service.
//
// New returns a *slog.Logger configured by Option functions. Output format,
// level and static attributes are set with WithFormat, WithLevel and
// WithAttr. ContextExtractor callbacks registered with WithContextExtractors
// add attributes pulled from the context of each call, such as the language
// of the current request.
//
// # Usage
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "i18nserver"),
//		logger.WithContextExtractors(documents.LanguageExtractor),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "document stored",
//		logger.DocumentID(doc.ID()),
//		logger.Collection("articles"),
//	)
//
// Attribute helpers return an empty slog.Attr for nil errors and empty ids,
// so they can be passed without a nil check.
package logger
