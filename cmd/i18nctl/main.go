// Command i18nctl runs the translatable schema operations on local files.
//
//	i18nctl fields   -s article.yaml -l de,en -d de
//	i18nctl init     -s article.yaml -l de,en --lang de raw.json > stored.json
//	i18nctl merge    -s article.yaml -l de,en --lang en --doc stored.json raw-en.json
//	i18nctl localize -s article.yaml -l de,en --lang en stored.json
//
// Languages default to I18N_LANGUAGES and I18N_DEFAULT_LANGUAGE.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
