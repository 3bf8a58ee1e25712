package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/platdesign/i18ngoose/pkg/config"
	"github.com/platdesign/i18ngoose/pkg/docpath"
	"github.com/platdesign/i18ngoose/pkg/document"
	"github.com/platdesign/i18ngoose/pkg/i18n"
	"github.com/platdesign/i18ngoose/pkg/logger"
	"github.com/platdesign/i18ngoose/pkg/schema"
)

var errUnsupportedLanguage = errors.New("language is not configured")

type app struct {
	schemaFile string
	envFile    string
	languages  []string
	defaultLng string
	verbose    bool

	opts   i18n.Options
	schema *schema.Schema
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "i18nctl",
		Short:         "Expand, ingest and localize documents of a translatable schema",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.schemaFile, "schema", "s", "", "Schema declaration file (YAML or JSON)")
	flags.StringSliceVarP(&a.languages, "languages", "l", nil, "Language codes, comma-separated")
	flags.StringVarP(&a.defaultLng, "default-language", "d", "", "Default language")
	flags.StringVar(&a.envFile, "env-file", "", "Load settings from this .env file")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Log every expanded field")
	_ = cmd.MarkPersistentFlagRequired("schema")

	cmd.AddCommand(
		a.newFieldsCmd(),
		a.newInitCmd(),
		a.newMergeCmd(),
		a.newLocalizeCmd(),
	)
	return cmd
}

// load resolves the language options and transforms the schema.
// Flags win over the environment.
func (a *app) load(cmd *cobra.Command) error {
	var files []string
	if a.envFile != "" {
		files = append(files, a.envFile)
	}
	opts, err := config.Load[i18n.Options](files...)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("languages") {
		opts.Languages = a.languages
	}
	if cmd.Flags().Changed("default-language") {
		opts.DefaultLanguage = a.defaultLng
	}

	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	log := logger.New(
		logger.WithOutput(cmd.ErrOrStderr()),
		logger.WithFormat(logger.FormatText),
		logger.WithLevel(level),
	)

	s, err := schema.ParseFile(a.schemaFile)
	if err != nil {
		return err
	}
	if _, err := i18n.Transform(s, opts, i18n.WithLogger(log)); err != nil {
		return err
	}
	a.opts = opts
	a.schema = s
	return nil
}

func (a *app) newFieldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List the fields of the transformed schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PATH\tTYPE\tLANG\tREQUIRED")
			printFields(w, a.schema, nil)
			for _, v := range a.schema.Virtuals() {
				fmt.Fprintf(w, "%s\tvirtual\t\t\n", v.Path)
			}
			return w.Flush()
		},
	}
}

func printFields(w io.Writer, s *schema.Schema, prefix docpath.Path) {
	i18n.Walk(s, func(path docpath.Path, f *schema.Field) {
		full := prefix.Child(path...)
		typ := string(f.Kind)
		if f.Nested() {
			typ = f.Type.String()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", full, typ, f.Lang, f.Required())
		if f.Nested() {
			printFields(w, f.Schema, full)
		}
	})
}

func (a *app) newInitCmd() *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "init [raw.json]",
		Short: "Create a stored document from raw single-language input",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.checkLanguage(lang); err != nil {
				return err
			}
			raw, err := readObject(cmd, firstArg(args))
			if err != nil {
				return err
			}
			doc, err := i18n.InitFromRaw(a.schema, lang, raw)
			if err != nil {
				return err
			}
			if err := doc.Validate(); err != nil {
				return err
			}
			out, err := doc.ToJSON(document.WithID())
			if err != nil {
				return err
			}
			return writeObject(cmd, out)
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "", "Language of the raw input")
	_ = cmd.MarkFlagRequired("lang")
	return cmd
}

func (a *app) newMergeCmd() *cobra.Command {
	var lang, stored string
	cmd := &cobra.Command{
		Use:   "merge [raw.json]",
		Short: "Merge raw input of one language into a stored document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.checkLanguage(lang); err != nil {
				return err
			}
			doc, err := a.readDocument(cmd, stored)
			if err != nil {
				return err
			}
			raw, err := readObject(cmd, firstArg(args))
			if err != nil {
				return err
			}
			if _, err := i18n.SetFromRaw(doc, lang, raw); err != nil {
				return err
			}
			if err := doc.Validate(); err != nil {
				return err
			}
			out, err := doc.ToJSON(document.WithID())
			if err != nil {
				return err
			}
			return writeObject(cmd, out)
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "", "Language of the raw input")
	cmd.Flags().StringVar(&stored, "doc", "", "Stored document file")
	_ = cmd.MarkFlagRequired("lang")
	_ = cmd.MarkFlagRequired("doc")
	return cmd
}

func (a *app) newLocalizeCmd() *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "localize [stored.json]",
		Short: "Project a stored document onto one language",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.checkLanguage(lang); err != nil {
				return err
			}
			doc, err := a.readDocument(cmd, firstArg(args))
			if err != nil {
				return err
			}
			out, err := i18n.ToLocalizedJSON(doc, lang, document.WithID())
			if err != nil {
				return err
			}
			return writeObject(cmd, out)
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "", "Target language")
	_ = cmd.MarkFlagRequired("lang")
	return cmd
}

func (a *app) checkLanguage(lang string) error {
	if !slices.Contains(a.opts.Languages, lang) {
		return fmt.Errorf("%w: %q (have %s)", errUnsupportedLanguage, lang, strings.Join(a.opts.Languages, ", "))
	}
	return nil
}

// readDocument loads a stored document. Its id is taken from the "_id" key.
func (a *app) readDocument(cmd *cobra.Command, name string) (*document.Document, error) {
	data, err := readObject(cmd, name)
	if err != nil {
		return nil, err
	}
	id, _ := data[document.IDKey].(string)
	delete(data, document.IDKey)
	return document.FromObject(a.schema, id, data), nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// readObject decodes a JSON object from the named file, or from stdin when
// name is empty or "-".
func readObject(cmd *cobra.Command, name string) (map[string]any, error) {
	var r io.Reader = cmd.InOrStdin()
	if name != "" && name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	var obj map[string]any
	if err := json.NewDecoder(r).Decode(&obj); err != nil {
		return nil, fmt.Errorf("decode %s: %w", displayName(name), err)
	}
	if obj == nil {
		return nil, fmt.Errorf("decode %s: not a JSON object", displayName(name))
	}
	return obj, nil
}

func displayName(name string) string {
	if name == "" || name == "-" {
		return "stdin"
	}
	return name
}

func writeObject(cmd *cobra.Command, obj map[string]any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(obj)
}
