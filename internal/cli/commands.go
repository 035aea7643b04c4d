package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrlokans/vokabel/internal/annotation"
	"github.com/mrlokans/vokabel/internal/exporters"
	"github.com/mrlokans/vokabel/internal/importers"
)

func newBackfillCommand(opts *rootOptions) *cobra.Command {
	var lessonID uint

	cmd := &cobra.Command{
		Use:   "backfill-contexts",
		Short: "Attach context sentences to flashcards that have none",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			var scope *uint
			if cmd.Flags().Changed("lesson") {
				scope = &lessonID
			}
			result, err := app.Study.BackfillContexts(cmd.Context(), scope)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "scanned %d, updated %d, term missing %d\n",
				result.Scanned, result.Updated, result.Missing)
			return nil
		},
	}
	cmd.Flags().UintVar(&lessonID, "lesson", 0, "Only backfill flashcards of this lesson")
	return cmd
}

func newImportCommand(opts *rootOptions) *cobra.Command {
	var (
		urls    []string
		dir     string
		pattern string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Create lessons from web pages or text files",
		Example: `  vokabel import --url https://example.com/artikel
  vokabel import --dir ./texte --pattern "**/*.txt"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(urls) == 0 && dir == "" {
				return errors.New("either --url or --dir is required")
			}

			app, err := opts.openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			var source importers.Source
			if dir != "" {
				source = importers.NewFileImporter(dir, pattern)
			} else {
				source = importers.URLSource{Importer: app.WebImporter(), URLs: urls}
			}

			result, err := importers.NewPipeline(app.Study).Import(cmd.Context(), source)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "created %d lessons, skipped %d\n", result.LessonsCreated, result.LessonsSkipped)
			for _, msg := range result.Errors {
				fmt.Fprintf(out, "  error: %s\n", msg)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&urls, "url", nil, "Web page to import (repeatable)")
	cmd.Flags().StringVar(&dir, "dir", "", "Directory of text files to import")
	cmd.Flags().StringVar(&pattern, "pattern", importers.DefaultPattern, "Glob pattern for --dir")
	cmd.MarkFlagsMutuallyExclusive("url", "dir")
	return cmd
}

func newExportCommand(opts *rootOptions) *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export flashcard decks as markdown files or a YAML document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			decks, err := exporters.CollectDecks(cmd.Context(), app.Study)
			if err != nil {
				return err
			}

			var (
				exporter exporters.DeckExporter
				outFile  *os.File
			)
			switch strings.ToLower(format) {
			case "markdown", "md":
				if out == "" {
					return errors.New("--out directory is required for markdown export")
				}
				exporter = exporters.NewMarkdownExporter(out)
			case "yaml", "yml":
				w := cmd.OutOrStdout()
				if out != "" && out != "-" {
					f, err := os.Create(out)
					if err != nil {
						return fmt.Errorf("failed to create %s: %w", out, err)
					}
					outFile = f
					w = f
				}
				exporter = exporters.NewYAMLExporter(w)
			default:
				return fmt.Errorf("unknown format %q (want markdown or yaml)", format)
			}

			result, err := exporter.Export(decks)
			if outFile != nil {
				if closeErr := outFile.Close(); err == nil && closeErr != nil {
					err = fmt.Errorf("failed to write %s: %w", out, closeErr)
				}
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "exported %d decks with %d cards\n", result.DecksProcessed, result.CardsProcessed)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "markdown", "Output format: markdown or yaml")
	cmd.Flags().StringVar(&out, "out", "", "Output directory (markdown) or file (yaml, default stdout)")
	return cmd
}

func newAnnotateCommand() *cobra.Command {
	var (
		file     string
		dictFile string
		html     bool
	)

	cmd := &cobra.Command{
		Use:   "annotate",
		Short: "Print a text with dictionary terms marked",
		Long: `Reads a text file and a YAML dictionary of term: meaning pairs and prints
the text with every known term followed by its meaning, or as HTML.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read text: %w", err)
			}

			dict := &annotation.Dictionary{}
			if dictFile != "" {
				f, err := os.Open(dictFile)
				if err != nil {
					return fmt.Errorf("failed to open dictionary: %w", err)
				}
				defer f.Close()
				if dict, err = exporters.LoadDictionary(f); err != nil {
					return err
				}
			}

			paragraphs := annotation.Annotate(string(text), dict)
			if html {
				fmt.Fprintln(cmd.OutOrStdout(), annotation.RenderHTML(paragraphs))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), annotation.RenderText(paragraphs))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Text file to annotate")
	cmd.Flags().StringVar(&dictFile, "dict", "", "YAML dictionary file")
	cmd.Flags().BoolVar(&html, "html", false, "Render HTML instead of plain text")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
