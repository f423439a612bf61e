package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"git.handmade.network/hmn/spoilers/src/cli"
	"git.handmade.network/hmn/spoilers/src/logging"
	"git.handmade.network/hmn/spoilers/src/oops"
	"git.handmade.network/hmn/spoilers/src/parsing"
	"git.handmade.network/hmn/spoilers/src/utils"
	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"
)

func init() {
	var preview, plaintext, page bool
	var title string

	renderCommand := &cobra.Command{
		Use:   "render [<file>]",
		Short: "Render markdown to HTML",
		Long:  "Render a markdown file (or stdin) to HTML the same way forum posts are rendered, including every spoiler notation.",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			defer logging.LogPanics(nil)

			var name string
			var in io.Reader = os.Stdin
			if len(args) == 1 {
				name = args[0]
				f, err := os.Open(name)
				if err != nil {
					logging.Error().Err(oops.New(err, "failed to open markdown")).Str("file", name).Msg("can't render")
					os.Exit(1)
				}
				defer f.Close()
				in = f
			}

			err := render(cmd.OutOrStdout(), in, renderOptions{
				Name:      name,
				Preview:   preview,
				Plaintext: plaintext,
				Page:      page,
				Title:     title,
			})
			if err != nil {
				logging.Error().Err(err).Str("file", utils.OrDefault(name, "stdin")).Msg("failed to render markdown")
				os.Exit(1)
			}
		},
	}
	renderCommand.Flags().BoolVar(&preview, "preview", false, "Render like the live editor preview (no syntax highlighting)")
	renderCommand.Flags().BoolVar(&plaintext, "plaintext", false, "Render plain text with spoilers replaced by placeholders")
	renderCommand.Flags().BoolVar(&page, "page", false, "Wrap the output in a standalone HTML page")
	renderCommand.Flags().StringVar(&title, "title", "", "Title of the standalone page (defaults to the file name)")
	cli.RootCommand.AddCommand(renderCommand)

	passesCommand := &cobra.Command{
		Use:   "passes",
		Short: "List the spoiler passes in the order they run",
		Run: func(cmd *cobra.Command, args []string) {
			printPasses(cmd.OutOrStdout(), parsing.DefaultSpoilerPasses())
		},
	}
	cli.RootCommand.AddCommand(passesCommand)
}

type renderOptions struct {
	Name      string
	Preview   bool
	Plaintext bool
	Page      bool
	Title     string
}

func render(w io.Writer, in io.Reader, opts renderOptions) error {
	opts.Name = utils.OrDefault(opts.Name, "stdin")

	source, err := io.ReadAll(in)
	if err != nil {
		return oops.New(err, "failed to read markdown")
	}

	var md goldmark.Markdown
	switch {
	case opts.Plaintext:
		md = parsing.PlaintextMarkdown
	case opts.Preview:
		md = parsing.ForumPreviewMarkdown
	default:
		md = parsing.ForumRealMarkdown
	}

	html, err := parsing.TryParseMarkdown(string(source), md)
	if err != nil {
		return err
	}
	logging.Debug().Str("source", opts.Name).Int("bytes", len(source)).Msg("rendered markdown")

	if opts.Page && !opts.Plaintext {
		return writePage(w, opts.Title, opts.Name, html)
	}
	_, err = io.WriteString(w, html)
	return err
}

func printPasses(w io.Writer, passes []parsing.SpoilerPass) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSTAGE\tPRIORITY")
	for _, pass := range parsing.SortedSpoilerPasses(passes) {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", pass.Name, pass.Stage, pass.Priority)
	}
	tw.Flush()
}
