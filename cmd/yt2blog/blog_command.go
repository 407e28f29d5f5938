package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

func newBlogCommand(ctx *commandContext) *cobra.Command {
	var outPath string
	var preview bool

	cmd := &cobra.Command{
		Use:   "blog <transcript.txt>",
		Short: "Generate a Markdown blog post from a saved transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read transcript: %w", err)
			}

			gen, err := ctx.newGenerator()
			if err != nil {
				return err
			}
			md, err := gen.Generate(cmd.Context(), string(data))
			if err != nil {
				return err
			}

			dest := outPath
			if dest == "" {
				title := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
				dest, err = gen.Save(title, md)
			} else {
				err = gen.SaveAs(dest, md)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Blog post saved to %s\n", dest)

			if preview {
				r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))
				if err != nil {
					return fmt.Errorf("preview: %w", err)
				}
				out, err := r.Render(md)
				if err != nil {
					return fmt.Errorf("preview: %w", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output path (default <blogs_dir>/<transcript name>.md)")
	cmd.Flags().BoolVar(&preview, "preview", false, "Render the generated post in the terminal")
	return cmd
}
