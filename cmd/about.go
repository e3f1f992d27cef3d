package cmd

import (
	"fmt"
	"io"

	"github.com/bnema/dumdum-cli/internal/adapters/render/about"
	"github.com/spf13/cobra"
)

func newAboutCmd(app *app) *cobra.Command {
	return offline(&cobra.Command{
		Use:   "about",
		Short: "What dum dum is and how to get started",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view := struct {
				Markdown string `json:"markdown" yaml:"markdown"`
			}{Markdown: about.Markdown()}

			return app.render(cmd, view, func(w io.Writer) error {
				page, err := about.Render("")
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(w, page)
				return err
			})
		},
	})
}
