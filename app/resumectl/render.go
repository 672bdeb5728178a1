package main

import (
	"github.com/spf13/cobra"

	"github.com/yoockh/resumecraft/internal/models"
	"github.com/yoockh/resumecraft/internal/render"
)

var renderFlags struct {
	in       string
	out      string
	template string
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a resume JSON file to HTML",
	Long:  `Renders the document exactly as the live preview and PDF export see it.`,
	Args:  cobra.NoArgs,
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderFlags.in, "in", "i", "-", "resume JSON file, - for stdin")
	renderCmd.Flags().StringVarP(&renderFlags.out, "out", "o", "-", "output HTML file, - for stdout")
	renderCmd.Flags().StringVarP(&renderFlags.template, "template", "t", "", "template id (defaults to the document's own)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	r, err := readResume(cmd, renderFlags.in)
	if err != nil {
		return err
	}
	t := models.TemplateID(renderFlags.template)
	if t == "" {
		t = r.SelectedTemplate
	}
	return writeOutput(cmd, renderFlags.out, []byte(render.Render(r, t)))
}
