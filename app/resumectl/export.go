package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/yoockh/resumecraft/internal/logger"
	"github.com/yoockh/resumecraft/internal/models"
	"github.com/yoockh/resumecraft/internal/pdf"
	"github.com/yoockh/resumecraft/internal/render"
	"github.com/yoockh/resumecraft/internal/services"
)

var exportFlags struct {
	in         string
	out        string
	template   string
	chromePath string
	timeout    time.Duration
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a resume JSON file to PDF",
	Long:  `Prints the rendered resume to an A4 PDF with a local headless Chrome.`,
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFlags.in, "in", "i", "-", "resume JSON file, - for stdin")
	exportCmd.Flags().StringVarP(&exportFlags.out, "out", "o", "", "output PDF file (defaults to \"{full name}.pdf\")")
	exportCmd.Flags().StringVarP(&exportFlags.template, "template", "t", "", "template id (defaults to the document's own)")
	exportCmd.Flags().StringVar(&exportFlags.chromePath, "chrome-path", "", "Chrome/Chromium executable")
	exportCmd.Flags().DurationVar(&exportFlags.timeout, "timeout", 60*time.Second, "export timeout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	r, err := readResume(cmd, exportFlags.in)
	if err != nil {
		return err
	}
	if err := models.Validate(r); err != nil {
		return err
	}
	if exportFlags.template != "" {
		r.SelectedTemplate = models.TemplateID(exportFlags.template)
	}

	exp := pdf.NewChromeExporter(pdf.Options{ChromePath: exportFlags.chromePath, Timeout: exportFlags.timeout}, logger.New())
	if err := exp.Start(cmd.Context()); err != nil {
		return err
	}
	defer exp.Close()

	data, err := exp.Export(cmd.Context(), render.RenderSelected(r))
	if err != nil {
		return err
	}

	out := exportFlags.out
	if out == "" {
		out = services.PDFFilename(r)
	}
	if err := writeOutput(cmd, out, data); err != nil {
		return err
	}
	if out != "-" {
		cmd.PrintErrf("wrote %s (%d bytes)\n", out, len(data))
	}
	return nil
}
