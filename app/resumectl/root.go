package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yoockh/resumecraft/internal/models"
)

var rootCmd = &cobra.Command{
	Use:          "resumectl",
	Short:        "Render and export resumes from JSON files",
	SilenceUsage: true,
}

// readResume loads a resume document from path, or from stdin for "-".
func readResume(cmd *cobra.Command, path string) (models.Resume, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return models.Resume{}, err
		}
		defer f.Close()
		r = f
	}

	var doc models.Resume
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return models.Resume{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return doc, nil
}

// writeOutput writes to path, or to the command's stdout for "" and "-".
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
