package main

import (
	"github.com/spf13/cobra"

	"github.com/yoockh/resumecraft/internal/models"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List available templates",
	Run: func(cmd *cobra.Command, _ []string) {
		for _, id := range models.AllTemplates() {
			if id == models.DefaultTemplate {
				cmd.Printf("%s (default)\n", id)
				continue
			}
			cmd.Println(id)
		}
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}
