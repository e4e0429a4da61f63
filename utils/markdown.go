package utils

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
	"github.com/spf13/viper"
)

// markdownCmd represents the markdown command
var markdownCmd = &cobra.Command{
	Use:     "markdown",
	Short:   "Generate markdown documentation for every horizr command",
	Aliases: []string{"md"},
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := generateMarkdown(cmd.Root(), viper.GetString("utils.markdown.dir")); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Println("Generated markdown successfully!")
	},
}

// generateMarkdown writes one page per command below root into outDir.
// The generation date is left out so unchanged commands produce unchanged pages.
func generateMarkdown(root *cobra.Command, outDir string) error {
	if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	root.DisableAutoGenTag = true
	if err := doc.GenMarkdownTree(root, outDir); err != nil {
		return fmt.Errorf("error generating markdown: %w", err)
	}
	return nil
}

func init() {
	utilsCmd.AddCommand(markdownCmd)

	markdownCmd.Flags().String("dir", ".", "The destination directory to save docs in")
	_ = viper.BindPFlag("utils.markdown.dir", markdownCmd.Flags().Lookup("dir"))
}
