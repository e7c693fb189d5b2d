package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pageturn-app/pageturn/internal/epub"
	"github.com/pageturn-app/pageturn/internal/paginate"
	"github.com/pageturn-app/pageturn/internal/transcode"
)

var exportCmd = &cobra.Command{
	Use:   "export <book.epub>",
	Short: "Write each section as a self-contained HTML document",
	Long: `export rewrites every reading-order section of an EPUB into a
standalone HTML file with all assets inlined as data URIs. The output
can be opened in any browser without access to the archive.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outDir, _ := cmd.Flags().GetString("output")

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		model, err := epub.Parse(data)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(outDir, 0755); err != nil {
			return err
		}

		trans := transcode.New(model.Assets)
		for i, sec := range model.Sections {
			doc, err := trans.Transcode(sec.Markup, sec.Key)
			if err != nil {
				return fmt.Errorf("failed to transcode %s: %w", sec.Key, err)
			}
			name := fmt.Sprintf("%03d-%s.html", i+1, baseName(sec.Key))
			page := paginate.BuildDocument(doc)
			if err := os.WriteFile(filepath.Join(outDir, name), []byte(page), 0644); err != nil {
				return err
			}
		}

		fmt.Printf("Exported %d sections to %s\n", len(model.Sections), outDir)
		return nil
	},
}

func baseName(key string) string {
	base := epub.FileName(key)
	return base[:len(base)-len(filepath.Ext(base))]
}

func init() {
	exportCmd.Flags().StringP("output", "o", "export", "Output directory")
	rootCmd.AddCommand(exportCmd)
}
