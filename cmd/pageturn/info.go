package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pageturn-app/pageturn/internal/epub"
)

var infoCmd = &cobra.Command{
	Use:   "info <book-id>",
	Short: "Show a catalog book and the structure of its archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid book id %q", args[0])
		}

		store, repo, err := openRepository()
		if err != nil {
			return err
		}
		defer store.Close()

		book, err := repo.GetBook(id)
		if err != nil {
			return err
		}

		fmt.Printf("Title:    %s\n", book.Title)
		fmt.Printf("Author:   %s\n", book.Author)
		if book.Language != "" {
			fmt.Printf("Language: %s\n", book.Language)
		}
		fmt.Printf("Path:     %s\n", book.Path)
		fmt.Printf("Added:    %s\n", book.AddedAt.Format("2006-01-02 15:04"))
		if len(book.Tags) > 0 {
			fmt.Printf("Tags:     %s\n", strings.Join(book.Tags, ", "))
		}
		fmt.Printf("Last page: %d\n", book.LastPage)

		data, err := os.ReadFile(book.Path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", book.Path, err)
		}
		model, err := epub.Parse(data)
		if err != nil {
			return err
		}

		fmt.Printf("\nSections: %d\n", len(model.Sections))
		for i, sec := range model.Sections {
			fmt.Printf("  %3d  %s\n", i+1, sec.Key)
		}
		fmt.Printf("Assets: %d images, %d fonts, %d styles, %d other\n",
			len(model.Assets.Images), len(model.Assets.Fonts),
			len(model.Assets.Styles), len(model.Assets.Other))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
