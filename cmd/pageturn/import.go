package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pageturn-app/pageturn/internal/catalog"
	"github.com/pageturn-app/pageturn/internal/epub"
)

var importCmd = &cobra.Command{
	Use:   "import <book.epub>",
	Short: "Add an EPUB file to the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}
		tags, _ := cmd.Flags().GetStringSlice("tag")

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		reader, err := epub.NewReader(data)
		if err != nil {
			return err
		}
		opfData, err := reader.ReadFile(reader.OPFPath())
		if err != nil {
			return err
		}
		opf, err := epub.ParseOPF(opfData, reader.OPFPath())
		if err != nil {
			return err
		}

		book := &catalog.Book{
			Title:    opf.Metadata.Title,
			Author:   strings.Join(opf.Metadata.Creators, ", "),
			Language: opf.Metadata.Language,
			Path:     path,
			Tags:     tags,
		}
		if book.Title == "" {
			book.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}

		// Cover extraction is best effort; a book without one is fine.
		if cover, _, err := epub.ExtractCover(reader, opf); err == nil {
			book.Cover = cover
			if thumb, err := catalog.Thumbnail(cover, cfg.ThumbnailWidth); err == nil {
				book.Thumbnail = thumb
			} else {
				log.Printf("warning: thumbnail generation failed: %v", err)
			}
		}

		store, repo, err := openRepository()
		if err != nil {
			return err
		}
		defer store.Close()

		id, err := repo.AddBook(book)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %q as book %d\n", book.Title, id)
		return nil
	},
}

func init() {
	importCmd.Flags().StringSlice("tag", nil, "Tag to attach (repeatable)")
	rootCmd.AddCommand(importCmd)
}
