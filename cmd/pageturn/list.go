package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pageturn-app/pageturn/internal/catalog"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List books in the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tag, _ := cmd.Flags().GetString("tag")

		store, repo, err := openRepository()
		if err != nil {
			return err
		}
		defer store.Close()

		var books []catalog.Book
		if tag != "" {
			books, err = repo.ListByTag(tag)
		} else {
			books, err = repo.ListBooks()
		}
		if err != nil {
			return err
		}
		if len(books) == 0 {
			fmt.Println("No books in catalog.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tLAST PAGE")
		for _, b := range books {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", b.ID, b.Title, b.Author, b.LastPage)
		}
		return w.Flush()
	},
}

func init() {
	listCmd.Flags().String("tag", "", "Only books carrying this tag")
	rootCmd.AddCommand(listCmd)
}
