package catalog

import (
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested book does not exist.
var ErrNotFound = errors.New("book not found")

// Repository handles catalog queries and updates.
type Repository struct {
	store *Store
}

// NewRepository creates a repository over an open store.
func NewRepository(store *Store) *Repository {
	return &Repository{store: store}
}

// AddBook inserts a book and returns its assigned ID. Importing the same
// archive path again replaces the existing entry, keeping its ID.
func (r *Repository) AddBook(book *Book) (int64, error) {
	var existing int64
	err := r.store.db.QueryRow("SELECT id FROM books WHERE path = ?", book.Path).Scan(&existing)
	switch {
	case err == nil:
		_, err = r.store.db.Exec(`
			UPDATE books SET title = ?, author = ?, language = ?, cover = ?, thumbnail = ?
			WHERE id = ?`,
			book.Title, book.Author, book.Language, book.Cover, book.Thumbnail, existing)
		if err != nil {
			return 0, fmt.Errorf("failed to update book: %w", err)
		}
		book.ID = existing
	case errors.Is(err, sql.ErrNoRows):
		res, err := r.store.db.Exec(`
			INSERT INTO books (title, author, language, path, cover, thumbnail)
			VALUES (?, ?, ?, ?, ?, ?)`,
			book.Title, book.Author, book.Language, book.Path, book.Cover, book.Thumbnail)
		if err != nil {
			return 0, fmt.Errorf("failed to insert book: %w", err)
		}
		book.ID, err = res.LastInsertId()
		if err != nil {
			return 0, err
		}
	default:
		return 0, err
	}

	if len(book.Tags) > 0 {
		if err := r.SetTags(book.ID, book.Tags); err != nil {
			return 0, err
		}
	}
	return book.ID, nil
}

// GetBook fetches one book by ID, tags included.
func (r *Repository) GetBook(id int64) (*Book, error) {
	book := &Book{}
	err := r.store.db.QueryRow(`
		SELECT id, title, author, language, path, cover, thumbnail, last_page, added_at
		FROM books WHERE id = ?`, id).
		Scan(&book.ID, &book.Title, &book.Author, &book.Language, &book.Path,
			&book.Cover, &book.Thumbnail, &book.LastPage, &book.AddedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	book.Tags, err = r.tagsFor(book.ID)
	if err != nil {
		return nil, err
	}
	return book, nil
}

// ListBooks returns all books ordered by title. Cover and thumbnail blobs
// are not loaded.
func (r *Repository) ListBooks() ([]Book, error) {
	rows, err := r.store.db.Query(`
		SELECT id, title, author, language, path, last_page, added_at
		FROM books ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()
	return scanBooks(rows)
}

// ListByTag returns all books carrying the given tag, ordered by title.
func (r *Repository) ListByTag(tag string) ([]Book, error) {
	rows, err := r.store.db.Query(`
		SELECT b.id, b.title, b.author, b.language, b.path, b.last_page, b.added_at
		FROM books b
		JOIN book_tags bt ON bt.book_id = b.id
		JOIN tags t ON t.id = bt.tag_id
		WHERE t.name = ?
		ORDER BY b.title`, tag)
	if err != nil {
		return nil, fmt.Errorf("failed to list books by tag: %w", err)
	}
	defer rows.Close()
	return scanBooks(rows)
}

// SaveLastPage records the reading position for a book.
func (r *Repository) SaveLastPage(bookID int64, page int) error {
	if page < 0 {
		page = 0
	}
	res, err := r.store.db.Exec("UPDATE books SET last_page = ? WHERE id = ?", page, bookID)
	if err != nil {
		return fmt.Errorf("failed to save last page: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetTags replaces a book's tag set.
func (r *Repository) SetTags(bookID int64, tags []string) error {
	tx, err := r.store.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM book_tags WHERE book_id = ?", bookID); err != nil {
		return err
	}
	for _, name := range tags {
		if name == "" {
			continue
		}
		tagID, err := getOrCreateTagTx(tx, name)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(
			"INSERT OR IGNORE INTO book_tags (book_id, tag_id) VALUES (?, ?)",
			bookID, tagID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func getOrCreateTagTx(tx *sql.Tx, name string) (int64, error) {
	var id int64
	err := tx.QueryRow("SELECT id FROM tags WHERE name = ?", name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}
	res, err := tx.Exec("INSERT INTO tags (name) VALUES (?)", name)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repository) tagsFor(bookID int64) ([]string, error) {
	rows, err := r.store.db.Query(`
		SELECT t.name FROM tags t
		JOIN book_tags bt ON bt.tag_id = t.id
		WHERE bt.book_id = ?
		ORDER BY t.name`, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tags = append(tags, name)
	}
	return tags, rows.Err()
}

func scanBooks(rows *sql.Rows) ([]Book, error) {
	var books []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Language, &b.Path,
			&b.LastPage, &b.AddedAt); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}
