package catalog

import (
	"context"

	"github.com/socialapi/socialapi/internal/models"
)

// Store persists the library catalog
type Store interface {
	CreateAuthor(ctx context.Context, author *models.Author) error
	// GetAuthor returns the author with its books
	GetAuthor(ctx context.Context, id int64) (*models.Author, error)
	// ListAuthors returns authors ordered by name, with their books
	ListAuthors(ctx context.Context, page models.Page) ([]models.Author, int64, error)
	UpdateAuthor(ctx context.Context, author *models.Author) error
	// DeleteAuthor removes the author and its books
	DeleteAuthor(ctx context.Context, id int64) error

	// CreateBook returns models.ErrAlreadyExists for a duplicate (title, author, year)
	CreateBook(ctx context.Context, book *models.Book) error
	GetBook(ctx context.Context, id int64) (*models.Book, error)
	UpdateBook(ctx context.Context, book *models.Book) error
	DeleteBook(ctx context.Context, id int64) error
	ListBooks(ctx context.Context, filter models.BookFilter, page models.Page) ([]models.Book, int64, error)

	CreateLibrary(ctx context.Context, library *models.Library) error
	// GetLibrary returns the library with its books
	GetLibrary(ctx context.Context, id int64) (*models.Library, error)
	ListLibraries(ctx context.Context, page models.Page) ([]models.Library, int64, error)
	// AddLibraryBook is a no-op when the book is already in the library
	AddLibraryBook(ctx context.Context, libraryID, bookID int64) error

	// CreateLibrarian returns models.ErrAlreadyExists when the library has one
	CreateLibrarian(ctx context.Context, librarian *models.Librarian) error
	GetLibrarianByLibrary(ctx context.Context, libraryID int64) (*models.Librarian, error)
}
