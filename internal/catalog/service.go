package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/socialapi/socialapi/internal/models"
	"github.com/socialapi/socialapi/pkg/logging"
	"github.com/socialapi/socialapi/pkg/telemetry"
)

const (
	minPublicationYear = 1000
	maxNameLength      = 100
	maxTitleLength     = 200
)

// ValidatePublicationYear rejects years after now's year and years with
// fewer than four digits
func ValidatePublicationYear(year int, now time.Time) error {
	current := now.Year()
	if year > current {
		return models.NewValidationError("publication_year",
			fmt.Sprintf("Publication year cannot be in the future. Current year is %d.", current))
	}
	if year < minPublicationYear {
		return models.NewValidationError("publication_year", "Publication year must be a valid 4-digit year.")
	}
	return nil
}

func validateName(field, value string, max int) error {
	if strings.TrimSpace(value) == "" {
		return models.NewValidationError(field, "This field may not be blank.")
	}
	if utf8.RuneCountInString(value) > max {
		return models.NewValidationError(field, fmt.Sprintf("Ensure this field has no more than %d characters.", max))
	}
	return nil
}

// BookInput holds the writable fields of a book
type BookInput struct {
	Title           string
	PublicationYear int
	AuthorID        int64
}

// Service implements the library catalog
type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a catalog Service
func NewService(store Store) *Service {
	return &Service{
		store:  store,
		logger: logging.WithComponent("catalog"),
		now:    time.Now,
	}
}

// Authors

// CreateAuthor adds an author
func (s *Service) CreateAuthor(ctx context.Context, name string) (*models.Author, error) {
	ctx, span := telemetry.StartSpan(ctx, "catalog.CreateAuthor")
	defer span.End()

	name = strings.TrimSpace(name)
	if err := validateName("name", name, maxNameLength); err != nil {
		return nil, err
	}
	author := &models.Author{Name: name}
	if err := s.store.CreateAuthor(ctx, author); err != nil {
		return nil, err
	}
	author.Books = []models.Book{}
	return author, nil
}

// GetAuthor returns an author with nested books
func (s *Service) GetAuthor(ctx context.Context, id int64) (*models.Author, error) {
	return s.store.GetAuthor(ctx, id)
}

// ListAuthors returns authors ordered by name
func (s *Service) ListAuthors(ctx context.Context, page models.Page) ([]models.Author, int64, error) {
	return s.store.ListAuthors(ctx, page)
}

// UpdateAuthor renames an author
func (s *Service) UpdateAuthor(ctx context.Context, id int64, name string) (*models.Author, error) {
	ctx, span := telemetry.StartSpan(ctx, "catalog.UpdateAuthor")
	defer span.End()

	name = strings.TrimSpace(name)
	if err := validateName("name", name, maxNameLength); err != nil {
		return nil, err
	}
	author, err := s.store.GetAuthor(ctx, id)
	if err != nil {
		return nil, err
	}
	author.Name = name
	if err := s.store.UpdateAuthor(ctx, author); err != nil {
		return nil, err
	}
	return author, nil
}

// DeleteAuthor deletes an author and its books
func (s *Service) DeleteAuthor(ctx context.Context, id int64) error {
	return s.store.DeleteAuthor(ctx, id)
}

// Books

func (s *Service) validateBook(ctx context.Context, in BookInput) error {
	if err := validateName("title", in.Title, maxTitleLength); err != nil {
		return err
	}
	if err := ValidatePublicationYear(in.PublicationYear, s.now()); err != nil {
		return err
	}
	if _, err := s.store.GetAuthor(ctx, in.AuthorID); err != nil {
		return models.NewValidationError("author", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", in.AuthorID))
	}
	return nil
}

// CreateBook adds a book after validating its year and author
func (s *Service) CreateBook(ctx context.Context, in BookInput) (*models.Book, error) {
	ctx, span := telemetry.StartSpan(ctx, "catalog.CreateBook")
	defer span.End()

	in.Title = strings.TrimSpace(in.Title)
	if err := s.validateBook(ctx, in); err != nil {
		return nil, err
	}
	book := &models.Book{Title: in.Title, PublicationYear: in.PublicationYear, AuthorID: in.AuthorID}
	if err := s.store.CreateBook(ctx, book); err != nil {
		return nil, err
	}
	s.logger.Debug("Book created", zap.Int64("book_id", book.ID), zap.String("title", book.Title))
	return book, nil
}

// GetBook returns a book by id
func (s *Service) GetBook(ctx context.Context, id int64) (*models.Book, error) {
	return s.store.GetBook(ctx, id)
}

// UpdateBook replaces a book's fields
func (s *Service) UpdateBook(ctx context.Context, id int64, in BookInput) (*models.Book, error) {
	ctx, span := telemetry.StartSpan(ctx, "catalog.UpdateBook")
	defer span.End()

	book, err := s.store.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}
	in.Title = strings.TrimSpace(in.Title)
	if err := s.validateBook(ctx, in); err != nil {
		return nil, err
	}
	book.Title = in.Title
	book.PublicationYear = in.PublicationYear
	book.AuthorID = in.AuthorID
	if err := s.store.UpdateBook(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// DeleteBook deletes a book
func (s *Service) DeleteBook(ctx context.Context, id int64) error {
	return s.store.DeleteBook(ctx, id)
}

// ListBooks returns books matching the filter. Unknown orderings fall back to title.
func (s *Service) ListBooks(ctx context.Context, filter models.BookFilter, page models.Page) ([]models.Book, int64, error) {
	ctx, span := telemetry.StartSpan(ctx, "catalog.ListBooks")
	defer span.End()

	filter.Ordering = normalizeOrdering(filter.Ordering)
	filter.Search = strings.TrimSpace(filter.Search)
	return s.store.ListBooks(ctx, filter, page)
}

func normalizeOrdering(ordering string) string {
	ordering = strings.TrimSpace(ordering)
	for _, o := range models.BookOrderings {
		if ordering == o {
			return o
		}
	}
	return "title"
}

// Libraries

// CreateLibrary adds a library
func (s *Service) CreateLibrary(ctx context.Context, name string) (*models.Library, error) {
	name = strings.TrimSpace(name)
	if err := validateName("name", name, maxNameLength); err != nil {
		return nil, err
	}
	library := &models.Library{Name: name}
	if err := s.store.CreateLibrary(ctx, library); err != nil {
		return nil, err
	}
	library.Books = []models.Book{}
	return library, nil
}

// GetLibrary returns a library with its books
func (s *Service) GetLibrary(ctx context.Context, id int64) (*models.Library, error) {
	return s.store.GetLibrary(ctx, id)
}

// ListLibraries returns libraries ordered by id
func (s *Service) ListLibraries(ctx context.Context, page models.Page) ([]models.Library, int64, error) {
	return s.store.ListLibraries(ctx, page)
}

// AddBook puts an existing book in the library
func (s *Service) AddBook(ctx context.Context, libraryID, bookID int64) (*models.Library, error) {
	ctx, span := telemetry.StartSpan(ctx, "catalog.AddBook")
	defer span.End()

	if _, err := s.store.GetLibrary(ctx, libraryID); err != nil {
		return nil, err
	}
	if _, err := s.store.GetBook(ctx, bookID); err != nil {
		return nil, err
	}
	if err := s.store.AddLibraryBook(ctx, libraryID, bookID); err != nil {
		return nil, err
	}
	return s.store.GetLibrary(ctx, libraryID)
}

// LibraryBooks returns the books held by a library
func (s *Service) LibraryBooks(ctx context.Context, libraryID int64) ([]models.Book, error) {
	library, err := s.store.GetLibrary(ctx, libraryID)
	if err != nil {
		return nil, err
	}
	return library.Books, nil
}

// Librarians

// AssignLibrarian creates the librarian of a library. A library has at most one.
func (s *Service) AssignLibrarian(ctx context.Context, libraryID int64, name string) (*models.Librarian, error) {
	ctx, span := telemetry.StartSpan(ctx, "catalog.AssignLibrarian")
	defer span.End()

	name = strings.TrimSpace(name)
	if err := validateName("name", name, maxNameLength); err != nil {
		return nil, err
	}
	if _, err := s.store.GetLibrary(ctx, libraryID); err != nil {
		return nil, err
	}
	librarian := &models.Librarian{Name: name, LibraryID: libraryID}
	if err := s.store.CreateLibrarian(ctx, librarian); err != nil {
		return nil, err
	}
	return librarian, nil
}

// Librarian returns the librarian of a library
func (s *Service) Librarian(ctx context.Context, libraryID int64) (*models.Librarian, error) {
	return s.store.GetLibrarianByLibrary(ctx, libraryID)
}
