package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/socialapi/socialapi/internal/catalog"
	"github.com/socialapi/socialapi/internal/models"
)

// CatalogStore is the postgres implementation of catalog.Store
type CatalogStore struct {
	db *gorm.DB
}

// NewCatalogStore creates a CatalogStore
func NewCatalogStore(db *gorm.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

var _ catalog.Store = (*CatalogStore)(nil)

var bookOrderings = map[string]string{
	"title":             "books.title ASC",
	"-title":            "books.title DESC",
	"publication_year":  "books.publication_year ASC",
	"-publication_year": "books.publication_year DESC",
}

func preloadAuthorBooks(db *gorm.DB) *gorm.DB {
	return db.Order("books.publication_year DESC, books.title ASC")
}

// Authors

func (s *CatalogStore) CreateAuthor(ctx context.Context, author *models.Author) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Create(author).Error, "author")
}

func (s *CatalogStore) GetAuthor(ctx context.Context, id int64) (*models.Author, error) {
	var author models.Author
	err := s.db.WithContext(ctx).Preload("Books", preloadAuthorBooks).First(&author, id).Error
	if err != nil {
		return nil, translate(err, fmt.Sprintf("author %d", id))
	}
	return &author, nil
}

func (s *CatalogStore) ListAuthors(ctx context.Context, page models.Page) ([]models.Author, int64, error) {
	db := s.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Author{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	authors := make([]models.Author, 0, page.Limit())
	err := db.Preload("Books", preloadAuthorBooks).
		Order("name, id").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&authors).Error
	return authors, total, err
}

func (s *CatalogStore) UpdateAuthor(ctx context.Context, author *models.Author) error {
	result := s.db.WithContext(ctx).Model(&models.Author{ID: author.ID}).Update("name", author.Name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("author %d: %w", author.ID, models.ErrNotFound)
	}
	return nil
}

// DeleteAuthor unlinks the author's books from libraries, then lets the
// books cascade with the author
func (s *CatalogStore) DeleteAuthor(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM library_books WHERE book_id IN (SELECT id FROM books WHERE author_id = ?)", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Author{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("author %d: %w", id, models.ErrNotFound)
		}
		return nil
	})
}

// Books

func (s *CatalogStore) CreateBook(ctx context.Context, book *models.Book) error {
	err := s.db.WithContext(ctx).Omit(clause.Associations).Create(book).Error
	return translate(err, fmt.Sprintf("book %q", book.Title))
}

func (s *CatalogStore) GetBook(ctx context.Context, id int64) (*models.Book, error) {
	var book models.Book
	if err := s.db.WithContext(ctx).First(&book, id).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("book %d", id))
	}
	return &book, nil
}

func (s *CatalogStore) UpdateBook(ctx context.Context, book *models.Book) error {
	result := s.db.WithContext(ctx).Model(&models.Book{ID: book.ID}).Updates(map[string]interface{}{
		"title":            book.Title,
		"publication_year": book.PublicationYear,
		"author_id":        book.AuthorID,
	})
	if result.Error != nil {
		return translate(result.Error, fmt.Sprintf("book %q", book.Title))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("book %d: %w", book.ID, models.ErrNotFound)
	}
	return nil
}

func (s *CatalogStore) DeleteBook(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM library_books WHERE book_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Book{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("book %d: %w", id, models.ErrNotFound)
		}
		return nil
	})
}

func (s *CatalogStore) ListBooks(ctx context.Context, filter models.BookFilter, page models.Page) ([]models.Book, int64, error) {
	query := func() *gorm.DB {
		q := s.db.WithContext(ctx).Model(&models.Book{}).
			Joins("JOIN authors ON authors.id = books.author_id")
		if filter.Title != "" {
			q = q.Where("books.title = ?", filter.Title)
		}
		if filter.PublicationYear != 0 {
			q = q.Where("books.publication_year = ?", filter.PublicationYear)
		}
		if filter.AuthorName != "" {
			q = q.Where("authors.name = ?", filter.AuthorName)
		}
		if filter.MinYear != 0 {
			q = q.Where("books.publication_year >= ?", filter.MinYear)
		}
		if filter.Search != "" {
			like := likePattern(filter.Search)
			q = q.Where("(books.title ILIKE ? OR authors.name ILIKE ?)", like, like)
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order, ok := bookOrderings[filter.Ordering]
	if !ok {
		order = bookOrderings["title"]
	}

	books := make([]models.Book, 0, page.Limit())
	err := query().
		Select("books.*").
		Order(order + ", books.id ASC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&books).Error
	return books, total, err
}

// Libraries

func (s *CatalogStore) CreateLibrary(ctx context.Context, library *models.Library) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Create(library).Error, "library")
}

func (s *CatalogStore) GetLibrary(ctx context.Context, id int64) (*models.Library, error) {
	var library models.Library
	err := s.db.WithContext(ctx).Preload("Books", func(db *gorm.DB) *gorm.DB {
		return db.Order("books.id")
	}).First(&library, id).Error
	if err != nil {
		return nil, translate(err, fmt.Sprintf("library %d", id))
	}
	return &library, nil
}

func (s *CatalogStore) ListLibraries(ctx context.Context, page models.Page) ([]models.Library, int64, error) {
	db := s.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Library{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	libraries := make([]models.Library, 0, page.Limit())
	err := db.Preload("Books").
		Order("id").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&libraries).Error
	return libraries, total, err
}

func (s *CatalogStore) AddLibraryBook(ctx context.Context, libraryID, bookID int64) error {
	err := s.db.WithContext(ctx).
		Exec("INSERT INTO library_books (library_id, book_id) VALUES (?, ?) ON CONFLICT DO NOTHING", libraryID, bookID).
		Error
	return translate(err, fmt.Sprintf("library %d book %d", libraryID, bookID))
}

// Librarians

func (s *CatalogStore) CreateLibrarian(ctx context.Context, librarian *models.Librarian) error {
	err := s.db.WithContext(ctx).Omit(clause.Associations).Create(librarian).Error
	return translate(err, fmt.Sprintf("librarian for library %d", librarian.LibraryID))
}

func (s *CatalogStore) GetLibrarianByLibrary(ctx context.Context, libraryID int64) (*models.Librarian, error) {
	var librarian models.Librarian
	if err := s.db.WithContext(ctx).Where("library_id = ?", libraryID).First(&librarian).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("librarian for library %d", libraryID))
	}
	return &librarian, nil
}
