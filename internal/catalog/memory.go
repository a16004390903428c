package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/socialapi/socialapi/internal/models"
)

type bookKey struct {
	title    string
	authorID int64
	year     int
}

// MemoryStore is a catalog Store kept in process memory
type MemoryStore struct {
	mu sync.RWMutex

	lastAuthor, lastBook, lastLibrary, lastLibrarian int64

	authors      map[int64]models.Author
	books        map[int64]models.Book
	bookKeys     map[bookKey]int64
	libraries    map[int64]models.Library
	libraryBooks map[int64][]int64
	librarians   map[int64]models.Librarian // by library id
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		authors:      make(map[int64]models.Author),
		books:        make(map[int64]models.Book),
		bookKeys:     make(map[bookKey]int64),
		libraries:    make(map[int64]models.Library),
		libraryBooks: make(map[int64][]int64),
		librarians:   make(map[int64]models.Librarian),
	}
}

var _ Store = (*MemoryStore)(nil)

func keyOf(b *models.Book) bookKey {
	return bookKey{title: b.Title, authorID: b.AuthorID, year: b.PublicationYear}
}

// booksOf returns an author's books ordered by -publication_year, title
func (m *MemoryStore) booksOf(authorID int64) []models.Book {
	books := make([]models.Book, 0)
	for _, b := range m.books {
		if b.AuthorID == authorID {
			books = append(books, b)
		}
	}
	sort.Slice(books, func(i, j int) bool {
		if books[i].PublicationYear != books[j].PublicationYear {
			return books[i].PublicationYear > books[j].PublicationYear
		}
		return books[i].Title < books[j].Title
	})
	return books
}

func (m *MemoryStore) CreateAuthor(ctx context.Context, author *models.Author) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastAuthor++
	author.ID = m.lastAuthor
	m.authors[author.ID] = models.Author{ID: author.ID, Name: author.Name}
	return nil
}

func (m *MemoryStore) GetAuthor(ctx context.Context, id int64) (*models.Author, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.authors[id]
	if !ok {
		return nil, fmt.Errorf("author %d: %w", id, models.ErrNotFound)
	}
	a.Books = m.booksOf(id)
	return &a, nil
}

func (m *MemoryStore) ListAuthors(ctx context.Context, page models.Page) ([]models.Author, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	authors := make([]models.Author, 0, len(m.authors))
	for _, a := range m.authors {
		authors = append(authors, a)
	}
	sort.Slice(authors, func(i, j int) bool {
		if authors[i].Name != authors[j].Name {
			return authors[i].Name < authors[j].Name
		}
		return authors[i].ID < authors[j].ID
	})

	start, end := page.Window(len(authors))
	out := authors[start:end]
	for i := range out {
		out[i].Books = m.booksOf(out[i].ID)
	}
	return out, int64(len(authors)), nil
}

func (m *MemoryStore) UpdateAuthor(ctx context.Context, author *models.Author) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.authors[author.ID]; !ok {
		return fmt.Errorf("author %d: %w", author.ID, models.ErrNotFound)
	}
	m.authors[author.ID] = models.Author{ID: author.ID, Name: author.Name}
	return nil
}

func (m *MemoryStore) DeleteAuthor(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.authors[id]; !ok {
		return fmt.Errorf("author %d: %w", id, models.ErrNotFound)
	}
	delete(m.authors, id)
	for bid, b := range m.books {
		if b.AuthorID == id {
			m.removeBook(bid)
		}
	}
	return nil
}

func (m *MemoryStore) CreateBook(ctx context.Context, book *models.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.authors[book.AuthorID]; !ok {
		return fmt.Errorf("author %d: %w", book.AuthorID, models.ErrNotFound)
	}
	if _, dup := m.bookKeys[keyOf(book)]; dup {
		return fmt.Errorf("book %q: %w", book.Title, models.ErrAlreadyExists)
	}
	m.lastBook++
	book.ID = m.lastBook
	m.books[book.ID] = *book
	m.bookKeys[keyOf(book)] = book.ID
	return nil
}

func (m *MemoryStore) GetBook(ctx context.Context, id int64) (*models.Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.books[id]
	if !ok {
		return nil, fmt.Errorf("book %d: %w", id, models.ErrNotFound)
	}
	return &b, nil
}

func (m *MemoryStore) UpdateBook(ctx context.Context, book *models.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	old, ok := m.books[book.ID]
	if !ok {
		return fmt.Errorf("book %d: %w", book.ID, models.ErrNotFound)
	}
	if id, dup := m.bookKeys[keyOf(book)]; dup && id != book.ID {
		return fmt.Errorf("book %q: %w", book.Title, models.ErrAlreadyExists)
	}
	delete(m.bookKeys, keyOf(&old))
	m.books[book.ID] = *book
	m.bookKeys[keyOf(book)] = book.ID
	return nil
}

func (m *MemoryStore) DeleteBook(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.books[id]; !ok {
		return fmt.Errorf("book %d: %w", id, models.ErrNotFound)
	}
	m.removeBook(id)
	return nil
}

func (m *MemoryStore) removeBook(id int64) {
	b := m.books[id]
	delete(m.bookKeys, keyOf(&b))
	delete(m.books, id)
	for lib, ids := range m.libraryBooks {
		kept := ids[:0]
		for _, bid := range ids {
			if bid != id {
				kept = append(kept, bid)
			}
		}
		m.libraryBooks[lib] = kept
	}
}

func (m *MemoryStore) matchBook(b models.Book, f models.BookFilter) bool {
	author := m.authors[b.AuthorID]
	if f.Title != "" && b.Title != f.Title {
		return false
	}
	if f.PublicationYear != 0 && b.PublicationYear != f.PublicationYear {
		return false
	}
	if f.AuthorName != "" && author.Name != f.AuthorName {
		return false
	}
	if f.MinYear != 0 && b.PublicationYear < f.MinYear {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(b.Title), q) && !strings.Contains(strings.ToLower(author.Name), q) {
			return false
		}
	}
	return true
}

func (m *MemoryStore) ListBooks(ctx context.Context, filter models.BookFilter, page models.Page) ([]models.Book, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := make([]models.Book, 0)
	for _, b := range m.books {
		if m.matchBook(b, filter) {
			matched = append(matched, b)
		}
	}

	desc := strings.HasPrefix(filter.Ordering, "-")
	byYear := strings.TrimPrefix(filter.Ordering, "-") == "publication_year"
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if byYear && a.PublicationYear != b.PublicationYear {
			return (a.PublicationYear < b.PublicationYear) != desc
		}
		if !byYear && a.Title != b.Title {
			return (a.Title < b.Title) != desc
		}
		return a.ID < b.ID
	})

	start, end := page.Window(len(matched))
	return matched[start:end], int64(len(matched)), nil
}

func (m *MemoryStore) CreateLibrary(ctx context.Context, library *models.Library) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastLibrary++
	library.ID = m.lastLibrary
	m.libraries[library.ID] = models.Library{ID: library.ID, Name: library.Name}
	return nil
}

func (m *MemoryStore) GetLibrary(ctx context.Context, id int64) (*models.Library, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	l, ok := m.libraries[id]
	if !ok {
		return nil, fmt.Errorf("library %d: %w", id, models.ErrNotFound)
	}
	l.Books = m.libraryBookList(id)
	return &l, nil
}

func (m *MemoryStore) libraryBookList(id int64) []models.Book {
	books := make([]models.Book, 0, len(m.libraryBooks[id]))
	for _, bid := range m.libraryBooks[id] {
		books = append(books, m.books[bid])
	}
	return books
}

func (m *MemoryStore) ListLibraries(ctx context.Context, page models.Page) ([]models.Library, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	libs := make([]models.Library, 0, len(m.libraries))
	for _, l := range m.libraries {
		libs = append(libs, l)
	}
	sort.Slice(libs, func(i, j int) bool { return libs[i].ID < libs[j].ID })

	start, end := page.Window(len(libs))
	out := libs[start:end]
	for i := range out {
		out[i].Books = m.libraryBookList(out[i].ID)
	}
	return out, int64(len(libs)), nil
}

func (m *MemoryStore) AddLibraryBook(ctx context.Context, libraryID, bookID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.libraries[libraryID]; !ok {
		return fmt.Errorf("library %d: %w", libraryID, models.ErrNotFound)
	}
	if _, ok := m.books[bookID]; !ok {
		return fmt.Errorf("book %d: %w", bookID, models.ErrNotFound)
	}
	for _, id := range m.libraryBooks[libraryID] {
		if id == bookID {
			return nil
		}
	}
	m.libraryBooks[libraryID] = append(m.libraryBooks[libraryID], bookID)
	return nil
}

func (m *MemoryStore) CreateLibrarian(ctx context.Context, librarian *models.Librarian) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.libraries[librarian.LibraryID]; !ok {
		return fmt.Errorf("library %d: %w", librarian.LibraryID, models.ErrNotFound)
	}
	if _, taken := m.librarians[librarian.LibraryID]; taken {
		return fmt.Errorf("librarian for library %d: %w", librarian.LibraryID, models.ErrAlreadyExists)
	}
	m.lastLibrarian++
	librarian.ID = m.lastLibrarian
	m.librarians[librarian.LibraryID] = *librarian
	return nil
}

func (m *MemoryStore) GetLibrarianByLibrary(ctx context.Context, libraryID int64) (*models.Librarian, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	l, ok := m.librarians[libraryID]
	if !ok {
		return nil, fmt.Errorf("librarian for library %d: %w", libraryID, models.ErrNotFound)
	}
	return &l, nil
}
