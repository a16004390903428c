package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/socialapi/socialapi/internal/models"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	s := NewService(NewMemoryStore())
	s.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	return s
}

func TestValidatePublicationYear(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		year    int
		wantErr string
	}{
		{"current year", 2024, ""},
		{"past", 1997, ""},
		{"lowest four digit", 1000, ""},
		{"future", 2025, "Publication year cannot be in the future. Current year is 2024."},
		{"three digits", 999, "Publication year must be a valid 4-digit year."},
		{"zero", 0, "Publication year must be a valid 4-digit year."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePublicationYear(tt.year, now)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error %v", err)
				}
				return
			}
			var verr *models.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error = %v, want ValidationError", err)
			}
			if verr.Field != "publication_year" || verr.Message != tt.wantErr {
				t.Errorf("error = %+v, want %q", verr, tt.wantErr)
			}
		})
	}
}

func TestCreateBook(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	rowling, _ := s.CreateAuthor(ctx, "J.K. Rowling")

	book, err := s.CreateBook(ctx, BookInput{Title: "Philosopher's Stone", PublicationYear: 1997, AuthorID: rowling.ID})
	if err != nil {
		t.Fatalf("CreateBook() error = %v", err)
	}
	if book.ID == 0 {
		t.Error("book should get an id")
	}

	tests := []struct {
		name    string
		in      BookInput
		wantErr error
		field   string
	}{
		{"duplicate", BookInput{Title: "Philosopher's Stone", PublicationYear: 1997, AuthorID: rowling.ID}, models.ErrAlreadyExists, ""},
		{"future year", BookInput{Title: "Future", PublicationYear: 2030, AuthorID: rowling.ID}, nil, "publication_year"},
		{"unknown author", BookInput{Title: "Orphan", PublicationYear: 2000, AuthorID: 99}, nil, "author"},
		{"blank title", BookInput{Title: " ", PublicationYear: 2000, AuthorID: rowling.ID}, nil, "title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateBook(ctx, tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			var verr *models.ValidationError
			if !errors.As(err, &verr) || verr.Field != tt.field {
				t.Errorf("error = %v, want validation error on %s", err, tt.field)
			}
		})
	}

	// Same title in another year is a different book
	if _, err := s.CreateBook(ctx, BookInput{Title: "Philosopher's Stone", PublicationYear: 1998, AuthorID: rowling.ID}); err != nil {
		t.Errorf("CreateBook(other year) error = %v", err)
	}
}

func seedBooks(t *testing.T, s *Service) {
	t.Helper()
	ctx := context.Background()
	rowling, _ := s.CreateAuthor(ctx, "J.K. Rowling")
	tolkien, _ := s.CreateAuthor(ctx, "J.R.R. Tolkien")

	for _, in := range []BookInput{
		{"Harry Potter and the Chamber of Secrets", 1998, rowling.ID},
		{"Harry Potter and the Philosopher's Stone", 1997, rowling.ID},
		{"The Hobbit", 1937, tolkien.ID},
		{"The Silmarillion", 1977, tolkien.ID},
	} {
		if _, err := s.CreateBook(ctx, in); err != nil {
			t.Fatalf("CreateBook(%s) error = %v", in.Title, err)
		}
	}
}

func TestListBooks(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	seedBooks(t, s)

	tests := []struct {
		name   string
		filter models.BookFilter
		want   []string
	}{
		{"default ordering is title", models.BookFilter{}, []string{
			"Harry Potter and the Chamber of Secrets", "Harry Potter and the Philosopher's Stone", "The Hobbit", "The Silmarillion"}},
		{"exact title", models.BookFilter{Title: "The Hobbit"}, []string{"The Hobbit"}},
		{"publication year", models.BookFilter{PublicationYear: 1997}, []string{"Harry Potter and the Philosopher's Stone"}},
		{"author name", models.BookFilter{AuthorName: "J.R.R. Tolkien"}, []string{"The Hobbit", "The Silmarillion"}},
		{"year at least", models.BookFilter{MinYear: 1977, Ordering: "publication_year"}, []string{
			"The Silmarillion", "Harry Potter and the Philosopher's Stone", "Harry Potter and the Chamber of Secrets"}},
		{"search title", models.BookFilter{Search: "harry"}, []string{
			"Harry Potter and the Chamber of Secrets", "Harry Potter and the Philosopher's Stone"}},
		{"search author", models.BookFilter{Search: "tolkien", Ordering: "-title"}, []string{"The Silmarillion", "The Hobbit"}},
		{"newest first", models.BookFilter{Ordering: "-publication_year", Search: "harry"}, []string{
			"Harry Potter and the Chamber of Secrets", "Harry Potter and the Philosopher's Stone"}},
		{"unknown ordering falls back to title", models.BookFilter{Ordering: "author", AuthorName: "J.R.R. Tolkien"}, []string{"The Hobbit", "The Silmarillion"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			books, total, err := s.ListBooks(ctx, tt.filter, models.NewPage(1, 10))
			if err != nil {
				t.Fatalf("ListBooks() error = %v", err)
			}
			if total != int64(len(tt.want)) || len(books) != len(tt.want) {
				t.Fatalf("ListBooks() returned %d (total %d), want %d", len(books), total, len(tt.want))
			}
			for i, title := range tt.want {
				if books[i].Title != title {
					t.Errorf("books[%d] = %q, want %q", i, books[i].Title, title)
				}
			}
		})
	}
}

func TestAuthorBooks(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	seedBooks(t, s)

	authors, total, err := s.ListAuthors(ctx, models.NewPage(1, 10))
	if err != nil || total != 2 {
		t.Fatalf("ListAuthors() = %d, %v", total, err)
	}
	if authors[0].Name != "J.K. Rowling" || len(authors[0].Books) != 2 {
		t.Errorf("first author = %+v", authors[0])
	}

	tolkien, err := s.GetAuthor(ctx, authors[1].ID)
	if err != nil {
		t.Fatalf("GetAuthor() error = %v", err)
	}
	// Nested books are newest first
	if tolkien.Books[0].Title != "The Silmarillion" {
		t.Errorf("nested books = %+v", tolkien.Books)
	}

	if err := s.DeleteAuthor(ctx, tolkien.ID); err != nil {
		t.Fatalf("DeleteAuthor() error = %v", err)
	}
	_, total, _ = s.ListBooks(ctx, models.BookFilter{}, models.NewPage(1, 10))
	if total != 2 {
		t.Errorf("deleting an author should delete its books, %d left", total)
	}
}

func TestLibraries(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	author, _ := s.CreateAuthor(ctx, "Ursula K. Le Guin")
	book, _ := s.CreateBook(ctx, BookInput{Title: "A Wizard of Earthsea", PublicationYear: 1968, AuthorID: author.ID})

	lib, err := s.CreateLibrary(ctx, "Central")
	if err != nil {
		t.Fatalf("CreateLibrary() error = %v", err)
	}

	for i := 0; i < 2; i++ {
		lib, err = s.AddBook(ctx, lib.ID, book.ID)
		if err != nil {
			t.Fatalf("AddBook() error = %v", err)
		}
	}
	if len(lib.Books) != 1 {
		t.Errorf("library books = %d, want 1", len(lib.Books))
	}
	if _, err := s.AddBook(ctx, lib.ID, 99); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("AddBook(missing) error = %v", err)
	}

	if _, err := s.Librarian(ctx, lib.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Librarian() before assign error = %v", err)
	}
	if _, err := s.AssignLibrarian(ctx, lib.ID, "Mo"); err != nil {
		t.Fatalf("AssignLibrarian() error = %v", err)
	}
	if _, err := s.AssignLibrarian(ctx, lib.ID, "Jo"); !errors.Is(err, models.ErrAlreadyExists) {
		t.Errorf("second AssignLibrarian() error = %v, want ErrAlreadyExists", err)
	}
	librarian, err := s.Librarian(ctx, lib.ID)
	if err != nil || librarian.Name != "Mo" {
		t.Errorf("Librarian() = %v, %v", librarian, err)
	}
	if _, err := s.AssignLibrarian(ctx, 404, "Nobody"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("AssignLibrarian(missing library) error = %v", err)
	}
}

func TestNameLengthCountsCharacters(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	name := strings.Repeat("ø", maxNameLength)
	if _, err := s.CreateAuthor(ctx, name); err != nil {
		t.Fatalf("CreateAuthor(%d characters) error = %v", maxNameLength, err)
	}

	_, err := s.CreateAuthor(ctx, name+"x")
	var verr *models.ValidationError
	if !errors.As(err, &verr) || verr.Field != "name" {
		t.Errorf("CreateAuthor(%d characters) error = %v, want validation error on name", maxNameLength+1, err)
	}
}
