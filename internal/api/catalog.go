package api

import (
	"github.com/gin-gonic/gin"

	"github.com/socialapi/socialapi/internal/catalog"
	"github.com/socialapi/socialapi/internal/models"
)

type authorRequest struct {
	Name string `json:"name" binding:"required,notblank,max=100"`
}

type bookRequest struct {
	Title           string `json:"title" binding:"required,notblank,max=200"`
	PublicationYear int    `json:"publication_year"`
	Author          int64  `json:"author" binding:"required,gt=0"`
}

type libraryRequest struct {
	Name string `json:"name" binding:"required,notblank,max=100"`
}

type libraryBookRequest struct {
	BookID int64 `json:"book_id" binding:"required,gt=0"`
}

type librarianRequest struct {
	Name string `json:"name" binding:"required,notblank,max=100"`
}

type authorSummary struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	BookCount int    `json:"book_count"`
}

type authorDetail struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Books     []models.Book `json:"books"`
	BookCount int           `json:"book_count"`
}

func newAuthorDetail(a *models.Author) authorDetail {
	books := a.Books
	if books == nil {
		books = []models.Book{}
	}
	return authorDetail{ID: a.ID, Name: a.Name, Books: books, BookCount: len(books)}
}

// withBooks renders a library without books as an empty list
func withBooks(l *models.Library) *models.Library {
	if l.Books == nil {
		l.Books = []models.Book{}
	}
	return l
}

// Authors

func (r *Router) listAuthors(c *gin.Context) (interface{}, error) {
	page := parsePage(c)
	authors, total, err := r.catalog.ListAuthors(c.Request.Context(), page)
	if err != nil {
		return nil, err
	}
	results := make([]authorSummary, 0, len(authors))
	for _, a := range authors {
		results = append(results, authorSummary{ID: a.ID, Name: a.Name, BookCount: len(a.Books)})
	}
	return paginated(results, total, page), nil
}

func (r *Router) createAuthor(c *gin.Context) (interface{}, error) {
	var req authorRequest
	if err := bindJSON(c, &req); err != nil {
		return nil, err
	}
	author, err := r.catalog.CreateAuthor(c.Request.Context(), req.Name)
	if err != nil {
		return nil, err
	}
	return newAuthorDetail(author), nil
}

func (r *Router) getAuthor(c *gin.Context) (interface{}, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return nil, err
	}
	author, err := r.catalog.GetAuthor(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	return newAuthorDetail(author), nil
}

func (r *Router) updateAuthor(c *gin.Context) (interface{}, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return nil, err
	}
	var req authorRequest
	if err := bindJSON(c, &req); err != nil {
		return nil, err
	}
	if _, err := r.catalog.UpdateAuthor(c.Request.Context(), id, req.Name); err != nil {
		return nil, err
	}
	author, err := r.catalog.GetAuthor(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	return newAuthorDetail(author), nil
}

func (r *Router) deleteAuthor(c *gin.Context) (interface{}, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return nil, err
	}
	return nil, r.catalog.DeleteAuthor(c.Request.Context(), id)
}

// Books

func (r *Router) listBooks(c *gin.Context) (interface{}, error) {
	year, err := queryInt(c, "publication_year")
	if err != nil {
		return nil, err
	}
	minYear, err := queryInt(c, "year")
	if err != nil {
		return nil, err
	}
	authorName := c.Query("author")
	if authorName == "" {
		authorName = c.Query("author__name")
	}

	page := parsePage(c)
	filter := models.BookFilter{
		Title:           c.Query("title"),
		PublicationYear: year,
		AuthorName:      authorName,
		MinYear:         minYear,
		Search:          c.Query("search"),
		Ordering:        c.Query("ordering"),
	}
	books, total, err := r.catalog.ListBooks(c.Request.Context(), filter, page)
	if err != nil {
		return nil, err
	}
	return paginated(books, total, page), nil
}

func (r *Router) createBook(c *gin.Context) (interface{}, error) {
	var req bookRequest
	if err := bindJSON(c, &req); err != nil {
		return nil, err
	}
	return r.catalog.CreateBook(c.Request.Context(), catalog.BookInput{
		Title:           req.Title,
		PublicationYear: req.PublicationYear,
		AuthorID:        req.Author,
	})
}

func (r *Router) getBook(c *gin.Context) (interface{}, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return nil, err
	}
	return r.catalog.GetBook(c.Request.Context(), id)
}

func (r *Router) updateBook(c *gin.Context) (interface{}, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return nil, err
	}
	var req bookRequest
	if err := bindJSON(c, &req); err != nil {
		return nil, err
	}
	return r.catalog.UpdateBook(c.Request.Context(), id, catalog.BookInput{
		Title:           req.Title,
		PublicationYear: req.PublicationYear,
		AuthorID:        req.Author,
	})
}

func (r *Router) deleteBook(c *gin.Context) (interface{}, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return nil, err
	}
	return nil, r.catalog.DeleteBook(c.Request.Context(), id)
}

// Libraries

func (r *Router) listLibraries(c *gin.Context) (interface{}, error) {
	page := parsePage(c)
	libraries, total, err := r.catalog.ListLibraries(c.Request.Context(), page)
	if err != nil {
		return nil, err
	}
	for i := range libraries {
		withBooks(&libraries[i])
	}
	return paginated(libraries, total, page), nil
}

func (r *Router) createLibrary(c *gin.Context) (interface{}, error) {
	var req libraryRequest
	if err := bindJSON(c, &req); err != nil {
		return nil, err
	}
	return r.catalog.CreateLibrary(c.Request.Context(), req.Name)
}

func (r *Router) getLibrary(c *gin.Context) (interface{}, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return nil, err
	}
	library, err := r.catalog.GetLibrary(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	return withBooks(library), nil
}

func (r *Router) libraryBooks(c *gin.Context) (interface{}, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return nil, err
	}
	books, err := r.catalog.LibraryBooks(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []models.Book{}
	}
	return gin.H{"count": len(books), "results": books}, nil
}

func (r *Router) addLibraryBook(c *gin.Context) (interface{}, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return nil, err
	}
	var req libraryBookRequest
	if err := bindJSON(c, &req); err != nil {
		return nil, err
	}
	library, err := r.catalog.AddBook(c.Request.Context(), id, req.BookID)
	if err != nil {
		return nil, err
	}
	return withBooks(library), nil
}

func (r *Router) getLibrarian(c *gin.Context) (interface{}, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return nil, err
	}
	return r.catalog.Librarian(c.Request.Context(), id)
}

func (r *Router) assignLibrarian(c *gin.Context) (interface{}, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return nil, err
	}
	var req librarianRequest
	if err := bindJSON(c, &req); err != nil {
		return nil, err
	}
	return r.catalog.AssignLibrarian(c.Request.Context(), id, req.Name)
}
