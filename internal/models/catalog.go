package models

// Author writes books
type Author struct {
	ID   int64  `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name string `gorm:"type:varchar(100);not null;index;column:name" json:"name"`

	Books []Book `gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE" json:"books,omitempty"`
}

// TableName specifies the table name for Author
func (Author) TableName() string {
	return "authors"
}

// Book belongs to one author; (title, author, year) is unique
type Book struct {
	ID              int64  `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Title           string `gorm:"type:varchar(200);not null;uniqueIndex:idx_books_title_author_year;column:title" json:"title"`
	PublicationYear int    `gorm:"not null;uniqueIndex:idx_books_title_author_year;column:publication_year" json:"publication_year"`
	AuthorID        int64  `gorm:"not null;uniqueIndex:idx_books_title_author_year;column:author_id" json:"author"`
}

// TableName specifies the table name for Book
func (Book) TableName() string {
	return "books"
}

// BookFilter narrows book listings
type BookFilter struct {
	Title           string
	PublicationYear int
	AuthorName      string
	MinYear         int
	Search          string
	Ordering        string
}

// Book orderings accepted by listings
var BookOrderings = []string{"title", "-title", "publication_year", "-publication_year"}

// Library holds a set of books
type Library struct {
	ID    int64  `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name  string `gorm:"type:varchar(100);not null;column:name" json:"name"`
	Books []Book `gorm:"many2many:library_books" json:"books"`
}

// TableName specifies the table name for Library
func (Library) TableName() string {
	return "libraries"
}

// Librarian runs exactly one library
type Librarian struct {
	ID        int64  `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name      string `gorm:"type:varchar(100);not null;column:name" json:"name"`
	LibraryID int64  `gorm:"not null;uniqueIndex;column:library_id" json:"library"`

	Library *Library `gorm:"foreignKey:LibraryID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Librarian
func (Librarian) TableName() string {
	return "librarians"
}

// All returns every model for migrations
func All() []interface{} {
	return []interface{}{
		&User{}, &Follow{}, &Tag{}, &Post{}, &Comment{}, &Like{}, &Notification{},
		&Author{}, &Book{}, &Library{}, &Librarian{},
	}
}
