package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/socialapi/socialapi/internal/catalog"
	"github.com/socialapi/socialapi/internal/db"
	"github.com/socialapi/socialapi/internal/models"
	"github.com/socialapi/socialapi/internal/social"
	"github.com/socialapi/socialapi/pkg/config"
	"github.com/socialapi/socialapi/pkg/logging"
)

type seedBook struct {
	title string
	year  int
}

// seedAuthors is a small catalog for local development
var seedAuthors = []struct {
	name  string
	books []seedBook
}{
	{"Ursula K. Le Guin", []seedBook{{"A Wizard of Earthsea", 1968}, {"The Left Hand of Darkness", 1969}, {"The Dispossessed", 1974}}},
	{"Octavia E. Butler", []seedBook{{"Kindred", 1979}, {"Parable of the Sower", 1993}}},
}

func main() {
	seed := flag.Bool("seed", false, "seed the catalog with demo authors, books and a library")
	adminName := flag.String("admin", "", "create this user as admin, or promote it if it exists (--seed defaults it to \"admin\")")
	adminEmail := flag.String("admin-email", "", "email for a new admin (default <admin>@localhost)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logging.InitLogger(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.GetLogger().Sync()

	logger := logging.GetLogger()
	if cfg.Storage.Driver != config.DriverPostgres {
		logger.Fatal("Migrations need the postgres storage driver", zap.String("driver", cfg.Storage.Driver))
	}

	database, err := db.New(&cfg.Database, cfg.Logging.Level)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := database.Migrate(ctx); err != nil {
		logger.Fatal("Migration failed", zap.Error(err))
	}

	if *seed && *adminName == "" {
		*adminName = "admin"
	}
	if *adminName != "" {
		users := social.NewService(db.NewSocialStore(database.DB), nil)
		if err := ensureAdmin(ctx, users, *adminName, *adminEmail, logger); err != nil {
			logger.Fatal("Creating admin failed", zap.Error(err))
		}
	}

	if *seed {
		if err := seedCatalog(ctx, catalog.NewService(db.NewCatalogStore(database.DB)), logger); err != nil {
			logger.Fatal("Seeding failed", zap.Error(err))
		}
	}
	logger.Info("Migration complete")
}

// seedCatalog adds one library stocked with the demo authors' books
func seedCatalog(ctx context.Context, svc *catalog.Service, logger *zap.Logger) error {
	library, err := svc.CreateLibrary(ctx, "Central Library")
	if err != nil {
		return err
	}

	for _, a := range seedAuthors {
		author, err := svc.CreateAuthor(ctx, a.name)
		if err != nil {
			return err
		}
		for _, b := range a.books {
			book, err := svc.CreateBook(ctx, catalog.BookInput{Title: b.title, PublicationYear: b.year, AuthorID: author.ID})
			if err != nil {
				return err
			}
			if _, err := svc.AddBook(ctx, library.ID, book.ID); err != nil {
				return err
			}
		}
	}

	if _, err := svc.AssignLibrarian(ctx, library.ID, "Head Librarian"); err != nil {
		return err
	}
	logger.Info("Catalog seeded", zap.Int64("library_id", library.ID), zap.Int("authors", len(seedAuthors)))
	return nil
}

// ensureAdmin promotes username to admin, registering it first when missing.
// A new account gets a random password that is logged once.
func ensureAdmin(ctx context.Context, users *social.Service, username, email string, logger *zap.Logger) error {
	created := false
	user, err := users.UserByUsername(ctx, username)
	switch {
	case err == nil:
	case errors.Is(err, models.ErrNotFound):
		if email == "" {
			email = username + "@localhost"
		}
		password := uuid.NewString()
		user, err = users.Register(ctx, social.Registration{
			Username:  username,
			Email:     email,
			Password:  password,
			Password2: password,
		})
		if err != nil {
			return err
		}
		created = true
		logger.Info("Admin account created, the password is not shown again",
			zap.String("username", username), zap.String("password", password))
	default:
		return err
	}

	if _, err := users.GrantRole(ctx, user.ID, models.RoleAdmin); err != nil {
		return err
	}
	logger.Info("Admin ready", zap.String("username", username), zap.Bool("created", created))
	return nil
}
