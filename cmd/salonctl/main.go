// Command salonctl runs the back-office chores of the salon API:
// schema migration, review moderation, contact follow-up and gallery curation.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/petsalon/salon-api/internal/config"
	"github.com/petsalon/salon-api/internal/domain/contact"
	"github.com/petsalon/salon-api/internal/domain/gallery"
	"github.com/petsalon/salon-api/internal/domain/review"
	"github.com/petsalon/salon-api/internal/pkg/database"
	"github.com/petsalon/salon-api/internal/pkg/logger"
	"github.com/petsalon/salon-api/internal/pkg/storage"
)

const usage = `usage: salonctl <command> [args]

commands:
  migrate [-seed]                  create tables, optionally load reference data
  reviews approve <id>             publish a submitted review
  contacts respond <id>            mark a contact message as answered
  gallery add -title T -category C [-description D] [-featured] [-image path]
`

var errUsage = errors.New("invalid arguments")

func main() {
	cfg := config.Load()
	if err := logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env}); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialise logger")
	}

	ctx := context.Background()

	db, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close(db)

	app := &app{db: db, cfg: cfg, out: os.Stdout}
	if err := app.run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

type app struct {
	db  *sqlx.DB
	cfg *config.Config
	out io.Writer

	// newStorage is swapped in tests
	newStorage func(ctx context.Context, cfg storage.Config) (storage.Storage, error)
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "migrate":
		return a.migrate(ctx, args[1:])
	case "reviews":
		id, err := idCommand(args[1:], "approve")
		if err != nil {
			return err
		}
		if err := review.NewService(review.NewRepository(a.db)).Approve(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "review %d approved\n", id)
		return nil
	case "contacts":
		id, err := idCommand(args[1:], "respond")
		if err != nil {
			return err
		}
		if err := contact.NewService(contact.NewRepository(a.db)).MarkResponded(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "contact %d marked as responded\n", id)
		return nil
	case "gallery":
		if len(args) < 2 || args[1] != "add" {
			return errUsage
		}
		return a.galleryAdd(ctx, args[2:])
	default:
		return errUsage
	}
}

func (a *app) migrate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	seed := fs.Bool("seed", false, "load reference data")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	if err := database.Migrate(ctx, a.db); err != nil {
		return err
	}
	if *seed {
		if err := database.Seed(ctx, a.db); err != nil {
			return err
		}
	}
	fmt.Fprintln(a.out, "database is up to date")
	return nil
}

func (a *app) galleryAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("gallery add", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var req gallery.AddRequest
	fs.StringVar(&req.Title, "title", "", "item title")
	fs.StringVar(&req.Category, "category", "", "item category")
	fs.StringVar(&req.Description, "description", "", "item description")
	fs.BoolVar(&req.Featured, "featured", false, "show first")
	imagePath := fs.String("image", "", "path to a jpeg, png or gif")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	var store storage.Storage
	var image io.Reader
	if *imagePath != "" {
		f, err := os.Open(*imagePath)
		if err != nil {
			return fmt.Errorf("open image: %w", err)
		}
		defer f.Close()
		image = f

		newStorage := a.newStorage
		if newStorage == nil {
			newStorage = storage.New
		}
		store, err = newStorage(ctx, storage.Config{
			Driver:      a.cfg.StorageDriver,
			LocalPath:   a.cfg.LocalStoragePath,
			LocalURL:    a.cfg.LocalStorageURL,
			S3Endpoint:  a.cfg.S3Endpoint,
			S3Region:    a.cfg.S3Region,
			S3Bucket:    a.cfg.S3Bucket,
			S3AccessKey: a.cfg.S3AccessKey,
			S3SecretKey: a.cfg.S3SecretKey,
			S3PublicURL: a.cfg.S3PublicURL,
		})
		if err != nil {
			return fmt.Errorf("storage: %w", err)
		}
	}

	id, err := gallery.NewService(gallery.NewRepository(a.db), store, nil).Add(ctx, &req, image)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "gallery item %d added\n", id)
	return nil
}

func idCommand(args []string, verb string) (int64, error) {
	if len(args) != 2 || args[0] != verb {
		return 0, errUsage
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || id <= 0 {
		return 0, errUsage
	}
	return id, nil
}
