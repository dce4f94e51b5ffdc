package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/octobees/stays/api/internal/config"
	"github.com/octobees/stays/api/internal/database"
	"github.com/octobees/stays/api/internal/dto"
	"github.com/octobees/stays/api/internal/logging"
	"github.com/octobees/stays/api/internal/repository"
	"github.com/octobees/stays/api/internal/service"
)

const usage = `usage: stays <command> [flags]

commands:
  search        search properties (-city -owner -min-price -max-price -min-rating -limit)
  reservations  list a guest's reservations (-guest -limit)
  user          look up a user (-email | -id)
`

type services struct {
	properties   *service.PropertyService
	reservations *service.ReservationService
	users        *service.UserService
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, os.Args[1], os.Args[2:], os.Stdout); err != nil {
		logger.Error().Err(err).Str("command", os.Args[1]).Msg("command failed")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger, command string, args []string, out io.Writer) error {
	pool, err := database.Connect(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	limits := service.Limits{Default: cfg.Search.DefaultLimit, Max: cfg.Search.MaxLimit}
	svc := services{
		properties:   service.NewPropertyService(repository.NewPGXPropertiesRepository(pool), logger, limits),
		reservations: service.NewReservationService(repository.NewPGXReservationsRepository(pool), logger, limits),
		users:        service.NewUserService(repository.NewPGXUsersRepository(pool)),
	}

	var result any
	switch command {
	case "search":
		result, err = runSearch(ctx, svc, args)
	case "reservations":
		result, err = runReservations(ctx, svc, args)
	case "user":
		result, err = runUser(ctx, svc, args)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func runSearch(ctx context.Context, svc services, args []string) (any, error) {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	city := fs.String("city", "", "substring of the city name")
	owner := fs.String("owner", "", "owner user id")
	minPrice := fs.Float64("min-price", 0, "minimum price per night (major units)")
	maxPrice := fs.Float64("max-price", 0, "maximum price per night (major units)")
	minRating := fs.Float64("min-rating", 0, "minimum average rating")
	limit := fs.Int("limit", 0, "maximum number of results")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	criteria := dto.PropertySearch{City: *city}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if *owner != "" {
		id, err := uuid.Parse(*owner)
		if err != nil {
			return nil, fmt.Errorf("invalid -owner: %w", err)
		}
		criteria.OwnerID = &id
	}
	if set["min-price"] {
		criteria.MinPricePerNight = minPrice
	}
	if set["max-price"] {
		criteria.MaxPricePerNight = maxPrice
	}
	if set["min-rating"] {
		criteria.MinRating = minRating
	}

	return svc.properties.Search(ctx, criteria, *limit)
}

func runReservations(ctx context.Context, svc services, args []string) (any, error) {
	fs := flag.NewFlagSet("reservations", flag.ContinueOnError)
	guest := fs.String("guest", "", "guest user id")
	limit := fs.Int("limit", 0, "maximum number of results")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	guestID, err := uuid.Parse(*guest)
	if err != nil {
		return nil, fmt.Errorf("invalid -guest: %w", err)
	}
	return svc.reservations.ListForGuest(ctx, guestID, *limit)
}

func runUser(ctx context.Context, svc services, args []string) (any, error) {
	fs := flag.NewFlagSet("user", flag.ContinueOnError)
	email := fs.String("email", "", "user email")
	id := fs.String("id", "", "user id")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	switch {
	case *email != "":
		return svc.users.GetByEmail(ctx, *email)
	case *id != "":
		return svc.users.GetByID(ctx, *id)
	default:
		return nil, errors.New("one of -email or -id is required")
	}
}
