//go:build integration

package repository

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/octobees/stays/api/internal/dto"
	"github.com/octobees/stays/api/internal/entity"
)

func skipIfNoDocker(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := exec.CommandContext(ctx, "docker", "info").Run(); err != nil {
		t.Skip("Skipping test: Docker not available")
	}
}

func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	skipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "stays",
				"POSTGRES_PASSWORD": "stays",
				"POSTGRES_DB":       "stays",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("container port: %v", err)
	}

	dsn := fmt.Sprintf("postgres://stays:stays@%s:%s/stays?sslmode=disable", host, port.Port())
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	schema, err := os.ReadFile("testdata/schema.sql")
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}
	if _, err := pool.Exec(ctx, string(schema)); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return pool
}

func TestIntegration_PropertySearch(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()

	users := NewPGXUsersRepository(pool)
	properties := NewPGXPropertiesRepository(pool)
	reservations := NewPGXReservationsRepository(pool)

	owner, err := users.Create(ctx, "Owner", "owner@example.com", "hash")
	if err != nil {
		t.Fatalf("create owner: %v", err)
	}
	guest, err := users.Create(ctx, "Guest", "guest@example.com", "hash")
	if err != nil {
		t.Fatalf("create guest: %v", err)
	}
	if _, err := users.Create(ctx, "Again", "owner@example.com", "hash"); err == nil {
		t.Fatalf("expected duplicate email error")
	}

	mk := func(title, city string, cost int64) *entity.Property {
		p, err := properties.Create(ctx, &entity.Property{
			OwnerID: owner.ID, Title: title, CostPerNight: cost,
			Country: "Canada", Street: "1 Main St", City: city, Province: "BC", PostCode: "V5K",
		})
		if err != nil {
			t.Fatalf("create property %s: %v", title, err)
		}
		return p
	}
	loft := mk("Loft", "Vancouver", 5000)
	suite := mk("Suite", "Vancouver", 15000)
	cabin := mk("Cabin", "Whistler", 8000)
	mk("Unreviewed", "Vancouver", 1000)

	review := func(p *entity.Property, rating int) {
		var resID uuid.UUID
		err := pool.QueryRow(ctx, `INSERT INTO reservations (start_date, end_date, property_id, guest_id)
            VALUES ('2026-01-01', '2026-01-05', $1, $2) RETURNING id`, p.ID, guest.ID).Scan(&resID)
		if err != nil {
			t.Fatalf("create reservation: %v", err)
		}
		_, err = pool.Exec(ctx, `INSERT INTO property_reviews (guest_id, property_id, reservation_id, rating)
            VALUES ($1, $2, $3, $4)`, guest.ID, p.ID, resID, rating)
		if err != nil {
			t.Fatalf("create review: %v", err)
		}
	}
	review(loft, 5)
	review(loft, 4)
	review(suite, 3)
	review(cabin, 4)

	all, err := properties.Search(ctx, dto.PropertySearch{}, 10)
	if err != nil {
		t.Fatalf("search all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected only reviewed properties, got %d", len(all))
	}
	if all[0].ID != loft.ID || all[1].ID != cabin.ID || all[2].ID != suite.ID {
		t.Fatalf("expected cheapest first, got %+v", all)
	}

	minRating := 4.0
	vancouver, err := properties.Search(ctx, dto.PropertySearch{City: "Vancou", MinRating: &minRating}, 5)
	if err != nil {
		t.Fatalf("search vancouver: %v", err)
	}
	if len(vancouver) != 1 || vancouver[0].ID != loft.ID {
		t.Fatalf("unexpected vancouver results: %+v", vancouver)
	}
	if vancouver[0].AverageRating == nil || *vancouver[0].AverageRating != 4.5 {
		t.Fatalf("expected 4.5 average, got %v", vancouver[0].AverageRating)
	}

	minPrice, maxPrice := 60.0, 150.0
	ranged, err := properties.Search(ctx, dto.PropertySearch{OwnerID: &owner.ID, MinPricePerNight: &minPrice, MaxPricePerNight: &maxPrice}, 10)
	if err != nil {
		t.Fatalf("search price range: %v", err)
	}
	if len(ranged) != 2 || ranged[0].ID != cabin.ID || ranged[1].ID != suite.ID {
		t.Fatalf("unexpected price range results: %+v", ranged)
	}

	again, err := properties.Search(ctx, dto.PropertySearch{}, 10)
	if err != nil {
		t.Fatalf("repeat search: %v", err)
	}
	if !reflect.DeepEqual(all, again) {
		t.Fatalf("expected identical results for identical searches")
	}

	found, err := users.FindByEmail(ctx, "GUEST@example.com")
	if err != nil || found.ID != guest.ID {
		t.Fatalf("expected case-insensitive email lookup, got %+v, %v", found, err)
	}

	history, err := reservations.ListForGuest(ctx, guest.ID, 10)
	if err != nil {
		t.Fatalf("list reservations: %v", err)
	}
	if len(history) != 4 {
		t.Fatalf("expected 4 reservations, got %d", len(history))
	}

	if _, err := properties.Create(ctx, &entity.Property{OwnerID: uuid.New(), Title: "Orphan", Country: "CA", Street: "x", City: "x", Province: "x", PostCode: "x"}); err == nil {
		t.Fatalf("expected owner foreign key error")
	}
}
