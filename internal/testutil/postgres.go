// Package testutil provides test helpers, including Postgres container
// management for repository tests.
package testutil

import (
	"context"
	"fmt"
	"os/exec"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/cory-johannsen/hegemony/internal/config"
	"github.com/cory-johannsen/hegemony/internal/storage/postgres"
)

// PostgresContainer wraps a testcontainers PostgreSQL instance.
type PostgresContainer struct {
	container testcontainers.Container
	Pool      *postgres.Pool
	RawPool   *pgxpool.Pool
	Config    config.DatabaseConfig
}

var (
	sharedOnce      sync.Once
	sharedContainer *PostgresContainer
	sharedErr       error
)

// NewPool returns a pgx pool backed by a shared test container with the
// schema applied. The container is started once per test binary and skipped
// entirely when Docker is unavailable.
//
// Postcondition: Returns a connected pool with all tables created, or skips
// the test.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if !dockerAvailable() {
		t.Skip("docker not available, skipping postgres-backed test")
	}

	sharedOnce.Do(func() {
		sharedContainer, sharedErr = startContainer()
		if sharedErr == nil {
			sharedErr = applySchema(sharedContainer.RawPool)
		}
	})
	if sharedErr != nil {
		t.Fatalf("shared postgres container: %v", sharedErr)
	}
	return sharedContainer.RawPool
}

// NewPostgresContainer starts a dedicated PostgreSQL test container and
// returns a connected Pool. Most tests should use NewPool instead; this is
// for tests that need an isolated database.
//
// Precondition: Docker must be available.
// Postcondition: Returns a running container with a connected pool, or fails
// the test.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()
	if !dockerAvailable() {
		t.Skip("docker not available, skipping postgres-backed test")
	}

	pc, err := startContainer()
	if err != nil {
		t.Fatalf("starting postgres container: %v", err)
	}
	t.Cleanup(func() {
		pc.Pool.Close()
		_ = pc.container.Terminate(context.Background())
	})
	return pc
}

func startContainer() (*PostgresContainer, error) {
	ctx := context.Background()
	start := time.Now()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("starting container: %w [%s]", err, time.Since(start))
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting container host: %w", err)
	}

	mappedPort, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return nil, fmt.Errorf("getting mapped port: %w", err)
	}

	dbCfg := config.DatabaseConfig{
		Host:            host,
		Port:            mappedPort.Int(),
		User:            "test",
		Password:        "test",
		Name:            "test",
		SSLMode:         "disable",
		MaxConns:        5,
		MinConns:        1,
		MaxConnLifetime: 5 * time.Minute,
	}

	pool, err := postgres.NewPool(ctx, dbCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to test postgres: %w [%s]", err, time.Since(start))
	}

	return &PostgresContainer{
		container: container,
		Pool:      pool,
		RawPool:   pool.DB(),
		Config:    dbCfg,
	}, nil
}

// ApplyMigrations runs the schema creation SQL directly for tests.
// This avoids requiring the migrate tool in the test environment.
//
// Precondition: Pool must be connected.
// Postcondition: All Hegemony tables exist in the test database.
func (pc *PostgresContainer) ApplyMigrations(t *testing.T) {
	t.Helper()
	start := time.Now()
	if err := applySchema(pc.RawPool); err != nil {
		t.Fatalf("applying migrations: %v", err)
	}
	t.Logf("migrations applied [%s]", time.Since(start))
}

func applySchema(pool *pgxpool.Pool) error {
	schema := `
		CREATE TABLE IF NOT EXISTS players (
			id         BIGSERIAL    PRIMARY KEY,
			name       VARCHAR(64)  NOT NULL UNIQUE,
			created_at TIMESTAMPTZ  NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS generals (
			id         BIGSERIAL    PRIMARY KEY,
			player_id  BIGINT       NOT NULL REFERENCES players(id) ON DELETE CASCADE,
			name       VARCHAR(64)  NOT NULL,
			level      INT          NOT NULL DEFAULT 1,
			trait_id   INT          NOT NULL CHECK (trait_id BETWEEN 1 AND 20),
			captured   BOOLEAN      NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ  NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS armies (
			id         BIGSERIAL    PRIMARY KEY,
			player_id  BIGINT       NOT NULL REFERENCES players(id) ON DELETE CASCADE,
			name       VARCHAR(64)  NOT NULL,
			location   VARCHAR(128) NOT NULL DEFAULT '',
			general_id BIGINT       REFERENCES generals(id) ON DELETE SET NULL,
			created_at TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ  NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS brigades (
			id          BIGSERIAL    PRIMARY KEY,
			player_id   BIGINT       NOT NULL REFERENCES players(id) ON DELETE CASCADE,
			army_id     BIGINT       REFERENCES armies(id) ON DELETE SET NULL,
			type        VARCHAR(16)  NOT NULL,
			enhancement VARCHAR(64)  NOT NULL DEFAULT '',
			created_at  TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
			updated_at  TIMESTAMPTZ  NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS battles (
			id        UUID         PRIMARY KEY,
			location  VARCHAR(128) NOT NULL,
			outcome   VARCHAR(16)  NOT NULL,
			winner_id BIGINT       REFERENCES players(id),
			loser_id  BIGINT       REFERENCES players(id),
			holy_war  BOOLEAN      NOT NULL DEFAULT FALSE,
			log       JSONB        NOT NULL DEFAULT '[]',
			fought_at TIMESTAMPTZ  NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_brigades_army ON brigades (army_id);
		CREATE INDEX IF NOT EXISTS idx_generals_player ON generals (player_id);
		CREATE INDEX IF NOT EXISTS idx_armies_player ON armies (player_id);
		CREATE INDEX IF NOT EXISTS idx_battles_winner ON battles (winner_id);
		CREATE INDEX IF NOT EXISTS idx_battles_loser ON battles (loser_id);
	`
	_, err := pool.Exec(context.Background(), schema)
	return err
}

// DSN returns the connection string for the test database.
func (pc *PostgresContainer) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		pc.Config.User, pc.Config.Password,
		pc.Config.Host, pc.Config.Port,
		pc.Config.Name, pc.Config.SSLMode,
	)
}

func dockerAvailable() bool {
	return exec.Command("docker", "info").Run() == nil
}
