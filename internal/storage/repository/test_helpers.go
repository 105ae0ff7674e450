package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя
func (f *TestDataFactory) CreateUser(t *testing.T, id, name string) {
	now := time.Now().UTC()
	_, err := f.storage.DB.Exec(`INSERT INTO users (id, name, creation_date, last_update)
		VALUES ($1, $2, $3, $4)`,
		id, name, now, now)
	require.NoError(t, err)
}

// CreateDevice создает тестовое устройство
func (f *TestDataFactory) CreateDevice(t *testing.T, id int, name, responsibleUserID string, isActive bool, endOfLife *time.Time) {
	now := time.Now().UTC()
	_, err := f.storage.DB.Exec(`INSERT INTO devices
		(id, name, responsible_user_id, is_active, end_of_life, creation_date, last_update)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, name, responsibleUserID, isActive, endOfLife, now, now)
	require.NoError(t, err)
}

// CreateReservation создает тестовое резервирование
func (f *TestDataFactory) CreateReservation(t *testing.T, id, userID string, deviceID int, start, end time.Time) {
	now := time.Now().UTC()
	_, err := f.storage.DB.Exec(`INSERT INTO reservations
		(id, user_id, device_id, start_date, end_date, creation_date, last_update)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, userID, deviceID, start, end, now, now)
	require.NoError(t, err)
}

// setupTestDatabase создает тестовую БД с контейнером PostgreSQL
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "testdb",
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
		},
		WaitingFor: wait.ForSQL(nat.Port("5432/tcp"), "pgx", func(host string, port nat.Port) string {
			return fmt.Sprintf("postgres://testuser:testpass@%s:%s/testdb?sslmode=disable", host, port.Port())
		}).WithStartupTimeout(3 * time.Minute),
	}

	postgresContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start container")

	host, err := postgresContainer.Host(ctx)
	require.NoError(t, err, "failed to get host")

	port, err := postgresContainer.MappedPort(ctx, nat.Port("5432/tcp"))
	require.NoError(t, err, "failed to get port")

	connStr := fmt.Sprintf("postgres://testuser:testpass@%s:%s/testdb?sslmode=disable", host, port.Port())

	storage, err := New(connStr)
	require.NoError(t, err, "failed to create storage")

	_, err = storage.DB.Exec(`
        DROP TABLE IF EXISTS reservations CASCADE;
        DROP TABLE IF EXISTS devices CASCADE;
        DROP TABLE IF EXISTS users CASCADE;

        CREATE TABLE users (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            creation_date TIMESTAMPTZ NOT NULL,
            last_update TIMESTAMPTZ NOT NULL
        );

        CREATE TABLE devices (
            id INTEGER PRIMARY KEY CHECK (id BETWEEN 1 AND 20),
            name TEXT NOT NULL,
            responsible_user_id TEXT NOT NULL REFERENCES users (id),
            is_active BOOLEAN NOT NULL DEFAULT TRUE,
            end_of_life TIMESTAMPTZ,
            creation_date TIMESTAMPTZ NOT NULL,
            last_update TIMESTAMPTZ NOT NULL
        );

        CREATE TABLE reservations (
            id TEXT PRIMARY KEY,
            user_id TEXT NOT NULL REFERENCES users (id),
            device_id INTEGER NOT NULL REFERENCES devices (id),
            start_date TIMESTAMPTZ NOT NULL,
            end_date TIMESTAMPTZ NOT NULL,
            creation_date TIMESTAMPTZ NOT NULL,
            last_update TIMESTAMPTZ NOT NULL,
            CHECK (start_date < end_date)
        );

        CREATE INDEX idx_reservations_device_id ON reservations (device_id);
    `)
	require.NoError(t, err, "failed to create tables")

	cleanup := func() {
		if err := storage.DB.Close(); err != nil {
			t.Logf("failed to close db: %s", err)
		}
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return storage, cleanup
}
