package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/device-reservation/internal/domain"
	"github.com/magabrotheeeer/device-reservation/internal/models"
)

var (
	testCreated = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	testStart   = time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	testEnd     = time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
)

func TestStorage_UpsertUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	user := models.User{
		ID:           "anna@example.com",
		Name:         "Anna",
		CreationDate: testCreated,
		LastUpdate:   testCreated,
	}
	require.NoError(t, storage.UpsertUser(ctx, user))

	got, err := storage.GetUser(ctx, "anna@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Anna", got.Name)
	assert.True(t, got.CreationDate.Equal(testCreated))

	// Повторный upsert меняет имя и last_update, но не creation_date.
	user.Name = "Anna Petrova"
	user.CreationDate = testCreated.AddDate(1, 0, 0)
	user.LastUpdate = testCreated.AddDate(0, 0, 1)
	require.NoError(t, storage.UpsertUser(ctx, user))

	got, err = storage.GetUser(ctx, "anna@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Anna Petrova", got.Name)
	assert.True(t, got.CreationDate.Equal(testCreated))
	assert.True(t, got.LastUpdate.Equal(testCreated.AddDate(0, 0, 1)))
}

func TestStorage_GetUser_NotFound(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	got, err := storage.GetUser(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStorage_DeleteUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	factory.CreateUser(t, "anna@example.com", "Anna")

	count, err := storage.DeleteUser(ctx, "anna@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = storage.DeleteUser(ctx, "anna@example.com")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestStorage_CountsForUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	factory.CreateUser(t, "anna@example.com", "Anna")
	factory.CreateUser(t, "boris@example.com", "Boris")
	factory.CreateDevice(t, 5, "Oscilloscope", "anna@example.com", true, nil)
	factory.CreateReservation(t, uuid.NewString(), "anna@example.com", 5, testStart, testEnd)
	factory.CreateReservation(t, uuid.NewString(), "anna@example.com", 5, testEnd, testEnd.Add(time.Hour))

	devices, err := storage.CountDevicesForUser(ctx, "anna@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, devices)

	reservations, err := storage.CountReservationsForUser(ctx, "anna@example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, reservations)

	devices, err = storage.CountDevicesForUser(ctx, "boris@example.com")
	require.NoError(t, err)
	assert.Equal(t, 0, devices)
}

func TestStorage_InsertDevice(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	factory.CreateUser(t, "anna@example.com", "Anna")

	eol := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	device := models.Device{
		ID:                5,
		Name:              "Oscilloscope",
		ResponsibleUserID: "anna@example.com",
		IsActive:          true,
		EndOfLife:         &eol,
		CreationDate:      testCreated,
		LastUpdate:        testCreated,
	}
	require.NoError(t, storage.InsertDevice(ctx, device))

	got, err := storage.GetDevice(ctx, 5)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Oscilloscope", got.Name)
	require.NotNil(t, got.EndOfLife)
	assert.True(t, got.EndOfLife.Equal(eol))

	// Повторная вставка того же номера ловится первичным ключом.
	err = storage.InsertDevice(ctx, device)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestStorage_UpdateDevice(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	factory.CreateUser(t, "anna@example.com", "Anna")
	factory.CreateDevice(t, 5, "Oscilloscope", "anna@example.com", true, nil)

	count, err := storage.UpdateDevice(ctx, models.Device{
		ID:                5,
		Name:              "Oscilloscope MK2",
		ResponsibleUserID: "anna@example.com",
		IsActive:          false,
		LastUpdate:        testCreated.AddDate(0, 0, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := storage.GetDevice(ctx, 5)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Oscilloscope MK2", got.Name)
	assert.False(t, got.IsActive)
	assert.Nil(t, got.EndOfLife)

	count, err = storage.UpdateDevice(ctx, models.Device{ID: 7, Name: "Ghost", ResponsibleUserID: "anna@example.com"})
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestStorage_ListDevicesAndExistingIDs(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	factory.CreateUser(t, "anna@example.com", "Anna")
	factory.CreateDevice(t, 7, "Generator", "anna@example.com", true, nil)
	factory.CreateDevice(t, 2, "Multimeter", "anna@example.com", true, nil)

	devices, err := storage.ListDevices(ctx)
	require.NoError(t, err)
	require.Len(t, devices, 2)
	// ListDevices сортирует по инвентарному номеру
	assert.Equal(t, 2, devices[0].ID)
	assert.Equal(t, 7, devices[1].ID)

	ids, err := storage.ExistingDeviceIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[int]struct{}{2: {}, 7: {}}, ids)
}

func TestStorage_DeleteDevice(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	factory.CreateUser(t, "anna@example.com", "Anna")
	factory.CreateDevice(t, 5, "Oscilloscope", "anna@example.com", true, nil)

	count, err := storage.DeleteDevice(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = storage.DeleteDevice(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestStorage_Reservations(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	factory.CreateUser(t, "anna@example.com", "Anna")
	factory.CreateDevice(t, 5, "Oscilloscope", "anna@example.com", true, nil)
	factory.CreateDevice(t, 7, "Generator", "anna@example.com", true, nil)

	first := models.Reservation{
		ID:           uuid.NewString(),
		UserID:       "anna@example.com",
		DeviceID:     5,
		StartDate:    testStart,
		EndDate:      testEnd,
		CreationDate: testCreated,
		LastUpdate:   testCreated,
	}
	require.NoError(t, storage.InsertReservation(ctx, first))

	second := first
	second.ID = uuid.NewString()
	second.DeviceID = 7
	require.NoError(t, storage.InsertReservation(ctx, second))

	got, err := storage.GetReservation(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first.ID, got.ID)
	assert.True(t, got.StartDate.Equal(testStart))
	assert.True(t, got.EndDate.Equal(testEnd))

	got, err = storage.GetReservation(ctx, "nonexistent")
	require.NoError(t, err)
	assert.Nil(t, got)

	forDevice, err := storage.ListReservationsForDevice(ctx, 5)
	require.NoError(t, err)
	require.Len(t, forDevice, 1)
	assert.Equal(t, first.ID, forDevice[0].ID)

	all, err := storage.ListReservations(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	count, err := storage.CountReservationsForDevice(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = storage.DeleteReservation(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Повторное удаление того же ID
	count, err = storage.DeleteReservation(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
