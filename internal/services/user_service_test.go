package services

import (
	"testing"

	"github.com/franciscosanchezn/gin-pizza-orders/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCRUD(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db)

	created, err := service.CreateUser(models.User{Username: "ada"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	// A taken username points at the stored user
	_, err = service.CreateUser(models.User{Username: "ada"})
	existsErr, ok := AsExistsError(err)
	require.True(t, ok)
	assert.Equal(t, created.ID, existsErr.ID)

	byName, err := service.GetUserByUsername("ada")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	// A rename to a free username creates a fresh user row
	renamed, createdNew, err := service.UpdateUser(created.ID, models.User{Username: "grace"})
	require.NoError(t, err)
	assert.True(t, createdNew)
	assert.NotEqual(t, created.ID, renamed.ID)

	all, err := service.GetAllUsers()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, service.DeleteUser(renamed.ID))
	assert.ErrorIs(t, service.DeleteUser(renamed.ID), ErrNotFound)
}

func TestOrderHistoryAndOpenOrders(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db)
	orders := NewOrderService(db)

	ada := createTestUser(t, db, "ada")
	grace := createTestUser(t, db, "grace")

	completed := createTestOrder(t, db, ada)
	open := createTestOrder(t, db, ada)
	foreign := createTestOrder(t, db, grace)
	require.NoError(t, orders.SetOrderStatus(completed.ID, models.StatusCompleted))
	require.NoError(t, orders.SetOrderStatus(open.ID, models.StatusInDelivery))

	history, err := service.OrderHistory(ada.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, completed.ID, history[0].ID)

	openOrders, err := service.OpenOrders(ada.ID)
	require.NoError(t, err)
	require.Len(t, openOrders, 1)
	assert.Equal(t, open.ID, openOrders[0].ID)

	// The global view spans users but still excludes completed orders
	allOpen, err := service.AllOpenOrders()
	require.NoError(t, err)
	assert.Len(t, allOpen, 2)

	_ = foreign
}
