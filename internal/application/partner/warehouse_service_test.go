package partner

import (
	"context"
	"testing"

	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSupplierDuplicateCode(t *testing.T) {
	service := NewSupplierService(newFakeSupplierRepo())

	_, err := service.CreateSupplier(context.Background(), CreateSupplierRequest{Code: "SUP-01", Name: "Acme Trading"})
	require.NoError(t, err)

	_, err = service.CreateSupplier(context.Background(), CreateSupplierRequest{Code: "SUP-01", Name: "Other"})
	require.Error(t, err)
	assert.True(t, shared.IsConflict(err))
}

func TestSupplierUpdateAndDeactivate(t *testing.T) {
	service := NewSupplierService(newFakeSupplierRepo())

	created, err := service.CreateSupplier(context.Background(), CreateSupplierRequest{
		Code: "SUP-01", Name: "Acme Trading", PaymentTerms: "NET 30",
	})
	require.NoError(t, err)
	assert.Equal(t, "NET 30", created.PaymentTerms)

	terms := "NET 60"
	updated, err := service.UpdateSupplier(context.Background(), created.ID, UpdateSupplierRequest{PaymentTerms: &terms})
	require.NoError(t, err)
	assert.Equal(t, "NET 60", updated.PaymentTerms)
	assert.Equal(t, "Acme Trading", updated.Name)

	deactivated, err := service.DeactivateSupplier(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)
}

func TestFirstWarehouseBecomesDefault(t *testing.T) {
	service := NewWarehouseService(newFakeWarehouseRepo())

	first, err := service.CreateWarehouse(context.Background(), CreateWarehouseRequest{Code: "WH-01", Name: "Main"})
	require.NoError(t, err)
	assert.True(t, first.IsDefault)

	second, err := service.CreateWarehouse(context.Background(), CreateWarehouseRequest{Code: "WH-02", Name: "Annex"})
	require.NoError(t, err)
	assert.False(t, second.IsDefault)
}

func TestSetDefaultWarehouseMovesFlag(t *testing.T) {
	repo := newFakeWarehouseRepo()
	service := NewWarehouseService(repo)

	first, err := service.CreateWarehouse(context.Background(), CreateWarehouseRequest{Code: "WH-01", Name: "Main"})
	require.NoError(t, err)
	second, err := service.CreateWarehouse(context.Background(), CreateWarehouseRequest{Code: "WH-02", Name: "Annex"})
	require.NoError(t, err)

	moved, err := service.SetDefaultWarehouse(context.Background(), second.ID)
	require.NoError(t, err)
	assert.True(t, moved.IsDefault)

	previous, err := service.GetWarehouse(context.Background(), first.ID)
	require.NoError(t, err)
	assert.False(t, previous.IsDefault)

	fallback, err := repo.FindDefault(context.Background())
	require.NoError(t, err)
	assert.Equal(t, second.ID, fallback.ID)
}

func TestCreateWarehouseWithDefaultFlagStealsIt(t *testing.T) {
	service := NewWarehouseService(newFakeWarehouseRepo())

	first, err := service.CreateWarehouse(context.Background(), CreateWarehouseRequest{Code: "WH-01", Name: "Main"})
	require.NoError(t, err)

	second, err := service.CreateWarehouse(context.Background(), CreateWarehouseRequest{
		Code: "WH-02", Name: "Annex", IsDefault: true,
	})
	require.NoError(t, err)
	assert.True(t, second.IsDefault)

	previous, err := service.GetWarehouse(context.Background(), first.ID)
	require.NoError(t, err)
	assert.False(t, previous.IsDefault)
}

func TestDeactivateDefaultWarehouseRejected(t *testing.T) {
	service := NewWarehouseService(newFakeWarehouseRepo())

	first, err := service.CreateWarehouse(context.Background(), CreateWarehouseRequest{Code: "WH-01", Name: "Main"})
	require.NoError(t, err)

	_, err = service.DeactivateWarehouse(context.Background(), first.ID)
	require.Error(t, err)
	assert.True(t, shared.IsConflict(err))

	second, err := service.CreateWarehouse(context.Background(), CreateWarehouseRequest{Code: "WH-02", Name: "Annex"})
	require.NoError(t, err)

	deactivated, err := service.DeactivateWarehouse(context.Background(), second.ID)
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)

	_, err = service.SetDefaultWarehouse(context.Background(), second.ID)
	require.Error(t, err)
	assert.True(t, shared.IsConflict(err))
}
