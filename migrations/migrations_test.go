package migrations

import (
	"context"
	"testing"

	"MediTrack/models"
	"MediTrack/repository/memstore"
	"MediTrack/role"
	"MediTrack/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestReconcileWardOccupancy(t *testing.T) {
	ctx := context.Background()
	wards, beds := memstore.NewWards(), memstore.NewBeds()

	drifted := &models.Ward{Name: "General A", Type: "general", Capacity: 4, CurrentOccupancy: 3}
	steady := &models.Ward{Name: "ICU", Type: "icu", Capacity: 2}
	require.NoError(t, wards.Create(ctx, drifted))
	require.NoError(t, wards.Create(ctx, steady))

	bed := &models.Bed{WardID: drifted.ID, Number: "A-1", Status: models.BedAvailable}
	require.NoError(t, beds.Create(ctx, bed))
	require.NoError(t, beds.Occupy(ctx, bed.ID, primitive.NewObjectID(), bed.CreatedAt))

	fixed, err := ReconcileWardOccupancy(ctx, wards, beds)
	require.NoError(t, err)
	assert.Equal(t, 1, fixed)

	w, err := wards.Get(ctx, drifted.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, w.CurrentOccupancy)

	fixed, err = ReconcileWardOccupancy(ctx, wards, beds)
	require.NoError(t, err)
	assert.Zero(t, fixed)
}

func TestSeedAdmin(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewUsers()
	users := services.NewUserService(store)

	require.NoError(t, SeedAdmin(ctx, users, "", "", ""))
	n, err := store.CountByRole(ctx, role.Admin)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, SeedAdmin(ctx, users, "Root", "root@meditrack.test", "Welcome@123"))
	require.NoError(t, SeedAdmin(ctx, users, "Root", "root@meditrack.test", "Welcome@123"))
	n, err = store.CountByRole(ctx, role.Admin)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
