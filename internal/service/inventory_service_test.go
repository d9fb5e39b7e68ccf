package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShabiGardezi/crm-hunfa/internal/domain"
	"github.com/ShabiGardezi/crm-hunfa/internal/repository"
	apperrors "github.com/ShabiGardezi/crm-hunfa/pkg/util/errorutil"
)

func TestInventoryLifecycle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	manager := callerFor(f.store.addUser("manager", domain.RoleSaleManager, domain.DepartmentSales))

	_, err := f.stock.CreateRecord(ctx, manager, "email", InventoryInput{Name: "acme.com"})
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	rec, err := f.stock.CreateRecord(ctx, manager, "Domain", InventoryInput{Name: "acme.com", Price: decimal.NewFromInt(12)})
	require.NoError(t, err)
	assert.Equal(t, domain.InventoryKindDomain, rec.Kind)
	assert.Equal(t, domain.LiveStatusLive, rec.LiveStatus)
	assert.Equal(t, domain.ListStatusListed, rec.ListStatus)

	_, err = f.stock.GetRecord(ctx, manager, "hosting", rec.ID)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))

	updated, err := f.stock.UpdateRecord(ctx, manager, "domain", rec.ID, InventoryInput{Name: "acme.io", LiveStatus: "Expired"})
	require.NoError(t, err)
	assert.Equal(t, "Expired", updated.LiveStatus)

	list, err := f.stock.ListRecords(ctx, manager, "domain", repository.Page{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "acme.io", list[0].Name)

	require.NoError(t, f.stock.DeleteRecord(ctx, manager, "domain", rec.ID))
	err = f.stock.DeleteRecord(ctx, manager, "domain", rec.ID)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}

func TestInventoryValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	manager := callerFor(f.store.addUser("manager", domain.RoleSaleManager, domain.DepartmentSales))
	lead := callerFor(f.store.addUser("lead", domain.RoleTeamLead, domain.DepartmentWriter))

	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	expires := created.AddDate(0, -1, 0)
	_, err := f.stock.CreateRecord(ctx, manager, "hosting", InventoryInput{Name: "box", CreationDate: &created, ExpirationDate: &expires})
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	_, err = f.stock.CreateRecord(ctx, manager, "hosting", InventoryInput{Name: "box", Price: decimal.NewFromInt(-1)})
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	_, err = f.stock.CreateRecord(ctx, lead, "hosting", InventoryInput{Name: "box"})
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))

	_, err = f.stock.ListRecords(ctx, lead, "hosting", repository.Page{})
	require.NoError(t, err)
}
