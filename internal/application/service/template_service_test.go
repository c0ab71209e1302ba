package service

import (
	"context"
	"testing"

	"github.com/billcraft/billcraft-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTemplateFirstBecomesDefault(t *testing.T) {
	repo := newFakeTemplateRepo()
	svc := NewTemplateService(repo)
	userID := uuid.New()

	first, err := svc.CreateTemplate(context.Background(), &TemplateInput{
		UserID: userID,
		Name:   "Standard",
	})
	require.NoError(t, err)
	assert.True(t, first.IsDefault)
	assert.Equal(t, "INV", first.InvoiceNumberPrefix)
	assert.Equal(t, "classic", first.PDFTemplate)
	assert.Equal(t, 1, first.InvoiceNumberStart)

	second, err := svc.CreateTemplate(context.Background(), &TemplateInput{
		UserID: userID,
		Name:   "Premium",
	})
	require.NoError(t, err)
	assert.False(t, second.IsDefault)
}

func TestCreateTemplateRequiresName(t *testing.T) {
	svc := NewTemplateService(newFakeTemplateRepo())

	_, err := svc.CreateTemplate(context.Background(), &TemplateInput{UserID: uuid.New()})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestCreateTemplateRatesOnlyWhenTaxable(t *testing.T) {
	svc := NewTemplateService(newFakeTemplateRepo())
	nine := 9.0

	plain, err := svc.CreateTemplate(context.Background(), &TemplateInput{
		UserID:   uuid.New(),
		Name:     "Untaxed",
		CGSTRate: &nine,
	})
	require.NoError(t, err)
	assert.Nil(t, plain.CGSTRate)

	taxed, err := svc.CreateTemplate(context.Background(), &TemplateInput{
		UserID:    uuid.New(),
		Name:      "Taxed",
		IsTaxable: true,
		CGSTRate:  &nine,
		SGSTRate:  &nine,
	})
	require.NoError(t, err)
	require.NotNil(t, taxed.CGSTRate)
	assert.InDelta(t, 9.0, *taxed.CGSTRate, 1e-9)
	// an omitted rate on a taxable template persists as zero, not null
	require.NotNil(t, taxed.IGSTRate)
	assert.InDelta(t, 0.0, *taxed.IGSTRate, 1e-9)
}

func TestDeleteTemplateRejectsSoleTemplate(t *testing.T) {
	repo := newFakeTemplateRepo()
	svc := NewTemplateService(repo)
	userID := uuid.New()

	only, err := svc.CreateTemplate(context.Background(), &TemplateInput{UserID: userID, Name: "Only"})
	require.NoError(t, err)

	err = svc.DeleteTemplate(context.Background(), userID, only.ID)
	require.Error(t, err)
	assert.Equal(t, "Cannot delete the only template", apperror.GetAppError(err).Message)
}

func TestDeleteDefaultTemplateRepointsDefault(t *testing.T) {
	repo := newFakeTemplateRepo()
	svc := NewTemplateService(repo)
	userID := uuid.New()

	first, err := svc.CreateTemplate(context.Background(), &TemplateInput{UserID: userID, Name: "First"})
	require.NoError(t, err)
	second, err := svc.CreateTemplate(context.Background(), &TemplateInput{UserID: userID, Name: "Second"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTemplate(context.Background(), userID, first.ID))

	remaining, err := svc.ListTemplates(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, second.ID, remaining[0].ID)
	assert.True(t, remaining[0].IsDefault)
}

func TestDeleteTemplateChecksOwnership(t *testing.T) {
	repo := newFakeTemplateRepo()
	svc := NewTemplateService(repo)
	userID := uuid.New()

	tpl, err := svc.CreateTemplate(context.Background(), &TemplateInput{UserID: userID, Name: "Mine"})
	require.NoError(t, err)

	err = svc.DeleteTemplate(context.Background(), uuid.New(), tpl.ID)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestUpdateTemplateSetDefaultDemotesOthers(t *testing.T) {
	repo := newFakeTemplateRepo()
	svc := NewTemplateService(repo)
	userID := uuid.New()

	first, err := svc.CreateTemplate(context.Background(), &TemplateInput{UserID: userID, Name: "First"})
	require.NoError(t, err)
	second, err := svc.CreateTemplate(context.Background(), &TemplateInput{UserID: userID, Name: "Second"})
	require.NoError(t, err)

	makeDefault := true
	updated, err := svc.UpdateTemplate(context.Background(), &UpdateTemplateInput{
		UserID:    userID,
		ID:        second.ID,
		IsDefault: &makeDefault,
	})
	require.NoError(t, err)
	assert.True(t, updated.IsDefault)

	reloaded, err := repo.GetByID(context.Background(), first.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsDefault)
}

func TestUpdateTemplateDisablingTaxClearsRates(t *testing.T) {
	repo := newFakeTemplateRepo()
	svc := NewTemplateService(repo)
	userID := uuid.New()
	nine := 9.0

	tpl, err := svc.CreateTemplate(context.Background(), &TemplateInput{
		UserID:    userID,
		Name:      "Taxed",
		IsTaxable: true,
		CGSTRate:  &nine,
		SGSTRate:  &nine,
	})
	require.NoError(t, err)

	notTaxable := false
	updated, err := svc.UpdateTemplate(context.Background(), &UpdateTemplateInput{
		UserID:    userID,
		ID:        tpl.ID,
		IsTaxable: &notTaxable,
	})
	require.NoError(t, err)
	assert.False(t, updated.IsTaxable)
	assert.Nil(t, updated.CGSTRate)
	assert.Nil(t, updated.SGSTRate)
}
