package service

import (
	"context"
	"testing"

	"github.com/billcraft/billcraft-api/internal/domain/entity"
	"github.com/billcraft/billcraft-api/internal/infrastructure/gst"
	"github.com/billcraft/billcraft-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeValidator struct {
	data *gst.TaxpayerData
	err  error
}

func (v *fakeValidator) Validate(_ context.Context, _ string) (*gst.TaxpayerData, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.data, nil
}

func newClientFixture(t *testing.T, validator gst.Validator) (*ClientService, *fakeClientRepo, uuid.UUID) {
	t.Helper()

	clients := newFakeClientRepo()
	businesses := newFakeBusinessRepo()

	userID := uuid.New()
	require.NoError(t, businesses.Create(context.Background(), &entity.Business{
		UserID:    userID,
		GSTNumber: "27AAPFU0939F1ZV",
		Name:      "Acme Supplies",
		Address:   "Market Road, Pune",
		State:     "Maharashtra",
	}))

	return NewClientService(clients, businesses, validator), clients, userID
}

func validTaxpayer() *gst.TaxpayerData {
	return &gst.TaxpayerData{
		LegalName:        "UNIQUE TRADERS",
		TradeName:        "Unique Traders",
		Status:           "Active",
		RegistrationDate: "01/07/2017",
		BusinessType:     "Partnership",
		Jurisdiction:     "State - Karnataka, Ward 4",
		NatureOfBusiness: []string{"Wholesale Business"},
		PrimaryAddress: gst.PrimaryAddress{
			Adr:  "MG Road, Bengaluru, Karnataka, 560001",
			Addr: gst.Address{StateCode: "Karnataka"},
		},
	}
}

func TestCreateClientFromRegistryData(t *testing.T) {
	svc, _, userID := newClientFixture(t, &fakeValidator{data: validTaxpayer()})

	client, err := svc.CreateClient(context.Background(), userID, "29AAACB2894G1ZP")
	require.NoError(t, err)

	assert.Equal(t, "29AAACB2894G1ZP", client.GSTNumber)
	// name, address and state come from the registry, never the caller
	assert.Equal(t, "UNIQUE TRADERS", client.Name)
	assert.Equal(t, "MG Road, Bengaluru, Karnataka, 560001", client.Address)
	assert.Equal(t, "Karnataka", client.State)
	assert.Equal(t, "Active", client.RegistryData.Status)
	assert.Equal(t, "Unique Traders", client.RegistryData.TradeName)
}

func TestCreateClientRejectsDuplicateGSTNumber(t *testing.T) {
	svc, _, userID := newClientFixture(t, &fakeValidator{data: validTaxpayer()})

	_, err := svc.CreateClient(context.Background(), userID, "29AAACB2894G1ZP")
	require.NoError(t, err)

	_, err = svc.CreateClient(context.Background(), userID, "29AAACB2894G1ZP")
	require.Error(t, err)
	assert.Equal(t, "Client with this GST number already exists", apperror.GetAppError(err).Message)
}

func TestCreateClientRegistryRejectionBlocksCreation(t *testing.T) {
	svc, clients, userID := newClientFixture(t, &fakeValidator{
		err: apperror.NewBadRequestError("Invalid GSTIN pattern"),
	})

	_, err := svc.CreateClient(context.Background(), userID, "BOGUS")
	require.Error(t, err)
	assert.Equal(t, "Invalid GSTIN pattern", apperror.GetAppError(err).Message)
	assert.Empty(t, clients.clients)
}

func TestCreateClientRequiresBusiness(t *testing.T) {
	svc := NewClientService(newFakeClientRepo(), newFakeBusinessRepo(), &fakeValidator{data: validTaxpayer()})

	_, err := svc.CreateClient(context.Background(), uuid.New(), "29AAACB2894G1ZP")
	require.Error(t, err)
	assert.Contains(t, apperror.GetAppError(err).Message, "business information first")
}

func TestCreateClientRequiresGSTNumber(t *testing.T) {
	svc, _, userID := newClientFixture(t, &fakeValidator{data: validTaxpayer()})

	_, err := svc.CreateClient(context.Background(), userID, "")
	require.Error(t, err)
	assert.Equal(t, "GST number is required", apperror.GetAppError(err).Message)
}

func TestCreateClientAcceptsGSTNumberOfDeletedClient(t *testing.T) {
	svc, _, userID := newClientFixture(t, &fakeValidator{data: validTaxpayer()})

	first, err := svc.CreateClient(context.Background(), userID, "29AAACB2894G1ZP")
	require.NoError(t, err)
	require.NoError(t, svc.DeleteClient(context.Background(), userID, first.ID))

	// A deleted client's GSTIN can be added again as a fresh record
	second, err := svc.CreateClient(context.Background(), userID, "29AAACB2894G1ZP")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestGetClientChecksOwnership(t *testing.T) {
	svc, _, userID := newClientFixture(t, &fakeValidator{data: validTaxpayer()})

	created, err := svc.CreateClient(context.Background(), userID, "29AAACB2894G1ZP")
	require.NoError(t, err)

	got, err := svc.GetClient(context.Background(), userID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.GetClient(context.Background(), uuid.New(), created.ID)
	require.Error(t, err)
}

func TestDeleteClientChecksOwnership(t *testing.T) {
	svc, _, userID := newClientFixture(t, &fakeValidator{data: validTaxpayer()})

	client, err := svc.CreateClient(context.Background(), userID, "29AAACB2894G1ZP")
	require.NoError(t, err)

	err = svc.DeleteClient(context.Background(), userID, uuid.New())
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)

	require.NoError(t, svc.DeleteClient(context.Background(), userID, client.ID))
}
