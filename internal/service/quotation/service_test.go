package quotation

import (
	"context"
	"testing"
	"time"

	"github.com/buildpro/backoffice-backend-go/internal/domain/client"
	"github.com/buildpro/backoffice-backend-go/internal/domain/quotation"
	"github.com/buildpro/backoffice-backend-go/internal/pkg/validator"
	"github.com/buildpro/backoffice-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quotationFixture struct {
	svc      *QuotationServiceImpl
	repo     quotation.QuotationRepository
	clientID string
	now      time.Time
}

func newQuotationFixture(t *testing.T) *quotationFixture {
	t.Helper()
	clients := memory.NewClientRepository()
	c, err := clients.Create(context.Background(), client.Client{Name: "Sharma Constructions", Phone: "9876543210", Status: client.StatusActive})
	require.NoError(t, err)

	repo := memory.NewQuotationRepository()
	f := &quotationFixture{
		repo:     repo,
		clientID: c.ID,
		now:      time.Date(2024, time.March, 1, 9, 30, 0, 0, time.UTC),
	}
	f.svc = NewQuotationService(repo, clients).(*QuotationServiceImpl)
	f.svc.now = func() time.Time { return f.now }
	return f
}

func (f *quotationFixture) create(t *testing.T) quotation.QuotationResponse {
	t.Helper()
	resp, err := f.svc.CreateQuotation(context.Background(), quotation.CreateQuotationRequest{
		ClientID: f.clientID,
		Title:    "Terrace waterproofing and tiling",
		LineItems: []quotation.LineItemRequest{
			{Category: "Waterproofing", Description: "Membrane", Unit: "sqft", Quantity: dec("800"), Rate: dec("12")},
			{Category: "Flooring", Description: "Vitrified tiles", Unit: "sqft", Quantity: dec("600"), Rate: dec("45")},
		},
		TaxPercentage:  dec("18"),
		ValidityPeriod: 30,
		CreatedBy:      "estimator",
	})
	require.NoError(t, err)
	return resp
}

func TestQuotationService_Create(t *testing.T) {
	f := newQuotationFixture(t)

	got := f.create(t)

	assert.Equal(t, "QT-2024-0001", got.Number)
	assert.Equal(t, "draft", got.Status)
	require.NotNil(t, got.ClientName)
	assert.Equal(t, "Sharma Constructions", *got.ClientName)
	assertDecimal(t, "36600", got.Subtotal)
	assertDecimal(t, "6588", got.TaxAmount)
	assertDecimal(t, "43188", got.TotalAmount)
	assert.Equal(t, "2024-03-31", got.ValidUntil)
	assert.Equal(t, "valid", got.ExpiryStatus)
	assert.Equal(t, 30, got.DaysRemaining)
	assert.Equal(t, 0, got.VersionCount)

	second := f.create(t)
	assert.Equal(t, "QT-2024-0002", second.Number)
}

func TestQuotationService_CreateUnknownClient(t *testing.T) {
	f := newQuotationFixture(t)
	_, err := f.svc.CreateQuotation(context.Background(), quotation.CreateQuotationRequest{
		ClientID:       "missing",
		Title:          "Boundary wall",
		LineItems:      []quotation.LineItemRequest{{Category: "Masonry", Description: "Brickwork", Unit: "sqft", Quantity: dec("1"), Rate: dec("1")}},
		ValidityPeriod: 30,
		CreatedBy:      "estimator",
	})
	assert.ErrorIs(t, err, client.ErrClientNotFound)
}

func TestQuotationService_DraftEditsDoNotVersion(t *testing.T) {
	ctx := context.Background()
	f := newQuotationFixture(t)
	created := f.create(t)

	discount := dec("188")
	period := 15
	f.now = f.now.Add(48 * time.Hour)
	got, err := f.svc.UpdateQuotation(ctx, quotation.UpdateQuotationRequest{
		ID:             created.ID,
		TotalDiscount:  &discount,
		ValidityPeriod: &period,
		ModifiedBy:     "estimator",
	})

	require.NoError(t, err)
	assertDecimal(t, "43000", got.TotalAmount)
	assert.Equal(t, "2024-03-16", got.ValidUntil, "validity counts from creation")
	assert.Equal(t, 0, got.VersionCount)
}

func TestQuotationService_FinalizedEditsAppendVersions(t *testing.T) {
	ctx := context.Background()
	f := newQuotationFixture(t)
	created := f.create(t)

	_, err := f.svc.UpdateStatus(ctx, quotation.UpdateStatusRequest{ID: created.ID, Status: "finalized"})
	require.NoError(t, err)

	got, err := f.svc.UpdateQuotation(ctx, quotation.UpdateQuotationRequest{
		ID: created.ID,
		LineItems: []quotation.LineItemRequest{
			{Category: "Flooring", Description: "Vitrified tiles", Unit: "sqft", Quantity: dec("700"), Rate: dec("45")},
		},
		ModifiedBy: "site-manager",
		Changes:    "Dropped waterproofing, enlarged tiling area",
	})
	require.NoError(t, err)
	assertDecimal(t, "31500", got.Subtotal)
	assert.Equal(t, 1, got.VersionCount)

	title := "Tiling only"
	_, err = f.svc.UpdateQuotation(ctx, quotation.UpdateQuotationRequest{ID: created.ID, Title: &title, ModifiedBy: "site-manager"})
	require.NoError(t, err)

	versions, err := f.svc.ListVersions(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, 1, versions[0].Version)
	assert.Equal(t, 2, versions[1].Version)
	assert.Equal(t, "site-manager", versions[0].ModifiedBy)
	assert.Equal(t, "Dropped waterproofing, enlarged tiling area", versions[0].Changes)
	require.Len(t, versions[0].LineItems, 1)
	assertDecimal(t, "37170", versions[0].TotalAmount)
}

func TestQuotationService_StatusMachine(t *testing.T) {
	ctx := context.Background()
	f := newQuotationFixture(t)
	created := f.create(t)

	_, err := f.svc.UpdateStatus(ctx, quotation.UpdateStatusRequest{ID: created.ID, Status: "sent"})
	assert.ErrorIs(t, err, quotation.ErrInvalidStatusTransition)

	for _, next := range []string{"finalized", "sent", "accepted"} {
		got, err := f.svc.UpdateStatus(ctx, quotation.UpdateStatusRequest{ID: created.ID, Status: next})
		require.NoError(t, err)
		assert.Equal(t, next, got.Status)
	}

	_, err = f.svc.UpdateStatus(ctx, quotation.UpdateStatusRequest{ID: created.ID, Status: "rejected"})
	assert.ErrorIs(t, err, quotation.ErrInvalidStatusTransition)

	title := "Too late"
	_, err = f.svc.UpdateQuotation(ctx, quotation.UpdateQuotationRequest{ID: created.ID, Title: &title, ModifiedBy: "x"})
	assert.ErrorIs(t, err, quotation.ErrQuotationLocked)
}

func TestQuotationService_ExpiryBuckets(t *testing.T) {
	f := newQuotationFixture(t)
	created := f.create(t)

	cases := []struct {
		now    time.Time
		bucket string
		days   int
	}{
		{time.Date(2024, time.March, 27, 0, 0, 0, 0, time.UTC), "valid", 4},
		{time.Date(2024, time.March, 28, 23, 0, 0, 0, time.UTC), "expiring_soon", 3},
		{time.Date(2024, time.March, 30, 0, 0, 0, 0, time.UTC), "expiring_soon", 1},
		{time.Date(2024, time.March, 31, 12, 0, 0, 0, time.UTC), "expired", 0},
		{time.Date(2024, time.April, 5, 0, 0, 0, 0, time.UTC), "expired", -5},
	}
	for _, c := range cases {
		f.now = c.now
		got, err := f.svc.GetQuotation(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, c.bucket, got.ExpiryStatus, c.now.String())
		assert.Equal(t, c.days, got.DaysRemaining, c.now.String())
	}
}

func TestQuotationService_ExpireOverdue(t *testing.T) {
	ctx := context.Background()
	f := newQuotationFixture(t)
	sent := f.create(t)
	draft := f.create(t)

	for _, next := range []string{"finalized", "sent"} {
		_, err := f.svc.UpdateStatus(ctx, quotation.UpdateStatusRequest{ID: sent.ID, Status: next})
		require.NoError(t, err)
	}

	n, err := f.svc.ExpireOverdue(ctx, time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = f.svc.ExpireOverdue(ctx, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := f.svc.GetQuotation(ctx, sent.ID)
	require.NoError(t, err)
	assert.Equal(t, "expired", got.Status)

	got, err = f.svc.GetQuotation(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "draft", got.Status)
}

func TestQuotationService_PreviewTotals(t *testing.T) {
	f := newQuotationFixture(t)

	got, err := f.svc.PreviewTotals(context.Background(), quotation.PreviewTotalsRequest{
		LineItems: []quotation.LineItemRequest{
			{Category: "Waterproofing", Description: "Membrane", Unit: "sqft", Quantity: dec("800"), Rate: dec("12")},
			{Category: "Flooring", Description: "Vitrified tiles", Unit: "sqft", Quantity: dec("600"), Rate: dec("45")},
		},
		TaxPercentage: dec("18"),
	})

	require.NoError(t, err)
	assertDecimal(t, "43188", got.TotalAmount)
	require.Len(t, got.LineItems, 2)
	assertDecimal(t, "9600", got.LineItems[0].Amount)

	list, err := f.svc.ListQuotations(context.Background(), quotation.QuotationFilter{})
	require.NoError(t, err)
	assert.Empty(t, list, "preview must not store anything")
}

func TestQuotationService_CreateRejectsInvalidRequest(t *testing.T) {
	f := newQuotationFixture(t)
	_, err := f.svc.CreateQuotation(context.Background(), quotation.CreateQuotationRequest{ClientID: f.clientID})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "line_items")
	assert.Contains(t, fields, "validity_period")
}
