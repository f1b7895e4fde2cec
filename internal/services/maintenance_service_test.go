package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lacson1/UK-property-management/internal/ai"
	"github.com/lacson1/UK-property-management/internal/logger"
	"github.com/lacson1/UK-property-management/internal/models"
	"github.com/lacson1/UK-property-management/internal/store"
)

func newMaintenanceService(t *testing.T) (MaintenanceService, *store.Store, *MockAssistant) {
	t.Helper()
	st := newDemoStore(t)
	assistant := new(MockAssistant)
	return NewMaintenanceService(st, assistant, FixedClock(today), logger.New("test")), st, assistant
}

func TestMaintenanceService_CreateTriages(t *testing.T) {
	service, st, assistant := newMaintenanceService(t)
	assistant.On("Triage", mock.Anything, "Water pouring through ceiling").
		Return(ai.TriageResult{Urgency: models.UrgencyEmergency, SuggestedTradesperson: "Plumber"})

	request, err := service.Create(context.Background(), MaintenanceInput{
		PropertyID: store.DemoID("p4"),
		Issue:      " Water pouring through ceiling ",
	})

	require.NoError(t, err)
	assert.Equal(t, models.MaintenanceStatusNew, request.Status)
	assert.Equal(t, models.UrgencyEmergency, request.Urgency)
	assert.Equal(t, "Plumber", request.SuggestedTradesperson)
	assert.Equal(t, "45 Broad Street, Bristol", request.PropertyAddress)
	assert.Equal(t, today, request.ReportedDate)
	assert.NotNil(t, request.Quotes)

	all := st.Snapshot().Maintenance
	require.Len(t, all, 6)
	assert.Equal(t, request.ID, all[0].ID, "new requests go first")
	assistant.AssertExpectations(t)
}

func TestMaintenanceService_CreateUnknownProperty(t *testing.T) {
	service, st, assistant := newMaintenanceService(t)

	_, err := service.Create(context.Background(), MaintenanceInput{PropertyID: "missing", Issue: "Broken window"})

	assert.ErrorIs(t, err, ErrPropertyNotFound)
	assert.Len(t, st.Snapshot().Maintenance, 5)
	assistant.AssertNotCalled(t, "Triage", mock.Anything, mock.Anything)
}

func TestMaintenanceService_List(t *testing.T) {
	service, _, _ := newMaintenanceService(t)

	assert.Len(t, service.List(context.Background(), ""), 5)
	assert.Len(t, service.List(context.Background(), store.DemoID("p2")), 2)
	assert.Empty(t, service.List(context.Background(), "missing"))
}

func TestMaintenanceService_Advance(t *testing.T) {
	tests := []struct {
		name    string
		status  models.MaintenanceStatus
		wantErr error
	}{
		{name: "forward", status: models.MaintenanceStatusAwaitingQuote},
		{name: "same status", status: models.MaintenanceStatusInProgress, wantErr: ErrInvalidStatusTransition},
		{name: "backward", status: models.MaintenanceStatusNew, wantErr: ErrInvalidStatusTransition},
		{name: "completed needs cost", status: models.MaintenanceStatusCompleted, wantErr: ErrInvalidStatusTransition},
		{name: "unknown", status: "Abandoned", wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _ := newMaintenanceService(t)

			// m2 is In Progress in the demo data.
			request, err := service.Advance(context.Background(), store.DemoID("m2"), tt.status)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.status, request.Status)
		})
	}
}

func TestMaintenanceService_Assign(t *testing.T) {
	service, _, _ := newMaintenanceService(t)

	request, err := service.Assign(context.Background(), store.DemoID("m1"), store.DemoID("tp1"))
	require.NoError(t, err)
	require.NotNil(t, request.AssignedTradespersonID)
	assert.Equal(t, store.DemoID("tp1"), *request.AssignedTradespersonID)

	_, err = service.Assign(context.Background(), store.DemoID("m1"), "missing")
	assert.ErrorIs(t, err, ErrTradespersonNotFound)

	_, err = service.Assign(context.Background(), store.DemoID("m3"), store.DemoID("tp1"))
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)

	_, err = service.Assign(context.Background(), "missing", store.DemoID("tp1"))
	assert.ErrorIs(t, err, ErrMaintenanceNotFound)
}

func TestMaintenanceService_QuoteApproval(t *testing.T) {
	service, _, _ := newMaintenanceService(t)
	ctx := context.Background()
	id := store.DemoID("m1")

	request, err := service.AddQuote(ctx, id, QuoteInput{TradespersonID: store.DemoID("tp1"), Amount: decimal.NewFromInt(120), Details: "Replace washer"})
	require.NoError(t, err)
	assert.Equal(t, models.MaintenanceStatusAwaitingQuote, request.Status)
	assert.Equal(t, "Northern Plumbing Ltd", request.Quotes[0].TradespersonName)

	request, err = service.AddQuote(ctx, id, QuoteInput{TradespersonID: store.DemoID("tp3"), Amount: decimal.NewFromInt(95)})
	require.NoError(t, err)
	require.Len(t, request.Quotes, 2)

	request, err = service.DecideQuote(ctx, id, request.Quotes[1].ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.MaintenanceStatusQuoteApproved, request.Status)
	assert.Equal(t, models.QuoteStatusRejected, request.Quotes[0].Status)
	assert.Equal(t, models.QuoteStatusApproved, request.Quotes[1].Status)
	require.NotNil(t, request.AssignedTradespersonID)
	assert.Equal(t, store.DemoID("tp3"), *request.AssignedTradespersonID)

	_, err = service.DecideQuote(ctx, id, request.Quotes[0].ID, true)
	assert.ErrorIs(t, err, ErrQuoteDecided)

	_, err = service.DecideQuote(ctx, id, "missing", false)
	assert.ErrorIs(t, err, ErrQuoteNotFound)

	_, err = service.AddQuote(ctx, id, QuoteInput{TradespersonID: store.DemoID("tp1"), Amount: decimal.NewFromInt(80)})
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestMaintenanceService_RejectQuote(t *testing.T) {
	service, _, _ := newMaintenanceService(t)
	ctx := context.Background()
	id := store.DemoID("m5")

	request, err := service.AddQuote(ctx, id, QuoteInput{TradespersonID: store.DemoID("tp3"), Amount: decimal.NewFromInt(200)})
	require.NoError(t, err)

	request, err = service.DecideQuote(ctx, id, request.Quotes[0].ID, false)

	require.NoError(t, err)
	assert.Equal(t, models.QuoteStatusRejected, request.Quotes[0].Status)
	assert.Equal(t, models.MaintenanceStatusAwaitingQuote, request.Status)
	assert.Nil(t, request.AssignedTradespersonID)

	_, err = service.AddQuote(ctx, id, QuoteInput{TradespersonID: store.DemoID("tp3"), Amount: decimal.Zero})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMaintenanceService_CompleteBooksExpense(t *testing.T) {
	service, st, _ := newMaintenanceService(t)
	invoice := "https://invoices.example.com/sh-1001.pdf"

	request, err := service.Complete(context.Background(), store.DemoID("m2"), CompletionInput{
		Cost:            decimal.RequireFromString("245.50"),
		FinalInvoiceURL: &invoice,
	})

	require.NoError(t, err)
	assert.Equal(t, models.MaintenanceStatusCompleted, request.Status)
	assert.Equal(t, invoice, *request.FinalInvoiceURL)
	require.NotNil(t, request.ExpenseTransactionID)

	state := st.Snapshot()
	expense := state.Transactions[0]
	assert.Equal(t, *request.ExpenseTransactionID, expense.ID)
	assert.Equal(t, models.TransactionTypeExpense, expense.Type)
	assert.Equal(t, "245.5", expense.Amount.String())
	assert.Equal(t, today, expense.Date)
	assert.Equal(t, store.DemoID("p1"), expense.PropertyID)
	require.NotNil(t, expense.MaintenanceRequestID)
	assert.Equal(t, request.ID, *expense.MaintenanceRequestID)

	_, err = service.Complete(context.Background(), store.DemoID("m2"), CompletionInput{Cost: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestMaintenanceService_CompleteWithoutCost(t *testing.T) {
	service, st, _ := newMaintenanceService(t)

	request, err := service.Complete(context.Background(), store.DemoID("m5"), CompletionInput{Cost: decimal.Zero})

	require.NoError(t, err)
	assert.Nil(t, request.ExpenseTransactionID)
	assert.Len(t, st.Snapshot().Transactions, 12)

	_, err = service.Complete(context.Background(), store.DemoID("m1"), CompletionInput{Cost: decimal.NewFromInt(-5)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
