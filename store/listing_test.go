package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickpay-backend/models"
)

func mkInvoice(id, client string, status models.InvoiceStatus, date string, amount float64) models.Invoice {
	return models.Invoice{ID: id, Client: client, Status: status, Date: date, DueDate: date, Amount: amount}
}

func TestListFilterByDisplayStatus(t *testing.T) {
	all := []models.Invoice{
		mkInvoice("QP-1", "A", models.StatusPaid, "2026-01-01", 100),
		mkInvoice("QP-2", "B", models.StatusPending, "2026-01-02", 200),
		mkInvoice("QP-3", "C", models.StatusFailed, "2026-01-03", 300),
		mkInvoice("QP-4", "D", models.StatusOverdue, "2026-01-04", 400),
		mkInvoice("QP-5", "E", models.StatusProcessing, "2026-01-05", 500),
	}

	paid := ApplyListQuery(all, ListQuery{Status: "Paid"})
	require.Len(t, paid.Invoices, 1)
	assert.Equal(t, "QP-1", paid.Invoices[0].ID)

	// failed projects onto Overdue alongside overdue itself
	overdue := ApplyListQuery(all, ListQuery{Status: "Overdue"})
	assert.Len(t, overdue.Invoices, 2)

	pending := ApplyListQuery(all, ListQuery{Status: "Pending"})
	assert.Len(t, pending.Invoices, 2)

	everything := ApplyListQuery(all, ListQuery{Status: "All"})
	assert.Equal(t, 5, everything.Total)
}

func TestListSearchIsCaseInsensitive(t *testing.T) {
	all := []models.Invoice{
		mkInvoice("QP-2045", "Acme Ltd", models.StatusPaid, "2026-01-01", 100),
		mkInvoice("QP-2046", "BlueTech", models.StatusPaid, "2026-01-02", 200),
	}

	byClient := ApplyListQuery(all, ListQuery{Search: "acme"})
	require.Len(t, byClient.Invoices, 1)
	assert.Equal(t, "Acme Ltd", byClient.Invoices[0].Client)

	byID := ApplyListQuery(all, ListQuery{Search: "qp-2046"})
	require.Len(t, byID.Invoices, 1)
	assert.Equal(t, "QP-2046", byID.Invoices[0].ID)

	none := ApplyListQuery(all, ListQuery{Search: "zzz"})
	assert.Empty(t, none.Invoices)
}

func TestListSortAmountAscendingReversesDescending(t *testing.T) {
	all := []models.Invoice{
		mkInvoice("QP-1", "A", models.StatusPaid, "2026-01-01", 300),
		mkInvoice("QP-2", "B", models.StatusPaid, "2026-01-02", 100),
		mkInvoice("QP-3", "C", models.StatusPaid, "2026-01-03", 200),
	}

	asc := ApplyListQuery(all, ListQuery{Sort: "amount-asc"})
	desc := ApplyListQuery(all, ListQuery{Sort: "amount-desc"})

	require.Len(t, asc.Invoices, 3)
	for i := range asc.Invoices {
		assert.Equal(t, asc.Invoices[i].ID, desc.Invoices[len(desc.Invoices)-1-i].ID)
	}
	assert.Equal(t, 100.0, asc.Invoices[0].Amount)
	assert.Equal(t, 300.0, desc.Invoices[0].Amount)
}

func TestListDefaultSortIsNewestFirst(t *testing.T) {
	all := []models.Invoice{
		mkInvoice("QP-1", "A", models.StatusPaid, "2026-01-05", 1),
		mkInvoice("QP-2", "B", models.StatusPaid, "2026-01-20", 2),
		mkInvoice("QP-3", "C", models.StatusPaid, "2026-01-10", 3),
	}

	page := ApplyListQuery(all, ListQuery{})
	require.Len(t, page.Invoices, 3)
	assert.Equal(t, "QP-2", page.Invoices[0].ID)
	assert.Equal(t, "QP-1", page.Invoices[2].ID)
}

func TestListPagination(t *testing.T) {
	var all []models.Invoice
	for i := 0; i < 23; i++ {
		all = append(all, mkInvoice(fmt.Sprintf("QP-%04d", i), "C", models.StatusPending, "2026-01-01", float64(i)))
	}

	page1 := ApplyListQuery(all, ListQuery{Page: 1})
	page2 := ApplyListQuery(all, ListQuery{Page: 2})
	page3 := ApplyListQuery(all, ListQuery{Page: 3})

	assert.Len(t, page1.Invoices, 10)
	assert.Len(t, page2.Invoices, 10)
	assert.Len(t, page3.Invoices, 3)
	assert.Equal(t, 3, page1.TotalPages)
	assert.Equal(t, 23, page1.Total)

	// out-of-range pages clamp to the last page
	beyond := ApplyListQuery(all, ListQuery{Page: 7})
	assert.Equal(t, 3, beyond.Page)
	assert.Len(t, beyond.Invoices, 3)
}

func TestListDoesNotMutateCollection(t *testing.T) {
	all := []models.Invoice{
		mkInvoice("QP-1", "A", models.StatusPaid, "2026-01-05", 300),
		mkInvoice("QP-2", "B", models.StatusPaid, "2026-01-20", 100),
	}

	ApplyListQuery(all, ListQuery{Sort: "amount-asc"})
	assert.Equal(t, "QP-1", all[0].ID)
	assert.Equal(t, "QP-2", all[1].ID)
}

func TestStoreListFilterChangeResetsPage(t *testing.T) {
	s, _ := newTestStore(t)
	for i := 0; i < 23; i++ {
		require.NoError(t, s.db.Create(&models.Invoice{
			ID:     fmt.Sprintf("QP-%04d", i),
			Client: "Acme Ltd", Status: models.StatusPending,
			Date: "2026-01-01", DueDate: "2026-02-01",
		}).Error)
	}

	page, err := s.List(ListQuery{Page: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Page)

	// same filters, zero page: stay where we were
	page, err = s.List(ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Page)

	// changed filter: back to page 1
	page, err = s.List(ListQuery{Status: "Pending"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
}
