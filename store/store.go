package store

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"quickpay-backend/logger"
	"quickpay-backend/models"
	"quickpay-backend/payments"
	"quickpay-backend/utils"
)

var invoiceIDPattern = regexp.MustCompile(`^QP-(\d+)$`)

// Numbering starts above this floor, so the first generated id is QP-2045.
const invoiceIDFloor = 2044

// Store is the single source of truth for the invoice collection, the
// currently selected invoice and the payment-modal target. It is an injected
// container: everything it owns is mutated only through its methods, and
// readers get copies that the store refreshes explicitly.
type Store struct {
	db      *gorm.DB
	gateway payments.Gateway
	log     zerolog.Logger

	mu            sync.Mutex
	selected      *models.Invoice
	paymentTarget string // invoice id currently in the payment flow
	page          int    // current list page, 1-based
	lastQuery     ListQuery
	loading       bool
	lastErr       string
}

func New(db *gorm.DB, gateway payments.Gateway) *Store {
	return &Store{
		db:      db,
		gateway: gateway,
		log:     logger.WithComponent("store"),
		page:    1,
	}
}

// InvoiceDraft is the save payload produced by the invoice form.
type InvoiceDraft struct {
	Client  string                   `json:"clientName" validate:"required"`
	Items   []models.InvoiceLineItem `json:"items" validate:"required,min=1"`
	DueDate string                   `json:"dueDate" validate:"required"`
	Notes   string                   `json:"notes"`
}

// InvoiceUpdate carries a partial edit; nil fields are left untouched.
type InvoiceUpdate struct {
	Client  *string                   `json:"clientName"`
	Items   *[]models.InvoiceLineItem `json:"items"`
	DueDate *string                   `json:"dueDate"`
	Notes   *string                   `json:"notes"`
	Status  *models.InvoiceStatus     `json:"status"`
}

// Err returns the message of the last failed operation, empty when the last
// operation succeeded. Loading reports whether an operation is in flight.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Store) begin() {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()
}

// fail records the error message, clears the loading flag and hands the error
// back so call sites can `return nil, s.fail(err)`.
func (s *Store) fail(err error) error {
	s.mu.Lock()
	s.loading = false
	s.lastErr = err.Error()
	s.mu.Unlock()
	return err
}

func (s *Store) finish() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

// Create validates the draft, assigns the next id, computes the amount and
// persists the invoice with status "pending" dated today.
func (s *Store) Create(draft InvoiceDraft) (*models.Invoice, error) {
	s.begin()

	items := models.FilterValidItems(draft.Items)
	if len(items) == 0 {
		err := &utils.ValidationError{Msg: "invoice requires at least one valid line item"}
		return nil, s.fail(err)
	}

	client := strings.TrimSpace(draft.Client)
	if client == "" {
		return nil, s.fail(&utils.ValidationError{Msg: "client name is required"})
	}

	if _, err := time.Parse(models.DateLayout, draft.DueDate); err != nil {
		return nil, s.fail(&utils.ValidationError{Msg: "due date must be YYYY-MM-DD"})
	}
	today := time.Now().Format(models.DateLayout)
	if draft.DueDate < today {
		return nil, s.fail(&utils.ValidationError{Msg: "due date cannot be in the past"})
	}

	invoice := models.Invoice{
		Client:  client,
		Items:   items,
		Amount:  models.ComputeTotal(items),
		Status:  models.StatusPending,
		Date:    today,
		DueDate: draft.DueDate,
		Notes:   strings.TrimSpace(draft.Notes),
	}

	tx := s.db.Begin()
	invoice.ID = nextInvoiceID(tx)
	if err := tx.Create(&invoice).Error; err != nil {
		tx.Rollback()
		return nil, s.fail(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, s.fail(err)
	}

	s.notify("New Invoice", fmt.Sprintf("Invoice %s created for %s", invoice.ID, invoice.Client))
	s.log.Info().Str("invoice", invoice.ID).Float64("amount", invoice.Amount).Msg("invoice created")
	s.finish()
	return &invoice, nil
}

// Update merges the non-nil fields of patch into the invoice. When items
// change, the amount is recomputed from the filtered items; it is never
// patched independently. An unknown id is a no-op on the collection.
func (s *Store) Update(id string, patch InvoiceUpdate) (*models.Invoice, error) {
	s.begin()

	var existing models.Invoice
	if err := s.db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.fail(&utils.NotFoundError{Resource: "invoice", ID: id})
		}
		return nil, s.fail(err)
	}

	if patch.Status != nil && !patch.Status.Known() {
		return nil, s.fail(&utils.ValidationError{Msg: fmt.Sprintf("unknown status %q", *patch.Status)})
	}
	if patch.DueDate != nil {
		if _, err := time.Parse(models.DateLayout, *patch.DueDate); err != nil {
			return nil, s.fail(&utils.ValidationError{Msg: "due date must be YYYY-MM-DD"})
		}
	}

	utils.NormalizePtrDTO(&patch)
	updates := utils.UpdatesFromPtrDTO(&patch, map[string]string{
		"clientName": "client",
		"dueDate":    "due_date",
	})
	delete(updates, "items") // items are replaced below, not merged as a column

	tx := s.db.Begin()
	if patch.Items != nil {
		items := models.FilterValidItems(*patch.Items)
		if len(items) == 0 {
			tx.Rollback()
			err := &utils.ValidationError{Msg: "invoice requires at least one valid line item"}
			return nil, s.fail(err)
		}
		if err := tx.Where("invoice_id = ?", id).Delete(&models.InvoiceLineItem{}).Error; err != nil {
			tx.Rollback()
			return nil, s.fail(err)
		}
		for i := range items {
			items[i].ID = 0
			items[i].InvoiceID = id
		}
		if err := tx.Create(&items).Error; err != nil {
			tx.Rollback()
			return nil, s.fail(err)
		}
		updates["amount"] = models.ComputeTotal(items)
	}
	if len(updates) > 0 {
		updates["updated_at"] = time.Now()
		if err := tx.Model(&models.Invoice{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			tx.Rollback()
			return nil, s.fail(err)
		}
	}
	if err := tx.Commit().Error; err != nil {
		return nil, s.fail(err)
	}

	updated, err := s.Get(id)
	if err != nil {
		return nil, s.fail(err)
	}
	s.refreshSelected(updated)
	s.finish()
	return updated, nil
}

// Delete removes the invoice and clears any view referencing it: the selected
// invoice, the payment-modal target, and the list page (reset to 1).
func (s *Store) Delete(id string) error {
	s.begin()

	tx := s.db.Begin()
	res := tx.Delete(&models.Invoice{}, "id = ?", id)
	if res.Error != nil {
		tx.Rollback()
		return s.fail(res.Error)
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return s.fail(&utils.NotFoundError{Resource: "invoice", ID: id})
	}
	// sqlite does not enforce the CASCADE constraint without a FK pragma.
	if err := tx.Where("invoice_id = ?", id).Delete(&models.InvoiceLineItem{}).Error; err != nil {
		tx.Rollback()
		return s.fail(err)
	}
	if err := tx.Commit().Error; err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	if s.selected != nil && s.selected.ID == id {
		s.selected = nil
	}
	if s.paymentTarget == id {
		s.paymentTarget = ""
	}
	s.page = 1
	s.loading = false
	s.mu.Unlock()

	s.log.Info().Str("invoice", id).Msg("invoice deleted")
	return nil
}

// Get loads one invoice with its items.
func (s *Store) Get(id string) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := s.db.Preload("Items").First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &utils.NotFoundError{Resource: "invoice", ID: id}
		}
		return nil, err
	}
	return &invoice, nil
}

// All returns the full collection in insertion order.
func (s *Store) All() ([]models.Invoice, error) {
	var invoices []models.Invoice
	if err := s.db.Preload("Items").Order("created_at, id").Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// SelectByID marks an invoice as the detail-view target and returns a copy.
func (s *Store) SelectByID(id string) (*models.Invoice, error) {
	invoice, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.selected = invoice
	s.mu.Unlock()
	return invoice, nil
}

// ClearSelection closes the detail view.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	s.selected = nil
	s.mu.Unlock()
}

// Selected returns a copy of the detail-view target, or nil.
func (s *Store) Selected() *models.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return nil
	}
	cp := *s.selected
	return &cp
}

// PaymentTarget returns the id of the invoice currently in the payment flow.
func (s *Store) PaymentTarget() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paymentTarget
}

// refreshSelected propagates an updated invoice into the selected copy.
// Readers hold copies, not live references, so the store refreshes them here.
func (s *Store) refreshSelected(invoice *models.Invoice) {
	s.mu.Lock()
	if s.selected != nil && s.selected.ID == invoice.ID {
		cp := *invoice
		s.selected = &cp
	}
	s.mu.Unlock()
}

func (s *Store) notify(title, message string) {
	n := models.Notification{Title: title, Message: message, Timestamp: time.Now()}
	if err := s.db.Create(&n).Error; err != nil {
		s.log.Warn().Err(err).Str("title", title).Msg("could not record notification")
	}
}

// nextInvoiceID picks max existing numeric suffix + 1, floored at 2044.
func nextInvoiceID(db *gorm.DB) string {
	var ids []string
	db.Model(&models.Invoice{}).Pluck("id", &ids)

	max := invoiceIDFloor
	for _, id := range ids {
		m := invoiceIDPattern.FindStringSubmatch(id)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("QP-%d", max+1)
}
