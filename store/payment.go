package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"quickpay-backend/models"
	"quickpay-backend/payments"
	"quickpay-backend/utils"
)

// ProcessPayment runs the payment initiation flow as an explicit two-phase
// transition: a tentative local write to "processing" before the provider
// call, then either the success transition to "pending_payment" or the
// compensating write to "failed". A paid invoice is rejected with no state
// change. Funds confirmation arrives out of band via ConfirmPayment.
func (s *Store) ProcessPayment(ctx context.Context, id string) (*payments.STKPushResponse, error) {
	s.begin()

	var invoice models.Invoice
	if err := s.db.First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.fail(&utils.NotFoundError{Resource: "invoice", ID: id})
		}
		return nil, s.fail(err)
	}
	if invoice.Status == models.StatusPaid {
		return nil, s.fail(&utils.ValidationError{Msg: fmt.Sprintf("invoice %s is already paid", id)})
	}

	s.mu.Lock()
	s.paymentTarget = id
	s.mu.Unlock()

	// Phase 1: tentative transition, written before any network call.
	if err := s.setStatus(id, models.StatusProcessing); err != nil {
		return nil, s.fail(err)
	}

	resp, err := s.gateway.InitiateSTKPush(ctx, payments.STKPushRequest{
		InvoiceID: id,
		Amount:    invoice.Amount,
	})
	if err != nil {
		// Phase 2, failure path: compensating transition. No retry.
		if cerr := s.setStatus(id, models.StatusFailed); cerr != nil {
			s.log.Error().Err(cerr).Str("invoice", id).Msg("compensating transition failed")
		}
		s.clearPaymentTarget(id)
		s.log.Warn().Err(err).Str("invoice", id).Msg("payment initiation failed")
		return nil, s.fail(err)
	}

	// Phase 2, success path.
	now := time.Now()
	err = s.db.Model(&models.Invoice{}).Where("id = ?", id).Updates(map[string]any{
		"status":               models.StatusPendingPayment,
		"payment_initiated_at": &now,
		"updated_at":           now,
	}).Error
	if err != nil {
		return nil, s.fail(err)
	}

	if updated, gerr := s.Get(id); gerr == nil {
		s.refreshSelected(updated)
	}
	s.clearPaymentTarget(id)
	s.log.Info().Str("invoice", id).Str("checkout", resp.CheckoutRequestID).Msg("payment initiated")
	s.finish()
	return resp, nil
}

// ConfirmPayment handles the out-of-band provider callback: funds received.
// Idempotent on an already-paid invoice.
func (s *Store) ConfirmPayment(id string) (*models.Invoice, error) {
	s.begin()

	invoice, err := s.Get(id)
	if err != nil {
		return nil, s.fail(err)
	}
	if invoice.Status == models.StatusPaid {
		s.finish()
		return invoice, nil
	}

	now := time.Now()
	err = s.db.Model(&models.Invoice{}).Where("id = ?", id).Updates(map[string]any{
		"status":     models.StatusPaid,
		"paid_at":    &now,
		"updated_at": now,
	}).Error
	if err != nil {
		return nil, s.fail(err)
	}

	s.notify("Payment Received", fmt.Sprintf("Payment of KSh %.2f received for invoice %s", invoice.Amount, id))

	updated, err := s.Get(id)
	if err != nil {
		return nil, s.fail(err)
	}
	s.refreshSelected(updated)
	s.log.Info().Str("invoice", id).Msg("payment confirmed")
	s.finish()
	return updated, nil
}

func (s *Store) setStatus(id string, status models.InvoiceStatus) error {
	return s.db.Model(&models.Invoice{}).Where("id = ?", id).Updates(map[string]any{
		"status":     status,
		"updated_at": time.Now(),
	}).Error
}

func (s *Store) clearPaymentTarget(id string) {
	s.mu.Lock()
	if s.paymentTarget == id {
		s.paymentTarget = ""
	}
	s.mu.Unlock()
}
