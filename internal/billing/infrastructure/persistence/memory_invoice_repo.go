package persistence

import (
	"context"
	"sync"

	"github.com/revenia/revenia/internal/billing/domain"
)

// MemoryInvoiceRepository is an in-memory InvoiceRepository used in local
// mode and tests.
type MemoryInvoiceRepository struct {
	mu   sync.RWMutex
	byID map[string]domain.Invoice
}

// NewMemoryInvoiceRepository creates an empty repository.
func NewMemoryInvoiceRepository() *MemoryInvoiceRepository {
	return &MemoryInvoiceRepository{byID: make(map[string]domain.Invoice)}
}

// Add stores a new invoice.
func (r *MemoryInvoiceRepository) Add(_ context.Context, invoice *domain.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[invoice.InvoiceID] = *invoice
	return nil
}

// Get returns the invoice with the given id.
func (r *MemoryInvoiceRepository) Get(_ context.Context, invoiceID string) (*domain.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	invoice, ok := r.byID[invoiceID]
	if !ok {
		return nil, domain.ErrInvoiceNotFound
	}
	return &invoice, nil
}

// Update replaces the stored invoice.
func (r *MemoryInvoiceRepository) Update(_ context.Context, invoice *domain.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[invoice.InvoiceID]; !ok {
		return domain.ErrInvoiceNotFound
	}
	r.byID[invoice.InvoiceID] = *invoice
	return nil
}
