package billing_test

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinic-api/internal/domain"
	"github.com/clinicore/clinic-api/internal/domain/entity"
	"github.com/clinicore/clinic-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// In-memory fakes for the persistence ports. The fake TxRunner hands the same
// repositories back, which is enough to exercise the use case sequencing.
// ──────────────────────────────────────────────────────────────────────────────

type memBillRepo struct {
	bills map[string]*entity.Bill
}

func newMemBillRepo() *memBillRepo { return &memBillRepo{bills: map[string]*entity.Bill{}} }

func (r *memBillRepo) Create(b *entity.Bill) error {
	cp := *b
	r.bills[b.ID] = &cp
	return nil
}

func (r *memBillRepo) GetByID(id string) (*entity.Bill, error) {
	b, ok := r.bills[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *memBillRepo) List(limit, offset int) ([]*entity.Bill, error) {
	var out []*entity.Bill
	for _, b := range r.bills {
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memBillRepo) ListByPatient(patientID string, limit, offset int) ([]*entity.Bill, error) {
	var out []*entity.Bill
	for _, b := range r.bills {
		if b.PatientID == patientID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memBillRepo) UpdateTotals(id string, subtotal, tax, total int64) error {
	b, ok := r.bills[id]
	if !ok {
		return domain.ErrNotFound
	}
	b.SubtotalCents, b.TaxCents, b.TotalCents = subtotal, tax, total
	b.UpdatedAt = time.Now()
	return nil
}

func (r *memBillRepo) UpdateStatus(id, status, paymentMethod string) error {
	b, ok := r.bills[id]
	if !ok {
		return domain.ErrNotFound
	}
	b.Status, b.PaymentMethod = status, paymentMethod
	return nil
}

func (r *memBillRepo) UpdateDocumentRef(id, ref string) error {
	b, ok := r.bills[id]
	if !ok {
		return domain.ErrNotFound
	}
	b.DocumentRef = ref
	return nil
}

type memItemRepo struct {
	items map[string]*entity.BillItem
	seq   int
	order map[string]int // id -> insertion order
}

func newMemItemRepo() *memItemRepo {
	return &memItemRepo{items: map[string]*entity.BillItem{}, order: map[string]int{}}
}

func (r *memItemRepo) Create(it *entity.BillItem) error {
	if it.ID == "" {
		it.ID = uuid.New().String()
	}
	cp := *it
	r.items[it.ID] = &cp
	r.order[it.ID] = r.seq
	r.seq++
	return nil
}

func (r *memItemRepo) GetByID(id string) (*entity.BillItem, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *memItemRepo) ListByBill(billID string) ([]*entity.BillItem, error) {
	var out []*entity.BillItem
	for _, it := range r.items {
		if it.BillID == billID {
			cp := *it
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.order[out[i].ID] < r.order[out[j].ID] })
	return out, nil
}

func (r *memItemRepo) Delete(id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type memProductRepo struct {
	products map[string]*entity.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: map[string]*entity.Product{}}
}

func (r *memProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memProductRepo) ListLowStock() ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.LowStock() {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memProductRepo) Update(p *entity.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) UpdatePrice(id string, cents int64) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.UnitPriceCents = cents
	return nil
}

// ReserveStock mirrors the conditional UPDATE of the Postgres adapter.
func (r *memProductRepo) ReserveStock(id string, qty int64) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	if p.StockQuantity < qty {
		return &domain.InsufficientStockError{ProductID: id, Requested: qty, Available: p.StockQuantity}
	}
	p.StockQuantity -= qty
	return nil
}

func (r *memProductRepo) ReleaseStock(id string, qty int64) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.StockQuantity += qty
	return nil
}

func (r *memProductRepo) Delete(id string) error {
	delete(r.products, id)
	return nil
}

type memPatientRepo struct {
	patients map[string]*entity.Patient
}

func newMemPatientRepo() *memPatientRepo {
	return &memPatientRepo{patients: map[string]*entity.Patient{}}
}

func (r *memPatientRepo) Create(p *entity.Patient) error {
	cp := *p
	r.patients[p.ID] = &cp
	return nil
}

func (r *memPatientRepo) GetByID(id string) (*entity.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memPatientRepo) List(limit, offset int) ([]*entity.Patient, error) { return nil, nil }
func (r *memPatientRepo) Update(p *entity.Patient) error                    { return nil }
func (r *memPatientRepo) Delete(id string) error                            { return nil }

type memNotifRepo struct {
	attempts []*entity.NotificationAttempt
}

func (r *memNotifRepo) CreateAttempt(a *entity.NotificationAttempt) error {
	cp := *a
	r.attempts = append(r.attempts, &cp)
	return nil
}

func (r *memNotifRepo) ListByBill(billID string) ([]*entity.NotificationAttempt, error) {
	var out []*entity.NotificationAttempt
	for _, a := range r.attempts {
		if a.BillID == billID {
			out = append(out, a)
		}
	}
	return out, nil
}

// fakeTxRunner passes the ambient repos straight through; no real transaction.
type fakeTxRunner struct {
	billRepo    repository.BillRepository
	itemRepo    repository.BillItemRepository
	productRepo repository.ProductRepository
}

func (f *fakeTxRunner) RunBilling(ctx context.Context, fn func(
	billRepo repository.BillRepository,
	itemRepo repository.BillItemRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(f.billRepo, f.itemRepo, f.productRepo)
}
