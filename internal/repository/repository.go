// Package repository is the data-access layer over a store.Handle.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"inventtrack/m/domain"
	"inventtrack/m/internal/format"
	"inventtrack/m/internal/store"
)

// ErrValidation wraps every rejected record.
var ErrValidation = errors.New("repository: invalid record")

type Repository struct {
	h        store.Handle
	validate *validator.Validate
	now      func() time.Time
}

type Option func(*Repository)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

func New(h store.Handle, opts ...Option) *Repository {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("paymentmode", func(fl validator.FieldLevel) bool {
		return domain.PaymentMode(fl.Field().String()).Valid()
	})
	r := &Repository{h: h, validate: v, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Repository) check(record any) error {
	err := r.validate.Struct(record)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
}

func (r *Repository) stamp() string {
	return format.Timestamp(r.now())
}

func rows[T any](ctx context.Context, h store.Handle, cmd store.Command) ([]T, error) {
	res, err := h.Execute(ctx, cmd)
	if err != nil {
		return nil, err
	}
	out, ok := res.Rows.([]T)
	if !ok {
		return nil, fmt.Errorf("repository: %s returned %T", cmd.Op, res.Rows)
	}
	return out, nil
}

func (r *Repository) AddProduct(ctx context.Context, p domain.Product) (int64, error) {
	if p.Images == nil {
		p.Images = domain.StringList{}
	}
	now := r.stamp()
	p.CreatedAt, p.UpdatedAt = now, now
	if err := r.check(p); err != nil {
		return 0, err
	}
	res, err := r.h.Execute(ctx, store.Insert(store.InsertProduct, p))
	if err != nil {
		return 0, fmt.Errorf("repository: add product: %w", err)
	}
	return res.LastInsertID, nil
}

// ListProducts returns every product ordered by name.
func (r *Repository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := rows[domain.Product](ctx, r.h, store.List(store.ListProducts))
	if err != nil {
		return nil, fmt.Errorf("repository: list products: %w", err)
	}
	return products, nil
}

func (r *Repository) AddSupplier(ctx context.Context, s domain.Supplier) (int64, error) {
	s.Name = strings.TrimSpace(s.Name)
	if err := r.check(s); err != nil {
		return 0, err
	}
	res, err := r.h.Execute(ctx, store.Insert(store.InsertSupplier, s))
	if err != nil {
		return 0, fmt.Errorf("repository: add supplier: %w", err)
	}
	return res.LastInsertID, nil
}

func (r *Repository) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	suppliers, err := rows[domain.Supplier](ctx, r.h, store.List(store.ListSuppliers))
	if err != nil {
		return nil, fmt.Errorf("repository: list suppliers: %w", err)
	}
	return suppliers, nil
}
