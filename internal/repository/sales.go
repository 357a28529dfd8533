package repository

import (
	"context"
	"fmt"

	"inventtrack/m/domain"
	"inventtrack/m/internal/store"
)

// AddSale writes the sale header and its line items atomically.
func (r *Repository) AddSale(ctx context.Context, s domain.Sale) (int64, error) {
	now := r.stamp()
	if s.CreatedAt == "" {
		s.CreatedAt = now
	}
	if s.UpdatedAt == "" {
		s.UpdatedAt = now
	}
	if s.SaleDate == "" {
		s.SaleDate = now
	}
	if err := r.check(s); err != nil {
		return 0, err
	}

	var saleID int64
	err := r.h.WithTx(ctx, func(tx store.Handle) error {
		res, err := tx.Execute(ctx, store.Insert(store.InsertSale, s))
		if err != nil {
			return err
		}
		saleID = res.LastInsertID
		for _, item := range s.Items {
			item.SaleID = saleID
			if _, err := tx.Execute(ctx, store.Insert(store.InsertSaleItem, item)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("repository: add sale: %w", err)
	}
	return saleID, nil
}

func (r *Repository) ListSales(ctx context.Context) ([]domain.Sale, error) {
	sales, err := rows[domain.Sale](ctx, r.h, store.List(store.ListSales))
	if err != nil {
		return nil, fmt.Errorf("repository: list sales: %w", err)
	}
	items, err := rows[domain.SaleItem](ctx, r.h, store.List(store.ListSaleItems))
	if err != nil {
		return nil, fmt.Errorf("repository: list sale items: %w", err)
	}

	itemsBySale := make(map[int64][]domain.SaleItem)
	for _, item := range items {
		itemsBySale[item.SaleID] = append(itemsBySale[item.SaleID], item)
	}
	for i := range sales {
		sales[i].Items = itemsBySale[sales[i].ID]
		if sales[i].Items == nil {
			sales[i].Items = []domain.SaleItem{}
		}
	}
	return sales, nil
}
