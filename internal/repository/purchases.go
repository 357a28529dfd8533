package repository

import (
	"context"
	"fmt"

	"inventtrack/m/domain"
	"inventtrack/m/internal/store"
)

// AddPurchase writes the header and its items in one transaction and returns
// the purchase id.
func (r *Repository) AddPurchase(ctx context.Context, p domain.Purchase) (int64, error) {
	now := r.stamp()
	if p.CreatedAt == "" {
		p.CreatedAt = now
	}
	if p.UpdatedAt == "" {
		p.UpdatedAt = now
	}
	if p.PurchaseDate == "" {
		p.PurchaseDate = now
	}
	if p.Status == "" {
		p.Status = domain.StatusCompleted
	}
	if err := r.check(p); err != nil {
		return 0, err
	}

	var purchaseID int64
	err := r.h.WithTx(ctx, func(tx store.Handle) error {
		res, err := tx.Execute(ctx, store.Insert(store.InsertPurchase, p))
		if err != nil {
			return err
		}
		purchaseID = res.LastInsertID
		for _, item := range p.Items {
			item.PurchaseID = purchaseID
			if _, err := tx.Execute(ctx, store.Insert(store.InsertPurchaseItem, item)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("repository: add purchase: %w", err)
	}
	return purchaseID, nil
}

// ListPurchases returns purchases newest first with their items attached.
func (r *Repository) ListPurchases(ctx context.Context) ([]domain.Purchase, error) {
	purchases, err := rows[domain.Purchase](ctx, r.h, store.List(store.ListPurchases))
	if err != nil {
		return nil, fmt.Errorf("repository: list purchases: %w", err)
	}
	items, err := rows[domain.PurchaseItem](ctx, r.h, store.List(store.ListPurchaseItems))
	if err != nil {
		return nil, fmt.Errorf("repository: list purchase items: %w", err)
	}

	itemsByPurchase := make(map[int64][]domain.PurchaseItem)
	for _, item := range items {
		itemsByPurchase[item.PurchaseID] = append(itemsByPurchase[item.PurchaseID], item)
	}
	for i := range purchases {
		purchases[i].Items = itemsByPurchase[purchases[i].ID]
		if purchases[i].Items == nil {
			purchases[i].Items = []domain.PurchaseItem{}
		}
	}
	return purchases, nil
}
