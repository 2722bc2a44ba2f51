// internal/services/quote_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/quote-manager/internal/database"
	"github.com/javajoker/quote-manager/internal/models"
)

var (
	ErrKitComponentNotFound = errors.New("kit component not found")
	ErrQuoteNotFound        = errors.New("quote not found")
	ErrInvalidQuantity      = errors.New("quantity must be at least 1")
	ErrInvalidColor         = errors.New("color is not offered for this product")
)

type QuoteService struct {
	db     *gorm.DB
	strict bool
}

type CreateQuoteRequest struct {
	Customer string             `json:"customer" validate:"required"`
	Items    []QuoteItemRequest `json:"items" validate:"required,dive"`
}

// QuoteItemRequest asks for one product. KitOrder, when present (even empty),
// replaces a kit's default component order.
type QuoteItemRequest struct {
	ProductID uint    `json:"product_id" validate:"required"`
	Quantity  *int    `json:"quantity,omitempty"`
	Color     *string `json:"color,omitempty"`
	KitOrder  []uint  `json:"kit_order,omitempty"`
}

type QuoteCreated struct {
	ID    uint            `json:"id"`
	Total decimal.Decimal `json:"total"`
}

type QuoteView struct {
	ID       uint            `json:"id"`
	Customer string          `json:"customer"`
	Total    decimal.Decimal `json:"total"`
	Items    []QuoteLineView `json:"items"`
}

type QuoteLineView struct {
	ProductID      uint    `json:"product_id"`
	ProductName    string  `json:"product_name"`
	Quantity       int     `json:"quantity"`
	Color          *string `json:"color"`
	Order          int     `json:"order"`
	IsKitComponent bool    `json:"is_kit_component"`
}

func NewQuoteService(db *gorm.DB, strict bool) *QuoteService {
	return &QuoteService{
		db:     db,
		strict: strict,
	}
}

func (r QuoteItemRequest) quantity() int {
	if r.Quantity == nil {
		return 1
	}
	return *r.Quantity
}

// CreateQuote prices the request and stores the quote with its lines in one
// transaction. Any unresolved product aborts the whole request.
func (s *QuoteService) CreateQuote(ctx context.Context, req *CreateQuoteRequest) (*QuoteCreated, error) {
	var quote models.Quote

	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		lines, total, err := s.buildLines(tx, req.Items)
		if err != nil {
			return err
		}

		quote = models.Quote{Customer: req.Customer, Total: total}
		if err := tx.Create(&quote).Error; err != nil {
			return fmt.Errorf("failed to create quote: %w", err)
		}

		if len(lines) == 0 {
			return nil
		}
		for i := range lines {
			lines[i].QuoteID = quote.ID
		}
		if err := tx.Omit("Product").Create(&lines).Error; err != nil {
			return fmt.Errorf("failed to create quote items: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"quote_id": quote.ID,
		"customer": quote.Customer,
		"total":    quote.Total.String(),
	}).Info("Quote created")

	return &QuoteCreated{ID: quote.ID, Total: quote.Total}, nil
}

// buildLines resolves and prices every requested item in request order.
// Top-level lines take their request index as Order; kit components take their
// index within the kit's expansion. Kits expand one level only.
func (s *QuoteService) buildLines(tx *gorm.DB, items []QuoteItemRequest) ([]models.QuoteItem, decimal.Decimal, error) {
	total := decimal.Zero
	var lines []models.QuoteItem

	for orderIdx, item := range items {
		product, err := findProduct(tx, item.ProductID)
		if err != nil {
			return nil, decimal.Zero, err
		}

		qty := item.quantity()
		if s.strict && qty < 1 {
			return nil, decimal.Zero, fmt.Errorf("%w: product %d", ErrInvalidQuantity, item.ProductID)
		}

		if product.IsKit {
			components := product.KitComponents
			if item.KitOrder != nil {
				components = item.KitOrder
			}

			for compIdx, componentID := range components {
				component, err := findProduct(tx, componentID)
				if errors.Is(err, ErrProductNotFound) {
					return nil, decimal.Zero, fmt.Errorf("%w: %d", ErrKitComponentNotFound, componentID)
				}
				if err != nil {
					return nil, decimal.Zero, err
				}

				total = total.Add(lineSubtotal(component, qty))
				lines = append(lines, models.QuoteItem{
					ProductID:      component.ID,
					Quantity:       qty,
					Order:          compIdx,
					Sequence:       len(lines),
					IsKitComponent: true,
				})
			}
			continue
		}

		if s.strict && item.Color != nil && !product.OffersColor(*item.Color) {
			return nil, decimal.Zero, fmt.Errorf("%w: %q on product %d", ErrInvalidColor, *item.Color, product.ID)
		}

		total = total.Add(lineSubtotal(product, qty))
		lines = append(lines, models.QuoteItem{
			ProductID: product.ID,
			Quantity:  qty,
			Color:     item.Color,
			Order:     orderIdx,
			Sequence:  len(lines),
		})
	}

	return lines, total, nil
}

func lineSubtotal(product *models.Product, qty int) decimal.Decimal {
	return product.Price.Mul(decimal.NewFromInt(int64(qty)))
}

// GetQuote returns the quote with its lines ordered by Order, ties kept in
// insertion order. Product names are read at call time.
func (s *QuoteService) GetQuote(ctx context.Context, id uint) (*QuoteView, error) {
	var quote models.Quote
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_order ASC").Order("sequence ASC").Order("id ASC")
		}).
		Preload("Items.Product").
		First(&quote, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	view := &QuoteView{
		ID:       quote.ID,
		Customer: quote.Customer,
		Total:    quote.Total,
		Items:    make([]QuoteLineView, 0, len(quote.Items)),
	}
	for _, item := range quote.Items {
		view.Items = append(view.Items, QuoteLineView{
			ProductID:      item.ProductID,
			ProductName:    item.Product.Name,
			Quantity:       item.Quantity,
			Color:          item.Color,
			Order:          item.Order,
			IsKitComponent: item.IsKitComponent,
		})
	}

	return view, nil
}
