package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/norsbakery/storefront/internal/app/model"
	"github.com/norsbakery/storefront/internal/app/repository"
	"github.com/norsbakery/storefront/pkg/logger"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrInvalidQuantity  = model.ErrInvalidQuantity
	ErrCartEmpty        = errors.New("cart is empty")
)

// CartService owns a visitor's cart. Every mutation restores the snapshot,
// applies the change and writes the whole cart back before returning.
type CartService interface {
	Key(sessionID string) string
	GetCart(ctx context.Context, key string) (*model.Cart, error)
	AddToCart(ctx context.Context, key string, catalog *model.Catalog, productID model.ProductID, quantity int) (*model.Cart, error)
	UpdateCartQuantity(ctx context.Context, key string, productID model.ProductID, quantity int) (*model.Cart, error)
	RemoveFromCart(ctx context.Context, key string, productID model.ProductID) (*model.Cart, error)
	ClearCart(ctx context.Context, key string) (*model.Cart, error)
	Checkout(ctx context.Context, key string) (*model.Cart, error)
}

type cartService struct {
	cartRepo  repository.CartRepository
	keyPrefix string
	newID     func() string
}

func NewCartService(cartRepo repository.CartRepository, keyPrefix string) CartService {
	return &cartService{
		cartRepo:  cartRepo,
		keyPrefix: keyPrefix,
		newID:     uuid.NewString,
	}
}

// Key namespaces the fixed storage key by session.
func (s *cartService) Key(sessionID string) string {
	if sessionID == "" {
		return s.keyPrefix
	}
	return s.keyPrefix + ":" + sessionID
}

func (s *cartService) GetCart(ctx context.Context, key string) (*model.Cart, error) {
	payload, err := s.cartRepo.Load(ctx, key)
	if errors.Is(err, repository.ErrSnapshotNotFound) {
		return model.NewCart(), nil
	}
	if err != nil {
		logger.Error("Failed to restore cart", err, map[string]interface{}{
			"cart_key": key,
		})
		return nil, err
	}

	cart := model.NewCart()
	if err := json.Unmarshal([]byte(payload), cart); err != nil {
		logger.Warn("Discarding malformed cart snapshot", map[string]interface{}{
			"cart_key": key,
			"error":    err.Error(),
		})
		return model.NewCart(), nil
	}
	if err := cart.Validate(); err != nil {
		logger.Warn("Discarding invalid cart snapshot", map[string]interface{}{
			"cart_key": key,
			"error":    err.Error(),
		})
		return model.NewCart(), nil
	}
	return cart, nil
}

func (s *cartService) AddToCart(ctx context.Context, key string, catalog *model.Catalog, productID model.ProductID, quantity int) (*model.Cart, error) {
	logger.Info("Adding item to cart", map[string]interface{}{
		"cart_key":   key,
		"product_id": productID,
		"quantity":   quantity,
	})

	if quantity < 1 || quantity > model.MaxLineQuantity {
		return nil, ErrInvalidQuantity
	}

	product, ok := catalog.Find(productID)
	if !ok {
		logger.Warn("Cannot add to cart: product not found", map[string]interface{}{
			"cart_key":   key,
			"product_id": productID,
		})
		return nil, ErrProductNotFound
	}

	cart, err := s.GetCart(ctx, key)
	if err != nil {
		return nil, err
	}

	item, err := cart.Add(product, quantity, s.newID)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, key, cart); err != nil {
		return nil, err
	}

	logger.Info("Item added to cart", map[string]interface{}{
		"cart_key":     key,
		"product_id":   productID,
		"line_item_id": item.ID,
		"quantity":     item.Quantity,
	})
	return cart, nil
}

func (s *cartService) UpdateCartQuantity(ctx context.Context, key string, productID model.ProductID, quantity int) (*model.Cart, error) {
	if quantity <= 0 {
		return s.RemoveFromCart(ctx, key, productID)
	}

	cart, err := s.GetCart(ctx, key)
	if err != nil {
		return nil, err
	}

	if _, err := cart.SetQuantity(productID, quantity); err != nil {
		if errors.Is(err, model.ErrLineItemNotFound) {
			logger.Warn("Cannot update cart: item not found", map[string]interface{}{
				"cart_key":   key,
				"product_id": productID,
			})
			return cart, ErrCartItemNotFound
		}
		return nil, err
	}
	if err := s.save(ctx, key, cart); err != nil {
		return nil, err
	}

	logger.Info("Cart quantity updated", map[string]interface{}{
		"cart_key":   key,
		"product_id": productID,
		"quantity":   quantity,
	})
	return cart, nil
}

// RemoveFromCart writes the cart back even when nothing matched, and then
// reports ErrCartItemNotFound alongside the unchanged cart.
func (s *cartService) RemoveFromCart(ctx context.Context, key string, productID model.ProductID) (*model.Cart, error) {
	cart, err := s.GetCart(ctx, key)
	if err != nil {
		return nil, err
	}

	removed := cart.Remove(productID)
	if err := s.save(ctx, key, cart); err != nil {
		return nil, err
	}

	if !removed {
		logger.Warn("Cannot remove from cart: item not found", map[string]interface{}{
			"cart_key":   key,
			"product_id": productID,
		})
		return cart, ErrCartItemNotFound
	}

	logger.Info("Item removed from cart", map[string]interface{}{
		"cart_key":   key,
		"product_id": productID,
	})
	return cart, nil
}

func (s *cartService) ClearCart(ctx context.Context, key string) (*model.Cart, error) {
	cart := model.NewCart()
	if err := s.save(ctx, key, cart); err != nil {
		return nil, err
	}

	logger.Info("Cart cleared", map[string]interface{}{
		"cart_key": key,
	})
	return cart, nil
}

// Checkout returns ErrCartEmpty when there is nothing to check out; the cart
// is left as it was either way.
func (s *cartService) Checkout(ctx context.Context, key string) (*model.Cart, error) {
	cart, err := s.GetCart(ctx, key)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return cart, ErrCartEmpty
	}

	logger.Info("Proceeding to checkout", map[string]interface{}{
		"cart_key":   key,
		"item_count": cart.ItemCount(),
		"total":      cart.Total().StringFixed(2),
	})
	return cart, nil
}

func (s *cartService) save(ctx context.Context, key string, cart *model.Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.cartRepo.Save(ctx, key, string(payload)); err != nil {
		logger.Error("Failed to persist cart", err, map[string]interface{}{
			"cart_key": key,
		})
		return err
	}
	return nil
}
