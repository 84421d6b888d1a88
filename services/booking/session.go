package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"mountify/models"
	"mountify/services/pricing"
	"mountify/utils"
)

// StartCheckout prices the cart and stores a new checkout session in Redis.
func (svc *DefaultBookingService) StartCheckout(ctx context.Context, customerID string, in CheckoutInput) (string, *models.CheckoutSession, error) {
	session, err := svc.buildSession(ctx, customerID, in)
	if err != nil {
		return "", nil, err
	}

	sessionID := uuid.New().String()
	if err := svc.saveSession(ctx, sessionID, session); err != nil {
		return "", nil, err
	}
	return sessionID, session, nil
}

// UpdateCheckout replaces the session contents and reprices.
func (svc *DefaultBookingService) UpdateCheckout(ctx context.Context, sessionID string, in CheckoutInput) (*models.CheckoutSession, error) {
	existing, err := svc.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session, err := svc.buildSession(ctx, existing.CustomerID, in)
	if err != nil {
		return nil, err
	}
	if err := svc.saveSession(ctx, sessionID, session); err != nil {
		return nil, err
	}
	return session, nil
}

// CancelCheckout deletes the session data from the cache.
func (svc *DefaultBookingService) CancelCheckout(ctx context.Context, sessionID string) error {
	if err := svc.Sessions.Del(ctx, utils.SessionCachePrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to cancel checkout session: %w", err)
	}
	return nil
}

// buildSession validates items against the catalog and computes the quote.
// Catalog prices override whatever the client sent.
func (svc *DefaultBookingService) buildSession(ctx context.Context, customerID string, in CheckoutInput) (*models.CheckoutSession, error) {
	if len(in.Items) == 0 {
		return nil, newBookingError("emptyCart", "at least one service is required")
	}

	items := make([]models.CartItem, 0, len(in.Items))
	for _, item := range in.Items {
		svcEntry, err := svc.Catalog.GetServiceByID(item.ServiceID)
		if err != nil {
			return nil, newBookingError("unknownService", fmt.Sprintf("service %s not found", item.ServiceID))
		}
		if !svcEntry.Active {
			return nil, newBookingError("inactiveService", fmt.Sprintf("service %s is not bookable", svcEntry.Name))
		}
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		item.Name = svcEntry.Name
		item.UnitPrice = svcEntry.BasePrice
		// Surcharge config only applies to TV-mounting services; drop it
		// silently for anything else.
		if svcEntry.Category != models.CategoryTVMounting {
			item.Config.TVMounting = nil
		}
		items = append(items, item)
	}

	subtotal := pricing.BookingTotal(items)
	discount := 0.0
	if in.CouponCode != "" {
		coupon, err := svc.Catalog.GetCouponByCode(in.CouponCode)
		if err != nil || !coupon.Usable(time.Now()) {
			return nil, newBookingError("invalidCoupon", fmt.Sprintf("coupon %s not valid", in.CouponCode))
		}
		discount = pricing.CouponDiscount(*coupon, subtotal)
	}

	return &models.CheckoutSession{
		CustomerID:          customerID,
		Items:               items,
		ZipCode:             in.ZipCode,
		ScheduledDate:       in.ScheduledDate,
		ScheduledTime:       in.ScheduledTime,
		SpecialInstructions: in.SpecialInstructions,
		CouponCode:          in.CouponCode,
		Subtotal:            subtotal,
		Discount:            discount,
		Total:               pricing.ApplyDiscount(subtotal, discount),
	}, nil
}

func (svc *DefaultBookingService) saveSession(ctx context.Context, sessionID string, session *models.CheckoutSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal checkout session: %w", err)
	}
	if err := svc.Sessions.Set(ctx, utils.SessionCachePrefix+sessionID, data, utils.SessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache checkout session: %w", err)
	}
	return nil
}

func (svc *DefaultBookingService) loadSession(ctx context.Context, sessionID string) (*models.CheckoutSession, error) {
	data, err := svc.Sessions.Get(ctx, utils.SessionCachePrefix+sessionID).Result()
	if err != nil {
		return nil, newBookingError("sessionNotFound", "checkout session not found or expired")
	}
	var session models.CheckoutSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse checkout session: %w", err)
	}
	return &session, nil
}
