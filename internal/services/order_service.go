package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"nawi-delivery-backend/internal/models"
	"nawi-delivery-backend/internal/repositories"
	"nawi-delivery-backend/pkg/messaging"

	"github.com/google/uuid"
)

// OrderService turns a cart snapshot into a persisted order. One checkout
// per user may be in flight at a time; the order header and its items are
// written in a single database transaction, so a failure leaves no orphaned
// header behind and the cart untouched for retry.
type OrderService struct {
	orderRepo        repositories.OrderRepository
	notificationRepo repositories.NotificationRepository
	cartService      *CartService
	couponService    *CouponService
	cache            Cache
	producer         EventProducer
	kafkaBrokers     []string
	orderCacheTTL    time.Duration

	mu       sync.Mutex
	inFlight map[string]bool
}

func NewOrderService(
	orderRepo repositories.OrderRepository,
	notificationRepo repositories.NotificationRepository,
	cartService *CartService,
	couponService *CouponService,
	cache Cache,
	producer EventProducer,
	kafkaBrokers []string,
	orderCacheTTL time.Duration,
) *OrderService {
	return &OrderService{
		orderRepo:        orderRepo,
		notificationRepo: notificationRepo,
		cartService:      cartService,
		couponService:    couponService,
		cache:            cache,
		producer:         producer,
		kafkaBrokers:     kafkaBrokers,
		orderCacheTTL:    orderCacheTTL,
		inFlight:         make(map[string]bool),
	}
}

// Checkout creates an order from the user's current cart. On success the
// cart is cleared, the coupon reset and the cached order list refreshed; on
// any failure the cart is left untouched so the user can retry.
func (s *OrderService) Checkout(ctx context.Context, userID string) (*models.Order, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	if !s.begin(userID) {
		return nil, ErrCheckoutInFlight
	}
	defer s.end(userID)

	lines := s.cartService.Lines(userID)
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	summary := s.cartService.BillSummary(userID)

	order := &models.Order{
		UserID:    userUUID,
		Total:     summary.Total,
		Status:    models.StatusPending,
		CreatedAt: time.Now(),
	}
	for _, line := range lines {
		order.Items = append(order.Items, models.OrderItem{
			ItemName: line.Name,
			Quantity: line.Quantity,
			Price:    line.Price,
		})
	}

	if err := s.orderRepo.CreateWithItems(ctx, order); err != nil {
		return nil, err
	}

	if coupon, _, ok := s.cartService.AppliedCoupon(userID); ok {
		if err := s.couponService.MarkUsed(ctx, coupon); err != nil {
			log.Printf("failed to record coupon usage for %s: %v", coupon.Code, err)
		}
	}

	s.refreshOrderCache(ctx, userUUID)
	s.notifyOrderCreated(ctx, order)

	s.cartService.CompleteCheckout(userID)

	return order, nil
}

func (s *OrderService) begin(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight[userID] {
		return false
	}
	s.inFlight[userID] = true
	return true
}

func (s *OrderService) end(userID string) {
	s.mu.Lock()
	delete(s.inFlight, userID)
	s.mu.Unlock()
}

// GetUserOrders returns the user's order history, newest first, serving
// from the Redis cache when warm.
func (s *OrderService) GetUserOrders(ctx context.Context, userID string, limit, offset int) ([]models.Order, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	if offset == 0 && s.cache != nil {
		var cached []models.Order
		if err := s.cache.Get(ctx, orderCacheKey(userUUID), &cached); err == nil {
			// The cache holds a full first page; honor a smaller limit.
			if len(cached) > limit {
				cached = cached[:limit]
			}
			return cached, nil
		}
	}

	orders, err := s.orderRepo.GetByUserID(ctx, userUUID, limit, offset)
	if err != nil {
		return nil, err
	}

	if offset == 0 && s.cache != nil {
		s.cache.Set(ctx, orderCacheKey(userUUID), orders, s.orderCacheTTL)
	}

	return orders, nil
}

// GetOrderByID returns a single order, gated to its owner.
func (s *OrderService) GetOrderByID(ctx context.Context, orderID, userID string) (*models.Order, error) {
	orderUUID, err := uuid.Parse(orderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	order, err := s.orderRepo.GetByID(ctx, orderUUID)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	if order.UserID.String() != userID {
		return nil, ErrOrderNotFound
	}

	return order, nil
}

// Status flow: pending -> preparing -> delivering -> completed, with
// cancellation possible from any non-terminal state. Only the backend ever
// moves an order; clients create orders in pending and read from there.
var validTransitions = map[string][]string{
	models.StatusPending:    {models.StatusPreparing, models.StatusCancelled},
	models.StatusPreparing:  {models.StatusDelivering, models.StatusCancelled},
	models.StatusDelivering: {models.StatusCompleted, models.StatusCancelled},
	models.StatusCompleted:  {},
	models.StatusCancelled:  {},
}

// UpdateOrderStatus is the staff-facing transition operation.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID, newStatus string) error {
	orderUUID, err := uuid.Parse(orderID)
	if err != nil {
		return ErrOrderNotFound
	}

	order, err := s.orderRepo.GetByID(ctx, orderUUID)
	if err != nil {
		return ErrOrderNotFound
	}

	if !isValidTransition(order.Status, newStatus) {
		return ErrInvalidTransition
	}

	order.Status = newStatus
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return err
	}

	s.refreshOrderCache(ctx, order.UserID)
	s.notifyStatusUpdate(ctx, order, newStatus)

	return nil
}

func isValidTransition(current, next string) bool {
	for _, allowed := range validTransitions[current] {
		if next == allowed {
			return true
		}
	}
	return false
}

func (s *OrderService) refreshOrderCache(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}

	key := orderCacheKey(userID)
	s.cache.Delete(ctx, key)

	orders, err := s.orderRepo.GetByUserID(ctx, userID, 20, 0)
	if err != nil {
		log.Printf("failed to refresh order cache for %s: %v", userID, err)
		return
	}
	s.cache.Set(ctx, key, orders, s.orderCacheTTL)
}

func (s *OrderService) notifyOrderCreated(ctx context.Context, order *models.Order) {
	notification := &models.Notification{
		UserID:    order.UserID,
		Type:      "order_confirmation",
		Title:     "Order Confirmed",
		Message:   fmt.Sprintf("Your order #%s has been received", order.ID.String()[:8]),
		CreatedAt: time.Now(),
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		log.Printf("failed to store order notification: %v", err)
	}

	if s.producer == nil {
		return
	}

	orderEvent := messaging.OrderEvent{
		Type:    "order_created",
		OrderID: order.ID.String(),
		UserID:  order.UserID.String(),
		Data:    order,
	}
	if err := s.producer.SendMessage("order_events", s.kafkaBrokers, order.ID.String(), orderEvent); err != nil {
		log.Printf("failed to publish order event: %v", err)
	}

	notificationEvent := messaging.NotificationEvent{
		Type:    "order_confirmation",
		UserID:  order.UserID.String(),
		Title:   notification.Title,
		Message: notification.Message,
		Metadata: map[string]interface{}{
			"order_id": order.ID.String(),
			"total":    order.Total,
		},
	}
	if err := s.producer.SendMessage("notification_events", s.kafkaBrokers, order.UserID.String(), notificationEvent); err != nil {
		log.Printf("failed to publish notification event: %v", err)
	}
}

func (s *OrderService) notifyStatusUpdate(ctx context.Context, order *models.Order, status string) {
	notification := &models.Notification{
		UserID:    order.UserID,
		Type:      "order_status_update",
		Title:     "Order Update",
		Message:   statusMessage(status),
		CreatedAt: time.Now(),
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		log.Printf("failed to store status notification: %v", err)
	}

	if s.producer == nil {
		return
	}

	event := messaging.OrderEvent{
		Type:    "order_status_updated",
		OrderID: order.ID.String(),
		UserID:  order.UserID.String(),
		Data: map[string]interface{}{
			"order_id": order.ID.String(),
			"status":   status,
		},
	}
	if err := s.producer.SendMessage("order_events", s.kafkaBrokers, order.ID.String(), event); err != nil {
		log.Printf("failed to publish status event: %v", err)
	}
}

func statusMessage(status string) string {
	messages := map[string]string{
		models.StatusPreparing:  "Your order is being prepared",
		models.StatusDelivering: "Your order is on the way",
		models.StatusCompleted:  "Your order has been delivered",
		models.StatusCancelled:  "Your order has been cancelled",
	}

	if message, exists := messages[status]; exists {
		return message
	}
	return "Your order status has been updated"
}

func orderCacheKey(userID uuid.UUID) string {
	return "orders:" + userID.String()
}
