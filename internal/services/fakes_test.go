package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"nawi-delivery-backend/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errNotFound = errors.New("not found")

// In-memory repository fakes. Each one implements just enough of its
// interface for the service tests; unused methods return errNotFound.

type fakeMenuRepo struct {
	items map[string]*models.MenuItem
}

func newFakeMenuRepo() *fakeMenuRepo {
	return &fakeMenuRepo{items: make(map[string]*models.MenuItem)}
}

func (f *fakeMenuRepo) add(item *models.MenuItem) {
	f.items[item.ID.Hex()] = item
}

func (f *fakeMenuRepo) Create(ctx context.Context, item *models.MenuItem) error {
	f.add(item)
	return nil
}

func (f *fakeMenuRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error) {
	item, ok := f.items[id.Hex()]
	if !ok {
		return nil, errNotFound
	}
	return item, nil
}

func (f *fakeMenuRepo) GetByRestaurantID(ctx context.Context, restaurantID string, category string) ([]models.MenuItem, error) {
	var out []models.MenuItem
	for _, item := range f.items {
		if item.RestaurantID != restaurantID {
			continue
		}
		if category != "" && item.Category != category {
			continue
		}
		out = append(out, *item)
	}
	return out, nil
}

func (f *fakeMenuRepo) Update(ctx context.Context, item *models.MenuItem) error {
	f.add(item)
	return nil
}

func (f *fakeMenuRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(f.items, id.Hex())
	return nil
}

type fakeCouponRepo struct {
	coupons map[string]*models.Coupon // keyed by upper-cased code
}

func newFakeCouponRepo() *fakeCouponRepo {
	return &fakeCouponRepo{coupons: make(map[string]*models.Coupon)}
}

func (f *fakeCouponRepo) Create(ctx context.Context, coupon *models.Coupon) error {
	if coupon.ID == uuid.Nil {
		coupon.ID = uuid.New()
	}
	f.coupons[strings.ToUpper(coupon.Code)] = coupon
	return nil
}

func (f *fakeCouponRepo) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	coupon, ok := f.coupons[strings.ToUpper(code)]
	if !ok {
		return nil, errNotFound
	}
	return coupon, nil
}

func (f *fakeCouponRepo) Update(ctx context.Context, coupon *models.Coupon) error {
	f.coupons[strings.ToUpper(coupon.Code)] = coupon
	return nil
}

func (f *fakeCouponRepo) GetActive(ctx context.Context, limit, offset int) ([]models.Coupon, error) {
	var out []models.Coupon
	for _, c := range f.coupons {
		if c.IsActive {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCouponRepo) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	for _, c := range f.coupons {
		if c.ID == id {
			c.UsedCount++
			return nil
		}
	}
	return errNotFound
}

type fakeOrderRepo struct {
	mu      sync.Mutex
	orders  []*models.Order
	failErr error         // returned by CreateWithItems when set
	entered chan struct{} // closed-over signal for concurrency tests
	release chan struct{} // CreateWithItems blocks on this when set
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{}
}

func (f *fakeOrderRepo) CreateWithItems(ctx context.Context, order *models.Order) error {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	if f.failErr != nil {
		return f.failErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	order.ID = uuid.New()
	for i := range order.Items {
		order.Items[i].ID = uuid.New()
		order.Items[i].OrderID = order.ID
	}
	f.orders = append([]*models.Order{order}, f.orders...)
	return nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, o := range f.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeOrderRepo) Update(ctx context.Context, order *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, o := range f.orders {
		if o.ID == order.ID {
			f.orders[i] = order
			return nil
		}
	}
	return errNotFound
}

func (f *fakeOrderRepo) GetByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) GetByStatus(ctx context.Context, status string, limit, offset int) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Order
	for _, o := range f.orders {
		if o.Status == status {
			out = append(out, *o)
		}
	}
	return out, nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []*models.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	n.ID = uuid.New()
	f.notifications = append([]*models.Notification{n}, f.notifications...)
	return nil
}

func (f *fakeNotificationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, n := range f.notifications {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeNotificationRepo) GetByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, n := range f.notifications {
		if n.ID == id {
			n.IsRead = true
			return nil
		}
	}
	return errNotFound
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	user.ID = uuid.New()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return nil, errNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.users, id)
	return nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*models.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]*models.Profile)}
}

func (f *fakeProfileRepo) Create(ctx context.Context, profile *models.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.profiles[profile.ID] = profile
	return nil
}

func (f *fakeProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	profile, ok := f.profiles[id]
	if !ok {
		return nil, errNotFound
	}
	return profile, nil
}

func (f *fakeProfileRepo) Update(ctx context.Context, profile *models.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.profiles[profile.ID] = profile
	return nil
}

// fakeCache is a map-backed stand-in for the Redis cache, storing values
// as JSON so Get exercises the same round-trip as the real thing.
type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.entries[key] = data
	f.mu.Unlock()
	return nil
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) error {
	f.mu.Lock()
	data, ok := f.entries[key]
	f.mu.Unlock()

	if !ok {
		return errNotFound
	}
	return json.Unmarshal(data, dest)
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	delete(f.entries, key)
	f.mu.Unlock()
	return nil
}

type producedMessage struct {
	Topic string
	Key   string
	Value interface{}
}

type fakeProducer struct {
	mu       sync.Mutex
	messages []producedMessage
}

func newFakeProducer() *fakeProducer {
	return &fakeProducer{}
}

func (f *fakeProducer) SendMessage(topic string, brokers []string, key string, value interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.messages = append(f.messages, producedMessage{Topic: topic, Key: key, Value: value})
	return nil
}

func (f *fakeProducer) byTopic(topic string) []producedMessage {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []producedMessage
	for _, m := range f.messages {
		if m.Topic == topic {
			out = append(out, m)
		}
	}
	return out
}
