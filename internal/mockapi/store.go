package mockapi

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/chrisdamba/foodstore/internal/catalog"
	"github.com/chrisdamba/foodstore/internal/factories"
	"github.com/chrisdamba/foodstore/internal/models"
	"github.com/lucsky/cuid"
)

// PromoCategory lists restaurants running a promotion.
const PromoCategory = "Promocões"

var (
	ErrNotFound     = errors.New("not found")
	ErrEmailTaken   = errors.New("email already registered")
	ErrBadAddressID = errors.New("address not found")
)

type userRecord struct {
	user         models.User
	passwordHash []byte
}

// Store is the in-memory database of the development backend.
type Store struct {
	mu          sync.RWMutex
	restaurants []models.Restaurant
	menuItems   []models.MenuItem
	categories  []models.Category
	users       map[string]*userRecord // by email
	orders      []models.Order
	now         func() time.Time
}

// NewStore seeds the store with the fallback catalog plus extra generated
// restaurants.
func NewStore(extraRestaurants int) *Store {
	fb := catalog.NewFallback()
	s := &Store{
		restaurants: fb.Restaurants(),
		categories:  fb.Categories(),
		users:       make(map[string]*userRecord),
		now:         func() time.Time { return time.Now().UTC() },
	}
	for i, r := range s.restaurants {
		s.restaurants[i] = cloneRestaurant(r)
		s.menuItems = append(s.menuItems, fb.Menu(r.ID)...)
	}

	rf := &factories.RestaurantFactory{}
	mf := &factories.MenuItemFactory{}
	for i := 0; i < extraRestaurants; i++ {
		r := rf.CreateRestaurant()
		s.restaurants = append(s.restaurants, r)
		s.menuItems = append(s.menuItems, mf.CreateMenu(r, 4, 10)...)
	}
	return s
}

// cloneRestaurant, cloneUser and cloneOrder detach values from the records
// held by the store.
func cloneRestaurant(r models.Restaurant) models.Restaurant {
	if r.Promo != nil {
		promo := *r.Promo
		r.Promo = &promo
	}
	if r.Categories != nil {
		r.Categories = append([]string{}, r.Categories...)
	}
	return r
}

func cloneUser(u models.User) models.User {
	if u.Addresses != nil {
		u.Addresses = append([]models.UserAddress{}, u.Addresses...)
	}
	return u
}

func cloneOrder(o models.Order) models.Order {
	if o.Items != nil {
		o.Items = append([]models.OrderItem{}, o.Items...)
	}
	return o
}

// matchesCategory follows the backend rules: the promo category selects
// restaurants with a promo, any other matches cuisine or category tags.
func matchesCategory(r models.Restaurant, category string) bool {
	if category == "" || category == models.CategoryAll {
		return true
	}
	if category == PromoCategory {
		return r.Promo != nil
	}
	return containsFold(r.Cuisine, category) || r.HasCategory(category)
}

func matchesSearch(r models.Restaurant, term string) bool {
	if term == "" {
		return true
	}
	return containsFold(r.Name, term) || containsFold(r.Description, term) || containsFold(r.Cuisine, term)
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// Restaurants

func (s *Store) ListRestaurants(category, search string) []models.Restaurant {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Restaurant{}
	for _, r := range s.restaurants {
		if !matchesSearch(r, search) {
			continue
		}
		// a search term replaces the cuisine match but keeps the promo filter
		if search != "" && category != PromoCategory {
			out = append(out, cloneRestaurant(r))
			continue
		}
		if matchesCategory(r, category) {
			out = append(out, cloneRestaurant(r))
		}
	}
	return out
}

func (s *Store) restaurantIndex(id string) int {
	for i, r := range s.restaurants {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) GetRestaurant(id string) (models.Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.restaurantIndex(id)
	if i < 0 {
		return models.Restaurant{}, ErrNotFound
	}
	return cloneRestaurant(s.restaurants[i]), nil
}

func (s *Store) CreateRestaurant(r models.Restaurant) models.Restaurant {
	s.mu.Lock()
	defer s.mu.Unlock()
	r = cloneRestaurant(r)
	r.ID = cuid.New()
	s.restaurants = append(s.restaurants, r)
	return cloneRestaurant(r)
}

func (s *Store) UpdateRestaurant(id string, u models.RestaurantUpdate) (models.Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.restaurantIndex(id)
	if i < 0 {
		return models.Restaurant{}, ErrNotFound
	}
	r := &s.restaurants[i]
	setString(&r.Name, u.Name)
	setString(&r.Description, u.Description)
	setString(&r.Image, u.Image)
	setString(&r.Cuisine, u.Cuisine)
	setString(&r.DeliveryTime, u.DeliveryTime)
	if u.Rating != nil {
		r.Rating = *u.Rating
	}
	if u.DeliveryFee != nil {
		r.DeliveryFee = *u.DeliveryFee
	}
	if u.IsOpen != nil {
		r.IsOpen = *u.IsOpen
	}
	if u.Promo != nil {
		promo := *u.Promo
		r.Promo = &promo
	}
	if u.Categories != nil {
		r.Categories = append([]string(nil), u.Categories...)
	}
	return cloneRestaurant(*r), nil
}

func (s *Store) DeleteRestaurant(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.restaurantIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	s.restaurants = append(s.restaurants[:i], s.restaurants[i+1:]...)
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// Menu items

func (s *Store) Menu(restaurantID string) []models.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.MenuItem{}
	for _, item := range s.menuItems {
		if item.RestaurantID == restaurantID {
			out = append(out, item)
		}
	}
	return out
}

func (s *Store) menuItemIndex(id string) int {
	for i, item := range s.menuItems {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) GetMenuItem(id string) (models.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.menuItemIndex(id)
	if i < 0 {
		return models.MenuItem{}, ErrNotFound
	}
	return s.menuItems[i], nil
}

func (s *Store) CreateMenuItem(item models.MenuItem) (models.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.restaurantIndex(item.RestaurantID) < 0 {
		return models.MenuItem{}, ErrNotFound
	}
	item.ID = cuid.New()
	s.menuItems = append(s.menuItems, item)
	return item, nil
}

func (s *Store) UpdateMenuItem(id string, u models.MenuItemUpdate) (models.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.menuItemIndex(id)
	if i < 0 {
		return models.MenuItem{}, ErrNotFound
	}
	item := &s.menuItems[i]
	setString(&item.Name, u.Name)
	setString(&item.Description, u.Description)
	setString(&item.Image, u.Image)
	setString(&item.Category, u.Category)
	if u.Price != nil {
		item.Price = *u.Price
	}
	if u.IsAvailable != nil {
		item.IsAvailable = *u.IsAvailable
	}
	return *item, nil
}

func (s *Store) DeleteMenuItem(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.menuItemIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	s.menuItems = append(s.menuItems[:i], s.menuItems[i+1:]...)
	return nil
}

// Categories

func (s *Store) Categories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Category{}, s.categories...)
}

func (s *Store) CreateCategory(c models.Category) models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = cuid.New()
	s.categories = append(s.categories, c)
	return c
}

// Users

func (s *Store) CreateUser(reg models.Registration, passwordHash []byte) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(reg.Email)
	if _, exists := s.users[key]; exists {
		return models.User{}, ErrEmailTaken
	}
	now := s.now()
	u := models.User{
		ID:        cuid.New(),
		Name:      reg.Name,
		Email:     reg.Email,
		Phone:     reg.Phone,
		Addresses: []models.UserAddress{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.users[key] = &userRecord{user: u, passwordHash: passwordHash}
	return cloneUser(u), nil
}

// PutUser inserts a ready-made user, replacing any user with the same email.
func (s *Store) PutUser(u models.User, passwordHash []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[strings.ToLower(u.Email)] = &userRecord{user: cloneUser(u), passwordHash: passwordHash}
}

func (s *Store) credentials(email string) (models.User, []byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.users[strings.ToLower(email)]
	if !ok {
		return models.User{}, nil, ErrNotFound
	}
	return cloneUser(rec.user), rec.passwordHash, nil
}

func (s *Store) User(email string) (models.User, error) {
	u, _, err := s.credentials(email)
	return u, err
}

func (s *Store) UpdateProfile(email string, u models.ProfileUpdate) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[strings.ToLower(email)]
	if !ok {
		return models.User{}, ErrNotFound
	}
	setString(&rec.user.Name, u.Name)
	setString(&rec.user.Phone, u.Phone)
	rec.user.UpdatedAt = s.now()
	return cloneUser(rec.user), nil
}

// AddAddress appends an address. The first address, or one flagged default,
// becomes the only default.
func (s *Store) AddAddress(email string, a models.UserAddress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[strings.ToLower(email)]
	if !ok {
		return ErrNotFound
	}
	if len(rec.user.Addresses) == 0 || a.IsDefault {
		clearDefaults(rec.user.Addresses)
		a.IsDefault = true
	}
	rec.user.Addresses = append(rec.user.Addresses, a)
	return nil
}

func (s *Store) UpdateAddress(email string, index int, a models.UserAddress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[strings.ToLower(email)]
	if !ok {
		return ErrNotFound
	}
	if index < 0 || index >= len(rec.user.Addresses) {
		return ErrBadAddressID
	}
	if a.IsDefault {
		clearDefaults(rec.user.Addresses)
	}
	rec.user.Addresses[index] = a
	return nil
}

func clearDefaults(addresses []models.UserAddress) {
	for i := range addresses {
		addresses[i].IsDefault = false
	}
}

// Orders

func (s *Store) CreateOrder(userID string, req models.OrderRequest) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.restaurantIndex(req.RestaurantID)
	if i < 0 {
		return models.Order{}, ErrNotFound
	}
	now := s.now()
	o := models.Order{
		ID:              cuid.New(),
		UserID:          userID,
		RestaurantID:    req.RestaurantID,
		RestaurantName:  s.restaurants[i].Name,
		Items:           req.Items,
		DeliveryAddress: req.DeliveryAddress,
		PaymentMethod:   req.PaymentMethod,
		Subtotal:        req.Subtotal,
		DeliveryFee:     req.DeliveryFee,
		ServiceFee:      req.ServiceFee,
		Total:           req.Total,
		Status:          models.OrderStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	o = cloneOrder(o)
	s.orders = append(s.orders, o)
	return cloneOrder(o), nil
}

// OrdersFor returns a user's orders, newest first.
func (s *Store) OrdersFor(userID string) []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Order{}
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, cloneOrder(o))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *Store) Order(userID, id string) (models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.ID == id && o.UserID == userID {
			return cloneOrder(o), nil
		}
	}
	return models.Order{}, ErrNotFound
}

func (s *Store) UpdateOrderStatus(id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i].Status = status
			s.orders[i].UpdatedAt = s.now()
			return nil
		}
	}
	return ErrNotFound
}
