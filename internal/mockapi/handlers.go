package mockapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/chrisdamba/foodstore/internal/models"
	"github.com/gorilla/mux"
)

func (s *Server) root(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, "Foodstore API is running!")
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "foodstore-mock",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// Restaurants

func (s *Server) listRestaurants(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, s.store.ListRestaurants(q.Get("category"), q.Get("search")))
}

func (s *Server) getRestaurant(w http.ResponseWriter, r *http.Request) {
	restaurant, err := s.store.GetRestaurant(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, "Restaurant not found")
		return
	}
	writeJSON(w, http.StatusOK, restaurant)
}

func (s *Server) createRestaurant(w http.ResponseWriter, r *http.Request) {
	var restaurant models.Restaurant
	if !decode(w, r, &restaurant) {
		return
	}
	writeJSON(w, http.StatusOK, s.store.CreateRestaurant(restaurant))
}

func (s *Server) updateRestaurant(w http.ResponseWriter, r *http.Request) {
	var update models.RestaurantUpdate
	if !decode(w, r, &update) {
		return
	}
	restaurant, err := s.store.UpdateRestaurant(mux.Vars(r)["id"], update)
	if err != nil {
		writeError(w, http.StatusNotFound, "Restaurant not found")
		return
	}
	writeJSON(w, http.StatusOK, restaurant)
}

func (s *Server) deleteRestaurant(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteRestaurant(mux.Vars(r)["id"]); err != nil {
		writeError(w, http.StatusNotFound, "Restaurant not found")
		return
	}
	writeMessage(w, "Restaurant deleted successfully")
}

func (s *Server) getMenu(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Menu(mux.Vars(r)["id"]))
}

// Categories

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Categories())
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var category models.Category
	if !decode(w, r, &category) {
		return
	}
	if category.Name == "" {
		writeError(w, http.StatusUnprocessableEntity, "name is required")
		return
	}
	writeJSON(w, http.StatusOK, s.store.CreateCategory(category))
}

// Menu items

func (s *Server) createMenuItem(w http.ResponseWriter, r *http.Request) {
	var item models.MenuItem
	if !decode(w, r, &item) {
		return
	}
	created, err := s.store.CreateMenuItem(item)
	if err != nil {
		writeError(w, http.StatusNotFound, "Restaurant not found")
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (s *Server) getMenuItem(w http.ResponseWriter, r *http.Request) {
	item, err := s.store.GetMenuItem(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, "Menu item not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	var update models.MenuItemUpdate
	if !decode(w, r, &update) {
		return
	}
	item, err := s.store.UpdateMenuItem(mux.Vars(r)["id"], update)
	if err != nil {
		writeError(w, http.StatusNotFound, "Menu item not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteMenuItem(mux.Vars(r)["id"]); err != nil {
		writeError(w, http.StatusNotFound, "Menu item not found")
		return
	}
	writeMessage(w, "Menu item deleted successfully")
}

// Users

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var reg models.Registration
	if !decode(w, r, &reg) {
		return
	}
	if reg.Email == "" || reg.Password == "" || reg.Name == "" {
		writeError(w, http.StatusUnprocessableEntity, "name, email and password are required")
		return
	}
	hash, err := HashPassword(reg.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not register user")
		return
	}
	if _, err := s.store.CreateUser(reg, hash); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			writeError(w, http.StatusBadRequest, "Email already registered")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeToken(w, reg.Email)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if !decode(w, r, &creds) {
		return
	}
	user, hash, err := s.store.credentials(creds.Email)
	if err != nil || !CheckPassword(hash, creds.Password) {
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeError(w, http.StatusUnauthorized, "Incorrect email or password")
		return
	}
	s.writeToken(w, user.Email)
}

func (s *Server) writeToken(w http.ResponseWriter, email string) {
	token, err := s.auth.IssueToken(email)
	if err != nil {
		s.logger.Error("failed to issue token", "error", err)
		writeError(w, http.StatusInternalServerError, "Could not issue token")
		return
	}
	writeJSON(w, http.StatusOK, models.Token{AccessToken: token, TokenType: "bearer"})
}

func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	user, err := s.store.User(emailFrom(r.Context()))
	if err != nil {
		writeError(w, http.StatusUnauthorized, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	var update models.ProfileUpdate
	if !decode(w, r, &update) {
		return
	}
	user, err := s.store.UpdateProfile(emailFrom(r.Context()), update)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) addAddress(w http.ResponseWriter, r *http.Request) {
	var address models.UserAddress
	if !decode(w, r, &address) {
		return
	}
	if err := s.store.AddAddress(emailFrom(r.Context()), address); err != nil {
		writeError(w, http.StatusUnauthorized, "User not found")
		return
	}
	writeMessage(w, "Address added successfully")
}

func (s *Server) updateAddress(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "address index must be an integer")
		return
	}
	var address models.UserAddress
	if !decode(w, r, &address) {
		return
	}
	if err := s.store.UpdateAddress(emailFrom(r.Context()), index, address); err != nil {
		writeError(w, http.StatusNotFound, "Address not found")
		return
	}
	writeMessage(w, "Address updated successfully")
}

// Orders

func (s *Server) currentUser(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	user, err := s.store.User(emailFrom(r.Context()))
	if err != nil {
		writeError(w, http.StatusUnauthorized, "User not found")
		return models.User{}, false
	}
	return user, true
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	var req models.OrderRequest
	if !decode(w, r, &req) {
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "order has no items")
		return
	}
	order, err := s.store.CreateOrder(user.ID, req)
	if err != nil {
		writeError(w, http.StatusNotFound, "Restaurant not found")
		return
	}
	s.logger.Info("order created", "order_id", order.ID, "restaurant_id", order.RestaurantID, "total", order.Total)
	writeJSON(w, http.StatusOK, order)
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.store.OrdersFor(user.ID))
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	order, err := s.store.Order(user.ID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (s *Server) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if !decode(w, r, &body) {
		return
	}
	if !models.IsValidOrderStatus(body.Status) {
		writeError(w, http.StatusBadRequest, "Invalid status")
		return
	}
	if err := s.store.UpdateOrderStatus(mux.Vars(r)["id"], body.Status); err != nil {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}
	writeMessage(w, "Order status updated to "+body.Status)
}
