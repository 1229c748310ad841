package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/chrisdamba/foodstore/internal/models"
	"github.com/chrisdamba/foodstore/internal/session"
)

func renderSnapshot(w io.Writer, snap session.Snapshot, sortBy string) {
	header := fmt.Sprintf("== %s | cart: %d item(s)", snap.View, snap.CartCount)
	if snap.Offline {
		header += " | offline"
	}
	fmt.Fprintln(w, header+" ==")

	switch snap.View {
	case session.ViewHome:
		renderCategories(w, snap.Categories)
		fmt.Fprintln(w)
		renderRestaurants(w, models.SortRestaurants(snap.Restaurants, sortBy))
	case session.ViewRestaurantList:
		switch {
		case snap.SelectedCategory != nil:
			fmt.Fprintf(w, "Category: %s\n", snap.SelectedCategory.Name)
		case snap.SearchTerm != "":
			fmt.Fprintf(w, "Search: %q\n", snap.SearchTerm)
		}
		renderRestaurants(w, models.SortRestaurants(snap.Restaurants, sortBy))
	case session.ViewRestaurantDetail:
		renderRestaurantDetail(w, snap)
	case session.ViewCart:
		renderCart(w, snap)
	}
}

func renderCategories(w io.Writer, categories []models.Category) {
	fmt.Fprintln(w, "Categories:")
	for _, c := range categories {
		fmt.Fprintf(w, "  [%s] %s %s\n", c.ID, c.Icon, c.Name)
	}
}

func renderRestaurants(w io.Writer, restaurants []models.Restaurant) {
	if len(restaurants) == 0 {
		fmt.Fprintln(w, "No restaurants found.")
		return
	}
	fmt.Fprintln(w, "Restaurants:")
	for _, r := range restaurants {
		status := ""
		if !r.IsOpen {
			status = " (closed)"
		}
		fmt.Fprintf(w, "  [%s] %s%s - %s, %.1f★, %s, delivery %s\n",
			r.ID, r.Name, status, r.Cuisine, r.Rating, r.DeliveryTime, formatMoney(r.DeliveryFee))
		if r.Promo != nil {
			fmt.Fprintf(w, "      %s\n", *r.Promo)
		}
	}
}

func renderRestaurantDetail(w io.Writer, snap session.Snapshot) {
	if r := snap.SelectedRestaurant; r != nil {
		fmt.Fprintf(w, "%s - %s\n%s\n", r.Name, r.Cuisine, r.Description)
		if len(r.Categories) > 0 {
			fmt.Fprintf(w, "Tags: %s\n", strings.Join(r.Categories, ", "))
		}
	}
	if len(snap.Menu) == 0 {
		fmt.Fprintln(w, "No menu available.")
		return
	}
	fmt.Fprintln(w, "Menu:")
	for _, item := range snap.Menu {
		availability := ""
		if !item.IsAvailable {
			availability = " (unavailable)"
		}
		fmt.Fprintf(w, "  [%s] %s%s - %s\n", item.ID, item.Name, availability, formatMoney(item.Price))
	}
}

func renderCart(w io.Writer, snap session.Snapshot) {
	if len(snap.Cart) == 0 {
		fmt.Fprintln(w, "Your cart is empty.")
		return
	}
	fmt.Fprintln(w, "Cart:")
	for i, line := range snap.Cart {
		fmt.Fprintf(w, "  %d. %s x%d  %s\n", i+1, line.Name, line.Quantity, formatMoney(line.LineTotal()))
	}
	t := snap.Totals
	fmt.Fprintf(w, "Subtotal:     %s\n", formatMoney(t.Subtotal))
	fmt.Fprintf(w, "Delivery fee: %s\n", formatMoney(t.DeliveryFee))
	fmt.Fprintf(w, "Service fee:  %s\n", formatMoney(t.ServiceFee))
	fmt.Fprintf(w, "Total:        %s\n", formatMoney(t.Total))
}

func renderNotification(w io.Writer, n session.Notification) {
	fmt.Fprintf(w, "[%s] %s: %s\n", n.Level, n.Title, n.Message)
}
