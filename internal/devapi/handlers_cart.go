package devapi

import (
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/wishcrate/storefront/client"
)

// buildCart assembles the response view of a user's cart. Totals are
// computed here from current product prices; callers hold s.mu.
func (s *Server) buildCart(userID int64) client.Cart {
	cart := client.Cart{
		ID:          userID,
		Items:       []client.CartItem{},
		TotalAmount: decimal.Zero,
	}
	for _, line := range s.carts[userID] {
		prod, ok := s.products[line.productID]
		if !ok {
			continue
		}
		price := prod.EffectivePrice()
		subtotal := price.Mul(decimal.NewFromInt(int64(line.quantity)))
		cart.Items = append(cart.Items, client.CartItem{
			ID:           line.id,
			ProductID:    prod.ID,
			ProductName:  prod.Name,
			ProductImage: prod.ImageURL,
			Price:        price,
			Quantity:     line.quantity,
			Subtotal:     subtotal,
		})
		cart.TotalAmount = cart.TotalAmount.Add(subtotal)
		cart.TotalItems += line.quantity
	}
	return cart
}

func readQuantity(r *http.Request) (int, bool) {
	qty, err := strconv.Atoi(r.URL.Query().Get("quantity"))
	if err != nil || qty < 1 {
		return 0, false
	}
	return qty, true
}

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	writeJSON(w, http.StatusOK, s.buildCart(userID))
}

func (s *Server) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)

	productID, err := strconv.ParseInt(r.URL.Query().Get("productId"), 10, 64)
	if err != nil {
		jsonError(w, "productId is required", http.StatusBadRequest)
		return
	}
	qty, ok := readQuantity(r)
	if !ok {
		jsonError(w, "quantity must be at least 1", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prod, found := s.products[productID]
	if !found || !prod.Active {
		jsonError(w, "product not found", http.StatusNotFound)
		return
	}

	// Adding an already-carted product merges into the existing line.
	var line *cartLine
	for _, l := range s.carts[userID] {
		if l.productID == productID {
			line = l
			break
		}
	}
	requested := qty
	if line != nil {
		requested += line.quantity
	}
	if requested > prod.StockQuantity {
		jsonError(w, "insufficient stock", http.StatusConflict)
		return
	}

	if line != nil {
		line.quantity = requested
	} else {
		s.carts[userID] = append(s.carts[userID], &cartLine{
			id:        s.allocID(),
			productID: productID,
			quantity:  qty,
		})
	}
	writeJSON(w, http.StatusOK, s.buildCart(userID))
}

func (s *Server) handleUpdateCartItem(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)
	itemID := pathID(r, "id")

	qty, ok := readQuantity(r)
	if !ok {
		jsonError(w, "quantity must be at least 1", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, line := range s.carts[userID] {
		if line.id != itemID {
			continue
		}
		if prod, found := s.products[line.productID]; found && qty > prod.StockQuantity {
			jsonError(w, "insufficient stock", http.StatusConflict)
			return
		}
		line.quantity = qty
		writeJSON(w, http.StatusOK, s.buildCart(userID))
		return
	}
	jsonError(w, "cart item not found", http.StatusNotFound)
}

func (s *Server) handleRemoveCartItem(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)
	itemID := pathID(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	for i, line := range lines {
		if line.id == itemID {
			s.carts[userID] = append(lines[:i], lines[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	jsonError(w, "cart item not found", http.StatusNotFound)
}

func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, userID)
	w.WriteHeader(http.StatusNoContent)
}
