package devapi

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wishcrate/storefront/client"
)

var (
	freeShippingThreshold = decimal.NewFromInt(50)
	flatShippingCost      = decimal.NewFromInt(10)
	taxRate               = decimal.NewFromFloat(0.10)
)

type createOrderRequest struct {
	ShippingAddress client.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   client.PaymentMethod   `json:"paymentMethod"`
}

func validPaymentMethod(m client.PaymentMethod) bool {
	switch m {
	case client.PaymentCreditCard, client.PaymentDebitCard, client.PaymentPayPal,
		client.PaymentStripe, client.PaymentCOD:
		return true
	}
	return false
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if !validPaymentMethod(req.PaymentMethod) {
		jsonError(w, "invalid payment method", http.StatusBadRequest)
		return
	}
	if req.ShippingAddress.AddressLine1 == "" || req.ShippingAddress.City == "" {
		jsonError(w, "shipping address is required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	if len(lines) == 0 {
		jsonError(w, "cart is empty", http.StatusBadRequest)
		return
	}

	// Validate stock across the whole cart before mutating anything.
	for _, line := range lines {
		prod, ok := s.products[line.productID]
		if !ok || !prod.Active {
			jsonError(w, "product no longer available", http.StatusConflict)
			return
		}
		if line.quantity > prod.StockQuantity {
			jsonError(w, "insufficient stock", http.StatusConflict)
			return
		}
	}

	subtotal := decimal.Zero
	items := make([]client.OrderItem, 0, len(lines))
	for _, line := range lines {
		prod := s.products[line.productID]
		price := prod.EffectivePrice()
		lineTotal := price.Mul(decimal.NewFromInt(int64(line.quantity)))

		prod.StockQuantity -= line.quantity
		snapshot := *prod
		items = append(items, client.OrderItem{
			ID:       s.allocID(),
			Product:  &snapshot,
			Quantity: line.quantity,
			Price:    price,
			Subtotal: lineTotal,
		})
		subtotal = subtotal.Add(lineTotal)
	}

	shipping := flatShippingCost
	if subtotal.GreaterThanOrEqual(freeShippingThreshold) {
		shipping = decimal.Zero
	}
	tax := subtotal.Mul(taxRate).Round(2)

	addr := req.ShippingAddress
	order := &client.Order{
		ID:              s.allocID(),
		OrderNumber:     "WC-" + strings.ToUpper(uuid.NewString()[:8]),
		Items:           items,
		Subtotal:        subtotal,
		Tax:             tax,
		ShippingCost:    shipping,
		TotalAmount:     subtotal.Add(tax).Add(shipping),
		Status:          client.OrderPending,
		PaymentStatus:   client.PaymentPending,
		PaymentMethod:   req.PaymentMethod,
		ShippingAddress: &addr,
		OrderDate:       time.Now().UTC(),
	}
	s.orders[userID] = append(s.orders[userID], order)
	delete(s.carts, userID)

	writeJSON(w, http.StatusOK, order)
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)
	p := readListParams(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]client.Order, 0, len(s.orders[userID]))
	for _, o := range s.orders[userID] {
		all = append(all, *o)
	}
	// Newest first, matching the order history screen.
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	total := len(all)
	start := p.page * p.size
	if start > total {
		start = total
	}
	end := start + p.size
	if end > total {
		end = total
	}
	writeJSON(w, http.StatusOK, client.Page[client.Order]{
		Content:       all[start:end],
		TotalElements: int64(total),
		TotalPages:    (total + p.size - 1) / p.size,
		Number:        p.page,
		Size:          p.size,
	})
}

func (s *Server) findOrder(userID, orderID int64) *client.Order {
	for _, o := range s.orders[userID] {
		if o.ID == orderID {
			return o
		}
	}
	return nil
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	order := s.findOrder(userID, pathID(r, "orderId"))
	if order == nil {
		jsonError(w, "order not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func cancellable(status client.OrderStatus) bool {
	switch status {
	case client.OrderPending, client.OrderConfirmed, client.OrderProcessing:
		return true
	}
	return false
}

func (s *Server) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	order := s.findOrder(userID, pathID(r, "orderId"))
	if order == nil {
		jsonError(w, "order not found", http.StatusNotFound)
		return
	}
	if !cancellable(order.Status) {
		jsonError(w, "order can no longer be cancelled", http.StatusConflict)
		return
	}

	// Cancelled stock goes back on the shelf.
	for _, item := range order.Items {
		if item.Product == nil {
			continue
		}
		if prod, ok := s.products[item.Product.ID]; ok {
			prod.StockQuantity += item.Quantity
		}
	}
	order.Status = client.OrderCancelled
	writeJSON(w, http.StatusOK, order)
}

func validOrderStatus(status client.OrderStatus) bool {
	switch status {
	case client.OrderPending, client.OrderConfirmed, client.OrderProcessing,
		client.OrderShipped, client.OrderDelivered, client.OrderCancelled,
		client.OrderReturned:
		return true
	}
	return false
}

func (s *Server) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID := pathID(r, "orderId")
	status := client.OrderStatus(r.URL.Query().Get("status"))
	if !validOrderStatus(status) {
		jsonError(w, "invalid order status", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Admin view spans all users.
	for userID := range s.orders {
		if order := s.findOrder(userID, orderID); order != nil {
			order.Status = status
			if status == client.OrderDelivered {
				order.PaymentStatus = client.PaymentPaid
			}
			writeJSON(w, http.StatusOK, order)
			return
		}
	}
	jsonError(w, "order not found", http.StatusNotFound)
}

// =============================================================================
// Addresses
// =============================================================================

func (s *Server) handleListAddresses(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.addresses[userID]
	if out == nil {
		out = []client.Address{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSaveAddress(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)

	var addr client.Address
	if err := json.NewDecoder(r.Body).Decode(&addr); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if addr.AddressLine1 == "" || addr.City == "" {
		jsonError(w, "address line and city are required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	addr.ID = s.allocID()
	s.addresses[userID] = append(s.addresses[userID], addr)
	writeJSON(w, http.StatusOK, addr)
}

func (s *Server) handleDeleteAddress(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)
	addrID := pathID(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.addresses[userID]
	for i, a := range list {
		if a.ID == addrID {
			s.addresses[userID] = append(list[:i], list[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	jsonError(w, "address not found", http.StatusNotFound)
}

// =============================================================================
// Admin stats
// =============================================================================

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := client.AdminStats{
		TotalProducts:   int64(len(s.products)),
		TotalUsers:      int64(len(s.users)),
		TotalCategories: int64(len(s.categories)),
	}
	for _, p := range s.products {
		if p.Active {
			stats.ActiveProducts++
		}
	}
	for _, orders := range s.orders {
		stats.TotalOrders += int64(len(orders))
		for _, o := range orders {
			if o.Status == client.OrderPending {
				stats.PendingOrders++
			}
		}
	}
	writeJSON(w, http.StatusOK, stats)
}
