package devapi

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/wishcrate/storefront/client"
)

const (
	defaultPageSize = 12
	maxPageSize     = 100
)

// listParams mirrors the backend's paging defaults: page 0, size 12,
// sort by id descending.
type listParams struct {
	page    int
	size    int
	sortBy  string
	sortDir string
}

func readListParams(r *http.Request) listParams {
	q := r.URL.Query()
	p := listParams{size: defaultPageSize, sortBy: "id", sortDir: "DESC"}

	if v, err := strconv.Atoi(q.Get("page")); err == nil && v >= 0 {
		p.page = v
	}
	if v, err := strconv.Atoi(q.Get("size")); err == nil && v > 0 {
		p.size = v
		if p.size > maxPageSize {
			p.size = maxPageSize
		}
	}
	if v := q.Get("sortBy"); v != "" {
		p.sortBy = v
	}
	if v := strings.ToUpper(q.Get("sortDir")); v == "ASC" || v == "DESC" {
		p.sortDir = v
	}
	return p
}

func sortProducts(products []client.Product, p listParams) {
	less := func(a, b client.Product) bool { return a.ID < b.ID }
	switch p.sortBy {
	case "name":
		less = func(a, b client.Product) bool { return a.Name < b.Name }
	case "price":
		less = func(a, b client.Product) bool { return a.Price.LessThan(b.Price) }
	}
	sort.Slice(products, func(i, j int) bool {
		if p.sortDir == "DESC" {
			return less(products[j], products[i])
		}
		return less(products[i], products[j])
	})
}

func paginate(products []client.Product, p listParams) client.Page[client.Product] {
	total := len(products)
	start := p.page * p.size
	if start > total {
		start = total
	}
	end := start + p.size
	if end > total {
		end = total
	}

	totalPages := (total + p.size - 1) / p.size
	return client.Page[client.Product]{
		Content:       products[start:end],
		TotalElements: int64(total),
		TotalPages:    totalPages,
		Number:        p.page,
		Size:          p.size,
	}
}

// activeProducts returns the sellable catalog, sorted per params.
func (s *Server) activeProducts(p listParams, keep func(client.Product) bool) []client.Product {
	var out []client.Product
	for _, prod := range s.products {
		if !prod.Active {
			continue
		}
		if keep != nil && !keep(*prod) {
			continue
		}
		out = append(out, *prod)
	}
	sortProducts(out, p)
	return out
}

// =============================================================================
// Catalog reads
// =============================================================================

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	p := readListParams(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	writeJSON(w, http.StatusOK, paginate(s.activeProducts(p, nil), p))
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prod, ok := s.products[pathID(r, "id")]
	if !ok {
		jsonError(w, "product not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, prod)
}

func (s *Server) handleSearchProducts(w http.ResponseWriter, r *http.Request) {
	p := readListParams(r)
	keyword := strings.ToLower(r.URL.Query().Get("keyword"))

	s.mu.Lock()
	defer s.mu.Unlock()

	matched := s.activeProducts(p, func(prod client.Product) bool {
		return strings.Contains(strings.ToLower(prod.Name), keyword) ||
			strings.Contains(strings.ToLower(prod.Brand), keyword) ||
			strings.Contains(strings.ToLower(prod.Description), keyword)
	})
	writeJSON(w, http.StatusOK, paginate(matched, p))
}

func (s *Server) handleProductsByCategory(w http.ResponseWriter, r *http.Request) {
	p := readListParams(r)
	categoryID := pathID(r, "categoryId")

	s.mu.Lock()
	defer s.mu.Unlock()

	matched := s.activeProducts(p, func(prod client.Product) bool {
		return prod.CategoryID == categoryID
	})
	writeJSON(w, http.StatusOK, paginate(matched, p))
}

func (s *Server) handlePriceRange(w http.ResponseWriter, r *http.Request) {
	p := readListParams(r)
	q := r.URL.Query()

	min, errMin := decimal.NewFromString(q.Get("minPrice"))
	max, errMax := decimal.NewFromString(q.Get("maxPrice"))
	if errMin != nil || errMax != nil {
		jsonError(w, "minPrice and maxPrice are required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	matched := s.activeProducts(p, func(prod client.Product) bool {
		price := prod.EffectivePrice()
		return price.GreaterThanOrEqual(min) && price.LessThanOrEqual(max)
	})
	writeJSON(w, http.StatusOK, paginate(matched, p))
}

func (s *Server) handleFeaturedProducts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	featured := s.activeProducts(listParams{sortBy: "id", sortDir: "ASC"}, func(prod client.Product) bool {
		return prod.Featured
	})
	writeJSON(w, http.StatusOK, featured)
}

// =============================================================================
// Catalog writes (admin)
// =============================================================================

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var prod client.Product
	if err := json.NewDecoder(r.Body).Decode(&prod); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if prod.Name == "" {
		jsonError(w, "name is required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prod.ID = s.allocID()
	if cat, ok := s.categories[prod.CategoryID]; ok {
		prod.CategoryName = cat.Name
	}
	s.products[prod.ID] = &prod
	writeJSON(w, http.StatusOK, prod)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")

	var prod client.Product
	if err := json.NewDecoder(r.Body).Decode(&prod); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		jsonError(w, "product not found", http.StatusNotFound)
		return
	}

	// Full-payload replace, same as the form resubmission it serves.
	prod.ID = id
	if cat, ok := s.categories[prod.CategoryID]; ok {
		prod.CategoryName = cat.Name
	}
	s.products[id] = &prod
	writeJSON(w, http.StatusOK, prod)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		jsonError(w, "product not found", http.StatusNotFound)
		return
	}
	delete(s.products, id)
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Categories
// =============================================================================

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]client.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cat, ok := s.categories[pathID(r, "id")]
	if !ok {
		jsonError(w, "category not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var cat client.Category
	if err := json.NewDecoder(r.Body).Decode(&cat); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cat.ID = s.allocID()
	s.categories[cat.ID] = &cat
	writeJSON(w, http.StatusOK, cat)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")

	var cat client.Category
	if err := json.NewDecoder(r.Body).Decode(&cat); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		jsonError(w, "category not found", http.StatusNotFound)
		return
	}
	cat.ID = id
	s.categories[id] = &cat
	writeJSON(w, http.StatusOK, cat)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		jsonError(w, "category not found", http.StatusNotFound)
		return
	}
	delete(s.categories, id)
	w.WriteHeader(http.StatusNoContent)
}
