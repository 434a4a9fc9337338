package devapi

import (
	"github.com/shopspring/decimal"

	"github.com/wishcrate/storefront/client"
)

func price(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func pricePtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

// seed loads the demo accounts and catalog. Called from New with no
// lock held; nothing else runs yet.
func (s *Server) seed() {
	addUser := func(first, last, email, password string, role client.Role) {
		id := s.allocID()
		s.users[id] = &user{
			profile: client.Profile{
				ID:        id,
				FirstName: first,
				LastName:  last,
				Email:     email,
				Role:      role,
			},
			password: password,
		}
		s.emailIndex[email] = id
	}
	addUser("Ada", "Admin", "admin@wishcrate.dev", "admin123", client.RoleAdmin)
	addUser("Sam", "Seller", "seller@wishcrate.dev", "seller123", client.RoleSeller)
	addUser("Uma", "User", "user@wishcrate.dev", "user123", client.RoleUser)

	addCategory := func(name, description string) int64 {
		id := s.allocID()
		s.categories[id] = &client.Category{ID: id, Name: name, Description: description}
		return id
	}
	electronics := addCategory("Electronics", "Gadgets and devices")
	apparel := addCategory("Apparel", "Clothing and footwear")
	home := addCategory("Home & Kitchen", "Everything for the house")

	addProduct := func(p client.Product) {
		p.ID = s.allocID()
		p.Active = true
		if cat, ok := s.categories[p.CategoryID]; ok {
			p.CategoryName = cat.Name
		}
		s.products[p.ID] = &p
	}
	addProduct(client.Product{
		Name: "Wireless Earbuds", Brand: "Soundline",
		Description:   "Bluetooth earbuds with charging case.",
		Price:         price(59.99),
		DiscountPrice: pricePtr(49.99),
		StockQuantity: 120, CategoryID: electronics, Featured: true,
	})
	addProduct(client.Product{
		Name: "Mechanical Keyboard", Brand: "KeyForge",
		Description:   "Tenkeyless board with hot-swap switches.",
		Price:         price(89.00),
		StockQuantity: 45, CategoryID: electronics, Featured: true,
	})
	addProduct(client.Product{
		Name: "USB-C Hub", Brand: "Portly",
		Description:   "7-in-1 hub with HDMI and card reader.",
		Price:         price(34.50),
		StockQuantity: 200, CategoryID: electronics,
	})
	addProduct(client.Product{
		Name: "Canvas Sneakers", Brand: "Striders",
		Description:   "Low-top everyday sneakers.",
		Price:         price(42.00),
		DiscountPrice: pricePtr(35.00),
		StockQuantity: 80, CategoryID: apparel, Featured: true,
	})
	addProduct(client.Product{
		Name: "Wool Beanie", Brand: "Northcap",
		Description:   "Merino wool, one size.",
		Price:         price(18.00),
		StockQuantity: 150, CategoryID: apparel,
	})
	addProduct(client.Product{
		Name: "Cast Iron Skillet", Brand: "Hearthware",
		Description:   "Pre-seasoned 10-inch skillet.",
		Price:         price(27.99),
		StockQuantity: 60, CategoryID: home,
	})
	addProduct(client.Product{
		Name: "French Press", Brand: "Brewhaus",
		Description:   "8-cup borosilicate glass press.",
		Price:         price(24.00),
		StockQuantity: 90, CategoryID: home, Featured: true,
	})
	addProduct(client.Product{
		Name: "Desk Lamp", Brand: "Lumen&Co",
		Description:   "Dimmable LED lamp with USB port.",
		Price:         price(31.75),
		StockQuantity: 0, CategoryID: home,
	})
}
