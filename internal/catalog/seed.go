package catalog

import "github.com/shopspring/decimal"

// DemoProducts is the starter catalog installed when CATALOG_BOOTSTRAP is set.
func DemoProducts() []Product {
	return []Product{
		{Name: "Laptop Pro 15", Description: "15-inch developer laptop, 32 GB RAM", Price: decimal.NewFromFloat(1299.00), Stock: 25, ImageURL: "/img/laptop-pro-15.png"},
		{Name: "Mechanical Keyboard", Description: "Hot-swappable 87-key board", Price: decimal.NewFromFloat(89.90), Stock: 120, ImageURL: "/img/mech-keyboard.png"},
		{Name: "USB-C Dock", Description: "Dual 4K display dock, 100 W PD", Price: decimal.NewFromFloat(149.50), Stock: 60, ImageURL: "/img/usbc-dock.png"},
		{Name: "Wireless Mouse", Description: "Silent-click ergonomic mouse", Price: decimal.NewFromFloat(29.99), Stock: 200, ImageURL: "/img/wireless-mouse.png"},
		{Name: "27\" 4K Monitor", Description: "IPS panel, USB-C single cable", Price: decimal.NewFromFloat(399.00), Stock: 40, ImageURL: "/img/monitor-27.png"},
	}
}
