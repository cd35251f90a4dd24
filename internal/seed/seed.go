// Package seed holds the static default dataset used to populate the four
// collections on first use and after a bulk reset.
package seed

import "front-of-house/internal/domain"

// Data bundles the defaults for every collection so stores can seed each
// key independently.
type Data struct {
	MenuItems []domain.MenuItem
	Tables    []domain.Table
	Stations  []domain.Station
	Orders    []domain.Order
}

// Defaults returns a fresh copy of the seed dataset. Callers get their own
// slices, so mutating a seeded collection never leaks back into the seed.
func Defaults() Data {
	return Data{
		MenuItems: menuItems(),
		Tables:    tables(),
		Stations:  stations(),
		Orders:    []domain.Order{},
	}
}

func stations() []domain.Station {
	return []domain.Station{
		{ID: "grill", Name: "Grill"},
		{ID: "salad", Name: "Salad & Cold"},
		{ID: "dessert", Name: "Dessert"},
		{ID: "drinks", Name: "Drinks"},
	}
}

func tables() []domain.Table {
	sections := []string{"main", "main", "main", "main", "terrace", "terrace", "terrace", "terrace", "bar", "bar", "private", "private"}
	capacities := []int{2, 4, 4, 6, 2, 2, 4, 4, 2, 2, 8, 10}
	out := make([]domain.Table, 0, len(sections))
	for i := range sections {
		out = append(out, domain.Table{
			ID:       tableID(i + 1),
			Number:   i + 1,
			Capacity: capacities[i],
			Section:  sections[i],
			Status:   domain.TableAvailable,
		})
	}
	return out
}

func tableID(n int) string {
	const letters = "abcdefghijkl"
	return "t-" + string(letters[n-1])
}

func menuItems() []domain.MenuItem {
	return []domain.MenuItem{
		{ID: "m-01", Name: "Bruschetta", Category: "starters", Price: 7.50, Description: "Grilled bread, tomato, basil", Ingredients: []string{"bread", "tomato", "basil", "olive oil"}, PrepMinutes: 8, Available: true, Popular: true},
		{ID: "m-02", Name: "Caesar Salad", Category: "salads", Price: 9.90, Description: "Romaine, parmesan, croutons", Ingredients: []string{"romaine", "parmesan", "croutons", "anchovy"}, PrepMinutes: 10, Available: true},
		{ID: "m-03", Name: "Greek Salad", Category: "salads", Price: 8.90, Ingredients: []string{"cucumber", "tomato", "feta", "olives"}, PrepMinutes: 8, Available: true},
		{ID: "m-04", Name: "Ribeye Steak", Category: "mains", Price: 28.00, Description: "300g, charcoal grilled", Ingredients: []string{"beef", "butter", "rosemary"}, PrepMinutes: 25, Available: true, Popular: true},
		{ID: "m-05", Name: "Grilled Salmon", Category: "mains", Price: 22.50, Ingredients: []string{"salmon", "lemon", "dill"}, PrepMinutes: 18, Available: true},
		{ID: "m-06", Name: "Margherita Pizza", Category: "mains", Price: 12.00, Ingredients: []string{"dough", "tomato", "mozzarella", "basil"}, PrepMinutes: 15, Available: true, Popular: true},
		{ID: "m-07", Name: "Burger & Fries", Category: "grill", Price: 14.50, Ingredients: []string{"beef", "bun", "cheddar", "potato"}, PrepMinutes: 15, Available: true, Popular: true},
		{ID: "m-08", Name: "Tiramisu", Category: "desserts", Price: 6.50, Ingredients: []string{"mascarpone", "espresso", "ladyfingers"}, PrepMinutes: 5, Available: true},
		{ID: "m-09", Name: "Cheesecake", Category: "desserts", Price: 6.00, Ingredients: []string{"cream cheese", "biscuit", "berries"}, PrepMinutes: 5, Available: true},
		{ID: "m-10", Name: "Fresh Lemonade", Category: "drinks", Price: 3.50, Ingredients: []string{"lemon", "mint", "sugar"}, PrepMinutes: 3, Available: true},
		{ID: "m-11", Name: "Espresso", Category: "drinks", Price: 2.50, PrepMinutes: 2, Available: true},
		{ID: "m-12", Name: "House Red Wine", Category: "beverages", Price: 5.50, PrepMinutes: 1, Available: true},
	}
}
