package models

// CatalogEntry is a fixed price-list row shown in the create-order form.
type CatalogEntry struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// DrycleanCatalog is the per-garment dryclean price list.
var DrycleanCatalog = []CatalogEntry{
	{Name: "Suit (2 Piece)", Price: 500},
	{Name: "Suit (3 Piece)", Price: 650},
	{Name: "Blazer", Price: 350},
	{Name: "Coat", Price: 300},
	{Name: "Jacket", Price: 350},
	{Name: "Sherwani", Price: 450},
	{Name: "Kurta Fancy", Price: 200},
	{Name: "Saree (Silk)", Price: 400},
	{Name: "Saree (Cotton)", Price: 250},
	{Name: "Wedding Lehenga", Price: 1200},
	{Name: "Evening Gown", Price: 600},
	{Name: "Dress", Price: 350},
	{Name: "Blouse (Silk)", Price: 250},
	{Name: "Curtains (Light)", Price: 150},
	{Name: "Curtains (Heavy)", Price: 250},
	{Name: "Trousers", Price: 200},
	{Name: "Bedsheet (Double)", Price: 200},
	{Name: "Blanket", Price: 350},
}

// HomeCleaningCatalog is the flat-priced home cleaning service list.
var HomeCleaningCatalog = []CatalogEntry{
	{Name: "Deep Cleaning - 1BHK", Price: 1500},
	{Name: "Deep Cleaning - 2BHK", Price: 2000},
	{Name: "Deep Cleaning - 3BHK", Price: 2500},
	{Name: "Sofa Cleaning (Per Seat)", Price: 300},
	{Name: "Carpet Cleaning (Per Sqft)", Price: 10},
	{Name: "Mattress Cleaning (Single)", Price: 500},
	{Name: "Mattress Cleaning (Double)", Price: 800},
	{Name: "AC Cleaning (Split)", Price: 450},
	{Name: "Kitchen Deep Clean", Price: 1000},
	{Name: "Bathroom Deep Clean", Price: 600},
}
