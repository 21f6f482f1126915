// internal/models/menu_item.go
package models

// MenuItemRecord is the RestaurantMenu table row (PK restaurant_id, SK menu_item_id).
type MenuItemRecord struct {
	RestaurantID   string  `json:"restaurant_id" dynamodbav:"restaurant_id"`
	MenuItemID     string  `json:"menu_item_id" dynamodbav:"menu_item_id"`
	RestaurantName string  `json:"restaurant_name" dynamodbav:"restaurant_name"`
	Cuisine        string  `json:"cuisine" dynamodbav:"cuisine"`
	Name           string  `json:"name" dynamodbav:"name"`
	Description    string  `json:"description" dynamodbav:"description"`
	Price          float64 `json:"price" dynamodbav:"price"`
	Category       string  `json:"category" dynamodbav:"category"`
}

// MenuItemKey is the composite primary key of a MenuItemRecord.
type MenuItemKey struct {
	RestaurantID string `dynamodbav:"restaurant_id"`
	MenuItemID   string `dynamodbav:"menu_item_id"`
}

func (r MenuItemRecord) Key() MenuItemKey {
	return MenuItemKey{RestaurantID: r.RestaurantID, MenuItemID: r.MenuItemID}
}

// SearchDocument is the food_index document for one menu item.
type SearchDocument struct {
	RestaurantID   string  `json:"restaurant_id"`
	RestaurantName string  `json:"restaurant_name"`
	Cuisine        string  `json:"cuisine"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Price          float64 `json:"price"`
	Category       string  `json:"category"`
}

// DocumentID is "{restaurant_id}-{menu_item_id}", stable across reindex runs.
func (r MenuItemRecord) DocumentID() string {
	return r.RestaurantID + "-" + r.MenuItemID
}

func (r MenuItemRecord) SearchDocument() SearchDocument {
	return SearchDocument{
		RestaurantID:   r.RestaurantID,
		RestaurantName: r.RestaurantName,
		Cuisine:        r.Cuisine,
		Name:           r.Name,
		Description:    r.Description,
		Price:          r.Price,
		Category:       r.Category,
	}
}
