// Package model defines the domain records stored by a shopping list repository.
package model

import "time"

// ShoppingList is a named list of products. Archived lists are kept but hidden
// from the current view.
type ShoppingList struct {
	ID         int64     // Assigned by the repository on insert, zero until stored
	Name       string    // Display name
	IsArchived bool      // Whether the list has been moved to the archive
	CreatedAt  time.Time // Insert time, UTC
}

// Product is a single entry on a shopping list.
type Product struct {
	ID             int64     // Assigned by the repository on insert, zero until stored
	Name           string    // Display name
	Quantity       int64     // How many to buy
	ShoppingListID int64     // Owning list
	CreatedAt      time.Time // Insert time, UTC
}
