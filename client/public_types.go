package client

import "github.com/Skillon-x/kissanbandi/client/internal/types"

// Public type aliases so SDK consumers can import only the client package.
type (
	// Domain entities
	Product   = types.Product
	Order     = types.Order
	OrderItem = types.OrderItem
	DailyStat = types.DailyStat

	// Normalized responses
	OrderPage  = types.OrderPage
	OrderStats = types.OrderStats
)
