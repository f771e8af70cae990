package log

const (
	KeyAppName            = "app"
	KeyRequestID          = "requestId"
	KeyTraceID            = "traceId"
	KeySpanID             = "spanId"
	KeyProcess            = "process"
	KeyTag                = "tag"
	KeyConfig             = "config"
	KeyRequest            = "request"
	KeyRequestBody        = "requestBody"
	KeyRequestHeader      = "requestHeader"
	KeyRequestHost        = "host"
	KeyRequestIp          = "requesterIP"
	KeyRequestMethod      = "requestMethod"
	KeyRequestURI         = "requestURI"
	KeyRequestURL         = "requestURL"
	KeyRequestProcessedAt = "requestProcessedAt"
	KeyCacheKey           = "cacheKey"
	KeyRestaurantID       = "restaurantId"
	KeyRestaurant         = "restaurant"
	KeyRestaurants        = "restaurants"
	KeyMenuItemID         = "menuItemId"
	KeyMenuItems          = "menuItems"
	KeyQuery              = "query"
	KeyCategory           = "category"
	KeyCartID             = "cartId"
	KeyCart               = "cart"
	KeyLineID             = "lineId"
	KeyQuantity           = "quantity"
	KeyOrderID            = "orderId"
	KeyOrder              = "order"
	KeyOrders             = "orders"
	KeyUserID             = "userId"
	KeySessionID          = "sessionId"
	KeyMessageID          = "messageId"
	KeyWindowSize         = "windowSize"
	KeyModel              = "model"
	KeyEvent              = "event"
	KeyBatchSize          = "batchSize"
)
