package repository

import (
	"github.com/shopspring/decimal"

	"github.com/Alturino/foodhub/catalog/pkg/response"
)

const (
	imageSushi   = "https://images.unsplash.com/photo-1579584425555-c3ce17fd4351?ixlib=rb-4.0.3&ixid=MnwxMjA3fDB8MHxwaG90by1wYWdlfHx8fGVufDB8fHx8&auto=format&fit=crop&w=800&h=400"
	imagePizza   = "https://pixabay.com/get/g180155c5f96c08eab4d03c853fc8a3226fe86851cf76dd85d54918b957de57082b6c1306ba29d57d36e68c65ff0fff23f2d2ea68ca289c8f523c7309c7ed30df_1280.jpg"
	imageBurger  = "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?ixlib=rb-4.0.3&ixid=MnwxMjA3fDB8MHxwaG90by1wYWdlfHx8fGVufDB8fHx8&auto=format&fit=crop&w=800&h=400"
	imageHealthy = "https://images.unsplash.com/photo-1512621776951-a57141f2eefd?ixlib=rb-4.0.3&ixid=MnwxMjA3fDB8MHxwaG90by1wYWdlfHx8fGVufDB8fHx8&auto=format&fit=crop&w=800&h=400"
)

func seedRestaurants() []response.Restaurant {
	return []response.Restaurant{
		{
			ID:           "1",
			Name:         "Tokyo Sushi Bar",
			Cuisine:      "Japanese • Sushi • Asian",
			Rating:       decimal.RequireFromString("4.8"),
			DeliveryTime: "25-40 min",
			DeliveryFee:  decimal.RequireFromString("2.99"),
			Image:        imageSushi,
			IsOpen:       true,
		},
		{
			ID:           "2",
			Name:         "Mario's Pizzeria",
			Cuisine:      "Italian • Pizza • Pasta",
			Rating:       decimal.RequireFromString("4.6"),
			DeliveryTime: "20-35 min",
			DeliveryFee:  decimal.RequireFromString("1.99"),
			Image:        imagePizza,
			IsOpen:       true,
		},
		{
			ID:           "3",
			Name:         "Burger Palace",
			Cuisine:      "American • Burgers • Fast Food",
			Rating:       decimal.RequireFromString("4.7"),
			DeliveryTime: "15-25 min",
			DeliveryFee:  decimal.RequireFromString("0.99"),
			Image:        imageBurger,
			IsOpen:       true,
		},
		{
			ID:           "4",
			Name:         "Green Garden",
			Cuisine:      "Healthy • Salads • Vegan",
			Rating:       decimal.RequireFromString("4.9"),
			DeliveryTime: "10-20 min",
			DeliveryFee:  decimal.RequireFromString("1.49"),
			Image:        imageHealthy,
			IsOpen:       true,
		},
	}
}

func seedMenuItems() []response.MenuItem {
	return []response.MenuItem{
		{
			ID:           "m1",
			RestaurantID: "1",
			Name:         "Salmon Avocado Roll",
			Description:  "Fresh salmon and avocado wrapped in seasoned rice and nori",
			Price:        decimal.RequireFromString("12.99"),
			Image:        imageSushi,
			Category:     "Sushi Rolls",
			IsAvailable:  true,
		},
		{
			ID:           "m2",
			RestaurantID: "1",
			Name:         "Spicy Tuna Roll",
			Description:  "Spicy tuna mix with cucumber and sesame seeds",
			Price:        decimal.RequireFromString("14.99"),
			Image:        imageSushi,
			Category:     "Sushi Rolls",
			IsAvailable:  true,
		},
		{
			ID:           "m3",
			RestaurantID: "2",
			Name:         "Margherita Pizza",
			Description:  "Classic pizza with fresh tomatoes, mozzarella, and basil",
			Price:        decimal.RequireFromString("16.99"),
			Image:        imagePizza,
			Category:     "Pizza",
			IsAvailable:  true,
		},
		{
			ID:           "m4",
			RestaurantID: "2",
			Name:         "Pepperoni Pizza",
			Description:  "Traditional pepperoni pizza with mozzarella cheese",
			Price:        decimal.RequireFromString("18.99"),
			Image:        imagePizza,
			Category:     "Pizza",
			IsAvailable:  true,
		},
		{
			ID:           "m5",
			RestaurantID: "3",
			Name:         "Classic Burger",
			Description:  "Beef patty with lettuce, tomato, onion, and special sauce",
			Price:        decimal.RequireFromString("13.99"),
			Image:        imageBurger,
			Category:     "Burgers",
			IsAvailable:  true,
		},
		{
			ID:           "m6",
			RestaurantID: "3",
			Name:         "BBQ Bacon Burger",
			Description:  "Beef patty with BBQ sauce, bacon, and crispy onions",
			Price:        decimal.RequireFromString("16.99"),
			Image:        imageBurger,
			Category:     "Burgers",
			IsAvailable:  true,
		},
		{
			ID:           "m7",
			RestaurantID: "4",
			Name:         "Quinoa Power Bowl",
			Description:  "Quinoa with roasted vegetables, avocado, and tahini dressing",
			Price:        decimal.RequireFromString("15.99"),
			Image:        imageHealthy,
			Category:     "Bowls",
			IsAvailable:  true,
		},
		{
			ID:           "m8",
			RestaurantID: "4",
			Name:         "Mediterranean Wrap",
			Description:  "Hummus, vegetables, and falafel in a whole wheat wrap",
			Price:        decimal.RequireFromString("12.99"),
			Image:        imageHealthy,
			Category:     "Wraps",
			IsAvailable:  true,
		},
	}
}
