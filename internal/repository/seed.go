package repository

import "github.com/MichaelMansour256/Diwan-Mansour/internal/model"

// Seed returns the demo catalog served when neither the database nor the
// feed is reachable, so the storefront stays browsable.
func Seed() []model.Book {
	return []model.Book{
		{
			ID: "b1", Title: "The Silent Patient", Author: "Alex Michaelides",
			Price: 320, ImageURL: "https://placehold.co/400x600/14532D/FFFFFF?text=Book+Cover",
			Condition: model.ConditionNew, Quantity: 3, TotalQuantity: 3,
			Availability: model.AvailabilityAvailable,
		},
		{
			ID: "b2", Title: "Atomic Habits", Author: "James Clear",
			Price: 450, ImageURL: "https://placehold.co/400x600/1E3A5F/FFFFFF?text=Book+Cover",
			Condition: model.ConditionUsed, Quantity: 2, TotalQuantity: 2,
			Availability: model.AvailabilityAvailable,
		},
		{
			ID: "b3", Title: "The Midnight Library", Author: "Matt Haig",
			Price: 380, ImageURL: "https://placehold.co/400x600/0B3D2E/FFFFFF?text=Book+Cover",
			Condition: model.ConditionNew, Quantity: 4, TotalQuantity: 4,
			Availability: model.AvailabilityAvailable,
		},
		{
			ID: "b4", Title: "Sapiens: A Brief History of Humankind", Author: "Yuval Noah Harari",
			Price: 550, ImageURL: "https://placehold.co/400x600/253B3D/FFFFFF?text=Book+Cover",
			Condition: model.ConditionUsed, Quantity: 1, TotalQuantity: 1,
			Availability: model.AvailabilityAvailable,
		},
		{
			ID: "b5", Title: "Educated", Author: "Tara Westover",
			Price: 400, ImageURL: "https://placehold.co/400x600/4A3B2A/FFFFFF?text=Book+Cover",
			Condition: model.ConditionNew, Quantity: 5, TotalQuantity: 5,
			Availability: model.AvailabilityUnavailable,
		},
		{
			ID: "b6", Title: "Where the Crawdads Sing", Author: "Delia Owens",
			Price: 360, ImageURL: "https://placehold.co/400x600/1B4332/FFFFFF?text=Book+Cover",
			Condition: model.ConditionUsed, Quantity: 2, TotalQuantity: 2,
			Availability: model.AvailabilityAvailable,
		},
		{
			ID: "b7", Title: "The Alchemist", Author: "Paulo Coelho",
			Price: 300, ImageURL: "https://placehold.co/400x600/2C3E50/FFFFFF?text=Book+Cover",
			Condition: model.ConditionNew, Quantity: 3, TotalQuantity: 3,
			Availability: model.AvailabilityUnavailable,
		},
		{
			ID: "b8", Title: "The Subtle Art of Not Giving a F*ck", Author: "Mark Manson",
			Price: 420, ImageURL: "https://placehold.co/400x600/264653/FFFFFF?text=Book+Cover",
			Condition: model.ConditionUsed, Quantity: 1, TotalQuantity: 1,
			Availability: model.AvailabilityAvailable,
		},
	}
}
