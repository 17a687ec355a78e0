package config

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"basha-backend/logging"
	"basha-backend/models"
)

func mustParseDate(value string) time.Time {
	t, err := time.Parse(models.DateLayout, value)
	if err != nil {
		panic(fmt.Sprintf("seed date %q: %v", value, err))
	}
	return t
}

// MockRooms is the starter catalog, in catalog order.
func MockRooms() []models.Room {
	return []models.Room{
		{
			ID:          "1",
			Title:       "Spacious Single Room near UIU",
			Description: "Looking for a decent bachelor for a single room in a 3-bedroom flat. Large window, airy atmosphere.",
			Price:       6500,
			Area:        "Dhanmondi",
			Location:    models.Location{Lat: 23.7509, Lng: 90.3733, Address: "Road 15, Dhanmondi, Dhaka"},
			Type:        models.RoomTypeSingle,
			Gender:      models.GenderMale,
			Amenities:   datatypes.NewJSONSlice([]string{"WiFi", "Generator", "Attached Bathroom", "Lift"}),
			Rules:       datatypes.NewJSONSlice([]string{"No Smoking", "Bachelor Allowed", "Guest Allowed"}),
			Images:      datatypes.NewJSONSlice([]string{"https://picsum.photos/id/10/800/600", "https://picsum.photos/id/11/800/600"}),
			OwnerID:     "owner1",
			OwnerName:   "Mr. Rahim",
			IsVerified:  true,
			IsAvailable: true,
			NearbyUniversities: datatypes.NewJSONSlice([]models.NearbyInstitution{
				{Name: "UIU", Distance: "0.5 km"},
				{Name: "Daffodil", Distance: "1.2 km"},
			}),
			CatalogPosition: 1,
			CreatedAt:       mustParseDate("2023-10-01"),
		},
		{
			ID:          "2",
			Title:       "Shared Room for Female Students",
			Description: "Shared room for one person. Very close to Brac University. Peaceful environment for studies.",
			Price:       4500,
			Area:        "Mohakhali",
			Location:    models.Location{Lat: 23.7776, Lng: 90.4005, Address: "Wireless Gate, Mohakhali"},
			Type:        models.RoomTypeShared,
			Gender:      models.GenderFemale,
			Amenities:   datatypes.NewJSONSlice([]string{"WiFi", "Kitchen Access", "Laundry"}),
			Rules:       datatypes.NewJSONSlice([]string{"Female Only", "No Late Night Entry", "Student Only"}),
			Images:      datatypes.NewJSONSlice([]string{"https://picsum.photos/id/12/800/600", "https://picsum.photos/id/13/800/600"}),
			OwnerID:     "owner2",
			OwnerName:   "Mrs. Begum",
			IsVerified:  true,
			IsAvailable: true,
			NearbyUniversities: datatypes.NewJSONSlice([]models.NearbyInstitution{
				{Name: "Brac University", Distance: "0.3 km"},
				{Name: "AIUB", Distance: "2.5 km"},
			}),
			CatalogPosition: 2,
			CreatedAt:       mustParseDate("2023-10-05"),
		},
		{
			ID:          "3",
			Title:       "Budget Friendly Seat in Mirpur-10",
			Description: "Cheap seat available for students. All utilities included. 5 mins walk from Metro Station.",
			Price:       3500,
			Area:        "Mirpur",
			Location:    models.Location{Lat: 23.8069, Lng: 90.3687, Address: "Senpara Parbata, Mirpur-10"},
			Type:        models.RoomTypeShared,
			Gender:      models.GenderMale,
			Amenities:   datatypes.NewJSONSlice([]string{"WiFi", "Gas", "Electricity"}),
			Rules:       datatypes.NewJSONSlice([]string{"Bachelor Allowed", "Shared Bathroom"}),
			Images:      datatypes.NewJSONSlice([]string{"https://picsum.photos/id/14/800/600"}),
			OwnerID:     "owner3",
			OwnerName:   "Tanvir Hossain",
			IsVerified:  false,
			IsAvailable: true,
			NearbyUniversities: datatypes.NewJSONSlice([]models.NearbyInstitution{
				{Name: "BUP", Distance: "3.0 km"},
				{Name: "MIST", Distance: "3.5 km"},
			}),
			CatalogPosition: 3,
			CreatedAt:       mustParseDate("2023-10-10"),
		},
		{
			ID:          "4",
			Title:       "Luxury Studio Sublet in Banani",
			Description: "Modern studio apartment for a single working student or professional. High-end amenities.",
			Price:       15000,
			Area:        "Banani",
			Location:    models.Location{Lat: 23.7937, Lng: 90.4066, Address: "Road 11, Banani"},
			Type:        models.RoomTypeSingle,
			Gender:      models.GenderAny,
			Amenities:   datatypes.NewJSONSlice([]string{"WiFi", "AC", "Attached Bathroom", "Lift", "Gym Access"}),
			Rules:       datatypes.NewJSONSlice([]string{"Quiet Hours", "No Parties"}),
			Images:      datatypes.NewJSONSlice([]string{"https://picsum.photos/id/20/800/600", "https://picsum.photos/id/21/800/600"}),
			OwnerID:     "owner4",
			OwnerName:   "Sofia Khan",
			IsVerified:  true,
			IsAvailable: true,
			NearbyUniversities: datatypes.NewJSONSlice([]models.NearbyInstitution{
				{Name: "North South University", Distance: "4.0 km"},
				{Name: "IUB", Distance: "4.2 km"},
			}),
			CatalogPosition: 4,
			CreatedAt:       mustParseDate("2023-10-12"),
		},
	}
}

// SeedDatabase loads MockRooms when the catalog is empty.
func SeedDatabase(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Room{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count rooms: %w", err)
	}
	l := logging.L()
	if count > 0 {
		l.Info().Int64("rooms", count).Msg("catalog already seeded")
		return nil
	}

	rooms := MockRooms()
	if err := db.Create(&rooms).Error; err != nil {
		return fmt.Errorf("seed rooms: %w", err)
	}
	l.Info().Int("rooms", len(rooms)).Msg("catalog seeded")
	return nil
}
