package database

import (
	"brewAdvisor/domain"

	"gorm.io/gorm"
)

// seedBeverages inserts the default catalog on an empty beverages table so a
// fresh deployment can serve recommendations immediately.
func seedBeverages(db *gorm.DB) error {
	var count int64
	if err := db.Model(&domain.Beverage{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	catalog := []domain.Beverage{
		{Name: "Tall Brewed Coffee", Category: "Coffee", Price: 2.45, SuitableMoods: "Tired,Stressed,Focused"},
		{Name: "Grande Brewed Coffee", Category: "Coffee", Price: 2.95, SuitableMoods: "Tired,Stressed,Focused"},
		{Name: "Tall Americano", Category: "Espresso", Price: 3.75, SuitableMoods: "Tired,Focused"},
		{Name: "Tall Hot Chocolate", Category: "Other", Price: 3.75, SuitableMoods: "Happy,Stressed"},
		{Name: "Grande Americano", Category: "Espresso", Price: 4.25, SuitableMoods: "Tired,Focused"},
		{Name: "Tall Cappuccino", Category: "Espresso", Price: 4.25, SuitableMoods: "Tired,Focused"},
		{Name: "Tall Latte", Category: "Latte", Price: 4.45, SuitableMoods: "Tired,Happy"},
		{Name: "Grande Cappuccino", Category: "Espresso", Price: 4.75, SuitableMoods: "Tired,Focused"},
		{Name: "Grande Iced Latte", Category: "Latte", Price: 5.45, SuitableMoods: "Tired,Focused"},
		{Name: "Grande Chai Tea Latte", Category: "Tea", Price: 5.45, SuitableMoods: "Stressed,Happy,Tired"},
		{Name: "Grande Vanilla Latte", Category: "Latte", Price: 5.65, SuitableMoods: "Happy,Tired"},
		{Name: "Venti Iced Latte", Category: "Latte", Price: 5.95, SuitableMoods: "Tired,Happy"},
		{Name: "Grande Caramel Macchiato", Category: "Latte", Price: 5.95, SuitableMoods: "Happy,Tired"},
		{Name: "Grande Green Tea Latte", Category: "Tea", Price: 5.95, SuitableMoods: "Stressed,Focused,Tired"},
		{Name: "Grande Caramel Frappuccino", Category: "Frappuccino", Price: 6.25, SuitableMoods: "Happy"},
		{Name: "Grande White Chocolate Mocha", Category: "Mocha", Price: 6.25, SuitableMoods: "Happy,Tired"},
		{Name: "Grande Mocha Frappuccino", Category: "Frappuccino", Price: 6.45, SuitableMoods: "Happy,Stressed"},
		{Name: "Grande Pumpkin Spice Latte", Category: "Seasonal", Price: 6.45, SuitableMoods: "Happy,Stressed"},
		{Name: "Grande Java Chip Frappuccino", Category: "Frappuccino", Price: 6.75, SuitableMoods: "Happy"},
		{Name: "Venti Caramel Frappuccino", Category: "Frappuccino", Price: 6.95, SuitableMoods: "Happy"},
	}

	return db.Create(&catalog).Error
}
