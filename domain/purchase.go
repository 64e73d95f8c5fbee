package domain

import "time"

type Purchase struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	BeverageID   uint64    `gorm:"column:beverage_id;not null" json:"beverage_id"`
	BeverageName string    `gorm:"column:beverage_name;type:text" json:"beverage_name"`
	Category     string    `gorm:"column:category;type:text" json:"category"`
	Mood         string    `gorm:"column:mood;not null" json:"mood"`
	Price        float64   `gorm:"column:price;type:numeric;not null" json:"price"`
	PurchaseDate time.Time `gorm:"column:purchase_date;autoCreateTime" json:"purchase_date"`
}

func (Purchase) TableName() string {
	return "purchases"
}

// WeeklySpending is the budget snapshot for the current week.
type WeeklySpending struct {
	UserID        uint      `json:"user_id"`
	WeeklyBudget  float64   `json:"weekly_budget"`
	SpentThisWeek float64   `json:"spent_this_week"`
	Remaining     float64   `json:"remaining"`
	WeekStart     time.Time `json:"week_start"`
	WeekEnd       time.Time `json:"week_end"`
}
