package domain

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint    `gorm:"primaryKey"`
	Username     string  `gorm:"column:username;unique;not null"`
	Email        string  `gorm:"column:email;unique;not null"`
	Password     string  `gorm:"column:password;not null"`
	Role         string  `gorm:"column:role;default:customer"`
	WeeklyBudget float64 `gorm:"column:weekly_budget;default:25.0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
