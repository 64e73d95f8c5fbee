package domain

import (
	"strings"
	"time"
)

// CREATE TABLE public.beverages (
//     id              BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     name            TEXT NOT NULL,
//     category        TEXT NOT NULL,
//     price           NUMERIC NOT NULL,
//     suitable_moods  TEXT,
//     created_at      TIMESTAMPTZ DEFAULT NOW()
// );

type Beverage struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"column:name;type:text;not null" json:"name"`
	Category      string    `gorm:"column:category;type:text;not null" json:"category"`
	Price         float64   `gorm:"column:price;type:numeric;not null" json:"price"`
	SuitableMoods string    `gorm:"column:suitable_moods;type:text" json:"suitable_moods"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Beverage) TableName() string {
	return "beverages"
}

// Moods returns the suitable moods as a slice ("Tired,Focused" -> ["Tired", "Focused"]).
func (b Beverage) Moods() []string {
	if b.SuitableMoods == "" {
		return nil
	}

	parts := strings.Split(b.SuitableMoods, ",")
	moods := make([]string, 0, len(parts))
	for _, p := range parts {
		if m := strings.TrimSpace(p); m != "" {
			moods = append(moods, m)
		}
	}

	return moods
}

// SuitsMood reports whether the beverage is tagged with the given mood.
func (b Beverage) SuitsMood(mood string) bool {
	for _, m := range b.Moods() {
		if strings.EqualFold(m, mood) {
			return true
		}
	}
	return false
}
