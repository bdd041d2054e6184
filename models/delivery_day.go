package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// CityList stores the serviced city names for a day as a JSON array column.
type CityList []string

func (c CityList) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	b, err := json.Marshal(c)
	return string(b), err
}

func (c *CityList) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	case nil:
		*c = nil
		return nil
	}
	return errors.New("unsupported type for CityList")
}

// DeliveryDayConfig maps a working day (0=Sunday .. 5=Friday) to the
// cities serviced on that day. Upserted by day key, no history kept.
type DeliveryDayConfig struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	DayOfWeek int       `json:"day_of_week" gorm:"uniqueIndex;not null;check:day_of_week >= 0 AND day_of_week <= 6"`
	Cities    CityList  `json:"cities" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
