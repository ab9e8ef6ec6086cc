package counter

import "time"

type SequenceCounter struct {
	Scope       string `gorm:"primaryKey;type:varchar(50)"`
	CounterType string `gorm:"column:counter_type;primaryKey;type:varchar(50)"`
	LastValue   int64  `gorm:"column:last_value;not null;default:0"`
	UpdatedAt   time.Time
}

func (SequenceCounter) TableName() string {
	return "sequence_counters"
}
