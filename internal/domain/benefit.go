package domain

import "time"

type Benefit struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Name               string    `gorm:"type:text;not null" json:"name"`
	QOfCodes           int       `gorm:"not null;default:0;column:q_of_codes" json:"q_of_codes"`
	Discount           int       `gorm:"not null;default:0" json:"discount"`
	IDBusinessDiscount uint      `gorm:"not null;index;column:id_business_discount" json:"id_business_discount"`
	CreatedAt          time.Time `gorm:"not null" json:"created_at"`
}

func (Benefit) TableName() string { return "benefit" }
