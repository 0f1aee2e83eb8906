package models

import (
	"vetcare/src/types"
)

type Service struct {
	ID          uint    `gorm:"primarykey" json:"id"`
	Name        string  `json:"name,omitempty"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Boarding    bool    `json:"boarding"`

	types.Timestamps
}
