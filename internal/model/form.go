package model

import (
	"time"

	"gorm.io/gorm"
)

// FormSettings is stored as a JSON column on Form.
type FormSettings struct {
	CollectEmail        bool   `json:"collect_email"`
	LimitOneResponse    bool   `json:"limit_one_response"`
	ShowProgressBar     bool   `json:"show_progress_bar"`
	ConfirmationMessage string `json:"confirmation_message,omitempty"`
}

type Form struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	OwnerID     uint           `json:"owner_id" gorm:"not null;index"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description,omitempty"`
	Published   bool           `json:"published" gorm:"not null;default:false"`
	Settings    *FormSettings  `json:"settings,omitempty" gorm:"serializer:json"`
	Questions   []Question     `json:"questions,omitempty" gorm:"foreignKey:FormID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Responses   []Response     `json:"-" gorm:"foreignKey:FormID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
