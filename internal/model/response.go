package model

import (
	"time"
)

// Response is one respondent's complete submission to a form. Created
// atomically with its answers; never updated afterwards; removed only by
// cascading form deletion.
type Response struct {
	ID              uint              `gorm:"primarykey" json:"id"`
	FormID          uint              `json:"form_id" gorm:"not null;index"`
	RespondentEmail *string           `json:"respondent_email,omitempty"`
	RespondentMeta  map[string]string `json:"respondent_meta,omitempty" gorm:"serializer:json"`
	Answers         []Answer          `json:"answers,omitempty" gorm:"foreignKey:ResponseID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt       time.Time         `json:"created_at"`
}

// Email returns the respondent email or "" when absent.
func (r *Response) Email() string {
	if r.RespondentEmail == nil {
		return ""
	}
	return *r.RespondentEmail
}
