package model

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// QuestionType enumerates the nine supported question kinds. All type
// dispatch in the codebase goes through methods on this type so a new kind
// surfaces as an error in one place instead of silently falling through
// scattered string switches.
type QuestionType string

const (
	TypeShort       QuestionType = "short"
	TypeLong        QuestionType = "long"
	TypeMCQ         QuestionType = "mcq"
	TypeCheckbox    QuestionType = "checkbox"
	TypeEmail       QuestionType = "email"
	TypeNumber      QuestionType = "number"
	TypeDate        QuestionType = "date"
	TypeTime        QuestionType = "time"
	TypeLinearScale QuestionType = "linear_scale"
)

// QuestionTypes lists every kind in a stable order.
var QuestionTypes = []QuestionType{
	TypeShort, TypeLong, TypeMCQ, TypeCheckbox, TypeEmail,
	TypeNumber, TypeDate, TypeTime, TypeLinearScale,
}

func (t QuestionType) Valid() bool {
	switch t {
	case TypeShort, TypeLong, TypeMCQ, TypeCheckbox, TypeEmail,
		TypeNumber, TypeDate, TypeTime, TypeLinearScale:
		return true
	}
	return false
}

// RequiresOptions reports whether the kind needs a configured choice list.
func (t QuestionType) RequiresOptions() bool {
	switch t {
	case TypeMCQ, TypeCheckbox:
		return true
	}
	return false
}

// SupportsVoice reports whether answers of this kind may carry a recorded
// audio segment and machine transcript.
func (t QuestionType) SupportsVoice() bool {
	return t == TypeLong
}

// CountsDistribution reports whether analytics builds a value histogram for
// the kind. The switch is exhaustive over all nine kinds; an unknown kind
// is an error rather than a silent no-op.
func (t QuestionType) CountsDistribution() (bool, error) {
	switch t {
	case TypeMCQ, TypeCheckbox, TypeLinearScale:
		return true, nil
	case TypeShort, TypeLong, TypeEmail, TypeNumber, TypeDate, TypeTime:
		return false, nil
	}
	return false, fmt.Errorf("unknown question type %q", string(t))
}

// QuestionValidation holds optional numeric bounds for number and
// linear_scale questions. Stored as a JSON column.
type QuestionValidation struct {
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Pattern string   `json:"pattern,omitempty"`
}

type Question struct {
	ID         uint                `gorm:"primarykey" json:"id"`
	FormID     uint                `json:"form_id" gorm:"not null;index"`
	OrderIndex int                 `json:"order_index" gorm:"not null"`
	Type       QuestionType        `json:"type" gorm:"not null"`
	Prompt     string              `json:"prompt" gorm:"type:text;not null"`
	Required   bool                `json:"required" gorm:"not null;default:false"`
	Options    []string            `json:"options,omitempty" gorm:"serializer:json"`
	Validation *QuestionValidation `json:"validation,omitempty" gorm:"serializer:json"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
	DeletedAt  gorm.DeletedAt      `gorm:"index" json:"-"`
}
