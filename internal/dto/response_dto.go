package dto

import "time"

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// --- Auth ---

type AuthResponseDTO struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

type UserDTO struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// --- Forms ---

type QuestionResponseDTO struct {
	ID         uint                   `json:"id"`
	FormID     uint                   `json:"form_id"`
	OrderIndex int                    `json:"order_index"`
	Type       string                 `json:"type"`
	Prompt     string                 `json:"prompt"`
	Required   bool                   `json:"required"`
	Options    []string               `json:"options,omitempty"`
	Validation *QuestionValidationDTO `json:"validation,omitempty"`
}

type FormResponseDTO struct {
	ID          uint                  `json:"id"`
	OwnerID     uint                  `json:"owner_id"`
	Title       string                `json:"title"`
	Description string                `json:"description,omitempty"`
	Published   bool                  `json:"published"`
	Settings    *FormSettingsDTO      `json:"settings,omitempty"`
	Questions   []QuestionResponseDTO `json:"questions,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
}

// FormSummaryDTO is one row of the owner's dashboard listing.
type FormSummaryDTO struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Published     bool      `json:"published"`
	QuestionCount int       `json:"question_count"`
	ResponseCount int       `json:"response_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// PublicFormDTO is the respondent-facing view of a published form: no owner
// or publication bookkeeping, just what is needed to render and submit.
type PublicFormDTO struct {
	ID          uint                  `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description,omitempty"`
	Settings    *FormSettingsDTO      `json:"settings,omitempty"`
	Questions   []QuestionResponseDTO `json:"questions"`
}

// --- Responses ---

type AnswerResponseDTO struct {
	ID             uint                `json:"id"`
	QuestionID     uint                `json:"question_id"`
	Question       QuestionResponseDTO `json:"question,omitempty"`
	AnswerText     *string             `json:"answer_text,omitempty"`
	AudioURL       *string             `json:"audio_url,omitempty"`
	TranscriptText *string             `json:"transcript_text,omitempty"`
}

type ResponseDetailDTO struct {
	ID              uint                `json:"id"`
	FormID          uint                `json:"form_id"`
	RespondentEmail *string             `json:"respondent_email,omitempty"`
	RespondentMeta  map[string]string   `json:"respondent_meta,omitempty"`
	Answers         []AnswerResponseDTO `json:"answers"`
	CreatedAt       time.Time           `json:"created_at"`
}

type SubmitResultDTO struct {
	ResponseID          uint   `json:"response_id"`
	ConfirmationMessage string `json:"confirmation_message,omitempty"`
}

// --- Media ---

type UploadResultDTO struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

type TranscriptResultDTO struct {
	Transcript string `json:"transcript"`
}
