package dto

// --- Auth ---

type RegisterDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --- Form building (owner) ---

type FormSettingsDTO struct {
	CollectEmail        bool   `json:"collect_email"`
	LimitOneResponse    bool   `json:"limit_one_response"`
	ShowProgressBar     bool   `json:"show_progress_bar"`
	ConfirmationMessage string `json:"confirmation_message,omitempty"`
}

type FormCreateDTO struct {
	Title       string           `json:"title" binding:"required"`
	Description string           `json:"description,omitempty"`
	Published   bool             `json:"published"`
	Settings    *FormSettingsDTO `json:"settings,omitempty"`
}

type QuestionValidationDTO struct {
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Pattern string   `json:"pattern,omitempty"`
}

// QuestionDTO is one question inside a question-set replacement. The builder
// always sends the full ordered set; the previous set is discarded.
type QuestionDTO struct {
	OrderIndex int                    `json:"order_index" binding:"min=0"`
	Type       string                 `json:"type" binding:"required"`
	Prompt     string                 `json:"prompt" binding:"required"`
	Required   bool                   `json:"required"`
	Options    []string               `json:"options,omitempty"`
	Validation *QuestionValidationDTO `json:"validation,omitempty"`
}

type QuestionsUpdateDTO struct {
	Questions []QuestionDTO `json:"questions" binding:"required,dive"`
}

// --- Submission (public) ---

// SubmitAnswerDTO carries one answer of a submission. AudioURL and
// TranscriptText are only meaningful for long-answer questions.
type SubmitAnswerDTO struct {
	QuestionID     uint    `json:"question_id" binding:"required"`
	AnswerText     *string `json:"answer_text,omitempty"`
	AudioURL       *string `json:"audio_url,omitempty"`
	TranscriptText *string `json:"transcript_text,omitempty"`
}

type ResponseSubmitDTO struct {
	Answers         []SubmitAnswerDTO `json:"answers" binding:"required,dive"`
	RespondentEmail *string           `json:"respondent_email,omitempty"`
	RespondentMeta  map[string]string `json:"respondent_meta,omitempty"`
}

// --- Media (public) ---

type TranscribeDTO struct {
	AudioURL string `json:"audio_url" binding:"required,url"`
}
