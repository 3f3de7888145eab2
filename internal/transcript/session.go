package transcript

// Session tracks one respondent's drafts across the questions of a form,
// keyed by question id. Transitions replace the slot's draft atomically; a
// session is owned by a single submission flow and needs no locking.
type Session struct {
	drafts map[uint]Draft
}

func NewSession() *Session {
	return &Session{drafts: make(map[uint]Draft)}
}

// Draft returns the current draft for a question slot, zero-valued when the
// respondent has not touched the question yet.
func (s *Session) Draft(questionID uint) Draft {
	return s.drafts[questionID]
}

// Apply runs fn against the slot's draft and stores the result.
func (s *Session) Apply(questionID uint, fn func(Draft) Draft) Draft {
	d := fn(s.drafts[questionID])
	s.drafts[questionID] = d
	return d
}

func (s *Session) AppendTranscript(questionID uint, text, audioURL string) Draft {
	return s.Apply(questionID, func(d Draft) Draft { return d.AppendTranscript(text, audioURL) })
}

func (s *Session) EditTranscript(questionID uint, edited string) Draft {
	return s.Apply(questionID, func(d Draft) Draft { return d.EditTranscript(edited) })
}

func (s *Session) RemoveAudio(questionID uint) Draft {
	return s.Apply(questionID, func(d Draft) Draft { return d.RemoveAudio() })
}

func (s *Session) SetText(questionID uint, text string) Draft {
	return s.Apply(questionID, func(d Draft) Draft { return d.SetText(text) })
}
