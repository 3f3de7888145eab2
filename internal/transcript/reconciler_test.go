package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendTranscript_EmptyDraft(t *testing.T) {
	d := Draft{}.AppendTranscript("hello world", "http://audio/1.webm")

	assert.Equal(t, "hello world", d.Text)
	assert.Equal(t, "hello world", d.Segment)
	assert.Equal(t, "http://audio/1.webm", d.AudioURL)
	assert.True(t, d.HasAudio())
}

func TestAppendTranscript_AfterTypedText(t *testing.T) {
	d := Draft{Text: "I typed this"}
	d = d.AppendTranscript("then I spoke this", "http://audio/1.webm")

	assert.Equal(t, "I typed this\n\nthen I spoke this", d.Text)
	assert.Equal(t, "then I spoke this", d.Segment)
}

func TestEditTranscript_ReplacesSegmentInPlace(t *testing.T) {
	d := Draft{Text: "intro"}
	d = d.AppendTranscript("the quick brown focks", "http://audio/1.webm")
	d = d.EditTranscript("the quick brown fox")

	assert.Equal(t, "intro\n\nthe quick brown fox", d.Text)
	assert.Equal(t, "the quick brown fox", d.Segment)
	assert.Equal(t, "http://audio/1.webm", d.AudioURL)
}

func TestEditTranscript_NoSegmentAppendsFresh(t *testing.T) {
	d := Draft{Text: "typed only"}
	d = d.EditTranscript("corrected words")

	assert.Equal(t, "typed only\n\ncorrected words", d.Text)
	assert.Equal(t, "corrected words", d.Segment)
}

func TestEditTranscript_SegmentDestroyedFallsBackToAppend(t *testing.T) {
	d := Draft{}.AppendTranscript("original transcript", "http://audio/1.webm")
	// Respondent rewrites the whole answer, destroying the segment text.
	d = d.SetText("a completely different answer")
	d = d.EditTranscript("fixed transcript")

	assert.Equal(t, "a completely different answer\n\nfixed transcript", d.Text)
	assert.Equal(t, "fixed transcript", d.Segment)
}

func TestEditTranscript_FallbackOnEmptyTextHasNoSeparator(t *testing.T) {
	d := Draft{}.AppendTranscript("original transcript", "http://audio/1.webm")
	// Respondent clears the whole answer; the edit lands as a fresh segment
	// with no leading separator.
	d = d.SetText("")
	d = d.EditTranscript("fixed transcript")

	assert.Equal(t, "fixed transcript", d.Text)
	assert.Equal(t, "fixed transcript", d.Segment)
	assert.Equal(t, "http://audio/1.webm", d.AudioURL)
}

func TestEditTranscript_TargetsLastOccurrence(t *testing.T) {
	// The respondent happened to type the same words the transcript produced.
	// Last-occurrence matching leaves the typed copy alone. When the typed
	// copy comes AFTER the live segment this heuristic edits the wrong one;
	// that is a known approximation, not a diff.
	d := Draft{Text: "good point"}
	d = d.AppendTranscript("good point", "http://audio/1.webm")
	d = d.EditTranscript("great point")

	assert.Equal(t, "good point\n\ngreat point", d.Text)
	assert.Equal(t, "great point", d.Segment)
}

func TestRemoveAudio_StripsSegmentAndSeparator(t *testing.T) {
	d := Draft{Text: "my own words"}
	d = d.AppendTranscript("spoken part", "http://audio/1.webm")
	d = d.RemoveAudio()

	assert.Equal(t, "my own words", d.Text)
	assert.Empty(t, d.Segment)
	assert.Empty(t, d.AudioURL)
	assert.False(t, d.HasAudio())
}

func TestRemoveAudio_SegmentWasEntireText(t *testing.T) {
	d := Draft{}.AppendTranscript("only spoken", "http://audio/1.webm")
	d = d.RemoveAudio()

	assert.Empty(t, d.Text)
	assert.Empty(t, d.Segment)
}

func TestRemoveAudio_SegmentWithoutSeparator(t *testing.T) {
	// SetText glued the segment directly onto typed text; the bare segment is
	// still found and stripped, then trailing whitespace is trimmed.
	d := Draft{Text: "prefix spoken part", Segment: "spoken part", AudioURL: "http://audio/1.webm"}
	d = d.RemoveAudio()

	assert.Equal(t, "prefix", d.Text)
	assert.Empty(t, d.AudioURL)
}

func TestRemoveAudio_NoSegmentIsNoOp(t *testing.T) {
	d := Draft{Text: "typed  text"}
	d = d.RemoveAudio()

	assert.Equal(t, "typed  text", d.Text)
}

func TestRemoveAudio_ThenAppendStartsClean(t *testing.T) {
	d := Draft{Text: "notes"}
	d = d.AppendTranscript("take one", "http://audio/1.webm")
	d = d.RemoveAudio()
	d = d.AppendTranscript("take two", "http://audio/2.webm")

	assert.Equal(t, "notes\n\ntake two", d.Text)
	assert.Equal(t, "take two", d.Segment)
	assert.Equal(t, "http://audio/2.webm", d.AudioURL)
}

func TestSetText_KeepsSegmentAndAudio(t *testing.T) {
	d := Draft{}.AppendTranscript("spoken", "http://audio/1.webm")
	d = d.SetText("spoken plus edits")

	assert.Equal(t, "spoken plus edits", d.Text)
	assert.Equal(t, "spoken", d.Segment)
	assert.Equal(t, "http://audio/1.webm", d.AudioURL)
}

func TestSession_SlotsAreIndependent(t *testing.T) {
	s := NewSession()
	s.SetText(1, "first answer")
	s.AppendTranscript(2, "second answer spoken", "http://audio/2.webm")

	assert.Equal(t, "first answer", s.Draft(1).Text)
	assert.Empty(t, s.Draft(1).AudioURL)
	assert.Equal(t, "second answer spoken", s.Draft(2).Text)
	assert.True(t, s.Draft(2).HasAudio())
	assert.Equal(t, Draft{}, s.Draft(3))
}

func TestSession_FullVoiceFlow(t *testing.T) {
	s := NewSession()
	s.SetText(7, "Dear team,")
	s.AppendTranscript(7, "hear are my thoughts", "http://audio/7.webm")
	s.EditTranscript(7, "here are my thoughts")
	d := s.Draft(7)

	assert.Equal(t, "Dear team,\n\nhere are my thoughts", d.Text)

	d = s.RemoveAudio(7)
	assert.Equal(t, "Dear team,", d.Text)
	assert.False(t, d.HasAudio())
}
