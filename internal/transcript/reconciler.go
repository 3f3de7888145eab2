// Package transcript reconciles free-typed answer text with machine-generated
// voice transcripts while a respondent drafts a long-answer question. A draft
// holds at most one live transcript segment, appended to the typed text with a
// blank-line separator; the segment can be hand-corrected or removed without
// losing what the respondent typed themselves.
package transcript

import "strings"

// Separator joins typed text and a transcript segment inside a draft.
const Separator = "\n\n"

// Draft is the in-progress answer state for one question slot. Text is what
// gets submitted as the answer; Segment is the most recent transcript (empty
// when no recording is attached); AudioURL locates the recording the segment
// came from.
type Draft struct {
	Text     string
	Segment  string
	AudioURL string
}

// HasAudio reports whether a recording is currently attached.
func (d Draft) HasAudio() bool { return d.AudioURL != "" }

// AppendTranscript attaches a freshly transcribed recording. The transcript
// is appended after the existing text with a blank-line separator, or becomes
// the whole text when the draft is empty. Any previously attached segment is
// replaced as live segment but its text stays where it landed; callers that
// re-record are expected to RemoveAudio first.
func (d Draft) AppendTranscript(text, audioURL string) Draft {
	if d.Text == "" {
		d.Text = text
	} else {
		d.Text = d.Text + Separator + text
	}
	d.Segment = text
	d.AudioURL = audioURL
	return d
}

// EditTranscript replaces the live segment with a hand-corrected version.
// The segment is located by its last occurrence in the text, so an identical
// substring the respondent happened to type earlier is left alone. When the
// segment can no longer be found (the respondent edited across its
// boundaries), the edited text is appended as a fresh segment instead; that
// fallback is a documented approximation, not a text diff.
func (d Draft) EditTranscript(edited string) Draft {
	if d.Segment == "" {
		return d.AppendTranscript(edited, d.AudioURL)
	}
	idx := strings.LastIndex(d.Text, d.Segment)
	if idx < 0 {
		d.Segment = ""
		return d.AppendTranscript(edited, d.AudioURL)
	}
	d.Text = d.Text[:idx] + edited + d.Text[idx+len(d.Segment):]
	d.Segment = edited
	return d
}

// RemoveAudio detaches the recording and strips its transcript from the
// text, including the separator that introduced it. Text the respondent
// typed independently survives. Trailing whitespace left behind by the
// removal is trimmed.
func (d Draft) RemoveAudio() Draft {
	if d.Segment != "" {
		if idx := strings.LastIndex(d.Text, Separator+d.Segment); idx >= 0 {
			d.Text = d.Text[:idx] + d.Text[idx+len(Separator)+len(d.Segment):]
		} else if idx := strings.LastIndex(d.Text, d.Segment); idx >= 0 {
			d.Text = d.Text[:idx] + d.Text[idx+len(d.Segment):]
		}
		d.Text = strings.TrimRight(d.Text, " \t\n")
	}
	d.Segment = ""
	d.AudioURL = ""
	return d
}

// SetText replaces the draft text wholesale with what the respondent typed.
// The live segment and audio reference are untouched; a direct edit that
// rewrites the transcript portion can desynchronize later EditTranscript and
// RemoveAudio calls, which then fall back to the append heuristic.
func (d Draft) SetText(text string) Draft {
	d.Text = text
	return d
}
