package service

import (
	"strings"
	"time"

	"github.com/asrayg/betterforms/internal/model"
)

// escapeCSVField wraps a field in double quotes, doubling internal quotes,
// if and only if it contains a comma, a double quote, or a newline. This is
// deliberately narrower than encoding/csv's quoting (which also quotes
// leading spaces and carriage returns); exported files stay byte-compatible
// with what existing consumers parse.
func escapeCSVField(field string) string {
	if !strings.ContainsAny(field, ",\"\n") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// BuildResponsesCSV renders the form's responses as delimited text. The
// header is Timestamp, Email, then each question prompt in order_index order;
// one row per response in the delivered (newest-first) order. Unanswered
// cells are empty; checkbox answers keep their stored comma-joined form. Rows
// are joined with single newlines and there is no trailing newline.
func BuildResponsesCSV(questions []model.Question, responses []model.Response) string {
	header := make([]string, 0, 2+len(questions))
	header = append(header, "Timestamp", "Email")
	for _, q := range questions {
		header = append(header, q.Prompt)
	}

	lines := make([]string, 0, 1+len(responses))
	lines = append(lines, joinCSVRow(header))

	for _, resp := range responses {
		byQuestion := make(map[uint]*model.Answer, len(resp.Answers))
		for i := range resp.Answers {
			byQuestion[resp.Answers[i].QuestionID] = &resp.Answers[i]
		}

		row := make([]string, 0, 2+len(questions))
		row = append(row, resp.CreatedAt.UTC().Format(time.RFC3339), resp.Email())
		for _, q := range questions {
			if a, ok := byQuestion[q.ID]; ok {
				row = append(row, a.Text())
			} else {
				row = append(row, "")
			}
		}
		lines = append(lines, joinCSVRow(row))
	}

	return strings.Join(lines, "\n")
}

func joinCSVRow(fields []string) string {
	escaped := make([]string, len(fields))
	for i, f := range fields {
		escaped[i] = escapeCSVField(f)
	}
	return strings.Join(escaped, ",")
}

// ExportFilename derives a download filename from the form title, replacing
// every non-alphanumeric character with an underscore.
func ExportFilename(title string) string {
	var b strings.Builder
	for _, r := range title {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String() + "_responses.csv"
}
