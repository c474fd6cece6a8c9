package batch

import (
	"encoding/csv"
	"io"
	"strconv"
)

var reportColumns = []string{
	"ID", "Subject", "Body_Preview", "Sender_Name", "Sender_Email",
	"Company", "Industry", "Score", "Word_Count", "Subject_Length",
	"Suggestion_Count", "Priority_Issues", "Top_Issue", "Top_Suggestion",
}

// WriteCSVReport renders a batch result as a downloadable CSV.
func WriteCSVReport(w io.Writer, result Result) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(reportColumns); err != nil {
		return err
	}

	for _, r := range result.Results {
		topIssue, topSuggestion := "None", "No issues found"
		if len(r.Suggestions) > 0 {
			topIssue = r.Suggestions[0].Type
			topSuggestion = r.Suggestions[0].Message
		}
		row := []string{
			strconv.Itoa(r.ID),
			r.Subject,
			r.BodyPreview,
			r.SenderName,
			r.SenderEmail,
			r.Company,
			r.Industry,
			strconv.Itoa(r.Score),
			strconv.Itoa(r.WordCount),
			strconv.Itoa(r.SubjectLength),
			strconv.Itoa(r.SuggestionCount),
			strconv.Itoa(len(r.PriorityIssues)),
			topIssue,
			topSuggestion,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
