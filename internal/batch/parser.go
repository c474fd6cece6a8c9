package batch

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Column headers people actually use, in detection order. Matching is by
// case-insensitive substring, first header wins per field.
var columnVariations = map[string][]string{
	"subject":      {"subject", "subject_line", "email_subject", "title", "headline"},
	"body":         {"body", "email_body", "content", "message", "text", "email_content"},
	"sender_name":  {"sender_name", "name", "sender", "from_name", "author"},
	"sender_email": {"sender_email", "email", "from_email", "sender_address"},
	"company":      {"company", "company_name", "organization", "business"},
	"industry":     {"industry", "sector", "vertical", "category"},
}

var fieldOrder = []string{"subject", "body", "sender_name", "sender_email", "company", "industry"}

// ParseCSV reads an uploaded CSV and maps its columns onto email fields.
// Rows with neither subject nor body are skipped.
func ParseCSV(r io.Reader) ([]Email, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	mapping := detectColumns(header)
	if _, ok := mapping["subject"]; !ok {
		if _, ok := mapping["body"]; !ok {
			return nil, fmt.Errorf("could not detect subject or body column in header %v", header)
		}
	}

	var emails []Email
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}

		get := func(field string) string {
			idx, ok := mapping[field]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		subject := get("subject")
		body := get("body")
		if subject == "" && body == "" {
			continue
		}

		emails = append(emails, Email{
			ID:          len(emails) + 1,
			Subject:     subject,
			Body:        body,
			SenderName:  get("sender_name"),
			SenderEmail: get("sender_email"),
			Company:     get("company"),
			Industry:    get("industry"),
		})
	}
	return emails, nil
}

func detectColumns(header []string) map[string]int {
	mapping := map[string]int{}
	for idx, raw := range header {
		col := strings.ToLower(strings.TrimSpace(raw))
		for _, field := range fieldOrder {
			if _, taken := mapping[field]; taken {
				continue
			}
			if matchesAny(col, columnVariations[field]) {
				mapping[field] = idx
				break
			}
		}
	}
	return mapping
}

func matchesAny(col string, variations []string) bool {
	for _, v := range variations {
		if strings.Contains(col, v) {
			return true
		}
	}
	return false
}
