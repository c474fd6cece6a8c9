package batch

import (
	"strings"
	"testing"
)

func TestParseCSVStandardColumns(t *testing.T) {
	csvData := "subject,body,name,email,company,industry\n" +
		"Quick question,\"Hi Jordan, quick note.\",Sam,sam@acme.com,Acme,SaaS\n"

	emails, err := ParseCSV(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ParseCSV() error: %v", err)
	}
	if len(emails) != 1 {
		t.Fatalf("got %d emails, want 1", len(emails))
	}
	got := emails[0]
	if got.ID != 1 || got.Subject != "Quick question" || got.Body != "Hi Jordan, quick note." {
		t.Errorf("unexpected email: %+v", got)
	}
	if got.SenderName != "Sam" || got.SenderEmail != "sam@acme.com" || got.Company != "Acme" || got.Industry != "SaaS" {
		t.Errorf("metadata not mapped: %+v", got)
	}
}

func TestParseCSVFuzzyColumnNames(t *testing.T) {
	csvData := "Email Subject,Message Text,From Name,From Email,Organization,Sector\n" +
		"Hello,Body here,Sam,sam@acme.com,Acme,SaaS\n"

	emails, err := ParseCSV(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ParseCSV() error: %v", err)
	}
	got := emails[0]
	if got.Subject != "Hello" || got.Body != "Body here" {
		t.Errorf("subject/body not detected: %+v", got)
	}
	if got.SenderName != "Sam" || got.SenderEmail != "sam@acme.com" || got.Company != "Acme" || got.Industry != "SaaS" {
		t.Errorf("fuzzy columns not mapped: %+v", got)
	}
}

func TestParseCSVSkipsEmptyRows(t *testing.T) {
	csvData := "subject,body\nFirst,Body one\n,\nSecond,Body two\n"

	emails, err := ParseCSV(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ParseCSV() error: %v", err)
	}
	if len(emails) != 2 {
		t.Fatalf("got %d emails, want 2", len(emails))
	}
	if emails[0].ID != 1 || emails[1].ID != 2 {
		t.Errorf("IDs not sequential: %+v", emails)
	}
}

func TestParseCSVUnknownColumns(t *testing.T) {
	csvData := "foo,bar\n1,2\n"
	if _, err := ParseCSV(strings.NewReader(csvData)); err == nil {
		t.Fatal("expected error for undetectable columns")
	}
}

func TestParseCSVEmptyFile(t *testing.T) {
	if _, err := ParseCSV(strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty file")
	}
}
