package templates

import (
	"reflect"
	"strings"
	"testing"
)

func TestListCoversCatalog(t *testing.T) {
	got := List()
	if len(got) != 5 {
		t.Fatalf("List() returned %d templates, want 5", len(got))
	}
	keys := make([]string, 0, len(got))
	for _, s := range got {
		keys = append(keys, s.Key)
		if s.Preview == "" || s.TipsCount == 0 {
			t.Errorf("summary %q missing preview or tips", s.Key)
		}
	}
	want := []string{"consulting", "ecommerce", "finance", "followup", "saas"}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
}

func TestGenerateFillsVariables(t *testing.T) {
	got := Generate("saas", map[string]string{
		"company":    "Acme Corp",
		"pain_point": "lead routing",
		"name":       "Jordan",
	})
	if got.Subject != "Quick question about Acme Corp's lead routing" {
		t.Errorf("subject = %q", got.Subject)
	}
	if !strings.HasPrefix(got.Body, "Hi Jordan,") {
		t.Errorf("body not personalized: %q", got.Body[:20])
	}
	for _, v := range got.VariablesNeeded {
		if v == "company" || v == "name" || v == "pain_point" {
			t.Errorf("filled variable %q still reported as needed", v)
		}
	}
	if len(got.VariablesNeeded) == 0 {
		t.Error("expected remaining placeholders to be reported")
	}
}

func TestGenerateUnknownIndustryFallsBack(t *testing.T) {
	got := Generate("biotech", nil)
	if got.Name != "SaaS Cold Outreach" {
		t.Errorf("fallback template = %q, want SaaS Cold Outreach", got.Name)
	}
	if !strings.Contains(got.Subject, "{company}") {
		t.Errorf("unfilled placeholder should survive, got %q", got.Subject)
	}
}

func TestGenerateReportsSortedUniqueVariables(t *testing.T) {
	got := Generate("followup", map[string]string{"name": "Sam"})
	want := []string{"next_steps", "previous_topic", "relevant_update", "sender_name", "specific_point"}
	if !reflect.DeepEqual(got.VariablesNeeded, want) {
		t.Fatalf("VariablesNeeded = %v, want %v", got.VariablesNeeded, want)
	}
}
