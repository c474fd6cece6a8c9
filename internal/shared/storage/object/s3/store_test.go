package s3

import "testing"

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "reports/batch.csv", want: "reports/batch.csv"},
		{name: "simple prefix", prefix: "inboxqualify", key: "reports/batch.csv", want: "inboxqualify/reports/batch.csv"},
		{name: "prefix trailing slash", prefix: "inboxqualify/", key: "reports/batch.csv", want: "inboxqualify/reports/batch.csv"},
		{name: "prefix and key slashes", prefix: "/inboxqualify/", key: "/reports/batch.csv", want: "inboxqualify/reports/batch.csv"},
		{name: "nested prefix", prefix: "env/prod", key: "reports/batch.csv", want: "env/prod/reports/batch.csv"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}
