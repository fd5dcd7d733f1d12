package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	tests := []struct {
		name    string
		commit  string
		date    string
		wantSub string
	}{
		{
			name:    "development build",
			commit:  "unknown",
			date:    "unknown",
			wantSub: "arttools version dev (",
		},
		{
			name:    "release build",
			commit:  "0123456789abcdef",
			date:    "2026-01-02T03:04:05Z",
			wantSub: "commit: 01234567",
		},
		{
			name:    "short commit is not sliced",
			commit:  "abc",
			date:    "2026-01-02T03:04:05Z",
			wantSub: "arttools version dev (",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldCommit, oldDate := Commit, Date
			defer func() { Commit, Date = oldCommit, oldDate }()

			Commit, Date = tt.commit, tt.date
			if got := String(); !strings.Contains(got, tt.wantSub) {
				t.Errorf("String() = %q, want substring %q", got, tt.wantSub)
			}
		})
	}
}
