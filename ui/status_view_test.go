package ui

import "testing"

func TestStatusIndicator(t *testing.T) {
	tests := []struct {
		name string
		info StatusInfo
		want string
	}{
		{
			name: "not yet loaded",
			info: StatusInfo{},
			want: "…",
		},
		{
			name: "unavailable",
			info: StatusInfo{Loaded: true, Unavailable: true},
			want: "-",
		},
		{
			name: "clean with remote",
			info: StatusInfo{Loaded: true, RemoteExists: true},
			want: "✓",
		},
		{
			name: "dirty counts with ahead only",
			info: StatusInfo{
				Loaded:       true,
				RemoteExists: true,
				HasChanges:   true,
				Added:        1,
				Modified:     3,
				Untracked:    2,
				Ahead:        2,
			},
			want: "+1 ~3 ?2 ↑2",
		},
		{
			name: "deleted and behind",
			info: StatusInfo{
				Loaded:       true,
				RemoteExists: true,
				HasChanges:   true,
				Deleted:      1,
				Behind:       4,
			},
			want: "-1 ↓4",
		},
		{
			name: "ahead and behind together",
			info: StatusInfo{Loaded: true, RemoteExists: true, Ahead: 1, Behind: 2},
			want: "↑1 ↓2",
		},
		{
			name: "no remote suppresses sync counts",
			info: StatusInfo{Loaded: true, Ahead: 5, Behind: 3},
			want: "⊘ no remote",
		},
		{
			name: "no remote with dirty counts",
			info: StatusInfo{Loaded: true, HasChanges: true, Modified: 2},
			want: "~2 ⊘ no remote",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := StatusIndicator(tc.info); got != tc.want {
				t.Fatalf("StatusIndicator(%+v) = %q, want %q", tc.info, got, tc.want)
			}
		})
	}
}
