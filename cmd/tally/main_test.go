package main

import "testing"

func TestNeedsStore(t *testing.T) {
	tests := []struct {
		command string
		want    bool
	}{
		{command: "init", want: false},
		{command: "backup create", want: false},
		{command: "backup list", want: false},
		{command: "backup restore", want: false},
		{command: "backup restore <path>", want: false},
		{command: "list", want: true},
		{command: "done <id>", want: true},
		{command: "delete <id>", want: true},
		{command: "week", want: true},
		{command: "tui", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			if got := needsStore(tt.command); got != tt.want {
				t.Errorf("needsStore(%q) = %v, want %v", tt.command, got, tt.want)
			}
		})
	}
}
