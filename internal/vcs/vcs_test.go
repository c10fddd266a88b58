package vcs

import (
	"context"
	"fmt"
	"testing"

	"github.com/homeplay/homeplay/internal/system"
)

func TestGitClient_CloneArgs(t *testing.T) {
	tests := []struct {
		name string
		opts CloneOptions
		want []string
	}{
		{
			name: "plain",
			opts: CloneOptions{},
			want: []string{"clone", "https://example.com/r.git", "/tmp/dst"},
		},
		{
			name: "recursive",
			opts: CloneOptions{Recursive: true},
			want: []string{"clone", "--recursive", "https://example.com/r.git", "/tmp/dst"},
		},
		{
			name: "shallow",
			opts: CloneOptions{Depth: 1},
			want: []string{"clone", "--depth", "1", "https://example.com/r.git", "/tmp/dst"},
		},
		{
			name: "recursive shallow",
			opts: CloneOptions{Recursive: true, Depth: 3},
			want: []string{"clone", "--recursive", "--depth", "3", "https://example.com/r.git", "/tmp/dst"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := system.NewMockExecutor()
			client := NewGitClient(mock)

			err := client.Clone(context.Background(), "https://example.com/r.git", "/tmp/dst", tt.opts)
			if err != nil {
				t.Fatalf("Clone() failed: %v", err)
			}

			calls := mock.Calls("Execute")
			if len(calls) != 1 {
				t.Fatalf("expected 1 git invocation, got %d", len(calls))
			}
			args := calls[0].Args[1].([]string)
			if len(args) != len(tt.want) {
				t.Fatalf("args = %v, want %v", args, tt.want)
			}
			for i := range args {
				if args[i] != tt.want[i] {
					t.Errorf("args[%d] = %s, want %s", i, args[i], tt.want[i])
				}
			}
		})
	}
}

func TestGitClient_CloneFailure(t *testing.T) {
	mock := system.NewMockExecutor()
	mock.SetError("git", fmt.Errorf("exit status 128"))
	mock.SetOutput("git", []byte("fatal: repository not found"))

	client := NewGitClient(mock)
	err := client.Clone(context.Background(), "https://example.com/r.git", "/tmp/dst", CloneOptions{})
	if err == nil {
		t.Fatal("Clone() should have failed")
	}
}
