package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/strrl/tmuxdev/internal/exec"
)

func resolverFor(dir string, dirErr error, mock *exec.MockExecutor) *Resolver {
	return &Resolver{
		Getwd:  func() (string, error) { return dir, dirErr },
		Branch: NewGitBranchReader(mock, "git"),
	}
}

func TestResolve(t *testing.T) {
	notARepo := errors.New("exit status 128")

	tests := []struct {
		name     string
		dir      string
		dirErr   error
		branch   exec.MockResponse
		expected string
	}{
		{
			name:     "folder only when git fails",
			dir:      "/home/dev/projects/app",
			branch:   exec.MockResponse{Err: notARepo},
			expected: "app",
		},
		{
			name:     "folder and branch",
			dir:      "/home/dev/app",
			branch:   exec.MockResponse{Stdout: []byte("main\n")},
			expected: "app-main",
		},
		{
			name:     "branch containing dashes",
			dir:      "/src/myapp",
			branch:   exec.MockResponse{Stdout: []byte("feature-x\n")},
			expected: "myapp-feature-x",
		},
		{
			name:     "detached head has no branch",
			dir:      "/src/myapp",
			branch:   exec.MockResponse{Stdout: []byte("\n")},
			expected: "myapp",
		},
		{
			name:     "root directory falls back",
			dir:      "/",
			branch:   exec.MockResponse{Err: notARepo},
			expected: Fallback,
		},
		{
			name:     "unreadable directory falls back",
			dirErr:   errors.New("getwd: no such file or directory"),
			expected: Fallback,
		},
		{
			name:     "fallback ignores branch",
			dir:      "",
			branch:   exec.MockResponse{Stdout: []byte("main")},
			expected: Fallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := exec.NewMockExecutor()
			mock.AddExactMatch("git", []string{"branch", "--show-current"}, tt.branch)

			got := resolverFor(tt.dir, tt.dirErr, mock).Resolve(context.Background())
			assert.Equal(t, tt.expected, got)
			assert.NotEmpty(t, got)
		})
	}
}

func TestResolve_QueriesGitInWorkingDirectory(t *testing.T) {
	mock := exec.NewMockExecutor()
	resolverFor("/src/app", nil, mock).Resolve(context.Background())

	calls := mock.GetCalls()
	if assert.Len(t, calls, 1) {
		assert.Equal(t, "/src/app", calls[0].Dir)
		assert.Equal(t, "git", calls[0].Name)
	}
}

func TestFolderName(t *testing.T) {
	paths := map[string]string{
		"/a/b/c":     "c",
		"/a/b/c/":    "c",
		"relative/x": "x",
		"/":          "",
		"":           "",
		".":          "",
	}
	for in, want := range paths {
		assert.Equal(t, want, FolderName(in), "FolderName(%q)", in)
	}
}

func TestCompose(t *testing.T) {
	assert.Equal(t, "app-main", Compose("app", "main"))
	assert.Equal(t, "app", Compose("app", ""))
	assert.Equal(t, "app", Compose("app", "  "))
	assert.Equal(t, "tmuxdev", Compose("", ""))
	assert.Equal(t, "tmuxdev", Compose("", "main"))
}
