package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/strrl/tmuxdev/internal/exec"
)

// GitBranchReader asks git for the checked-out branch.
type GitBranchReader struct {
	executor exec.CommandExecutor
	binary   string
}

// NewGitBranchReader returns a reader using the given git binary.
func NewGitBranchReader(executor exec.CommandExecutor, binary string) *GitBranchReader {
	return &GitBranchReader{executor: executor, binary: binary}
}

// CurrentBranch returns the branch name, or "" on a detached HEAD.
func (g *GitBranchReader) CurrentBranch(ctx context.Context, dir string) (string, error) {
	output, err := g.executor.Output(ctx, dir, g.binary, "branch", "--show-current")
	if err != nil {
		return "", fmt.Errorf("failed to read current branch: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}
