// Package identity derives the session identifier for the current project
// from the working directory and the checked-out git branch.
package identity

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/strrl/tmuxdev/internal/exec"
	"github.com/strrl/tmuxdev/internal/logger"
)

// Fallback is used when no folder name can be determined.
const Fallback = "tmuxdev"

// BranchReader reports the current version-control branch of a directory.
type BranchReader interface {
	CurrentBranch(ctx context.Context, dir string) (string, error)
}

// Resolver computes session identifiers. It holds no state between calls.
type Resolver struct {
	Getwd  func() (string, error)
	Branch BranchReader
}

// NewResolver returns a Resolver reading the process working directory and
// asking git for the branch.
func NewResolver(executor exec.CommandExecutor, gitBinary string) *Resolver {
	return &Resolver{
		Getwd:  os.Getwd,
		Branch: &GitBranchReader{executor: executor, binary: gitBinary},
	}
}

// Resolve returns "<folder>" or "<folder>-<branch>". It never fails and never
// returns an empty string.
func (r *Resolver) Resolve(ctx context.Context) string {
	log := logger.WithComponent("identity")

	dir, err := r.Getwd()
	if err != nil {
		log.Debug("working directory unavailable", "error", err)
		return Fallback
	}

	folder := FolderName(dir)
	if folder == "" {
		log.Debug("no folder name, using fallback", "dir", dir)
		return Fallback
	}

	var branch string
	if r.Branch != nil {
		branch, err = r.Branch.CurrentBranch(ctx, dir)
		if err != nil {
			log.Debug("no branch detected", "dir", dir, "error", err)
			branch = ""
		}
	}

	id := Compose(folder, branch)
	log.Debug("resolved identifier", "dir", dir, "branch", branch, "identifier", id)
	return id
}

// FolderName returns the last path segment of dir, or "" when there is none.
func FolderName(dir string) string {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return ""
	}
	base := filepath.Base(dir)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return base
}

// Compose joins a folder and an optional branch into an identifier. Without a
// folder the identifier is exactly Fallback.
func Compose(folder, branch string) string {
	if folder == "" {
		return Fallback
	}
	branch = strings.TrimSpace(branch)
	if branch == "" {
		return folder
	}
	return folder + "-" + branch
}
