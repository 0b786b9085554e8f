package tmux

import (
	"bytes"
	"context"
	"errors"
	"os"
	osexec "os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strrl/tmuxdev/internal/config"
	"github.com/strrl/tmuxdev/internal/exec"
	"github.com/strrl/tmuxdev/internal/logger"
)

var errExit1 = errors.New("exit status 1")

func newTestClient(opts Options) (*Client, *exec.MockExecutor) {
	mock := exec.NewMockExecutor()
	return NewClient(mock, opts), mock
}

func TestExists(t *testing.T) {
	client, mock := newTestClient(Options{})
	mock.AddExactMatch("tmux", []string{"has-session", "-t", "=app-main"}, exec.MockResponse{})
	mock.AddPrefixMatch("tmux", []string{"has-session"}, exec.MockResponse{
		Stderr: []byte("can't find session: app"),
		Err:    errExit1,
	})

	ctx := context.Background()
	assert.True(t, client.Exists(ctx, "app-main"))
	assert.False(t, client.Exists(ctx, "app"))
}

func TestExists_TmuxMissing(t *testing.T) {
	client, mock := newTestClient(Options{Binary: "/nonexistent/tmux"})
	mock.AddPrefixMatch("/nonexistent/tmux", nil, exec.MockResponse{Err: osexec.ErrNotFound})

	assert.False(t, client.Exists(context.Background(), "app"))
}

func TestList(t *testing.T) {
	client, mock := newTestClient(Options{})
	mock.AddExactMatch("tmux", []string{"list-sessions", "-F", "#{session_name}"}, exec.MockResponse{
		Stdout: []byte("zeta\napp-main\n\nbeta\n"),
	})

	assert.Equal(t, []string{"zeta", "app-main", "beta"}, client.List(context.Background()))
}

func TestList_NoServer(t *testing.T) {
	client, mock := newTestClient(Options{})
	mock.AddPrefixMatch("tmux", []string{"list-sessions"}, exec.MockResponse{
		Stderr: []byte("no server running on /tmp/tmux-1000/default"),
		Err:    errExit1,
	})

	got := client.List(context.Background())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCreate_SendKeys(t *testing.T) {
	client, mock := newTestClient(Options{Launch: Launch{Command: "npm run dev", Mode: config.LaunchSendKeys}})

	require.NoError(t, client.Create(context.Background(), "app-main", "/src/app"))

	calls := mock.GetCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, []string{"new-session", "-d", "-s", "app-main", "-c", "/src/app"}, calls[0].Args)
	assert.Equal(t, []string{"send-keys", "-t", "=app-main", "npm run dev", "Enter"}, calls[1].Args)
}

func TestCreate_InitialCommand(t *testing.T) {
	client, mock := newTestClient(Options{Launch: Launch{Command: "pnpm dev", Mode: config.LaunchInitial}})

	require.NoError(t, client.Create(context.Background(), "app", "/src/app"))

	calls := mock.GetCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"new-session", "-d", "-s", "app", "-c", "/src/app", "pnpm dev"}, calls[0].Args)
}

func TestCreate_NormalisesName(t *testing.T) {
	client, mock := newTestClient(Options{})

	require.NoError(t, client.Create(context.Background(), "my.app", ""))

	calls := mock.GetCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"new-session", "-d", "-s", "my_app"}, calls[0].Args)
}

func TestCreate_Failure(t *testing.T) {
	client, mock := newTestClient(Options{Launch: Launch{Command: "npm run dev", Mode: config.LaunchSendKeys}})
	mock.AddPrefixMatch("tmux", []string{"new-session"}, exec.MockResponse{
		Stderr: []byte("duplicate session: app"),
		Err:    errExit1,
	})

	err := client.Create(context.Background(), "app", "/src/app")
	require.ErrorIs(t, err, ErrCreateFailed)
	assert.Contains(t, err.Error(), "duplicate session: app")
	assert.Len(t, mock.GetCalls(), 1, "send-keys must not run after a failed create")
}

func TestAttach(t *testing.T) {
	client, mock := newTestClient(Options{})

	require.NoError(t, client.Attach(context.Background(), "app"))

	calls := mock.GetCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"attach-session", "-t", "=app"}, calls[0].Args)
}

func TestAttach_InsideTmux(t *testing.T) {
	client, mock := newTestClient(Options{InsideTmux: true})

	require.NoError(t, client.Attach(context.Background(), "app"))
	assert.Equal(t, []string{"switch-client", "-t", "=app"}, mock.GetCalls()[0].Args)
}

func TestAttachExit(t *testing.T) {
	log := logger.Get()

	assert.NoError(t, attachExit("app", nil, log))

	exited := &osexec.ExitError{ProcessState: &os.ProcessState{}}
	assert.NoError(t, attachExit("app", exited, log), "non-zero client exit is a detach")

	err := attachExit("app", osexec.ErrNotFound, log)
	assert.ErrorIs(t, err, ErrAttachFailed)
}

func TestKill(t *testing.T) {
	client, mock := newTestClient(Options{})

	require.NoError(t, client.Kill(context.Background(), "app"))
	assert.Equal(t, []string{"kill-session", "-t", "=app"}, mock.GetCalls()[0].Args)
}

func TestKill_Missing(t *testing.T) {
	client, mock := newTestClient(Options{})
	mock.AddPrefixMatch("tmux", []string{"kill-session"}, exec.MockResponse{
		Stderr: []byte("can't find session: app"),
		Err:    errExit1,
	})

	err := client.Kill(context.Background(), "app")
	assert.ErrorIs(t, err, ErrKillFailed)
}

func TestEcho(t *testing.T) {
	var buf bytes.Buffer
	client, _ := newTestClient(Options{Echo: true, EchoWriter: &buf})

	client.Exists(context.Background(), "app")
	assert.Equal(t, "$ tmux has-session -t =app\n", buf.String())

	buf.Reset()
	quiet, _ := newTestClient(Options{EchoWriter: &buf})
	quiet.Exists(context.Background(), "app")
	assert.Empty(t, buf.String())
}
