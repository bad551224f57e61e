// Package audio plays the adhan through an external command-line player.
package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// ErrPlayback wraps every failure to start or finish playback.
var ErrPlayback = errors.New("adhan playback failed")

// FileToken is replaced by the audio file path in a player command.
const FileToken = "{file}"

// DefaultCommand plays the file with mpv without opening a window.
var DefaultCommand = []string{"mpv", "--no-video", "--really-quiet", FileToken}

// Player plays and stops the adhan.
type Player interface {
	// Play restarts playback from the beginning.
	Play(ctx context.Context) error
	// Stop halts playback; stopping an idle player is a no-op.
	Stop() error
}

// ExecPlayer runs one player process at a time.
type ExecPlayer struct {
	file    string
	command []string
	log     zerolog.Logger

	mu       sync.Mutex
	cmd      *exec.Cmd
	failures chan error
}

// NewExecPlayer creates a player for file. An empty command uses DefaultCommand.
// The command may be a single string, which is split on spaces.
func NewExecPlayer(file string, command []string, log zerolog.Logger) *ExecPlayer {
	if len(command) == 1 {
		command = strings.Fields(command[0])
	}
	if len(command) == 0 {
		command = DefaultCommand
	}
	return &ExecPlayer{
		file:     file,
		command:  command,
		log:      log,
		failures: make(chan error, 1),
	}
}

// Failures reports playback processes that exited with an error after
// starting successfully.
func (p *ExecPlayer) Failures() <-chan error {
	return p.failures
}

// Play stops any running playback and starts the file again from the start.
func (p *ExecPlayer) Play(ctx context.Context) error {
	if p.file == "" {
		return fmt.Errorf("%w: no adhan file configured", ErrPlayback)
	}
	if _, err := os.Stat(p.file); err != nil {
		return fmt.Errorf("%w: %w", ErrPlayback, err)
	}

	if err := p.Stop(); err != nil {
		p.log.Warn().Err(err).Msg("stopping previous playback")
	}

	args := p.args()
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: starting %s: %w", ErrPlayback, args[0], err)
	}
	p.cmd = cmd
	p.log.Info().Str("file", p.file).Int("pid", cmd.Process.Pid).Msg("adhan playback started")

	go p.wait(cmd)
	return nil
}

func (p *ExecPlayer) wait(cmd *exec.Cmd) {
	err := cmd.Wait()

	p.mu.Lock()
	current := p.cmd == cmd
	if current {
		p.cmd = nil
	}
	p.mu.Unlock()

	// A stopped or replaced process exits with a signal; that is not a failure.
	if !current {
		return
	}
	if err != nil {
		p.log.Error().Err(err).Msg("adhan player exited with error")
		select {
		case p.failures <- fmt.Errorf("%w: %w", ErrPlayback, err):
		default:
		}
		return
	}
	p.log.Info().Msg("adhan playback ended")
}

// Stop kills the running player, if any.
func (p *ExecPlayer) Stop() error {
	p.mu.Lock()
	cmd := p.cmd
	p.cmd = nil
	p.mu.Unlock()

	if cmd == nil || cmd.Process == nil {
		return nil
	}
	if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("stopping player: %w", err)
	}
	p.log.Info().Msg("adhan playback stopped")
	return nil
}

// Playing reports whether a player process is running.
func (p *ExecPlayer) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cmd != nil
}

func (p *ExecPlayer) args() []string {
	args := make([]string, 0, len(p.command)+1)
	substituted := false
	for _, a := range p.command {
		if strings.Contains(a, FileToken) {
			a = strings.ReplaceAll(a, FileToken, p.file)
			substituted = true
		}
		args = append(args, a)
	}
	if !substituted {
		args = append(args, p.file)
	}
	return args
}
