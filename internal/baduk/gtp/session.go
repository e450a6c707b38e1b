package gtp

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/jwhyun/baduk-bot/internal/baduk"
)

const (
	defaultReadyTimeout   = 4 * time.Second
	defaultCommandTimeout = 10 * time.Second
)

// Session drives one Fuego process over the Go Text Protocol. Commands are
// serialized; GTP has no interleaved responses.
type Session struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout *bufio.Reader
	mu     sync.Mutex
}

func NewSession(ctx context.Context, binaryPath string) (*Session, error) {
	cmd := exec.CommandContext(ctx, binaryPath)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("create stdin pipe: %w", err)
	}
	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		stdin.Close()
		return nil, fmt.Errorf("create stdout pipe: %w", err)
	}
	// Fuego logs search statistics to stderr.
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		stdin.Close()
		stdoutPipe.Close()
		return nil, fmt.Errorf("start engine: %w", err)
	}

	s := &Session{
		cmd:    cmd,
		stdin:  stdin,
		stdout: bufio.NewReader(stdoutPipe),
	}

	if err := s.initialize(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Session) initialize(ctx context.Context) error {
	initCtx, cancel := context.WithTimeout(ctx, defaultReadyTimeout)
	defer cancel()

	version, err := s.Exec(initCtx, "protocol_version")
	if err != nil {
		return fmt.Errorf("probe protocol version: %w", err)
	}
	if strings.TrimSpace(version) != "2" {
		return fmt.Errorf("unsupported GTP protocol version: %s", version)
	}
	return nil
}

// Exec sends one GTP command and returns the response payload. A "?"
// response is surfaced as an error carrying the engine's message.
func (s *Session) Exec(ctx context.Context, command string) (string, error) {
	trimmed := strings.TrimSpace(command)
	if trimmed == "" {
		return "", fmt.Errorf("empty gtp command")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := io.WriteString(s.stdin, trimmed+"\n"); err != nil {
		return "", fmt.Errorf("send %q: %w", trimmed, err)
	}

	cctx := ctx
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		cctx, cancel = context.WithTimeout(ctx, defaultCommandTimeout)
		defer cancel()
	}

	var (
		sb      strings.Builder
		started bool
		failed  bool
	)
	for {
		line, err := s.readLine(cctx)
		if err != nil {
			return "", fmt.Errorf("read response to %q: %w", trimmed, err)
		}
		if !started {
			if line == "" {
				continue
			}
			switch line[0] {
			case '=':
				started = true
			case '?':
				started = true
				failed = true
			default:
				// Stray engine chatter ahead of the response.
				continue
			}
			sb.WriteString(strings.TrimSpace(line[1:]))
			continue
		}
		// The response is terminated by an empty line.
		if line == "" {
			break
		}
		sb.WriteString("\n")
		sb.WriteString(line)
	}

	if failed {
		return "", fmt.Errorf("gtp error for %q: %s", trimmed, sb.String())
	}
	return sb.String(), nil
}

// ApplyProfile pushes a profile's engine settings to the running process.
func (s *Session) ApplyProfile(ctx context.Context, p *baduk.Profile, boardSize int) error {
	cmds, err := baduk.BuildEngineCommands(p, boardSize)
	if err != nil {
		return err
	}
	for _, cmd := range cmds {
		if _, err := s.Exec(ctx, cmd); err != nil {
			return fmt.Errorf("apply profile %s: %w", p.ID, err)
		}
	}
	return nil
}

// SetBoardSize resizes the board and clears it.
func (s *Session) SetBoardSize(ctx context.Context, size int) error {
	if _, err := s.Exec(ctx, fmt.Sprintf("boardsize %d", size)); err != nil {
		return err
	}
	_, err := s.Exec(ctx, "clear_board")
	return err
}

func (s *Session) SetKomi(ctx context.Context, komi float64) error {
	_, err := s.Exec(ctx, fmt.Sprintf("komi %.1f", komi))
	return err
}

func (s *Session) Name(ctx context.Context) (string, error) {
	return s.Exec(ctx, "name")
}

func (s *Session) Version(ctx context.Context) (string, error) {
	return s.Exec(ctx, "version")
}

// EnsureReady verifies the process still answers before a pooled session is
// handed out again.
func (s *Session) EnsureReady(ctx context.Context) error {
	readyCtx, cancel := context.WithTimeout(ctx, defaultReadyTimeout)
	defer cancel()
	if _, err := s.Exec(readyCtx, "protocol_version"); err != nil {
		return fmt.Errorf("engine not ready: %w", err)
	}
	return nil
}

func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdin != nil {
		// Best effort orderly shutdown.
		_, _ = io.WriteString(s.stdin, "quit\n")
		s.stdin.Close()
	}

	if s.cmd != nil && s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}

	if s.cmd != nil {
		return s.cmd.Wait()
	}
	return nil
}

func (s *Session) readLine(ctx context.Context) (string, error) {
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)

	go func() {
		line, err := s.stdout.ReadString('\n')
		ch <- result{line: strings.TrimSpace(line), err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		return res.line, res.err
	}
}
