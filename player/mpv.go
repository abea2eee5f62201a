package player

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/playalong-cli/playalong/log"
	"github.com/playalong-cli/playalong/sched"
	"github.com/playalong-cli/playalong/where"
	"github.com/samber/lo"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
	quitTimeout       = 3 * time.Second
)

// ErrNotOpen is returned by MPV operations issued before Open or after Close.
var ErrNotOpen = errors.New("mpv is not running")

// mpvRates are the speeds offered for mpv. mpv accepts any speed, the list keeps
// the choice aligned with what embeddable players usually expose.
var mpvRates = []float64{0.25, 0.5, 0.75, 1, 1.25, 1.5, 1.75, 2}

// MPV is a VideoHandle driving an external mpv process over its JSON IPC socket.
// Notifications from mpv are handed to the scheduler, so registered callbacks run
// on the scheduler's goroutine.
type MPV struct {
	path       string
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{}
	mu         sync.Mutex // serialises socket round trips

	scheduler sched.Scheduler
	listener  *EventListener

	onState []func(VideoState)
	onError []func(int)
}

// NewMPV creates a handle for the mpv binary at path. Nothing is started until Open.
func NewMPV(s sched.Scheduler, path string) *MPV {
	if path == "" {
		path = "mpv"
	}

	exited := make(chan struct{})
	close(exited)

	return &MPV{
		path:      path,
		scheduler: s,
		exited:    exited,
	}
}

// Open launches mpv paused on target and subscribes to its state changes.
func (m *MPV) Open(ctx context.Context, target, title string) error {
	safeTarget, err := sanitizeMediaTarget(target)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	if m.socketPath == "" {
		randomBytes := make([]byte, 4)
		if _, err := rand.Read(randomBytes); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = where.Socket(fmt.Sprintf("mpv-%x", randomBytes))
	}

	m.cmd = exec.CommandContext(ctx, m.path, mpvArgs(m.socketPath, safeTarget, sanitizeTitle(title))...)
	m.cmd.SysProcAttr = sysProcAttr()
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	exited := make(chan struct{})
	m.exited = exited
	go func() {
		_ = m.cmd.Wait()
		close(exited)
	}()

	if err := m.waitForSocket(ctx); err != nil {
		select {
		case <-exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = killProcess(m.cmd)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	m.listener = NewEventListener(m.socketPath, m.dispatch)
	if err := m.listener.Start(); err != nil {
		_ = m.Close()
		return err
	}

	return nil
}

// mpvArgs builds the command line. Only the socket, the title and playback
// start state are forced, everything else is left to the user's mpv.conf.
func mpvArgs(socketPath, target, title string) []string {
	args := []string{
		"--no-terminal",
		"--really-quiet",
		"--idle=yes",
		"--pause=yes",
		"--keep-open=yes",
		"--force-window=yes",
		fmt.Sprintf("--input-ipc-server=%s", socketPath),
	}

	if title != "" {
		args = append(args, fmt.Sprintf("--force-media-title=%s", title))
	}

	// "--" ends option parsing, the target can never be read as a flag.
	return append(args, "--", target)
}

// Wait returns a channel that is closed when the mpv process exits.
func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

func (m *MPV) waitForSocket(ctx context.Context) error {
	for i := 0; i < socketWaitRetries; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-m.exited:
			return errors.New("mpv exited before socket was ready")
		case <-time.After(socketWaitDelay):
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

func (m *MPV) PlayVideo() error {
	return m.set("pause", false)
}

func (m *MPV) PauseVideo() error {
	return m.set("pause", true)
}

func (m *MPV) SeekTo(seconds float64, allowSeekAhead bool) error {
	flags := "absolute"
	if !allowSeekAhead {
		flags = "absolute+keyframes"
	}
	_, err := m.sendCommand([]any{"seek", seconds, flags})
	return err
}

func (m *MPV) SetVolume(volume int) error {
	return m.set("volume", ClampVolume(volume))
}

func (m *MPV) SetPlaybackRate(rate float64) error {
	if err := checkRate(mpvRates, rate); err != nil {
		return err
	}
	return m.set("speed", rate)
}

func (m *MPV) CurrentTime() (float64, error) {
	return m.getFloatProperty("time-pos")
}

func (m *MPV) Duration() (float64, error) {
	return m.getFloatProperty("duration")
}

func (m *MPV) AvailablePlaybackRates() []float64 {
	return mpvRates
}

// Available reports whether mpv is responding to IPC commands.
func (m *MPV) Available() bool {
	if m.socketPath == "" {
		return false
	}

	select {
	case <-m.exited:
		return false
	default:
	}

	_, err := m.sendCommand([]any{"get_property", "pid"})
	return err == nil
}

// OnStateChange registers a callback for playback state changes.
// Register callbacks before Open.
func (m *MPV) OnStateChange(fn func(VideoState)) {
	m.onState = append(m.onState, fn)
}

// OnError registers a callback for playback errors.
// Register callbacks before Open.
func (m *MPV) OnError(fn func(code int)) {
	m.onError = append(m.onError, fn)
}

// dispatch runs on the listener goroutine and forwards translated
// notifications to the scheduler.
func (m *MPV) dispatch(name string, data any) {
	state, code, ok := translate(name, data)
	if !ok {
		return
	}

	m.scheduler.Post(func() {
		if code != 0 {
			for _, fn := range m.onError {
				fn(code)
			}
			return
		}
		for _, fn := range m.onState {
			fn(state)
		}
	})
}

// translate maps an mpv notification to a video state or an error code.
func translate(name string, data any) (state VideoState, code int, ok bool) {
	switch name {
	case "pause":
		paused, isBool := data.(bool)
		if !isBool {
			return 0, 0, false
		}
		return lo.Ternary(paused, VideoPaused, VideoPlaying), 0, true
	case "eof-reached":
		if reached, _ := data.(bool); reached {
			return VideoEnded, 0, true
		}
	case "seeking":
		if seeking, _ := data.(bool); seeking {
			return VideoBuffering, 0, true
		}
	case "end-file":
		event, _ := data.(map[string]any)
		if reason, _ := event["reason"].(string); reason != "error" {
			return 0, 0, false
		}

		fileError, _ := event["file_error"].(string)
		switch {
		case strings.Contains(fileError, "loading failed"),
			strings.Contains(fileError, "no such file"):
			return 0, ErrorCodeVideoNotFound, true
		case strings.Contains(fileError, "unrecognized file format"):
			return 0, ErrorCodeHTML5, true
		default:
			return 0, ErrorCodeInvalidParam, true
		}
	}

	return 0, 0, false
}

// Close shuts down the mpv process and cleans up resources.
func (m *MPV) Close() error {
	if m.listener != nil {
		m.listener.Stop()
		m.listener = nil
	}

	if m.socketPath == "" {
		return nil
	}

	_, _ = m.sendCommand([]any{"quit"})

	select {
	case <-m.exited:
	case <-time.After(quitTimeout):
		_ = killProcess(m.cmd)
	}

	_ = os.Remove(m.socketPath)
	m.socketPath = ""

	return nil
}

// Socket returns the IPC socket path.
func (m *MPV) Socket() string {
	return m.socketPath
}

func (m *MPV) set(property string, value any) error {
	_, err := m.sendCommand([]any{"set_property", property, value})
	return err
}

func (m *MPV) getFloatProperty(name string) (float64, error) {
	data, err := m.sendCommand([]any{"get_property", name})
	if err != nil {
		return 0, err
	}

	if data == nil {
		return 0, fmt.Errorf("property %s: nil response", name)
	}

	val, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected float64, got %T", name, data)
	}

	return val, nil
}

// sanitizeMediaTarget validates that a target is safe to pass to mpv.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", errors.New("empty URL")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", errors.New("invalid control characters in URL")
	}

	if strings.HasPrefix(l, "-") {
		return "", errors.New("url must not start with '-' (looks like a flag)")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}

func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
