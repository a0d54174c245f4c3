package infrastructure

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"sync"

	"github.com/kvisuru/musicbox/internal/modules/music/application/ports"
	"github.com/kvisuru/musicbox/internal/modules/music/domain"
)

// FFmpegStreamFactory opens audio pipelines by spawning ffmpeg to decode
// the remote stream into raw 48kHz stereo s16le PCM on stdout.
type FFmpegStreamFactory struct{}

// NewFFmpegStreamFactory creates a new FFmpegStreamFactory.
func NewFFmpegStreamFactory() *FFmpegStreamFactory {
	return &FFmpegStreamFactory{}
}

var _ ports.PCMStreamFactory = (*FFmpegStreamFactory)(nil)

// Open implements ports.PCMStreamFactory. The process outlives ctx: the
// stream is owned by playback, not the resolution call, and runs until EOF
// or Close.
func (f *FFmpegStreamFactory) Open(ctx context.Context, streamURL string) (domain.AudioStream, error) {
	cmd := exec.Command("ffmpeg",
		"-reconnect", "1",
		"-reconnect_streamed", "1",
		"-reconnect_delay_max", "5",
		"-nostdin",
		"-i", streamURL,
		"-f", "s16le",
		"-ar", "48000",
		"-ac", "2",
		"pipe:1")

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start ffmpeg: %w", err)
	}

	go func() {
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			slog.Debug("ffmpeg", "line", scanner.Text())
		}
	}()

	return &ffmpegStream{cmd: cmd, out: stdout}, nil
}

// ffmpegStream is a running ffmpeg process exposed as an AudioStream.
type ffmpegStream struct {
	cmd *exec.Cmd
	out io.ReadCloser

	closeOnce sync.Once
	closeErr  error
}

func (s *ffmpegStream) Read(p []byte) (int, error) {
	return s.out.Read(p)
}

// Close kills the ffmpeg process and reaps it. Idempotent.
func (s *ffmpegStream) Close() error {
	s.closeOnce.Do(func() {
		if s.cmd.Process != nil {
			s.closeErr = s.cmd.Process.Kill()
		}
		// Wait must run so the process does not linger as a zombie. The
		// error is the kill signal, not a real failure.
		_ = s.cmd.Wait()
		_ = s.out.Close()
	})
	return s.closeErr
}
