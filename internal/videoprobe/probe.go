// Package videoprobe reads stream metadata and the first frame of a video
// file through ffprobe and ffmpeg.
package videoprobe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/tphakala/video-enrichment-api/internal/errors"
	"github.com/tphakala/video-enrichment-api/internal/logger"
)

var (
	// ErrUnreadable is returned when the file has no decodable video stream.
	ErrUnreadable = errors.NewStd("video file cannot be opened")

	// ErrNoFrames is returned when no frame can be decoded.
	ErrNoFrames = errors.NewStd("no video frames could be read")
)

// Info is the probed stream metadata
type Info struct {
	Frames int64
	FPS    float64
}

// Duration returns frames/fps in seconds, or 0 when the frame rate is unknown.
func (i Info) Duration() float64 {
	if i.FPS <= 0 {
		return 0
	}
	return float64(i.Frames) / i.FPS
}

// Prober inspects video files on local disk
type Prober interface {
	// Probe returns the frame count and frame rate of the first video stream.
	// Returns ErrUnreadable when the file is not a readable video.
	Probe(ctx context.Context, path string) (Info, error)

	// Thumbnail encodes the first frame as JPEG.
	// Returns ErrNoFrames when no frame can be decoded.
	Thumbnail(ctx context.Context, path string) ([]byte, error)
}

// runFunc executes a command and returns its stdout and stderr
type runFunc func(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)

func runCommand(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var out, errOut bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errOut
	err = cmd.Run()
	return out.Bytes(), errOut.Bytes(), err
}

// FFmpegProber implements Prober with the ffprobe and ffmpeg binaries
type FFmpegProber struct {
	ffprobe string
	ffmpeg  string
	timeout time.Duration
	log     logger.Logger
	run     runFunc
}

// NewFFmpegProber creates a prober. Empty binary names fall back to the
// names on PATH; timeout bounds each invocation when positive.
func NewFFmpegProber(ffprobePath, ffmpegPath string, timeout time.Duration, log logger.Logger) *FFmpegProber {
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if log == nil {
		log = logger.NewSlogLogger(nil, logger.LogLevelInfo, nil)
	}
	return &FFmpegProber{
		ffprobe: ffprobePath,
		ffmpeg:  ffmpegPath,
		timeout: timeout,
		log:     log,
		run:     runCommand,
	}
}

func (p *FFmpegProber) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.timeout > 0 {
		return context.WithTimeout(ctx, p.timeout)
	}
	return context.WithCancel(ctx)
}

// Probe runs ffprobe against the first video stream
func (p *FFmpegProber) Probe(ctx context.Context, path string) (Info, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	// -count_packets fills nb_read_packets for containers that omit nb_frames
	stdout, stderr, err := p.run(ctx, p.ffprobe,
		"-v", "error",
		"-select_streams", "v:0",
		"-count_packets",
		"-show_entries", "stream=nb_frames,nb_read_packets,avg_frame_rate,r_frame_rate",
		"-of", "json",
		path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Info{}, fmt.Errorf("ffprobe interrupted: %w", ctxErr)
		}
		p.log.Debug("ffprobe rejected file",
			logger.String("path", path),
			logger.String("stderr", strings.TrimSpace(string(stderr))),
			logger.Error(err))
		return Info{}, ErrUnreadable
	}

	info, err := parseProbeOutput(stdout)
	if err != nil {
		p.log.Debug("ffprobe output unusable", logger.String("path", path), logger.Error(err))
		return Info{}, ErrUnreadable
	}
	return info, nil
}

// Thumbnail decodes the first frame with ffmpeg and returns it as JPEG
func (p *FFmpegProber) Thumbnail(ctx context.Context, path string) ([]byte, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	stdout, stderr, err := p.run(ctx, p.ffmpeg,
		"-v", "error",
		"-i", path,
		"-frames:v", "1",
		"-f", "image2",
		"-c:v", "mjpeg",
		"pipe:1")
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("ffmpeg interrupted: %w", ctxErr)
		}
		p.log.Debug("ffmpeg could not decode a frame",
			logger.String("path", path),
			logger.String("stderr", strings.TrimSpace(string(stderr))),
			logger.Error(err))
		return nil, ErrNoFrames
	}
	if len(stdout) == 0 {
		return nil, ErrNoFrames
	}
	return stdout, nil
}

type probeOutput struct {
	Streams []struct {
		NbFrames      string `json:"nb_frames"`
		NbReadPackets string `json:"nb_read_packets"`
		AvgFrameRate  string `json:"avg_frame_rate"`
		RFrameRate    string `json:"r_frame_rate"`
	} `json:"streams"`
}

// parseProbeOutput extracts frame count and rate from ffprobe JSON
func parseProbeOutput(data []byte) (Info, error) {
	var out probeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return Info{}, fmt.Errorf("decode ffprobe output: %w", err)
	}
	if len(out.Streams) == 0 {
		return Info{}, errors.NewStd("no video stream")
	}
	s := out.Streams[0]

	frames, ok := parseCount(s.NbFrames)
	if !ok {
		frames, _ = parseCount(s.NbReadPackets)
	}

	fps := parseRate(s.AvgFrameRate)
	if fps <= 0 {
		fps = parseRate(s.RFrameRate)
	}

	return Info{Frames: frames, FPS: fps}, nil
}

func parseCount(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// parseRate parses "num/den" or a plain number; invalid input yields 0
func parseRate(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	num, den, found := strings.Cut(s, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	if !found {
		return n
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0
	}
	return n / d
}
