package transcode

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

type commandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

type commandRunner interface {
	Run(ctx context.Context, name string, args ...string) (commandResult, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) (commandResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := commandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		res.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		}
		return res, err
	}

	return res, nil
}

var _ Transcoder = (*FFmpeg)(nil)

type FFmpeg struct {
	ffmpegPath  string
	ffprobePath string
	runner      commandRunner
}

func NewFFmpeg(ffmpegPath, ffprobePath string) *FFmpeg {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}

	return &FFmpeg{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		runner:      execRunner{},
	}
}

// ogg/opus → wav 16kHz mono
func (f *FFmpeg) Convert(ctx context.Context, inputPath, inputFormat, outputFormat string) (string, error) {
	outputPath := OutputPath(inputPath, outputFormat)
	if outputPath == inputPath {
		return "", &Error{Tool: "ffmpeg", Err: fmt.Errorf("output would overwrite input %s", inputPath)}
	}

	args := BuildConvertArgs(inputPath, inputFormat, outputPath)

	res, err := f.runner.Run(ctx, f.ffmpegPath, args...)
	if err != nil {
		return "", &Error{
			Tool:     "ffmpeg",
			ExitCode: res.ExitCode,
			Stderr:   tail(res.Stderr, 2000),
			Err:      err,
		}
	}

	info, err := os.Stat(outputPath)
	if err != nil {
		return "", &Error{Tool: "ffmpeg", Stderr: tail(res.Stderr, 2000), Err: fmt.Errorf("output missing: %w", err)}
	}
	if info.Size() == 0 {
		return "", &Error{Tool: "ffmpeg", Stderr: tail(res.Stderr, 2000), Err: errors.New("output is empty")}
	}

	return outputPath, nil
}

func (f *FFmpeg) Duration(ctx context.Context, path string) (float64, error) {
	res, err := f.runner.Run(ctx, f.ffprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if err != nil {
		return 0, &Error{Tool: "ffprobe", ExitCode: res.ExitCode, Stderr: tail(res.Stderr, 500), Err: err}
	}

	return strconv.ParseFloat(strings.TrimSpace(res.Stdout), 64)
}

func OutputPath(inputPath, outputFormat string) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + "." + outputFormat
}

func BuildConvertArgs(inputPath, inputFormat, outputPath string) []string {
	args := []string{"-y", "-hide_banner", "-loglevel", "error"}
	if inputFormat != "" {
		args = append(args, "-f", inputFormat)
	}
	return append(args,
		"-i", inputPath,
		"-ac", "1",
		"-ar", "16000",
		outputPath,
	)
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
