// Package editor runs the interactive step that produces highlighted HTML.
//
// The step runs on its own goroutine and hands its result back through a
// temporary artifact file. A step that finishes without writing the artifact
// was cancelled by the user.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/open-cli-collective/notehighlight-cli/internal/artifact"
)

// Step produces highlighted HTML at outPath, or leaves outPath absent to cancel.
type Step interface {
	Run(ctx context.Context, outPath string) error
}

// CommandStep runs an external highlighter. The command receives Tag (when
// set) and the artifact path as its final two arguments.
type CommandStep struct {
	Command string
	Args    []string
	Tag     string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes the highlighter and waits for it to exit.
func (s *CommandStep) Run(ctx context.Context, outPath string) error {
	if s.Command == "" {
		return errors.New("no highlighter command configured")
	}

	args := append([]string{}, s.Args...)
	if s.Tag != "" {
		args = append(args, s.Tag)
	}
	args = append(args, outPath)

	cmd := exec.CommandContext(ctx, s.Command, args...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if s.Stdin != nil {
		cmd.Stdin = s.Stdin
	}
	if s.Stdout != nil {
		cmd.Stdout = s.Stdout
	}
	if s.Stderr != nil {
		cmd.Stderr = s.Stderr
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// a highlighter closed without output counts as a cancel
			if _, statErr := os.Stat(outPath); errors.Is(statErr, os.ErrNotExist) {
				return nil
			}
		}
		return fmt.Errorf("highlighter failed: %w", err)
	}
	return nil
}

// FileStep uses an HTML file that was highlighted beforehand.
type FileStep struct {
	Path string
}

// Run copies the file into the artifact.
func (s *FileStep) Run(_ context.Context, outPath string) error {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	return artifact.Write(outPath, string(data))
}

// ReaderStep reads highlighted HTML from a stream, typically stdin.
// An empty stream writes no artifact.
type ReaderStep struct {
	Reader io.Reader
}

// Run copies the stream into the artifact.
func (s *ReaderStep) Run(_ context.Context, outPath string) error {
	data, err := io.ReadAll(s.Reader)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	if len(data) == 0 {
		return nil
	}
	return artifact.Write(outPath, string(data))
}

// Await runs step on its own goroutine with a fresh artifact path in dir and
// returns the HTML it produced. It returns artifact.ErrCancelled when the
// step wrote nothing, and ctx.Err() when ctx ends first. The artifact never
// outlives the step: when ctx ends first it is removed once the step returns.
func Await(ctx context.Context, step Step, dir string) (string, error) {
	path := artifact.NewPath(dir)

	done := make(chan error, 1)
	go func() {
		done <- step.Run(ctx, path)
	}()

	select {
	case err := <-done:
		defer func() { _ = artifact.Remove(path) }()
		if err != nil {
			return "", err
		}
		return artifact.Read(path)
	case <-ctx.Done():
		go func() {
			<-done
			_ = artifact.Remove(path)
		}()
		return "", ctx.Err()
	}
}
