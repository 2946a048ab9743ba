package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	inputPrompt  = "Enter full path of data file:"
	outputPrompt = "Enter full path to save output file to:"
)

var errEmptyPath = errors.New("no path entered")

// promptPath asks for a path on stdout and reads one line of answer from stdin.
func (a *app) promptPath(question string) (string, error) {
	if _, err := fmt.Fprintln(a.stdout, question); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	line, err := a.stdin.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read answer: %w", err)
	}

	path := strings.TrimSpace(line)
	if path == "" {
		return "", fmt.Errorf("%w: %s", errEmptyPath, question)
	}

	return path, nil
}

// waitForEnter blocks until a line (or EOF) is read from stdin.
func (a *app) waitForEnter() {
	_, _ = fmt.Fprintln(a.stdout, "Press Enter to exit.")
	_, _ = a.stdin.ReadString('\n')
}
