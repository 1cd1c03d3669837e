package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

// promptPassword 终端下不回显，管道输入时读取一行
func (a *App) promptPassword(prompt string) (string, error) {
	if _, err := fmt.Fprint(a.out, prompt+": "); err != nil {
		return "", err
	}

	if a.terminal >= 0 {
		pw, err := term.ReadPassword(a.terminal)
		_, _ = fmt.Fprintln(a.out)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(pw), nil
	}

	line, err := a.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// promptNewPassword 要求输入两次并保持一致
func (a *App) promptNewPassword() (string, error) {
	pw, err := a.promptPassword("New password")
	if err != nil {
		return "", err
	}
	confirm, err := a.promptPassword("Repeat password")
	if err != nil {
		return "", err
	}
	if pw != confirm {
		return "", errors.New("passwords do not match")
	}
	return pw, nil
}
