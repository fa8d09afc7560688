// Package secret holds the credential handed to privileged commands and the
// providers that obtain it.
package secret

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/conn-castle/launch/internal/messages"
)

// EnvPassword is the environment variable consulted by EnvProvider by default.
const EnvPassword = "LAUNCH_SUDO_PASSWORD"

var (
	// ErrEmptyCredential reports a credential that was supplied but empty.
	ErrEmptyCredential = errors.New(messages.SecretEmpty)
	// ErrNoCredential reports that a provider had nothing to offer.
	ErrNoCredential = errors.New(messages.SecretUnavailable)
)

// Credential wraps a secret so that formatting it never prints the value.
type Credential struct {
	value string
}

// New wraps value as a Credential.
func New(value string) Credential {
	return Credential{value: value}
}

// Reveal returns the raw secret. Only the privileged runner should call it.
func (c Credential) Reveal() string {
	return c.value
}

// Empty reports whether the credential holds no secret.
func (c Credential) Empty() bool {
	return c.value == ""
}

func (c Credential) String() string {
	return messages.SecretRedacted
}

func (c Credential) GoString() string {
	return messages.SecretRedacted
}

// MarshalText keeps the secret out of encoders and structured loggers.
func (c Credential) MarshalText() ([]byte, error) {
	return []byte(messages.SecretRedacted), nil
}

// Provider obtains a credential for one installation run.
type Provider interface {
	Credential(ctx context.Context) (Credential, error)
}

// ProviderFunc adapts a function into a Provider.
type ProviderFunc func(ctx context.Context) (Credential, error)

// Credential calls f.
func (f ProviderFunc) Credential(ctx context.Context) (Credential, error) {
	return f(ctx)
}

// EnvProvider reads the credential from an environment variable.
type EnvProvider struct {
	Key       string
	LookupEnv func(string) (string, bool)
}

// Credential returns ErrNoCredential when the variable is unset and
// ErrEmptyCredential when it is set but empty.
func (p EnvProvider) Credential(_ context.Context) (Credential, error) {
	key := p.Key
	if key == "" {
		key = EnvPassword
	}
	lookup := p.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	value, ok := lookup(key)
	if !ok {
		return Credential{}, ErrNoCredential
	}
	if value == "" {
		return Credential{}, ErrEmptyCredential
	}
	return New(value), nil
}

// ReaderProvider reads the credential from the first line of Reader.
type ReaderProvider struct {
	Reader io.Reader
}

// Credential strips only the line terminator; surrounding spaces are part of the secret.
func (p ReaderProvider) Credential(_ context.Context) (Credential, error) {
	if p.Reader == nil {
		return Credential{}, ErrNoCredential
	}
	line, err := bufio.NewReader(p.Reader).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return Credential{}, fmt.Errorf(messages.SecretReadFailed, err)
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	if line == "" {
		return Credential{}, ErrEmptyCredential
	}
	return New(line), nil
}

// PromptProvider asks the user through Prompt, typically a masked input field.
type PromptProvider struct {
	Title  string
	Prompt func(title string, value *string) error
}

// Credential runs the prompt once.
func (p PromptProvider) Credential(_ context.Context) (Credential, error) {
	if p.Prompt == nil {
		return Credential{}, ErrNoCredential
	}
	var value string
	if err := p.Prompt(p.Title, &value); err != nil {
		return Credential{}, err
	}
	if value == "" {
		return Credential{}, ErrEmptyCredential
	}
	return New(value), nil
}

// Chain tries each provider in order and returns the first credential obtained.
// Providers answering ErrNoCredential are skipped; any other error stops the chain.
type Chain []Provider

// Credential walks the chain.
func (c Chain) Credential(ctx context.Context) (Credential, error) {
	for _, p := range c {
		if p == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return Credential{}, err
		}
		cred, err := p.Credential(ctx)
		if errors.Is(err, ErrNoCredential) {
			continue
		}
		return cred, err
	}
	return Credential{}, ErrNoCredential
}
