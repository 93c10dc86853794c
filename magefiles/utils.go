//go:build mage

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

type cmdOptions struct {
	args   []string
	env    []string
	stream bool
}

type cmdOption func(*cmdOptions)

func withArgs(args ...string) cmdOption {
	return func(o *cmdOptions) {
		o.args = args
	}
}

func withEnv(env ...string) cmdOption {
	return func(o *cmdOptions) {
		o.env = append(o.env, env...)
	}
}

func withStream() cmdOption {
	return func(o *cmdOptions) {
		o.stream = true
	}
}

// executeCmd runs name and returns its combined output. With withStream
// the output is also copied to the terminal.
func executeCmd(name string, opts ...cmdOption) (string, error) {
	o := cmdOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	cmd := exec.Command(name, o.args...)
	cmd.Env = append(os.Environ(), o.env...)

	var out bytes.Buffer
	if o.stream {
		cmd.Stdout = io.MultiWriter(&out, os.Stdout)
		cmd.Stderr = io.MultiWriter(&out, os.Stderr)
	} else {
		cmd.Stdout = &out
		cmd.Stderr = &out
	}

	if err := cmd.Run(); err != nil {
		return out.String(), fmt.Errorf("%s %s: %w", name, strings.Join(o.args, " "), err)
	}
	return out.String(), nil
}
