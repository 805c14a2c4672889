package main

import (
	"context"
	"fmt"
	"testing"

	"github.com/matzehuels/apigen/pkg/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"config", errors.New(errors.ErrCodeInvalidConfig, "bad root"), exitConfig},
		{"version", errors.New(errors.ErrCodeVersionNotFound, "no metadata"), exitConfig},
		{"wrapped config", fmt.Errorf("run: %w", errors.New(errors.ErrCodeInvalidConfig, "x")), exitConfig},
		{"io", errors.New(errors.ErrCodeIO, "disk full"), exitError},
		{"plain", fmt.Errorf("boom"), exitError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(context.Background(), tt.err); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if got := exitCode(ctx, context.Canceled); got != exitInterrupted {
		t.Errorf("exitCode(cancelled) = %d, want %d", got, exitInterrupted)
	}
}
