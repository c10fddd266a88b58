package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_WithCause(t *testing.T) {
	cause := fmt.Errorf("exit status 128")
	err := ProvisioningFailed("demo", cause)

	if err.ExitCode() != ExitProvisioning {
		t.Errorf("ExitCode() = %d, want %d", err.ExitCode(), ExitProvisioning)
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped cause should be reachable via errors.Is")
	}
	if err.Error() != "failed to provision sandbox demo: exit status 128" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestError_WithoutCause(t *testing.T) {
	err := NoPriorLaunch()
	if err.Error() != "no sandbox has been launched yet" {
		t.Errorf("unexpected message: %s", err.Error())
	}
	if err.Unwrap() != nil {
		t.Error("Unwrap() should be nil without a cause")
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid reference", InvalidReference("???"), ExitInvalidReference},
		{"environment", EnvironmentUnavailable(), ExitEnvironment},
		{"no prior launch", NoPriorLaunch(), ExitNoPriorLaunch},
		{"missing option", MissingRequiredOption("repo"), ExitMissingOption},
		{"named config", NamedConfigNotFound("prelude"), ExitConfigNotFound},
		{"plain error", fmt.Errorf("boom"), ExitGeneralError},
		{"wrapped", fmt.Errorf("outer: %w", NoPriorLaunch()), ExitNoPriorLaunch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("context: %w", EnvironmentUnavailable())
	if !IsKind(err, ExitEnvironment) {
		t.Error("IsKind should see through wrapping")
	}
	if IsKind(err, ExitNoPriorLaunch) {
		t.Error("IsKind matched the wrong code")
	}
}
