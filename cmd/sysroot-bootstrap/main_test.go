package main

import "testing"

func TestRunMissingPositionalsIsError(t *testing.T) {
	if code := run([]string{}); code != 1 {
		t.Errorf("expected exit code 1 for missing args, got %d", code)
	}
}

func TestRunHelpExitsZero(t *testing.T) {
	if code := run([]string{"--help"}); code != 0 {
		t.Errorf("expected exit code 0 for --help, got %d", code)
	}
}

func TestRunUnknownFlagIsError(t *testing.T) {
	if code := run([]string{"jammy", "/tmp/sysroot", "--bogus"}); code != 1 {
		t.Errorf("expected exit code 1 for unknown flag, got %d", code)
	}
}
