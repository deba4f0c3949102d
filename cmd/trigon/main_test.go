package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
		wantErr  string
	}{
		{"equilateral", []string{"2", "2", "2"}, exitOK, "equilateral\n", ""},
		{"isosceles", []string{"3", "4", "4"}, exitOK, "isosceles\n", ""},
		{"scalene", []string{"5", "4", "6"}, exitOK, "scalene\n", ""},
		{"degenerate accepted", []string{"1", "1", "2"}, exitOK, "isosceles\n", ""},
		{"zero side", []string{"0", "0", "0"}, exitInvalid, "invalid: zero_side\n", ""},
		{"inequality", []string{"1", "1", "3"}, exitInvalid, "invalid: inequality_violated\n", ""},
		{"fractional enabled", []string{"-fractional", "0.4", "0.6", "0.3"}, exitOK, "scalene\n", ""},
		{"fractional invalid", []string{"-fractional", "0.1", "0.3", "0.5"}, exitInvalid, "invalid: inequality_violated\n", ""},
		{"fractional disabled", []string{"0.5", "0.5", "0.5"}, exitUsage, "", "-fractional"},
		{"negative after terminator", []string{"--", "-3", "4", "5"}, exitUsage, "", "not a non-negative number"},
		{"not a number", []string{"a", "b", "c"}, exitUsage, "", "side 1"},
		{"too few", []string{"1", "2"}, exitUsage, "", "usage:"},
		{"too many", []string{"1", "2", "3", "4"}, exitUsage, "", "usage:"},
		{"unknown flag", []string{"-x", "1", "2", "3"}, exitUsage, "", "not defined"},
		{"help", []string{"-h"}, exitOK, "", "usage:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var stdout, stderr bytes.Buffer
			code := run(tt.args, &stdout, &stderr)

			if code != tt.wantCode {
				t.Errorf("exit = %d, want %d (stderr %q)", code, tt.wantCode, stderr.String())
			}
			if stdout.String() != tt.wantOut {
				t.Errorf("stdout = %q, want %q", stdout.String(), tt.wantOut)
			}
			if tt.wantErr != "" && !strings.Contains(stderr.String(), tt.wantErr) {
				t.Errorf("stderr = %q, want substring %q", stderr.String(), tt.wantErr)
			}
		})
	}
}
