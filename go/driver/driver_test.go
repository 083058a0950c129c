// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"
)

const testdataDir = "testdata"

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	app := newApp()
	out := &bytes.Buffer{}
	app.Writer = out
	app.ErrWriter = io.Discard
	err := app.Run(append([]string{"gaslighter"}, args...))
	return out.String(), err
}

func writeVectors(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vectors.json")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write vectors: %v", err)
	}
	return path
}

func TestRun_PassesReferenceVectors(t *testing.T) {
	out, err := runApp(t, "run", "--input", testdataDir, "--jobs", "2")
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out)
	}
	for _, want := range []string{
		"Testing add ... OK\n",
		"Testing sload ... OK\n",
		"Testing stop ... OK\n",
		"Testing underflow ... OK\n",
		"All tests passed successfully!\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output misses %q, got:\n%s", want, out)
		}
	}
}

func TestRun_ReportsFailingVectors(t *testing.T) {
	path := writeVectors(t, `{
		"mismatch": {"env": {}, "exec": {"code": "0x00", "gas": "100"}, "out": "0x01"},
		"success":  {"env": {}, "exec": {"code": "0x00", "gas": "100"}}
	}`)

	out, err := runApp(t, "run", "--input", path)
	if err == nil || err.Error() != "failed to pass 2 test vectors" {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{
		"Testing mismatch ... Failed (result not match)\n",
		"Testing success ... Failed (unexpected success)\n",
		"---- mismatch failures: 2\n",
		"success: Failed (unexpected success)\n",
		"Test vectors dumped to ",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output misses %q, got:\n%s", want, out)
		}
	}
}

func TestRun_CountsConstructionFailures(t *testing.T) {
	code := strings.Repeat("00", 49153)
	path := writeVectors(t, fmt.Sprintf(`{
		"big": {"env": {}, "exec": {"code": "0x%s", "gas": "100"}, "out": "0x"}
	}`, code))

	out, err := runApp(t, "run", "--input", path)
	if err == nil {
		t.Fatalf("expected run to fail")
	}
	for _, want := range []string{
		"Testing big ... Failed to construct machine: ",
		"Number of vectors failing machine construction: 1\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output misses %q, got:\n%s", want, out)
		}
	}
}

func TestRun_OutputOfParallelJobsDoesNotInterleave(t *testing.T) {
	var content strings.Builder
	content.WriteString("{")
	for i := 0; i < 200; i++ {
		if i > 0 {
			content.WriteString(",")
		}
		fmt.Fprintf(&content, `"v%03d": {"env": {}, "exec": {"code": "0x600101", "gas": "100"}}`, i)
	}
	content.WriteString("}")
	path := writeVectors(t, content.String())

	out, err := runApp(t, "run", "--input", path, "--jobs", "8")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	line := regexp.MustCompile(`^Testing v\d{3} \.\.\. OK$`)
	count := 0
	for _, l := range strings.Split(out, "\n") {
		if strings.HasPrefix(l, "Testing") {
			if !line.MatchString(l) {
				t.Errorf("malformed output line %q", l)
			}
			count++
		}
	}
	if want, got := 200, count; want != got {
		t.Errorf("unexpected number of verdicts, wanted %d, got %d", want, got)
	}
}

func TestRun_RejectsUnknownVm(t *testing.T) {
	_, err := runApp(t, "run", "--input", testdataDir, "evmone")
	if err == nil || !strings.Contains(err.Error(), "invalid VM identifier, use one of: [stepvm]") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRun_RejectsInvalidFilter(t *testing.T) {
	if _, err := runApp(t, "run", "--input", testdataDir, "--filter", "("); err == nil {
		t.Errorf("expected invalid filter to be rejected")
	}
}

func TestList_PrintsFilteredNames(t *testing.T) {
	out, err := runApp(t, "list", "--input", testdataDir, "--filter", "^s")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want, got := "sload\nstop\n", out; want != got {
		t.Errorf("unexpected output, wanted %q, got %q", want, got)
	}
}

func TestApp_RejectsInvalidLogLevel(t *testing.T) {
	if _, err := runApp(t, "--log-level", "chatty", "list", "--input", testdataDir); err == nil {
		t.Errorf("expected invalid log level to be rejected")
	}
}

func TestGetVm_DefaultsToReferenceMachine(t *testing.T) {
	for _, identifier := range []string{"", "stepvm"} {
		if newMachine, err := getVm(identifier); err != nil || newMachine == nil {
			t.Errorf("failed to resolve %q: %v", identifier, err)
		}
	}
}

func TestForEachVector_ProcessesEachNameOnce(t *testing.T) {
	names := make([]string, 100)
	for i := range names {
		names[i] = fmt.Sprintf("v%d", i)
	}

	var mu sync.Mutex
	seen := map[string]int{}
	forEachVector(names, func(name string) {
		mu.Lock()
		defer mu.Unlock()
		seen[name]++
	}, func(time.Duration, float64, int64) {}, 4)

	if want, got := len(names), len(seen); want != got {
		t.Errorf("unexpected number of processed vectors, wanted %d, got %d", want, got)
	}
	for name, count := range seen {
		if count != 1 {
			t.Errorf("vector %s processed %d times", name, count)
		}
	}
}

func TestForEachVector_ReportsProgress(t *testing.T) {
	backup := progressInterval
	progressInterval = time.Millisecond
	defer func() { progressInterval = backup }()

	var reports int
	var lastCount int64
	forEachVector([]string{"a", "b"}, func(string) {
		time.Sleep(20 * time.Millisecond)
	}, func(_ time.Duration, _ float64, current int64) {
		reports++
		lastCount = current
	}, 1)

	if reports == 0 {
		t.Errorf("expected at least one progress report")
	}
	if lastCount > 2 {
		t.Errorf("unexpected progress count %d", lastCount)
	}
}

func TestGenerate_ProducesPassingVectors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "examples.json")
	out, err := runApp(t, "generate", "--output", path, "--argument", "3", "--filter", "^(sha3|arithmetic)_")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := fmt.Sprintf("Generated 2 test vectors in %s\n", path); want != out {
		t.Errorf("unexpected output, wanted %q, got %q", want, out)
	}

	out, err = runApp(t, "list", "--input", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want, got := "arithmetic_3\nsha3_3\n", out; want != got {
		t.Errorf("unexpected vectors, wanted %q, got %q", want, got)
	}

	out, err = runApp(t, "run", "--input", path)
	if err != nil {
		t.Fatalf("generated vectors failed: %v\n%s", err, out)
	}
}
