// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunAllVariants(t *testing.T) {
	out, err := execute(t, "100003", "--threads", "3", "--reps", "2", "--pages", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "scanning 100003 elements\n")
	for _, name := range []string{"serial", "serial-inplace", "page-block", "page-block-inplace", "fixed-block", "single-partition"} {
		assert.Contains(t, out, name+" scan test: PASS\n")
		assert.Contains(t, out, name+" benchmark bandwidth: ")
	}
	assert.NotContains(t, out, "FAIL")
}

func TestRunRandomCheckOnly(t *testing.T) {
	out, err := execute(t, "54321", "--random", "--seed", "xyz", "--check-only", "-t", "5",
		"--variants", "fixed-block,single-partition")
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(out, "scan test: PASS"))
	assert.NotContains(t, out, "benchmark")
}

func TestRunVerbose(t *testing.T) {
	out, err := execute(t, "1000", "-v", "--bench-only", "--reps", "1", "--variants", "serial")
	require.NoError(t, err)

	assert.Contains(t, out, "cache line:")
	assert.Contains(t, out, "fixed-block")
	assert.Contains(t, out, "steps=")
	assert.NotContains(t, out, "scan test")
}

func TestRunSmallInputs(t *testing.T) {
	for _, n := range []string{"0", "1", "25"} {
		out, err := execute(t, n, "--check-only", "-t", "8")
		require.NoError(t, err, n)
		assert.Equal(t, 6, strings.Count(out, "PASS"), n)
	}
}

func TestList(t *testing.T) {
	out, err := execute(t, "--list")
	require.NoError(t, err)
	assert.Equal(t, "serial\nserial-inplace\npage-block\npage-block-inplace\nfixed-block\nsingle-partition\n", out)
}

func TestInvalidArguments(t *testing.T) {
	_, err := execute(t, "lots")
	assert.Error(t, err)

	_, err = execute(t, "-5")
	assert.Error(t, err)

	_, err = execute(t, "10", "--variants", "v9")
	assert.ErrorContains(t, err, "v9")

	_, err = execute(t, "10", "--check-only", "--bench-only")
	assert.Error(t, err)
}
