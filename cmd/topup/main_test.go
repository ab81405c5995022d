package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootCmdRejectsExtraArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"a", "b", "c", "d"})
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))

	require.Error(t, cmd.Execute())
}

func TestRootCmdSwallowsReportErrors(t *testing.T) {
	dir := t.TempDir()
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)

	cmd := newRootCmd()
	cmd.SetArgs([]string{filepath.Join(dir, "missing.json"), filepath.Join(dir, "companies.json"), filepath.Join(dir, "out.txt")})
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	require.NoError(t, cmd.Execute())
	require.Empty(t, stdout.String())
	require.Contains(t, stderr.String(), "An error occurred: ")
}

func TestRootCmdUsesConfiguredDefaults(t *testing.T) {
	dir := t.TempDir()
	users := filepath.Join(dir, "users.json")
	companies := filepath.Join(dir, "companies.json")
	output := filepath.Join(dir, "report.txt")
	require.NoError(t, os.WriteFile(users, []byte(`[]`), 0o644))
	require.NoError(t, os.WriteFile(companies, []byte(`[{"id":1,"name":"Solo","top_up":2}]`), 0o644))
	t.Setenv("USERS_PATH", users)
	t.Setenv("COMPANIES_PATH", companies)
	t.Setenv("OUTPUT_PATH", output)

	stdout := new(bytes.Buffer)
	cmd := newRootCmd()
	cmd.SetArgs([]string{})
	cmd.SetOut(stdout)
	cmd.SetErr(new(bytes.Buffer))

	require.NoError(t, cmd.Execute())
	require.Equal(t, output+" file created successfully!\n", stdout.String())

	report, err := os.ReadFile(output)
	require.NoError(t, err)
	require.Equal(t, "Company Id: 1\nCompany Name: Solo\nUsers Emailed:\nUsers Not Emailed:\nTotal amount of top ups for Solo: 0\n", string(report))
}
