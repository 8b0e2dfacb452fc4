package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/changhyeonkim/sales-crm/internal/config"
	"github.com/changhyeonkim/sales-crm/internal/customer"
	"github.com/changhyeonkim/sales-crm/internal/model"
	"github.com/changhyeonkim/sales-crm/internal/shared/database"
	"github.com/changhyeonkim/sales-crm/internal/shared/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// setupStore points the CLI at a fresh SQLite file holding one user
func setupStore(t *testing.T) {
	t.Helper()

	t.Setenv("JWT_SECRET", "test-jwt-secret-key-must-be-at-least-32-characters-long")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "crm.db"))

	cfg, err := config.Load("test")
	require.NoError(t, err)
	db, err := database.New(cfg)
	require.NoError(t, err)
	testutil.CreateTestUser(t, db.DB, "user1")
	require.NoError(t, db.Close())
}

func TestAge(t *testing.T) {
	testCases := []struct {
		birthday string
		today    string
		want     string
	}{
		{"1990-12-31", "2024-06-01", "33"},
		{"1990-06-01", "2024-06-01", "34"},
		{"2000-02-29", "2023-02-28", "22"},
		{"2000-02-29", "2023-03-01", "23"},
		{"2000-02-29", "2024-02-29", "24"},
	}

	for _, tc := range testCases {
		t.Run(tc.birthday+"@"+tc.today, func(t *testing.T) {
			out, err := run(t, "age", tc.birthday, "--today", tc.today)

			require.NoError(t, err)
			assert.Equal(t, tc.want+"\n", out)
		})
	}
}

func TestAge_RejectsFutureAndMalformed(t *testing.T) {
	for _, birthday := range []string{"2030-01-01", "1990/01/01", "1899-12-31"} {
		_, err := run(t, "age", birthday, "--today", "2024-06-01")
		assert.Error(t, err, birthday)
	}
}

func TestImportExport_RoundTrip(t *testing.T) {
	// Given
	setupStore(t)
	input := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(input, []byte(
		"name,birthday,needs\n山田太郎,1990-12-31,保険\n山田太郎,1990-12-31,保険\n鈴木花子,2000-02-29,車\n鈴木一郎,not-a-date,\n",
	), 0o600))

	// When
	out, err := run(t, "--env", "test", "--owner", "user1", "import", input)

	// Then
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "total=4 imported=2 duplicates=1 failed=1", lines[0])
	assert.Equal(t, "duplicate\t山田太郎", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "failed\trow=5\t鈴木一郎"), lines[2])

	// When: Exported to a file
	output := filepath.Join(t.TempDir(), "out.csv")
	_, err = run(t, "--env", "test", "--owner", "user1", "export", "-o", output)
	require.NoError(t, err)

	// Then
	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, customer.CSVHeader, records[0])
	assert.Equal(t, model.DeriveCustomerID("山田太郎"), records[1][0])
	assert.Equal(t, model.DeriveCustomerID("鈴木花子"), records[2][0])
}

func TestExport_Stdout(t *testing.T) {
	setupStore(t)

	out, err := run(t, "--env", "test", "--owner", "user1", "export")

	require.NoError(t, err)
	assert.Equal(t, strings.Join(customer.CSVHeader, ",")+"\n", out)
}

func TestOwnerRequired(t *testing.T) {
	setupStore(t)

	_, err := run(t, "--env", "test", "export")
	assert.ErrorContains(t, err, "--owner")

	_, err = run(t, "--env", "test", "--owner", "nobody", "export")
	assert.Error(t, err)
}
