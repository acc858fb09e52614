package cli

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liamgriffiths/visits/internal/visit"
)

var addedID = regexp.MustCompile(`\(#(\d+)\)`)

func add(t *testing.T, dbPath, username, enter, exit string) int64 {
	t.Helper()
	out, err := executeCommand("add", "-u", username, "--enter", enter, "--exit", exit, "--db", dbPath)
	require.NoError(t, err)
	require.Contains(t, out, "Added: "+enter+" to "+exit)

	m := addedID.FindStringSubmatch(out)
	require.Len(t, m, 2, "no id in %q", out)
	id, err := strconv.ParseInt(m[1], 10, 64)
	require.NoError(t, err)
	return id
}

func TestAddAndSummary(t *testing.T) {
	dbPath := isolate(t)

	add(t, dbPath, "alice", "2018-01-01", "2018-01-10")
	add(t, dbPath, "alice", "2018-02-01", "2018-02-10")

	out, err := executeCommand("summary", "-u", "alice", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "2018-01-01")
	assert.Contains(t, out, "2018-02-10")
	assert.Contains(t, out, "Total: 2 visits, 20 days")

	out, err = executeCommand("ls", "-u", "bob", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "No visits recorded.")
}

func TestSummaryJSON(t *testing.T) {
	dbPath := isolate(t)
	add(t, dbPath, "alice", "2018-01-01", "2018-01-10")
	add(t, dbPath, "alice", "2018-02-01", "2018-02-10")

	out, err := executeCommand("summary", "-u", "alice", "--db", dbPath, "--format", "json", "--period", "60", "--days", "30")
	require.NoError(t, err)

	var s visit.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, 60, s.Period)
	assert.Equal(t, 30, s.MaxDays)
	require.Len(t, s.Rows, 2)
	assert.Equal(t, 20, s.Rows[0].DaysLeft)
	assert.Equal(t, 10, s.Rows[1].DaysLeft) // window 2017-12-12..2018-02-10 holds both visits
	assert.Equal(t, "2018-01-01", s.Rows[0].EnterAt.String())
}

func TestRemove(t *testing.T) {
	dbPath := isolate(t)
	id := add(t, dbPath, "alice", "2018-01-01", "2018-01-10")
	idArg := strconv.FormatInt(id, 10)

	out, err := executeCommand("rm", "-u", "bob", "--id", idArg, "--db", dbPath)
	require.NoError(t, err)
	assert.Equal(t, "No visit with id "+idArg+".\n", out)

	out, err = executeCommand("rm", "-u", "alice", "--id", idArg, "--db", dbPath)
	require.NoError(t, err)
	assert.Equal(t, "Removed visit #"+idArg+".\n", out)

	out, err = executeCommand("rm", "-u", "alice", "--id", idArg, "--db", dbPath, "--format", "json")
	require.NoError(t, err)
	var res map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, false, res["removed"])
}

func TestNextEmptyHistory(t *testing.T) {
	dbPath := isolate(t)
	today := visit.Today(time.Now())

	out, err := executeCommand("next", "-u", "alice", "--db", dbPath, "--format", "json")
	require.NoError(t, err)

	var c visit.Candidate
	require.NoError(t, json.Unmarshal([]byte(out), &c))
	// The clock can roll over between the two reads near midnight.
	assert.False(t, c.EnterAt.Before(today))
	assert.Equal(t, 1, c.Days)
	assert.LessOrEqual(t, c.DaysUntil, 0)
}

func TestNextAfterFullAllowance(t *testing.T) {
	dbPath := isolate(t)
	today := visit.Today(time.Now())
	add(t, dbPath, "alice", today.AddDays(-90).String(), today.AddDays(-1).String())

	out, err := executeCommand("next", "-u", "alice", "--db", dbPath, "--length", "3")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Next visit: "), out)
	assert.Contains(t, out, "Length:   3 days")
}

func TestUsernameFromEnv(t *testing.T) {
	dbPath := isolate(t)
	t.Setenv("VISITS_USERNAME", "carol")

	_, err := executeCommand("add", "--enter", "2018-01-01", "--exit", "2018-01-01", "--db", dbPath)
	require.NoError(t, err)

	out, err := executeCommand("summary", "-u", "carol", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Total: 1 visit, 1 day")
}

func TestInitSavesDefaults(t *testing.T) {
	dbPath := isolate(t)

	out, err := executeCommand("init", "-u", "dave", "--db", dbPath, "--period", "365", "--days", "183")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved config to ")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, CLIConfig{DBPath: dbPath, Username: "dave", Period: 365, MaxDays: 183}, cfg)

	// Later commands pick up the saved username, database and rule.
	_, err = executeCommand("add", "--enter", "2018-01-01", "--exit", "2018-01-05")
	require.NoError(t, err)

	out, err = executeCommand("summary", "--format", "json")
	require.NoError(t, err)
	var s visit.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, 365, s.Period)
	assert.Equal(t, 183, s.MaxDays)
	assert.Len(t, s.Rows, 1)
}

func TestInitRejectsNegative(t *testing.T) {
	isolate(t)

	_, err := executeCommand("init", "--period", "-1")
	assert.Error(t, err)
}
