package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUI() (*UI, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &UI{Out: out, ErrOut: errOut}, out, errOut
}

func TestInfo(t *testing.T) {
	u, out, _ := newTestUI()
	u.Info("hello %s", "world")
	assert.Contains(t, out.String(), "hello world")
}

func TestSuccess(t *testing.T) {
	u, out, _ := newTestUI()
	u.Success("done %d", 42)
	assert.Contains(t, out.String(), "done 42")
}

func TestWarning(t *testing.T) {
	u, _, errOut := newTestUI()
	u.Warning("careful %s", "now")
	assert.Contains(t, errOut.String(), "careful now")
}

func TestError(t *testing.T) {
	u, _, errOut := newTestUI()
	u.Error("failed %s", "badly")
	assert.Contains(t, errOut.String(), "failed badly")
}

func TestVerboseLog_Enabled(t *testing.T) {
	u, out, _ := newTestUI()
	u.Verbose = true
	u.VerboseLog("detail %d", 1)
	assert.Contains(t, out.String(), "detail 1")
}

func TestVerboseLog_Disabled(t *testing.T) {
	u, out, _ := newTestUI()
	u.Verbose = false
	u.VerboseLog("detail %d", 1)
	assert.Empty(t, out.String())
}

func TestColorHelpers(t *testing.T) {
	// Color helpers should return non-empty strings
	assert.NotEmpty(t, Cyan("test"))
	assert.NotEmpty(t, Green("test"))
	assert.NotEmpty(t, Yellow("test"))
	assert.NotEmpty(t, Red("test"))
}

func TestProgressColor(t *testing.T) {
	assert.Contains(t, ProgressColor(95), "95.0%")
	assert.Contains(t, ProgressColor(50), "50.0%")
	assert.Contains(t, ProgressColor(10), "10.0%")
}

func TestHoursColor(t *testing.T) {
	assert.Contains(t, HoursColor(8, 8), "8.00h")
	assert.Contains(t, HoursColor(4.5, 8), "4.50h")
	assert.Contains(t, HoursColor(1, 8), "1.00h")
}

func TestProgressBar_Fill(t *testing.T) {
	bar := ProgressBar(50, 10)
	assert.Equal(t, 5, strings.Count(bar, "█"))
	assert.Equal(t, 5, strings.Count(bar, "░"))

	bar = ProgressBar(0, 10)
	assert.Equal(t, 0, strings.Count(bar, "█"))
	assert.Equal(t, 10, strings.Count(bar, "░"))

	bar = ProgressBar(100, 10)
	assert.Equal(t, 10, strings.Count(bar, "█"))
	assert.Equal(t, 0, strings.Count(bar, "░"))
}

func TestProgressBar_Clamps(t *testing.T) {
	bar := ProgressBar(250, 10)
	assert.Equal(t, 10, strings.Count(bar, "█"))

	bar = ProgressBar(-5, 10)
	assert.Equal(t, 0, strings.Count(bar, "█"))
	assert.Equal(t, 10, strings.Count(bar, "░"))

	assert.Empty(t, ProgressBar(50, 0))
}

func TestTable(t *testing.T) {
	u, out, _ := newTestUI()
	table := u.Table([]string{"Date", "Hours"})
	require.NotNil(t, table)

	table.Append([]string{"2025-01-07", "4.00"})
	table.Append([]string{"2025-01-08", "2.50"})
	err := table.Render()
	require.NoError(t, err)

	result := out.String()
	assert.Contains(t, result, "2025-01-07")
	assert.Contains(t, result, "2.50")
}
