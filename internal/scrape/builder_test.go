package scrape

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itsmostafa/ossemdict/internal/catalog"
	"github.com/itsmostafa/ossemdict/internal/dictionary"
	"github.com/itsmostafa/ossemdict/internal/logger"
)

const processCreateDoc = `# Event ID 1: Process Creation

## Data Dictionary

| Field Name | Standard Name | Type |
|---|---|---|
| Image | process_path | string |
| User | user_name | string |
`

func writeDoc(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestBuild(t *testing.T) {
	root := t.TempDir()
	docs := []string{
		writeDoc(t, root, "windows/sysmon/ProcessCreate.md", processCreateDoc),
		writeDoc(t, root, "windows/sysmon/README.md", "# Sysmon\n\nNo table here.\n"),
		writeDoc(t, root, "windows/sysmon/Broken.md", "## Data Dictionary\n| Standard Name | Type |\n| user_name | string |\n"),
		writeDoc(t, root, "linux/auditd/execve.md", "## Data Dictionary\n| Field Name | Type |\n|---|---|\n| a0 | string |\n"),
		writeDoc(t, root, "linux/auditd/HeaderOnly.md", "## Data Dictionary\n| Field Name | Type |\n|---|---|\n"),
	}

	var logs bytes.Buffer
	metrics := NewMetrics()
	builder := NewBuilder(logger.NewLogger(logger.Config{Level: "debug", Output: &logs}), metrics)

	c, summary := builder.Build(docs)

	assert.Equal(t, []string{"sysmon", "auditd"}, c.Products())
	assert.Equal(t, []string{"ProcessCreate"}, c.Logs("sysmon"))
	assert.Equal(t, []string{"execve", "HeaderOnly"}, c.Logs("auditd"))
	assert.Empty(t, c.Fields("auditd", "HeaderOnly"))

	attrs, ok := c.Attributes("sysmon", "ProcessCreate", "Image")
	require.True(t, ok)
	assert.Equal(t, []string{"Standard Name", "Type"}, attrs.Names())
	standard, _ := attrs.StandardName()
	assert.Equal(t, "process_path", standard)

	assert.Equal(t, 5, summary.Documents)
	assert.Equal(t, 3, summary.Registered)
	assert.Equal(t, 1, summary.Empty)
	assert.Equal(t, 3, summary.Fields)
	assert.Equal(t, 2, summary.Products)
	require.Equal(t, 1, summary.Failed())
	assert.Equal(t, docs[2], summary.Failures[0].Path)
	assert.ErrorIs(t, summary.Failures[0].Err, dictionary.ErrMissingKey)

	assert.Equal(t, float64(3), testutil.ToFloat64(metrics.DocumentsTotal.WithLabelValues("registered")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.DocumentsTotal.WithLabelValues("empty")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.DocumentsTotal.WithLabelValues("failed")))
	assert.Equal(t, float64(3), testutil.ToFloat64(metrics.FieldsTotal))
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.Products))

	assert.Contains(t, logs.String(), "document failed")
	assert.Contains(t, logs.String(), "scrape completed")
}

func TestBuildSpecExample(t *testing.T) {
	root := t.TempDir()
	path := writeDoc(t, root, "data_dictionaries/sysmon/ProcessCreate.md",
		"## Data Dictionary\n| Field Name | Standard Name | Type |\n|---|---|---|\n| Image | process_path | string |\n")

	c, _ := NewBuilder(nil, nil).Build([]string{path})

	attrs, ok := c.Attributes("sysmon", "ProcessCreate", "Image")
	require.True(t, ok)
	assert.Equal(t, []string{"Standard Name", "Type"}, attrs.Names())
	v, _ := attrs.Get("Type")
	assert.Equal(t, "string", v)

	filtered, diag := c.FilterByStandardName("process_path")
	assert.Equal(t, 1, filtered.Len())
	assert.False(t, diag.HasSkips())
}

func TestBuildDuplicateLogOverwrites(t *testing.T) {
	rootA := t.TempDir()
	rootB := t.TempDir()
	first := writeDoc(t, rootA, "sysmon/ProcessCreate.md", processCreateDoc)
	second := writeDoc(t, rootB, "sysmon/ProcessCreate.md",
		"## Data Dictionary\n| Field Name | Standard Name |\n| CommandLine | process_command_line |\n")

	c, summary := NewBuilder(nil, nil).Build([]string{first, second})

	assert.Equal(t, 2, summary.Registered)
	assert.Equal(t, []string{"CommandLine"}, c.Fields("sysmon", "ProcessCreate"))
}

func TestBuildUnreadableDocument(t *testing.T) {
	root := t.TempDir()
	good := writeDoc(t, root, "sysmon/ProcessCreate.md", processCreateDoc)
	missing := filepath.Join(root, "sysmon", "Gone.md")

	c, summary := NewBuilder(nil, nil).Build([]string{missing, good})

	assert.Equal(t, 2, c.Len())
	require.Len(t, summary.Failures, 1)
	assert.True(t, strings.Contains(summary.Failures[0].Err.Error(), "Gone.md"))
}

func TestBuildUnknownProduct(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "ProcessCreate.md", processCreateDoc)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	c, _ := NewBuilder(nil, nil).Build([]string{"ProcessCreate.md"})
	assert.Equal(t, []string{UnknownProduct}, c.Products())
}

func TestWriteTextfile(t *testing.T) {
	metrics := NewMetrics()
	metrics.RecordDocument(StatusRegistered, 4)

	path := filepath.Join(t.TempDir(), "ossemdict.prom")
	require.NoError(t, metrics.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `ossemdict_documents_total{status="registered"} 1`)
	assert.Contains(t, string(data), "ossemdict_fields_total 4")
}

func TestBuildEmptyInput(t *testing.T) {
	c, summary := NewBuilder(nil, nil).Build(nil)
	assert.Equal(t, catalog.New().Products(), c.Products())
	assert.Equal(t, 0, summary.Documents)
}
