package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func records(t *testing.T, c *Catalog) []string {
	t.Helper()
	var out []string
	require.NoError(t, c.Walk(func(rec Record) error {
		out = append(out, rec.Product+"/"+rec.Log+"/"+rec.Field)
		return nil
	}))
	return out
}

func TestFilterByFieldName(t *testing.T) {
	c := sample()

	result := c.FilterByFieldName("User")
	assert.Equal(t, []string{
		"sysmon/ProcessCreate/User",
		"sysmon/NetworkConnect/User",
	}, records(t, result))

	assert.Equal(t, 0, c.FilterByFieldName("user").Len(), "match is exact")
}

func TestFilterByStandardName(t *testing.T) {
	c := sample()

	result, diag := c.FilterByStandardName("user_name")
	assert.Equal(t, []string{
		"sysmon/ProcessCreate/User",
		"sysmon/NetworkConnect/User",
		"carbonblack/procstart/username",
	}, records(t, result))

	require.Len(t, diag.Skips, 1)
	assert.Equal(t, Skip{
		Product: "carbonblack",
		Log:     "procstart",
		Field:   "md5",
		Reason:  "missing Standard Name",
	}, diag.Skips[0])
	assert.True(t, diag.HasSkips())
}

func TestFilterByProduct(t *testing.T) {
	c := sample()

	result := c.FilterByProduct("carbonblack")
	assert.Equal(t, []string{"carbonblack"}, result.Products())
	assert.Equal(t, []string{"procstart"}, result.Logs("carbonblack"), "logs without fields are dropped")
	assert.Equal(t, 2, result.Len())

	assert.Equal(t, 0, c.FilterByProduct("Sysmon").Len(), "match is case-sensitive")
}

func TestFiltersDoNotMutateReceiver(t *testing.T) {
	c := sample()
	before := records(t, c)

	result := c.FilterByProduct("sysmon")
	result.Append("sysmon", "ProcessCreate", "Image", NewAttributeSet("Type", "changed"))
	c.FilterByFieldName("Image")
	c.FilterByStandardName("process_path")

	assert.Equal(t, before, records(t, c))
	attrs, _ := c.Attributes("sysmon", "ProcessCreate", "Image")
	v, _ := attrs.Get("Type")
	assert.Equal(t, "string", v)
}

func TestFiltersAreIdempotent(t *testing.T) {
	c := sample()

	byField := c.FilterByFieldName("User")
	assert.Equal(t, records(t, byField), records(t, byField.FilterByFieldName("User")))

	byStandard, _ := c.FilterByStandardName("user_name")
	again, diag := byStandard.FilterByStandardName("user_name")
	assert.Equal(t, records(t, byStandard), records(t, again))
	assert.False(t, diag.HasSkips())

	byProduct := c.FilterByProduct("sysmon")
	assert.Equal(t, records(t, byProduct), records(t, byProduct.FilterByProduct("sysmon")))
}

func TestFilter(t *testing.T) {
	c := sample()

	tests := []struct {
		name     string
		sel      Selector
		expected int
		skips    int
	}{
		{"field", Selector{Kind: ByFieldName, Value: "User"}, 2, 0},
		{"standard", Selector{Kind: ByStandardName, Value: "user_name"}, 3, 1},
		{"product", Selector{Kind: ByProduct, Value: "sysmon"}, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, diag, err := c.Filter(tt.sel)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.Len())
			assert.Len(t, diag.Skips, tt.skips)
		})
	}

	t.Run("unknown kind", func(t *testing.T) {
		_, _, err := c.Filter(Selector{Kind: "log", Value: "x"})
		assert.ErrorIs(t, err, ErrUnknownFilter)
	})
}

func TestSelectorString(t *testing.T) {
	assert.Equal(t, "standard=user_name", Selector{Kind: ByStandardName, Value: "user_name"}.String())
}

func TestSelect(t *testing.T) {
	c := sample()

	result, err := c.Select(func(rec Record) (bool, error) {
		typ, _ := rec.Attributes.Get("Type")
		return rec.Product == "carbonblack" && typ == "string", nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"carbonblack/procstart/username",
		"carbonblack/procstart/md5",
	}, records(t, result))

	boom := errors.New("boom")
	result, err = c.Select(func(Record) (bool, error) { return false, boom })
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, result)
}
