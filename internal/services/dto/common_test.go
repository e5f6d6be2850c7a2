package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListFromJSONArray(t *testing.T) {
	var list StringList
	require.NoError(t, json.Unmarshal([]byte(`["a", " b ", "", "c"]`), &list))
	assert.Equal(t, StringList{"a", "b", "c"}, list)
}

func TestStringListFromCommaString(t *testing.T) {
	var list StringList
	require.NoError(t, json.Unmarshal([]byte(`"residential, commercial , ,plots"`), &list))
	assert.Equal(t, StringList{"residential", "commercial", "plots"}, list)
}

func TestStringListRejectsOtherTypes(t *testing.T) {
	var list StringList
	require.Error(t, json.Unmarshal([]byte(`42`), &list))
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, SplitList(""))
	assert.Nil(t, SplitList("   "))
	assert.Equal(t, []string{"one"}, SplitList("one"))
	assert.Equal(t, []string{"one", "two"}, SplitList(" one , two "))
}
