package imperial_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-covidsim/pkg/imperial"
	"github.com/askiada/go-covidsim/pkg/params"
)

const adminFile = `[Include holidays]
1

[Number of countries to include]
1

[List of names of countries to include]
United_States

[Number of level 1 administrative units to include]
0

[Number of detected cases needed before outbreak alert triggered]
100

[Codes and country/province names for admin units]
3601	United_States	New_York
3602	United_States	New_Jersey
3603	United_States	Vermont
`

func TestAssignAdminParameters(t *testing.T) {
	doc, err := params.Parse(adminFile)
	require.NoError(t, err)

	err = imperial.New().AssignAdminParameters(doc, "New_York")
	require.NoError(t, err)

	want := []params.Entry{
		{Key: "Include holidays", Value: params.Number(0)},
		{Key: "Number of countries to include", Value: params.Number(0)},
		{Key: "List of names of countries to include", Value: params.Text("United_States")},
		{Key: "Number of level 1 administrative units to include", Value: params.Number(1)},
		{Key: "Codes and country/province names for admin units", Value: params.Matrix{
			{params.Number(3601), params.Text("United_States"), params.Text("New_York")},
		}},
		{Key: "Fix population size at specified value", Value: params.Number(0)},
		{Key: "List of level 1 administrative units to include", Value: params.Text("New_York")},
	}
	if diff := cmp.Diff(want, doc.Entries()); diff != "" {
		t.Errorf("AssignAdminParameters() mismatch (-want +got):\n%s", diff)
	}

	out, err := params.Serialize(doc)
	require.NoError(t, err)
	assert.Contains(t, out, "[Codes and country/province names for admin units]\n3601\tUnited_States\tNew_York\n")
}

func TestAssignAdminParametersSingleRow(t *testing.T) {
	doc := params.FromEntries(params.Entry{
		Key:   "Codes and country/province names for admin units",
		Value: params.Vector{params.Number(3603), params.Text("United_States"), params.Text("Vermont")},
	})

	err := imperial.New().AssignAdminParameters(doc, "Vermont")
	require.NoError(t, err)

	v, ok := doc.Get("Codes and country/province names for admin units")
	require.True(t, ok)
	assert.Equal(t, params.Matrix{{params.Number(3603), params.Text("United_States"), params.Text("Vermont")}}, v)
}

func TestAssignAdminParametersNotFound(t *testing.T) {
	tcs := map[string]struct {
		text      string
		subregion string
	}{
		"no matching row": {
			text:      adminFile,
			subregion: "Texas",
		},
		"duplicate rows": {
			text: `[Codes and country/province names for admin units]
3601	United_States	New_York
3699	United_States	New_York
`,
			subregion: "New_York",
		},
		"missing table": {
			text:      "[Include holidays]\n1\n",
			subregion: "New_York",
		},
		"name in another column": {
			text:      "[Codes and country/province names for admin units]\n3601\tNew_York\tUnited_States\n",
			subregion: "New_York",
		},
	}

	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			doc, err := params.Parse(tc.text)
			require.NoError(t, err)

			err = imperial.New().AssignAdminParameters(doc, tc.subregion)
			require.Error(t, err)

			var notFound *imperial.NotFoundError
			require.True(t, errors.As(err, &notFound))
			assert.Equal(t, tc.subregion, notFound.Subregion)
			assert.ErrorIs(t, err, imperial.ErrSubregionNotFound)
			assert.Contains(t, err.Error(), "could not find entry for '"+tc.subregion+"'")
		})
	}
}
