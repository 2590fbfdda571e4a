package csvsample

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		wantHeaders []string
		wantSamples map[string]string
	}{
		{
			name:        "header and rows",
			input:       "id,name,score,active\n1,alice,3.5,true\n2,bob,4,false\n",
			wantHeaders: []string{"id", "name", "score", "active"},
			wantSamples: map[string]string{"id": "1", "name": "alice", "score": "3.5", "active": "true"},
		},
		{
			name:        "header only",
			input:       "a,b\n",
			wantHeaders: []string{"a", "b"},
			wantSamples: map[string]string{"a": "", "b": ""},
		},
		{
			name:        "short first row",
			input:       "a,b,c\n1\n",
			wantHeaders: []string{"a", "b", "c"},
			wantSamples: map[string]string{"a": "1", "b": "", "c": ""},
		},
		{
			name:        "long first row",
			input:       "a\n1,2,3\n",
			wantHeaders: []string{"a"},
			wantSamples: map[string]string{"a": "1"},
		},
		{
			name:        "quoted values",
			input:       "title,n\n\"hello, world\",7\n",
			wantHeaders: []string{"title", "n"},
			wantSamples: map[string]string{"title": "hello, world", "n": "7"},
		},
		{
			name:        "byte order mark",
			input:       "\ufeffx,y\n1,2\n",
			wantHeaders: []string{"x", "y"},
			wantSamples: map[string]string{"x": "1", "y": "2"},
		},
		{
			name:        "repeated header keeps last value",
			input:       "a,a\n1,2\n",
			wantHeaders: []string{"a", "a"},
			wantSamples: map[string]string{"a": "2"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Read(strings.NewReader(tc.input))
			require.NoError(t, err)
			assert.Equal(t, tc.wantHeaders, s.Headers)
			assert.Equal(t, tc.wantSamples, s.Samples)
		})
	}
}

func TestRead_Empty(t *testing.T) {
	s, err := Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, s.Headers)
	assert.Equal(t, "", s.Value("anything"))
}

func TestReadFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(p, []byte("k,v\nx,1\n"), 0o644))

	s, err := ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"k", "v"}, s.Headers)
	assert.Equal(t, "1", s.Value("v"))
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}
