package manifest

import (
	"bytes"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPath(t *testing.T) {
	assert.Equal(t, "META-INF/services/java.util.concurrent.Callable", Path("java.util.concurrent.Callable"))
	assert.Equal(t, "META-INF/services/example.com/app.Plugin", Path("example.com/app.Plugin"))
}

func TestWrite(t *testing.T) {
	tests := []struct {
		name   string
		impls  []string
		banner bool
		want   string
	}{
		{
			name:  "without banner",
			impls: []string{"test.A", "test.B"},
			want:  "test.A\ntest.B\n",
		},
		{
			name:   "with banner",
			impls:  []string{"test.CustomCallable"},
			banner: true,
			want: bannerRule + "\n" + bannerText + "\n" + bannerRule + "\n" +
				"test.CustomCallable\n" +
				bannerRule + "\n",
		},
		{
			name: "empty without banner",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, tt.impls, tt.banner))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestParse(t *testing.T) {
	input := strings.Join([]string{
		"# header",
		"",
		"  test.A  ",
		"test.B # trailing comment",
		"test.A",
		"###",
	}, "\n")

	got, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"test.A", "test.B"}, got)
}

func TestParseReadsWrittenBanner(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []string{"test.SomeServiceProvider1", "test.SomeServiceProvider2"}, true))

	got, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"test.SomeServiceProvider1", "test.SomeServiceProvider2"}, got)
}

func TestLookup(t *testing.T) {
	fsys := fstest.MapFS{
		"META-INF/services/test.SomeService": &fstest.MapFile{Data: []byte("test.Impl\n")},
	}

	got, err := Lookup(fsys, "test.SomeService")
	require.NoError(t, err)
	assert.Equal(t, []string{"test.Impl"}, got)

	_, err = Lookup(fsys, "test.Missing")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = Lookup(fsys, "")
	assert.ErrorIs(t, err, ErrEmptyContract)
}
