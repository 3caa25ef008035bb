package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "flat object",
			in:   `{"breakingCommit":"0a1b2c3","url":"https://github.com/versly/wsdoc/pull/80"}`,
			want: "{\n  \"breakingCommit\" : \"0a1b2c3\",\n  \"url\" : \"https://github.com/versly/wsdoc/pull/80\"\n}",
		},
		{
			name: "nested object",
			in:   `{"a":{"b":"c"}}`,
			want: "{\n  \"a\" : {\n    \"b\" : \"c\"\n  }\n}",
		},
		{
			name: "array",
			in:   `{"links":["x","y"]}`,
			want: "{\n  \"links\" : [\n    \"x\",\n    \"y\"\n  ]\n}",
		},
		{
			name: "empty containers",
			in:   `{"a":{},"b":[]}`,
			want: "{\n  \"a\" : {},\n  \"b\" : []\n}",
		},
		{
			name: "scalars",
			in:   `{"n":null,"t":true,"f":false,"i":42,"x":1.50,"e":1e3}`,
			want: "{\n  \"n\" : null,\n  \"t\" : true,\n  \"f\" : false,\n  \"i\" : 42,\n  \"x\" : 1.50,\n  \"e\" : 1e3\n}",
		},
		{
			name: "key order kept",
			in:   `{"z":"1","a":"2","m":"3"}`,
			want: "{\n  \"z\" : \"1\",\n  \"a\" : \"2\",\n  \"m\" : \"3\"\n}",
		},
		{
			name: "colon sequence inside string untouched",
			in:   `{"text":"error \": here"}`,
			want: "{\n  \"text\" : \"error \\\": here\"\n}",
		},
		{
			name: "html not escaped",
			in:   `{"s":"<a href='x'>&</a>"}`,
			want: "{\n  \"s\" : \"<a href='x'>&</a>\"\n}",
		},
		{
			name: "non-ascii escaped",
			in:   `{"s":"café 😀"}`,
			want: "{\n  \"s\" : \"caf\\u00e9 \\ud83d\\ude00\"\n}",
		},
		{
			name: "control characters",
			in:   `{"s":"a\nb\tc\u0001"}`,
			want: "{\n  \"s\" : \"a\\nb\\tc\\u0001\"\n}",
		},
		{
			name: "pre-formatted input",
			in:   "{\n  \"a\" : \"b\"\n}",
			want: "{\n  \"a\" : \"b\"\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestFormatIdempotent(t *testing.T) {
	in := `{"breakingCommit":"0a1b2c3","updatedDependency":{"dependencyGroupID":"org.apache.maven","versions":["1.0",2,{}]},"licenseInfo":"MIT"}`

	once, err := Format([]byte(in))
	require.NoError(t, err)
	twice, err := Format(once)
	require.NoError(t, err)
	assert.Equal(t, string(once), string(twice))
}

func TestFormatErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"truncated", `{"a":`},
		{"trailing data", `{"a":"b"} {}`},
		{"bad literal", `{"a":nope}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Format([]byte(tt.in))
			assert.Error(t, err)
		})
	}
}

func TestFormatNoTrailingNewline(t *testing.T) {
	got, err := Format([]byte(`{"a":"b"}`))
	require.NoError(t, err)
	assert.NotEqual(t, byte('\n'), got[len(got)-1])
}
