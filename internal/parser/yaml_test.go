package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jsoncmp/internal/errors"
)

func TestParseYAML_Mapping(t *testing.T) {
	v, err := ParseYAML(strings.NewReader(`
name: app
replicas: 3
ratio: 0.5
enabled: yes
debug: false
owner: ~
ports:
  - 80
  - 443
labels:
  tier: web
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "replicas", "ratio", "enabled", "debug", "owner", "ports", "labels"}, v.Keys())
	assert.Equal(t,
		`{"name":"app","replicas":3,"ratio":0.5,"enabled":"yes","debug":false,"owner":null,"ports":[80,443],"labels":{"tier":"web"}}`,
		v.Compact())
}

func TestParseYAML_Scalars(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"42", "42"},
		{"-7", "-7"},
		{"18446744073709551615", "18446744073709551615"},
		{"1.25", "1.25"},
		{"true", "true"},
		{"null", "null"},
		{`"quoted"`, `"quoted"`},
		{"2024-01-02", `"2024-01-02"`},
		{"'123'", `"123"`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := ParseYAML(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.Compact())
		})
	}
}

func TestParseYAML_Aliases(t *testing.T) {
	v, err := ParseYAML(strings.NewReader(`
base: &base
  image: nginx
copy: *base
`))
	require.NoError(t, err)
	assert.Equal(t, `{"base":{"image":"nginx"},"copy":{"image":"nginx"}}`, v.Compact())
}

func TestParseYAML_MergeKeys(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "single mapping",
			input: "base: &b\n  image: nginx\nsvc:\n  <<: *b\n  port: 80\n",
			want:  `{"base":{"image":"nginx"},"svc":{"image":"nginx","port":80}}`,
		},
		{
			name:  "explicit keys win",
			input: "base: &b\n  image: nginx\n  port: 8080\nsvc:\n  port: 80\n  <<: *b\n",
			want:  `{"base":{"image":"nginx","port":8080},"svc":{"image":"nginx","port":80}}`,
		},
		{
			name:  "sequence of mappings, earlier wins",
			input: "a: &a {x: 1}\nb: &b {x: 2, y: 2}\nc:\n  <<: [*a, *b]\n  z: 3\n",
			want:  `{"a":{"x":1},"b":{"x":2,"y":2},"c":{"x":1,"y":2,"z":3}}`,
		},
		{
			name:  "inline mapping",
			input: "svc:\n  <<: {image: nginx}\n",
			want:  `{"svc":{"image":"nginx"}}`,
		},
		{
			name:  "quoted key stays literal",
			input: "svc:\n  \"<<\": 1\n",
			want:  `{"svc":{"<<":1}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseYAML(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.Compact())
		})
	}
}

func TestParseYAML_MergeKeyNotMapping(t *testing.T) {
	_, err := ParseYAML(strings.NewReader("s: &s [1, 2]\nsvc:\n  <<: *s\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "merge value must be a mapping")
}

func TestParseYAML_AliasExpansionLimit(t *testing.T) {
	// each level refers to the previous one ten times: 10^7 nodes once expanded
	var b strings.Builder
	b.WriteString("l0: &l0 [x, x, x, x, x, x, x, x, x, x]\n")
	for i := 1; i <= 7; i++ {
		fmt.Fprintf(&b, "l%d: &l%d [", i, i)
		for j := 0; j < 10; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "*l%d", i-1)
		}
		b.WriteString("]\n")
	}

	_, err := ParseYAML(strings.NewReader(b.String()))
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidJSON)
	assert.Contains(t, err.Error(), "aliases expand to too many nodes")
}

func TestParseYAML_ModerateAliasing(t *testing.T) {
	// shared anchors well inside the budget still expand
	input := "base: &b {a: 1, b: [1, 2, 3]}\nitems: [*b, *b, *b, *b, *b]\n"
	v, err := ParseYAML(strings.NewReader(input))
	require.NoError(t, err)

	items, ok := v.Get("items")
	require.True(t, ok)
	assert.Equal(t, 5, items.Len())
	assert.Equal(t, `{"a":1,"b":[1,2,3]}`, items.At(4).Compact())
}

func TestParseYAML_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty", "", errors.ErrEmptyInput},
		{"two documents", "a: 1\n---\nb: 2\n", errors.ErrMultipleJSON},
		{"not a number", "x: .nan\n", nil},
		{"complex key", "? [a, b]\n: 1\n", nil},
		{"syntax", "a: [1, 2\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML(strings.NewReader(tt.input))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Contains(t, errors.UserFriendlyError(err), "Parsing error")
		})
	}
}

func TestParseTOML(t *testing.T) {
	v, err := ParseTOML(strings.NewReader(`
title = "config"
count = 2
ratio = 1.5

[server]
host = "localhost"
ports = [8080, 8081]
`))
	require.NoError(t, err)

	// TOML keys come out sorted
	assert.Equal(t, []string{"count", "ratio", "server", "title"}, v.Keys())
	assert.Equal(t,
		`{"count":2,"ratio":1.5,"server":{"host":"localhost","ports":[8080,8081]},"title":"config"}`,
		v.Compact())
}

func TestParseTOML_Errors(t *testing.T) {
	_, err := ParseTOML(strings.NewReader("  \n"))
	assert.ErrorIs(t, err, errors.ErrEmptyInput)

	_, err = ParseTOML(strings.NewReader("a = \n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TOML syntax error at line 1")
}
