package path

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const page = `<!DOCTYPE html>
<html>
<head><title>Science Olympiad</title><script>var x = "Entry fee";</script></head>
<body>
  <div id="nav"><a href="/">Home</a></div>
  <div id="main">
    <h1>Science Olympiad</h1>
    <p>Entry fee: <b>$15</b> per student</p>
    <p>Grades 6 to 12</p>
  </div>
</body>
</html>`

func parseDoc(t *testing.T) *html.Node {
	doc, err := html.Parse(strings.NewReader(page))
	require.NoError(t, err)
	return doc
}

func TestFind(t *testing.T) {
	doc := parseDoc(t)

	tests := []struct {
		name   string
		target string
		want   string
		found  bool
	}{
		{name: "single element", target: "Grades 6 to 12", want: "html>body>div[2]>p[2]", found: true},
		{name: "text spanning children", target: "Entry fee: $15", want: "html>body>div[2]>p[1]", found: true},
		{name: "deepest match", target: "$15", want: "html>body>div[2]>p[1]>b", found: true},
		{name: "case and whitespace", target: "  grades   6 TO 12 ", want: "html>body>div[2]>p[2]", found: true},
		{name: "unique tag has no index", target: "Home", want: "html>body>div[1]>a", found: true},
		{name: "title in head", target: "Olympiad", want: "html>head>title", found: true},
		{name: "script ignored", target: "var x", found: false},
		{name: "absent", target: "not on page", found: false},
		{name: "empty target", target: "   ", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Find(doc, tt.target)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	doc := parseDoc(t)

	n, err := Resolve(doc, "html>body>div[2]>p[2]")
	require.NoError(t, err)
	assert.Equal(t, "Grades 6 to 12", Text(n))

	n, err = Resolve(doc, "html>body>div>a")
	require.NoError(t, err)
	assert.Equal(t, "Home", Text(n))

	_, err = Resolve(doc, "html>body>div[3]")
	assert.ErrorIs(t, err, ErrNoMatch)

	_, err = Resolve(doc, "body>div")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestFindResolveRoundTrip(t *testing.T) {
	doc := parseDoc(t)
	for _, target := range []string{"Home", "$15", "Grades 6 to 12", "Science Olympiad"} {
		p, ok := Find(doc, target)
		require.True(t, ok, target)
		n, err := Resolve(doc, p)
		require.NoError(t, err)
		assert.Contains(t, strings.ToLower(Text(n)), strings.ToLower(target))
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		path    string
		wantErr error
	}{
		{path: "html>body>div[2]>p[1]"},
		{path: "html > body > p"},
		{path: "", wantErr: ErrEmptyPath},
		{path: "html>>p", wantErr: ErrInvalidPath},
		{path: "html>div[0]", wantErr: ErrInvalidPath},
		{path: "html>div[x]", wantErr: ErrInvalidPath},
		{path: "html>DIV", wantErr: ErrInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
