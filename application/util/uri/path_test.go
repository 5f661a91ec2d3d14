package uri

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

func TestParsePath(t *testing.T) {
	testcases := []struct {
		desc     string
		input    string
		expected []string
		repr     string
		wantErr  bool
	}{
		{desc: "empty", input: "", expected: []string{}, repr: "/"},
		{desc: "root", input: "/", expected: []string{}, repr: "/"},
		{desc: "segments", input: "/a/b/c", expected: []string{"a", "b", "c"}, repr: "/a/b/c"},
		{desc: "relative", input: "a/b", expected: []string{"a", "b"}, repr: "/a/b"},
		{desc: "empty segments are dropped", input: "//a///b/", expected: []string{"a", "b"}, repr: "/a/b"},
		{desc: "decoded", input: "/hello%20world/%2F", expected: []string{"hello world", "/"}, repr: "/hello%20world/%2F"},
		{desc: "encoded on output", input: "/a:b", expected: []string{"a:b"}, repr: "/a%3Ab"},
		{desc: "bad escape", input: "/a/%zz", wantErr: true},
		{desc: "truncated escape", input: "/a/b%2", wantErr: true},
	}

	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			path, err := ParsePath(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrMalformed)
				assert.True(t, path.Empty())
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tc.expected, path.Segments())
			assert.Equal(t, tc.repr, path.String())
			assert.Equal(t, len(tc.repr), path.Len())
		})
	}
}

type PathTestSuite struct {
	suite.Suite

	path Path
}

func TestPathTestSuite(t *testing.T) {
	suite.Run(t, new(PathTestSuite))
}

func (s *PathTestSuite) SetupTest() {
	s.path = Path{}
	s.Require().NoError(s.path.Parse("/a/b/c"))
}

func (s *PathTestSuite) TestParseIsAdditive() {
	s.Require().NoError(s.path.Parse("/d"))
	s.Equal([]string{"a", "b", "c", "d"}, s.path.Segments())
}

func (s *PathTestSuite) TestParseRollback() {
	s.ErrorIs(s.path.Parse("/d/e/%G"), ErrMalformed)
	s.Equal([]string{"a", "b", "c"}, s.path.Segments())
	s.Equal(3, s.path.Count())
}

func (s *PathTestSuite) TestAt() {
	seg, err := s.path.At(1)
	s.Require().NoError(err)
	s.Equal("b", seg)

	_, err = s.path.At(3)
	s.ErrorIs(err, ErrOutOfRange)
	_, err = s.path.At(-1)
	s.ErrorIs(err, ErrOutOfRange)
}

func (s *PathTestSuite) TestSet() {
	s.Require().NoError(s.path.Set(0, "x y"))
	s.Equal("/x%20y/b/c", s.path.String())

	s.ErrorIs(s.path.Set(3, "z"), ErrOutOfRange)
}

func (s *PathTestSuite) TestRemoveAt() {
	s.Require().NoError(s.path.RemoveAt(1))
	s.Equal([]string{"a", "c"}, s.path.Segments())

	s.ErrorIs(s.path.RemoveAt(2), ErrOutOfRange)
}

func (s *PathTestSuite) TestAdd() {
	s.path.Add("d/e")
	s.Require().NoError(s.path.AddEncoded("f%2Fg"))
	s.ErrorIs(s.path.AddEncoded("%"), ErrMalformed)

	s.Equal([]string{"a", "b", "c", "d/e", "f/g"}, s.path.Segments())
	s.Equal("/a/b/c/d%2Fe/f%2Fg", s.path.String())
}

func (s *PathTestSuite) TestSegmentsIsCopy() {
	segs := s.path.Segments()
	segs[0] = "z"

	seg, err := s.path.At(0)
	s.Require().NoError(err)
	s.Equal("a", seg)
}

func (s *PathTestSuite) TestCopiesAreIndependent() {
	cp := s.path
	s.Require().NoError(cp.Set(0, "x"))
	s.Require().NoError(cp.RemoveAt(1))
	cp.Add("d")
	s.Require().NoError(cp.Parse("/e"))

	other := s.path
	other.Add("f")

	s.Equal([]string{"a", "b", "c"}, s.path.Segments())
	s.Equal([]string{"x", "c", "d", "e"}, cp.Segments())
	s.Equal([]string{"a", "b", "c", "f"}, other.Segments())
}

func (s *PathTestSuite) TestClear() {
	s.path.Clear()
	s.True(s.path.Empty())
	s.Equal("/", s.path.String())
}

func TestPathNormalize(t *testing.T) {
	testcases := []struct {
		desc     string
		input    string
		expected string
	}{
		{desc: "nothing to remove", input: "/a/b/c", expected: "/a/b/c"},
		{desc: "single dot", input: "/a/./b/.", expected: "/a/b"},
		{desc: "double dot", input: "/a/b/c/./../../g", expected: "/a/g"},
		{desc: "mid content", input: "mid/content=5/../6", expected: "/mid/6"},
		{desc: "above root", input: "/../../a", expected: "/a"},
		{desc: "everything removed", input: "/a/..", expected: "/"},
	}

	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			path, err := ParsePath(tc.input)
			assert.NoError(t, err)

			path.Normalize()
			assert.Equal(t, tc.expected, path.String())
		})
	}
}
