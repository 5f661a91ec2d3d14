package ipv6

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Canonical pairs: parsing repr yields addr, and addr compresses back to repr.
var testpairs = []struct {
	desc string
	repr string
	full string
	addr Addr
}{
	{
		desc: "example",
		repr: "ffff:ffff:ffff:ffff:ffff:ffff:ffff:ffff",
		full: "ffff:ffff:ffff:ffff:ffff:ffff:ffff:ffff",
		addr: Addr{
			0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
			0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
		},
	},
	{
		desc: "leading zeros are omitted",
		repr: "ffff:fff:ff:f:1:f0:ff0:fff0",
		full: "ffff:0fff:00ff:000f:0001:00f0:0ff0:fff0",
		addr: Addr{
			0xFF, 0xFF, 0x0F, 0xFF, 0x00, 0xFF, 0x00, 0x0F,
			0x00, 0x01, 0x00, 0xF0, 0x0F, 0xF0, 0xFF, 0xF0,
		},
	},
	{
		desc: "sequence of 0s are omittable with ::",
		repr: "::",
		full: "0000:0000:0000:0000:0000:0000:0000:0000",
		addr: Addr{},
	},
	{
		desc: "sequence of 0s are omittable with :: (last exists)",
		repr: "::1",
		full: "0000:0000:0000:0000:0000:0000:0000:0001",
		addr: Addr{
			0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
			0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01,
		},
	},
	{
		desc: "sequence of 0s are omittable with :: (first exists)",
		repr: "1::",
		full: "0001:0000:0000:0000:0000:0000:0000:0000",
		addr: Addr{
			0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
			0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		},
	},
	{
		desc: "sequence of 0s are omittable with :: (both ends exist)",
		repr: "1::1",
		full: "0001:0000:0000:0000:0000:0000:0000:0001",
		addr: FromGroups([8]uint16{1, 0, 0, 0, 0, 0, 0, 1}),
	},
	{
		desc: "sequence of 0s are omittable with :: (on the middle)",
		repr: "1:12::ffff:0:13",
		full: "0001:0012:0000:0000:0000:ffff:0000:0013",
		addr: Addr{
			0x00, 0x01, 0x00, 0x12, 0x00, 0x00, 0x00, 0x00,
			0x00, 0x00, 0xFF, 0xFF, 0x00, 0x00, 0x00, 0x13,
		},
	},
	{
		desc: "real world address",
		repr: "2001:4860:4001:803::1011",
		full: "2001:4860:4001:0803:0000:0000:0000:1011",
		addr: FromGroups([8]uint16{8193, 18528, 16385, 2051, 0, 0, 0, 4113}),
	},
	{
		desc: "longest run wins",
		repr: "2608::3:5",
		full: "2608:0000:0000:0000:0000:0000:0003:0005",
		addr: FromGroups([8]uint16{9736, 0, 0, 0, 0, 0, 3, 5}),
	},
	{
		desc: "first run wins on ties",
		repr: "1::2:0:0:3:4",
		full: "0001:0000:0000:0002:0000:0000:0003:0004",
		addr: FromGroups([8]uint16{1, 0, 0, 2, 0, 0, 3, 4}),
	},
	{
		desc: "later longer run wins over earlier shorter",
		repr: "1:0:0:2::3",
		full: "0001:0000:0000:0002:0000:0000:0000:0003",
		addr: FromGroups([8]uint16{1, 0, 0, 2, 0, 0, 0, 3}),
	},
	{
		desc: "single zero group is not compressed",
		repr: "2001:db8:0:1:1:1:1:1",
		full: "2001:0db8:0000:0001:0001:0001:0001:0001",
		addr: FromGroups([8]uint16{0x2001, 0xdb8, 0, 1, 1, 1, 1, 1}),
	},
	{
		desc: "trailing lone zero is kept",
		repr: "1:2:3:4:5:6:7:0",
		full: "0001:0002:0003:0004:0005:0006:0007:0000",
		addr: FromGroups([8]uint16{1, 2, 3, 4, 5, 6, 7, 0}),
	},
}

func TestParseAddr(t *testing.T) {
	testcases := []struct {
		desc     string
		input    string
		expected Addr
		wantErr  bool
	}{
		{
			desc:  "case insensitive",
			input: "ffff:FFFF:ffff:FFFF:ffff:FFFF:ffff:FFFF",
			expected: Addr{
				0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
				0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
			},
		},
		{
			desc:     "explicit zeros around ::",
			input:    "0::0",
			expected: Addr{},
		},
		{
			desc:     "explicit zeros before ::",
			input:    "0:0:0::1",
			expected: FromGroups([8]uint16{0, 0, 0, 0, 0, 0, 0, 1}),
		},
		{
			desc:  "last element can be an ipv4 address",
			input: "FFFF:FFFF:FFFF:FFFF:FFFF:FFFF:255.255.255.255",
			expected: Addr{
				0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
				0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
			},
		},
		{
			desc:     "ipv4 mapped",
			input:    "::ffff:192.0.2.1",
			expected: FromGroups([8]uint16{0, 0, 0, 0, 0, 0xffff, 0xc000, 0x0201}),
		},
		{
			desc:     "seven groups with trailing ::",
			input:    "1:2:3:4:5:6:7::",
			expected: FromGroups([8]uint16{1, 2, 3, 4, 5, 6, 7, 0}),
		},
		{
			desc:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			desc:    "single colon",
			input:   ":",
			wantErr: true,
		},
		{
			desc:    "trailing single colon",
			input:   "0:1:2:3:",
			wantErr: true,
		},
		{
			desc:    "leading single colon",
			input:   ":1:2:3:4:5:6:7",
			wantErr: true,
		},
		{
			desc:    "using non-hex value",
			input:   "ZZZZ:FFFF:FFFF:FFFF:FFFF:FFFF:FFFF:FFFF",
			wantErr: true,
		},
		{
			desc:    "group longer than 4 digits",
			input:   "12345::",
			wantErr: true,
		},
		{
			desc:    "missing groups without ::",
			input:   "1:2:3:4:5:6:7",
			wantErr: true,
		},
		{
			desc:    "length too long (2 bytes more)",
			input:   "FFFF:FFFF:FFFF:FFFF:FFFF:FFFF:FFFF:FFFF:FFFF",
			wantErr: true,
		},
		{
			desc:    "length too long on omitted",
			input:   "FFFF:FFFF:FFFF:FFFF::FFFF:FFFF:FFFF:FFFF",
			wantErr: true,
		},
		{
			desc:    "bad use of two colons (used more than once)",
			input:   "FFFF::FFFF:FFFF::FFFF:FFFF:FFFF",
			wantErr: true,
		},
		{
			desc:    "bad use of two colons (three colons)",
			input:   "FFFF::FFFF:::FFFF:FFFF:FFFF",
			wantErr: true,
		},
		{
			desc:    "ipv4 address on last, but invalid",
			input:   "FFFF:FFFF:FFFF:FFFF:FFFF:FFFF:255.255.foo.255",
			wantErr: true,
		},
		{
			desc:    "ipv4 address on middle",
			input:   "FFFF:FFFF:FFFF:FFFF:FFFF:255.255.255.255:FFFF:FFFF",
			wantErr: true,
		},
		{
			desc:    "ipv4 address on middle (seperated by two colons)",
			input:   "FFFF:FFFF:FFFF:FFFF:FFFF:255.255.255.255::",
			wantErr: true,
		},
		{
			desc:    "ipv4 address leaves no room",
			input:   "1:2:3:4:5:6:7:1.2.3.4",
			wantErr: true,
		},
	}

	for _, pair := range testpairs {
		testcases = append(testcases,
			struct {
				desc     string
				input    string
				expected Addr
				wantErr  bool
			}{
				desc:     pair.desc,
				input:    pair.repr,
				expected: pair.addr,
			})
	}

	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			parsed, err := ParseAddr(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrMalformed)
				assert.Zero(t, parsed)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, parsed)
		})
	}
}

func TestAddrToString(t *testing.T) {
	for _, pair := range testpairs {
		t.Run(pair.desc, func(t *testing.T) {
			assert.Equal(t, pair.repr, pair.addr.String())
			assert.Equal(t, len(pair.repr), pair.addr.Len())

			assert.Equal(t, pair.full, pair.addr.StringFull())
			assert.Equal(t, len(pair.full), pair.addr.LenFull())
		})
	}
}

func TestAddrRoundTrip(t *testing.T) {
	for _, pair := range testpairs {
		t.Run(pair.desc, func(t *testing.T) {
			compressed, err := ParseAddr(pair.addr.String())
			require.NoError(t, err)
			assert.Equal(t, pair.addr, compressed)

			full, err := ParseAddr(pair.addr.StringFull())
			require.NoError(t, err)
			assert.Equal(t, pair.addr, full)
		})
	}
}

func TestAddrGroups(t *testing.T) {
	addr, err := ParseAddr("2001:4860:4001:803::1011")
	require.NoError(t, err)

	assert.Equal(t, [8]uint16{8193, 18528, 16385, 2051, 0, 0, 0, 4113}, addr.Groups())
	assert.Equal(t, uint16(2051), addr.Group(3))
}

func TestAddrLargestZeroRun(t *testing.T) {
	testcases := []struct {
		desc       string
		groups     [8]uint16
		start, end int
	}{
		{desc: "all zero", groups: [8]uint16{}, start: 0, end: 7},
		{desc: "no zero", groups: [8]uint16{1, 2, 3, 4, 5, 6, 7, 8}, start: -1, end: -1},
		{desc: "lone zero", groups: [8]uint16{1, 0, 3, 4, 5, 6, 7, 8}, start: -1, end: -1},
		{desc: "tie", groups: [8]uint16{1, 0, 0, 4, 0, 0, 7, 8}, start: 1, end: 2},
		{desc: "trailing", groups: [8]uint16{1, 0, 3, 4, 5, 0, 0, 0}, start: 5, end: 7},
	}

	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			start, end := FromGroups(tc.groups).largestZeroRun()
			assert.Equal(t, tc.start, start)
			assert.Equal(t, tc.end, end)
		})
	}
}

func TestAddrUnmarshalText(t *testing.T) {
	addr := FromGroups([8]uint16{1})

	assert.Error(t, addr.UnmarshalText([]byte("1::2::3")))
	assert.Equal(t, FromGroups([8]uint16{1}), addr, "left untouched on failure")

	require.NoError(t, addr.UnmarshalText([]byte("::1")))
	assert.Equal(t, FromGroups([8]uint16{7: 1}), addr)
}
