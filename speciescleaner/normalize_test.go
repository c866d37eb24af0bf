package speciescleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCell(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "Onthophagus incensus", want: "Onthophagus incensus"},
		{name: "surrounding whitespace", in: "  Onthophagus incensus\t", want: "Onthophagus incensus"},
		{name: "fullwidth to ascii", in: "Ｏｎｔｈｏｐｈａｇｕｓ", want: "Onthophagus"},
		{name: "control characters dropped", in: "Onthophagus\x00 incensus\x1b", want: "Onthophagus incensus"},
		{name: "empty", in: "", want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeCell(tc.in))
		})
	}
}

func TestNormalizeRecord(t *testing.T) {
	rec := NormalizeRecord(Record{Species: " Onthophagus sp. ", Genus: "Onthophagus "})
	assert.Equal(t, Record{Species: "Onthophagus sp.", Genus: "Onthophagus"}, rec)
}
