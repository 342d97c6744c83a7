package sponsor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrantID(t *testing.T) {
	tests := []struct {
		name    string
		sponsor ID
		window  string
		want    string
		ok      bool
	}{
		{"all time omits grant", Celo, WindowAllTime, "", true},
		{"empty window omits grant", Celo, "", "", true},
		{"known window", Celo, WindowThisWeek, "102", true},
		{"window not offered", Divvi, WindowLastWeek, "", false},
		{"unknown sponsor", ID("nope"), WindowThisWeek, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := GrantID(tt.sponsor, tt.window)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenOf(t *testing.T) {
	assert.Nil(t, TokenOf("unknown"))

	tok := TokenOf(WalletConnect)
	if assert.NotNil(t, tok) {
		assert.Equal(t, "WCT", tok.Symbol)
		assert.NotEmpty(t, tok.Contract)
	}
	assert.Equal(t, "CELO", TokenOf("CELO").Symbol)
}

func TestAllIsStableAndComplete(t *testing.T) {
	all := All()
	assert.Len(t, all, 6)
	assert.Equal(t, Base, all[0])
	all[0] = "mutated"
	assert.Equal(t, Base, All()[0])

	for _, id := range all[1:] {
		_, ok := Lookup(id)
		assert.True(t, ok, id)
	}
}

func TestWindows(t *testing.T) {
	assert.Equal(t, []string{WindowAllTime, WindowLastWeek, WindowThisWeek}, Windows(Base))
	assert.Equal(t, []string{WindowAllTime, WindowThisWeek}, Windows(Syndicate))
	assert.Nil(t, Windows("nope"))
}
