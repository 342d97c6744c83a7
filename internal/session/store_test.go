package session

import (
	"builderboard/internal/sponsor"
	"builderboard/utils/uuid"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetOrCreate(t *testing.T) {
	s, err := NewStore(10)
	require.NoError(t, err)

	id, st := s.GetOrCreate("", sponsor.WindowAllTime)
	assert.True(t, uuid.IsSessionID(id))
	require.NotNil(t, st)
	assert.Equal(t, sponsor.WindowAllTime, st.Filter())

	again, st2 := s.GetOrCreate(id, sponsor.WindowThisWeek)
	assert.Equal(t, id, again)
	assert.Same(t, st, st2)
	// 已有会话不会因为窗口参数被替换
	assert.Equal(t, sponsor.WindowAllTime, st2.Filter())

	other, _ := s.GetOrCreate("garbage", sponsor.WindowAllTime)
	assert.NotEqual(t, "garbage", other)
	assert.Equal(t, 2, s.Len())
}

func TestStore_UnknownIDKeepsClientValue(t *testing.T) {
	s, err := NewStore(10)
	require.NoError(t, err)

	id := uuid.GenSessionID()
	got, _ := s.GetOrCreate(id, sponsor.WindowAllTime)
	assert.Equal(t, id, got)
}

func TestStore_Delete(t *testing.T) {
	s, err := NewStore(10)
	require.NoError(t, err)

	id, _ := s.GetOrCreate("", sponsor.WindowAllTime)
	assert.True(t, s.Delete(id))
	assert.False(t, s.Delete(id))
	_, ok := s.Get(id)
	assert.False(t, ok)
	assert.False(t, s.Delete("nope"))
}

func TestStore_Evicts(t *testing.T) {
	s, err := NewStore(2)
	require.NoError(t, err)

	first, _ := s.GetOrCreate("", sponsor.WindowAllTime)
	s.GetOrCreate("", sponsor.WindowAllTime)
	s.GetOrCreate("", sponsor.WindowAllTime)

	_, ok := s.Get(first)
	assert.False(t, ok)
	assert.Equal(t, 2, s.Len())
}
