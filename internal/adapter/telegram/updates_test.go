package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidemarket/internal/domain/service"
)

func TestSplitUploadPayload(t *testing.T) {
	userID, slideID, ok := splitUploadPayload("123_9b2d6a1e-4f7c-4a1b-8d3e-000000000000")
	require.True(t, ok)
	assert.Equal(t, int64(123), userID)
	assert.Equal(t, "9b2d6a1e-4f7c-4a1b-8d3e-000000000000", slideID)

	_, _, ok = splitUploadPayload("no-separator")
	assert.False(t, ok)

	_, _, ok = splitUploadPayload("abc_slide")
	assert.False(t, ok)
}

func TestMarkupLayout(t *testing.T) {
	assert.Nil(t, markup(nil))

	m := markup([][]service.Button{
		{{Label: "A", Data: "a"}, {Label: "B", Data: "b"}},
		{{Label: "C", Data: "c"}},
	})
	require.NotNil(t, m)
	require.Len(t, m.InlineKeyboard, 2)
	assert.Len(t, m.InlineKeyboard[0], 2)
	assert.Equal(t, "A", m.InlineKeyboard[0][0].Text)
	require.NotNil(t, m.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "a", *m.InlineKeyboard[0][0].CallbackData)
}
