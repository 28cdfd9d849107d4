package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilder_Grid(t *testing.T) {
	kb := NewBuilder().
		Grid(3, Button("1", "p:1"), Button("2", "p:2"), Button("3", "p:3"), Button("4", "p:4")).
		Row(Button("Назад", "back")).
		Row().
		Build()

	assert.Len(t, kb.InlineKeyboard, 3)
	assert.Len(t, kb.InlineKeyboard[0], 3)
	assert.Len(t, kb.InlineKeyboard[1], 1)
	assert.Equal(t, "p:4", kb.InlineKeyboard[1][0].CallbackData)
	assert.Equal(t, "back", kb.InlineKeyboard[2][0].CallbackData)
}
