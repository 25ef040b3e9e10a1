package display

import "vibe/internal/types"

// Block is the renderable for one chat message.
type Block struct {
	msg types.Message
}

func NewBlock(msg types.Message) *Block {
	return &Block{msg: msg}
}

func (b *Block) ID() string {
	return b.msg.ID
}

func (b *Block) Message() types.Message {
	return b.msg
}
