package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/answerit/core"
)

// Key prefixes for different data types
const (
	feedbackPrefix = "fbk"
	feedbackIDSeq  = "fbkseq"
	blockedPrefix  = "blk"
)

// makeFeedbackKey generates a key for a feedback log entry. The ID is
// encoded BigEndian so iteration returns entries in append order.
func makeFeedbackKey(id core.ID) []byte {
	prefix := feedbackPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeBlockedKey generates a key for a blocklist entry by the content ID of
// the blocked answer text.
func makeBlockedKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", blockedPrefix, id))
}
