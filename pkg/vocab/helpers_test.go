package vocab

import (
	"encoding/binary"

	"github.com/zeebo/xxh3"
)

func appendChecksum(buf []byte) []byte {
	return binary.LittleEndian.AppendUint64(buf, xxh3.Hash(buf))
}
