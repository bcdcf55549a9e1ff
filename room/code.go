// room/code.go
package room

import (
	"math/rand"
)

// 房间码字符表，排除易混淆字符 0/O/1/I/L
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// CodeLength 房间码固定长度
const CodeLength = 6

func generateCode(rng *rand.Rand) string {
	buf := make([]byte, CodeLength)
	for i := range buf {
		buf[i] = codeAlphabet[rng.Intn(len(codeAlphabet))]
	}
	return string(buf)
}
