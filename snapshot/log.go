package snapshot

import (
	"github.com/arloliu/packbuf/format"
	"go.uber.org/zap"
)

func zapRecords(n int) zap.Field {
	return zap.Int("records", n)
}

func zapCompression(c format.CompressionType) zap.Field {
	return zap.Stringer("compression", c)
}

func zapSize(n int) zap.Field {
	return zap.Int("bytes", n)
}
