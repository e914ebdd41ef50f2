package codec

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/klauspost/compress/zlib"
)

func compressForTest(t *testing.T, raw string) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write([]byte(raw)); err != nil {
		t.Fatalf("zlib write err=%v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zlib close err=%v", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}
