package wire_test

import (
	"testing"

	"github.com/HMasataka/tinyhttpd/internal/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("空文字はUTF-8", func(t *testing.T) {
		c, err := wire.New("")
		require.NoError(t, err)
		assert.Equal(t, "utf-8", c.Name())
	})

	t.Run("別名を正規化する", func(t *testing.T) {
		c, err := wire.New("UTF8")
		require.NoError(t, err)
		assert.Equal(t, "utf-8", c.Name())
	})

	t.Run("不明なエンコーディング", func(t *testing.T) {
		_, err := wire.New("no-such-charset")
		assert.ErrorIs(t, err, wire.ErrUnknownEncoding)
	})
}

func TestCodec_Decode(t *testing.T) {
	c := wire.Default()

	assert.Equal(t, "GET / HTTP/1.1", c.Decode([]byte("GET / HTTP/1.1")))
	assert.Equal(t, "héllo", c.Decode([]byte("h\xc3\xa9llo")))
	assert.Equal(t, "a�b", c.Decode([]byte("a\xffb")))
}

func TestCodec_Encode(t *testing.T) {
	t.Run("UTF-8", func(t *testing.T) {
		assert.Equal(t, []byte("h\xc3\xa9llo"), wire.Default().Encode("héllo"))
	})

	t.Run("Latin-1", func(t *testing.T) {
		c, err := wire.New("iso-8859-1")
		require.NoError(t, err)
		assert.Equal(t, []byte("h\xe9llo"), c.Encode("héllo"))
	})
}

func TestCodec_Unescape(t *testing.T) {
	c := wire.Default()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "no escapes", in: "/a.txt", want: "/a.txt"},
		{name: "space", in: "/my%20file.txt", want: "/my file.txt"},
		{name: "lower hex", in: "/%2fx", want: "//x"},
		{name: "multibyte", in: "/%E6%97%A5%E6%9C%AC", want: "/日本"},
		{name: "plus untouched", in: "/a+b", want: "/a+b"},
		{name: "trailing percent", in: "/100%", want: "/100%"},
		{name: "short escape", in: "/a%4", want: "/a%4"},
		{name: "bad hex", in: "/%G1", want: "/%G1"},
		{name: "mixed", in: "/%41%zz%42", want: "/A%zzB"},
		{name: "invalid utf-8", in: "/%FF", want: "/�"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Unescape(tt.in))
		})
	}
}

func TestCodec_UnescapeLatin1(t *testing.T) {
	c, err := wire.New("latin1")
	require.NoError(t, err)

	assert.Equal(t, "/café", c.Unescape("/caf%E9"))
}
