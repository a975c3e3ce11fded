package wire_test

import (
	"testing"

	"github.com/DziubanMaciej/CheckMate/pkg/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func representativeFrames() []wire.Frame {
	return []wire.Frame{
		wire.Abort(),
		wire.SetStatusOk(),
		wire.SetStatusError("Important error detected"),
		wire.GetStatuses(false),
		wire.GetStatuses(true),
		wire.RefreshClientByName("client12"),
		wire.SetName("client12"),
		wire.Statuses([]string{"a", "b"}),
		wire.Statuses(nil),
		wire.Refresh(),
		wire.RefreshAllClients(),
		wire.ListClients(),
		wire.Clients([]string{"<Unknown>", "client2"}),
	}
}

func TestRoundTrip(t *testing.T) {
	for _, f := range representativeFrames() {
		encoded := wire.Encode(f)
		decoded, n, err := wire.Decode(encoded)
		require.NoError(t, err)
		assert.Equal(t, f.Tag, decoded.Tag)
		assert.Equal(t, f.Message, decoded.Message)
		assert.Equal(t, f.IncludeNames, decoded.IncludeNames)
		if len(f.Names) == 0 {
			assert.Empty(t, decoded.Names)
		} else {
			assert.Equal(t, f.Names, decoded.Names)
		}
		assert.Equal(t, len(encoded), n)
	}
}

func TestTruncatedPrefixIsTooFewBytes(t *testing.T) {
	for _, f := range representativeFrames() {
		encoded := wire.Encode(f)
		for i := 0; i < len(encoded); i++ {
			_, _, err := wire.Decode(encoded[:i])
			assert.ErrorIs(t, err, wire.ErrTooFewBytes, "tag %v prefix length %d", f.Tag, i)
		}
	}
}

func TestUnknownTagFails(t *testing.T) {
	_, _, err := wire.Decode([]byte{200})
	assert.ErrorIs(t, err, wire.ErrUnknownTag)
}

func TestInvalidBooleanFails(t *testing.T) {
	buf := append([]byte{byte(wire.TagGetStatuses)}, 7)
	_, _, err := wire.Decode(buf)
	assert.ErrorIs(t, err, wire.ErrInvalidBoolean)
}

func TestInvalidStringEncodingFails(t *testing.T) {
	buf := []byte{
		byte(wire.TagSetStatusError),
		3, 0, 0, 0,
		0xe2, 0x28, 0xa1, // invalid UTF-8
	}
	_, _, err := wire.Decode(buf)
	assert.ErrorIs(t, err, wire.ErrInvalidStringEncoding)
}

func TestDecodeDoesNotConsumeOnTooFewBytes(t *testing.T) {
	buf := []byte{byte(wire.TagSetStatusError)}
	_, n, err := wire.Decode(buf)
	assert.ErrorIs(t, err, wire.ErrTooFewBytes)
	assert.Equal(t, 0, n)
}
