package wire

import (
	"encoding/binary"
	"unicode/utf8"
)

// Encode produces the byte sequence for f. All multi-byte integers are
// little-endian; strings are a 4-byte length followed by UTF-8 bytes;
// booleans are a single 0/1 byte.
func Encode(f Frame) []byte {
	buf := []byte{byte(f.Tag)}
	switch f.Tag {
	case TagAbort, TagSetStatusOk, TagRefresh, TagRefreshAllClients, TagListClients:
		// no payload
	case TagSetStatusError, TagRefreshClientByName, TagSetName:
		buf = appendString(buf, f.Message)
	case TagGetStatuses:
		buf = appendBool(buf, f.IncludeNames)
	case TagStatuses, TagClients:
		buf = appendStringVector(buf, f.Names)
	default:
		panic("wire: Encode called with unknown tag")
	}
	return buf
}

func appendString(buf []byte, s string) []byte {
	lenBytes := make([]byte, 4)
	binary.LittleEndian.PutUint32(lenBytes, uint32(len(s)))
	buf = append(buf, lenBytes...)
	buf = append(buf, s...)
	return buf
}

func appendBool(buf []byte, b bool) []byte {
	if b {
		return append(buf, 1)
	}
	return append(buf, 0)
}

func appendStringVector(buf []byte, values []string) []byte {
	countBytes := make([]byte, 4)
	binary.LittleEndian.PutUint32(countBytes, uint32(len(values)))
	buf = append(buf, countBytes...)
	for _, s := range values {
		buf = appendString(buf, s)
	}
	return buf
}

// cursor reads sequentially from a byte slice without copying, reporting
// ErrTooFewBytes (without partially advancing the caller's view) whenever
// the requested span runs past the end of the buffer.
type cursor struct {
	buf    []byte
	offset int
}

func (c *cursor) takeBytes(n int) ([]byte, error) {
	if c.offset+n > len(c.buf) {
		return nil, ErrTooFewBytes
	}
	b := c.buf[c.offset : c.offset+n]
	c.offset += n
	return b, nil
}

func (c *cursor) takeByte() (byte, error) {
	b, err := c.takeBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *cursor) takeUint32() (uint32, error) {
	b, err := c.takeBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *cursor) takeBool() (bool, error) {
	b, err := c.takeByte()
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, ErrInvalidBoolean
	}
}

func (c *cursor) takeString() (string, error) {
	n, err := c.takeUint32()
	if err != nil {
		return "", err
	}
	b, err := c.takeBytes(int(n))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", ErrInvalidStringEncoding
	}
	return string(b), nil
}

func (c *cursor) takeStringVector() ([]string, error) {
	n, err := c.takeUint32()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, n)
	for i := uint32(0); i < n; i++ {
		s, err := c.takeString()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Decode parses the next frame out of buf, returning the frame and the
// number of bytes consumed. When the buffer ends before a full frame is
// available it returns ErrTooFewBytes and consumes nothing; the caller
// should read more bytes and retry the same buffer (plus whatever was
// appended) from the start.
func Decode(buf []byte) (Frame, int, error) {
	c := &cursor{buf: buf}

	tagByte, err := c.takeByte()
	if err != nil {
		return Frame{}, 0, err
	}

	tag := Tag(tagByte)
	switch tag {
	case TagAbort:
		return Frame{Tag: tag}, c.offset, nil
	case TagSetStatusOk:
		return Frame{Tag: tag}, c.offset, nil
	case TagSetStatusError:
		s, err := c.takeString()
		if err != nil {
			return Frame{}, 0, err
		}
		return Frame{Tag: tag, Message: s}, c.offset, nil
	case TagGetStatuses:
		b, err := c.takeBool()
		if err != nil {
			return Frame{}, 0, err
		}
		return Frame{Tag: tag, IncludeNames: b}, c.offset, nil
	case TagRefreshClientByName:
		s, err := c.takeString()
		if err != nil {
			return Frame{}, 0, err
		}
		return Frame{Tag: tag, Message: s}, c.offset, nil
	case TagSetName:
		s, err := c.takeString()
		if err != nil {
			return Frame{}, 0, err
		}
		return Frame{Tag: tag, Message: s}, c.offset, nil
	case TagStatuses:
		v, err := c.takeStringVector()
		if err != nil {
			return Frame{}, 0, err
		}
		return Frame{Tag: tag, Names: v}, c.offset, nil
	case TagRefresh:
		return Frame{Tag: tag}, c.offset, nil
	case TagRefreshAllClients:
		return Frame{Tag: tag}, c.offset, nil
	case TagListClients:
		return Frame{Tag: tag}, c.offset, nil
	case TagClients:
		v, err := c.takeStringVector()
		if err != nil {
			return Frame{}, 0, err
		}
		return Frame{Tag: tag, Names: v}, c.offset, nil
	default:
		return Frame{}, 0, ErrUnknownTag
	}
}
