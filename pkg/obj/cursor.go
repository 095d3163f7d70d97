package obj

import (
	"errors"
	"strconv"
)

// DefaultProgressInterval is the number of lines between progress reports.
const DefaultProgressInterval = 0x4000

func isHorizontalWS(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// cursor is a forward-only view over the input bytes.
// Every diagnostic is passed to the callback before it is returned.
type cursor struct {
	data []byte
	pos  int
	line int
	name string
	size float32

	progressEvery int
	callback      Callback
}

func newCursor(data []byte, name string, callback Callback, progressEvery int) *cursor {
	return &cursor{
		data:          data,
		line:          1,
		name:          name,
		size:          float32(len(data)),
		progressEvery: progressEvery,
		callback:      callback,
	}
}

func (c *cursor) atEnd() bool {
	return c.pos >= len(c.data)
}

func (c *cursor) peek() byte {
	return c.data[c.pos]
}

// fail reports msg as an error and returns it as a *ParseError of the given kind.
func (c *cursor) fail(kind error, msg string) error {
	c.callback.Error(c.name, c.line, msg)
	return &ParseError{File: c.name, Line: c.line, Msg: msg, Kind: kind}
}

func (c *cursor) syntaxError(msg string) error {
	return c.fail(ErrSyntax, msg)
}

func (c *cursor) warn(msg string) {
	c.callback.Warning(c.name, c.line, msg)
}

func (c *cursor) fraction() float32 {
	if c.size == 0 {
		return 1
	}
	return 1 - float32(len(c.data)-c.pos)/c.size
}

// endLine is called once for every consumed newline.
func (c *cursor) endLine() {
	if c.progressEvery > 0 && c.line%c.progressEvery == 0 {
		c.callback.Progress(c.fraction())
	}
	c.line++
}

func (c *cursor) endFile() {
	c.callback.Progress(1)
	c.callback.Finish()
}

// skipLine advances past the next newline and reports whether there was one.
func (c *cursor) skipLine() bool {
	for !c.atEnd() {
		ch := c.data[c.pos]
		c.pos++
		if ch == '\n' {
			c.endLine()
			return true
		}
	}
	return false
}

// consume matches lit at the cursor. lit must not contain whitespace.
func (c *cursor) consume(lit string) bool {
	if len(c.data)-c.pos < len(lit) || string(c.data[c.pos:c.pos+len(lit)]) != lit {
		return false
	}
	c.pos += len(lit)
	return true
}

func (c *cursor) consumeHorizontalWS() bool {
	start := c.pos
	for !c.atEnd() && isHorizontalWS(c.peek()) {
		c.pos++
	}
	return c.pos > start
}

func (c *cursor) expectHorizontalWS() error {
	if !c.consumeHorizontalWS() {
		return c.syntaxError("expected horizontal white space")
	}
	return nil
}

// finishLine consumes trailing horizontal white space and reports whether
// the cursor is at a newline or the end of input. The newline itself is
// left for the main loop so diagnostics keep the line they belong to.
func (c *cursor) finishLine() bool {
	c.consumeHorizontalWS()
	return c.atEnd() || c.peek() == '\n'
}

func (c *cursor) expectLineEnd() error {
	if !c.finishLine() {
		return c.syntaxError("expected newline")
	}
	return nil
}

// consumeNonWS returns the run of non-white-space bytes at the cursor.
// The slice aliases the input.
func (c *cursor) consumeNonWS() []byte {
	start := c.pos
	for !c.atEnd() {
		ch := c.peek()
		if isHorizontalWS(ch) || ch == '\n' {
			break
		}
		c.pos++
	}
	return c.data[start:c.pos]
}

func (c *cursor) expectNonWS() ([]byte, error) {
	s := c.consumeNonWS()
	if len(s) == 0 {
		return nil, c.syntaxError("expected string")
	}
	return s, nil
}

// scanInteger returns the length of the decimal integer token at the cursor.
func (c *cursor) scanInteger() int {
	i := c.pos
	if i < len(c.data) && c.data[i] == '-' {
		i++
	}
	digits := i
	for i < len(c.data) && isDigit(c.data[i]) {
		i++
	}
	if i == digits {
		return 0
	}
	return i - c.pos
}

// consumeInteger parses a decimal integer. ok is false with a nil error
// when there is no integer at the cursor; a present but out of range
// integer is reported and returned as an error.
func (c *cursor) consumeInteger() (n int32, ok bool, err error) {
	l := c.scanInteger()
	if l == 0 {
		return 0, false, nil
	}
	v, perr := strconv.ParseInt(string(c.data[c.pos:c.pos+l]), 10, 32)
	if perr != nil {
		return 0, false, c.syntaxError("decimal number out of range")
	}
	c.pos += l
	return int32(v), true, nil
}

func (c *cursor) expectInteger() (int32, error) {
	n, ok, err := c.consumeInteger()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, c.syntaxError("expected decimal number")
	}
	return n, nil
}

// scanFloat returns the length of the floating point token at the cursor.
func (c *cursor) scanFloat() int {
	d := c.data
	i := c.pos
	if i < len(d) && (d[i] == '-' || d[i] == '+') {
		i++
	}
	for _, word := range []string{"infinity", "inf", "nan"} {
		if len(d)-i >= len(word) && equalFold(d[i:i+len(word)], word) {
			return i + len(word) - c.pos
		}
	}

	mantissa := 0
	for i < len(d) && isDigit(d[i]) {
		i++
		mantissa++
	}
	if i < len(d) && d[i] == '.' {
		i++
		for i < len(d) && isDigit(d[i]) {
			i++
			mantissa++
		}
	}
	if mantissa == 0 {
		return 0
	}

	if i < len(d) && (d[i] == 'e' || d[i] == 'E') {
		j := i + 1
		if j < len(d) && (d[j] == '-' || d[j] == '+') {
			j++
		}
		if j < len(d) && isDigit(d[j]) {
			for j < len(d) && isDigit(d[j]) {
				j++
			}
			i = j
		}
	}
	return i - c.pos
}

// consumeFloat parses a floating point number with the same contract as
// consumeInteger.
func (c *cursor) consumeFloat() (f float32, ok bool, err error) {
	l := c.scanFloat()
	if l == 0 {
		return 0, false, nil
	}
	v, perr := strconv.ParseFloat(string(c.data[c.pos:c.pos+l]), 32)
	if perr != nil {
		if errors.Is(perr, strconv.ErrRange) {
			return 0, false, c.syntaxError("floating point number out of range")
		}
		return 0, false, c.syntaxError("expected floating point number")
	}
	c.pos += l
	return float32(v), true, nil
}

func (c *cursor) expectFloat() (float32, error) {
	f, ok, err := c.consumeFloat()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, c.syntaxError("expected floating point number")
	}
	return f, nil
}

func equalFold(b []byte, lower string) bool {
	for i := range b {
		ch := b[i]
		if ch >= 'A' && ch <= 'Z' {
			ch += 'a' - 'A'
		}
		if ch != lower[i] {
			return false
		}
	}
	return true
}
