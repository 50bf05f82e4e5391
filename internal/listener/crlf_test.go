package listener

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

type fakeConn struct {
	in     io.Reader
	out    bytes.Buffer
	closed bool
}

func (c *fakeConn) Read(p []byte) (int, error)  { return c.in.Read(p) }
func (c *fakeConn) Write(p []byte) (int, error) { return c.out.Write(p) }
func (c *fakeConn) Close() error {
	c.closed = true
	return nil
}

func TestCRLF_Read(t *testing.T) {
	tests := map[string]struct {
		input string
		exp   string
	}{
		"telnet":    {input: "look\r\n", exp: "look\n"},
		"ssh pty":   {input: "look\r", exp: "look\n"},
		"bare":      {input: "look\n", exp: "look\n"},
		"two lines": {input: "n\r\ns\r\n", exp: "n\ns\n"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rw := newCRLFReadWriter(&fakeConn{in: strings.NewReader(tt.input)})
			got, err := io.ReadAll(rw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "read", string(got), tt.exp)
		})
	}
}

func TestCRLF_Write(t *testing.T) {
	conn := &fakeConn{in: strings.NewReader("")}
	rw := newCRLFReadWriter(conn)

	n, err := rw.Write([]byte("you go north\nexits: [ s ]\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "length", n, 26)
	testutil.AssertEqual(t, "written", conn.out.String(), "you go north\r\nexits: [ s ]\r\n")
}

func TestCRLF_Close(t *testing.T) {
	conn := &fakeConn{in: strings.NewReader("")}
	rw := newCRLFReadWriter(conn)

	c, ok := rw.(io.Closer)
	testutil.AssertEqual(t, "closer", ok, true)
	if err := c.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "closed", conn.closed, true)
}
