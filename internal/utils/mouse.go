package utils

import (
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Pointer queries the X11 cursor position on the root window, which keeps
// working while the demo window is unfocused.
type Pointer struct {
	conn *xgb.Conn
	root xproto.Window
}

func NewPointer() (*Pointer, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}

	setup := xproto.Setup(conn)
	return &Pointer{conn: conn, root: setup.DefaultScreen(conn).Root}, nil
}

// Position returns the cursor in root window coordinates.
func (p *Pointer) Position() (int, int, error) {
	reply, err := xproto.QueryPointer(p.conn, p.root).Reply()
	if err != nil {
		return 0, 0, err
	}

	return int(reply.RootX), int(reply.RootY), nil
}

func (p *Pointer) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}
