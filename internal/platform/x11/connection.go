// Package x11 lists and captures windows and monitors on an X11 desktop.
// It is pure Go and registers itself as the platform backend on Linux.
package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/mj1618/desktop-vision/internal/platform"
)

// Connection manages the X11 connection and core X resources.
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window
}

// NewConnection connects to the X server named by $DISPLAY and initializes
// the RandR extension.
func NewConnection() (*Connection, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}
	if err := randr.Init(xu.Conn()); err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("randr init failed: %w", err)
	}
	return &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}, nil
}

// Close cleanly disconnects from the X11 server.
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}

// NewProvider connects to the X server and returns both backends sharing
// the connection.
func NewProvider() (*platform.Provider, error) {
	conn, err := NewConnection()
	if err != nil {
		return nil, err
	}
	return &platform.Provider{
		Lister:        &Lister{conn: conn},
		Screenshotter: &Screenshotter{conn: conn},
	}, nil
}

// CheckPermissions reports whether the X server accepts connections. X11
// has no separate screen recording permission.
func CheckPermissions() error {
	conn, err := NewConnection()
	if err != nil {
		return fmt.Errorf("screen capture unavailable: %w", err)
	}
	conn.Close()
	return nil
}
