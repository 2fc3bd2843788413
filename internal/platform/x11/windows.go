package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/mj1618/desktop-vision/internal/platform"
)

// Lister implements platform.WindowLister using the EWMH client list.
type Lister struct {
	conn *Connection
}

// ListWindows returns every normal, mapped client window in stacking order.
func (l *Lister) ListWindows() ([]platform.RawWindow, error) {
	clients, err := l.conn.clients()
	if err != nil {
		return nil, err
	}

	windows := make([]platform.RawWindow, 0, len(clients))
	for _, id := range clients {
		rect, ok := l.conn.windowRect(id)
		if !ok {
			continue
		}
		windows = append(windows, platform.RawWindow{
			ID:     platform.FormatWindowID(uint32(id)),
			Title:  l.conn.windowTitle(id),
			Owner:  l.conn.windowOwner(id),
			Bounds: rect,
		})
	}
	return windows, nil
}

// clients returns the normal, visible client windows known to the window
// manager.
func (c *Connection) clients() ([]xproto.Window, error) {
	clients, err := ewmh.ClientListStackingGet(c.XUtil)
	if err != nil {
		clients, err = ewmh.ClientListGet(c.XUtil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client list: %w", err)
	}

	out := clients[:0]
	for _, id := range clients {
		if c.isNormalWindow(id) && !c.isHidden(id) {
			out = append(out, id)
		}
	}
	return out, nil
}

// isNormalWindow rejects desktop, dock, splash and notification windows.
func (c *Connection) isNormalWindow(id xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, id)
	if err != nil {
		return true
	}
	for _, t := range types {
		switch t {
		case "_NET_WM_WINDOW_TYPE_NORMAL", "_NET_WM_WINDOW_TYPE_DIALOG":
			return true
		case "_NET_WM_WINDOW_TYPE_DESKTOP",
			"_NET_WM_WINDOW_TYPE_DOCK",
			"_NET_WM_WINDOW_TYPE_SPLASH",
			"_NET_WM_WINDOW_TYPE_NOTIFICATION":
			return false
		}
	}
	return len(types) == 0
}

func (c *Connection) isHidden(id xproto.Window) bool {
	states, err := ewmh.WmStateGet(c.XUtil, id)
	if err != nil {
		return false
	}
	for _, s := range states {
		if s == "_NET_WM_STATE_HIDDEN" {
			return true
		}
	}
	return false
}

// windowRect returns the window's bounds in root coordinates.
func (c *Connection) windowRect(id xproto.Window) (platform.Bounds, bool) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(id)).Reply()
	if err != nil {
		return platform.Bounds{}, false
	}
	translate, err := xproto.TranslateCoordinates(c.XUtil.Conn(), id, c.Root, 0, 0).Reply()
	if err != nil {
		return platform.Bounds{}, false
	}
	return platform.Bounds{
		X:      int(translate.DstX),
		Y:      int(translate.DstY),
		Width:  int(geom.Width),
		Height: int(geom.Height),
	}, true
}

// windowOwner returns the WM_CLASS class, the closest X11 analogue of an
// application name.
func (c *Connection) windowOwner(id xproto.Window) string {
	wmClass, err := icccm.WmClassGet(c.XUtil, id)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(wmClass.Class)
}

func (c *Connection) windowTitle(id xproto.Window) string {
	title, err := ewmh.WmNameGet(c.XUtil, id)
	if err == nil {
		if title = strings.TrimSpace(title); title != "" {
			return title
		}
	}
	title, err = icccm.WmNameGet(c.XUtil, id)
	if err == nil {
		return strings.TrimSpace(title)
	}
	return ""
}
