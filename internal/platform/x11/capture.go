package x11

import (
	"fmt"
	"image"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/mj1618/desktop-vision/internal/platform"
)

const allPlanes = 0xffffffff

// Screenshotter implements platform.Screenshotter with core GetImage requests.
type Screenshotter struct {
	conn *Connection
}

// Windows returns a handle per listed client window.
func (s *Screenshotter) Windows() ([]platform.WindowHandle, error) {
	clients, err := s.conn.clients()
	if err != nil {
		return nil, err
	}
	handles := make([]platform.WindowHandle, len(clients))
	for i, id := range clients {
		handles[i] = windowHandle{conn: s.conn, id: id}
	}
	return handles, nil
}

// Monitors returns the active RandR CRTCs in server order.
func (s *Screenshotter) Monitors() ([]platform.MonitorHandle, error) {
	rects, err := s.conn.monitorRects()
	if err != nil {
		return nil, err
	}
	handles := make([]platform.MonitorHandle, len(rects))
	for i, r := range rects {
		handles[i] = monitorHandle{conn: s.conn, rect: r}
	}
	return handles, nil
}

type windowHandle struct {
	conn *Connection
	id   xproto.Window
}

func (h windowHandle) ID() string { return platform.FormatWindowID(uint32(h.id)) }

// Capture grabs the window's top-level frame so decorations drawn by a
// reparenting window manager are included.
func (h windowHandle) Capture() (image.Image, error) {
	frame, err := h.conn.frameOf(h.id)
	if err != nil {
		return nil, err
	}
	geom, err := xproto.GetGeometry(h.conn.XUtil.Conn(), xproto.Drawable(frame)).Reply()
	if err != nil {
		return nil, fmt.Errorf("get window geometry: %w", err)
	}
	return h.conn.getImage(xproto.Drawable(frame), image.Rect(0, 0, int(geom.Width), int(geom.Height)))
}

type monitorHandle struct {
	conn *Connection
	rect image.Rectangle
}

func (h monitorHandle) Capture() (image.Image, error) {
	return h.conn.getImage(xproto.Drawable(h.conn.Root), h.rect)
}

// frameOf walks up the window tree to the child of the root window.
func (c *Connection) frameOf(id xproto.Window) (xproto.Window, error) {
	for {
		tree, err := xproto.QueryTree(c.XUtil.Conn(), id).Reply()
		if err != nil {
			return 0, fmt.Errorf("query window tree: %w", err)
		}
		if tree.Parent == c.Root || tree.Parent == 0 {
			return id, nil
		}
		id = tree.Parent
	}
}

// monitorRects returns the bounds of every enabled CRTC.
func (c *Connection) monitorRects() ([]image.Rectangle, error) {
	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var rects []image.Rectangle
	for _, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		// Skip disabled CRTCs
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}
		rects = append(rects, image.Rect(
			int(info.X), int(info.Y),
			int(info.X)+int(info.Width), int(info.Y)+int(info.Height),
		))
	}
	return rects, nil
}

func (c *Connection) getImage(d xproto.Drawable, r image.Rectangle) (image.Image, error) {
	if r.Empty() {
		return nil, fmt.Errorf("nothing to capture: empty area %v", r)
	}
	reply, err := xproto.GetImage(c.XUtil.Conn(), xproto.ImageFormatZPixmap, d,
		int16(r.Min.X), int16(r.Min.Y), uint16(r.Dx()), uint16(r.Dy()), allPlanes).Reply()
	if err != nil {
		return nil, fmt.Errorf("get image: %w", err)
	}

	setup := xproto.Setup(c.XUtil.Conn())
	bpp := 0
	for _, f := range setup.PixmapFormats {
		if f.Depth == reply.Depth {
			bpp = int(f.BitsPerPixel)
			break
		}
	}
	return decodeZPixmap(reply.Data, r.Dx(), r.Dy(), bpp, setup.ImageByteOrder == xproto.ImageOrderLSBFirst)
}

// decodeZPixmap converts a 32 bits-per-pixel TrueColor ZPixmap into an
// opaque RGBA image. Little-endian servers send B, G, R, pad per pixel.
func decodeZPixmap(data []byte, w, h, bpp int, lsbFirst bool) (*image.RGBA, error) {
	if bpp != 32 {
		return nil, fmt.Errorf("unsupported pixmap format: %d bits per pixel", bpp)
	}
	if len(data) < w*h*4 {
		return nil, fmt.Errorf("short image data: got %d bytes for %dx%d", len(data), w, h)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < w*h; i++ {
		px := data[i*4 : i*4+4]
		out := img.Pix[i*4 : i*4+4]
		if lsbFirst {
			out[0], out[1], out[2] = px[2], px[1], px[0]
		} else {
			out[0], out[1], out[2] = px[1], px[2], px[3]
		}
		out[3] = 0xff
	}
	return img, nil
}
