//go:build darwin && cgo

package darwin

/*
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation
#include <CoreGraphics/CoreGraphics.h>
#include <stdlib.h>

typedef struct {
    int id;
    double x, y, width, height;
    char *title;
    char *owner;
} dv_window;

static char *dv_copy_string(CFStringRef s) {
    if (s == NULL) {
        return NULL;
    }
    CFIndex max = CFStringGetMaximumSizeForEncoding(CFStringGetLength(s), kCFStringEncodingUTF8) + 1;
    char *buf = malloc(max);
    if (buf != NULL && !CFStringGetCString(s, buf, max, kCFStringEncodingUTF8)) {
        free(buf);
        return NULL;
    }
    return buf;
}

static int dv_number(CFDictionaryRef d, CFStringRef key) {
    int v = 0;
    CFNumberRef n = CFDictionaryGetValue(d, key);
    if (n != NULL) {
        CFNumberGetValue(n, kCFNumberIntType, &v);
    }
    return v;
}

// Lists on-screen windows at layer 0, front to back. Returns the count or -1.
static int dv_list_windows(dv_window **out) {
    CFArrayRef list = CGWindowListCopyWindowInfo(
        kCGWindowListOptionOnScreenOnly | kCGWindowListExcludeDesktopElements, kCGNullWindowID);
    if (list == NULL) {
        return -1;
    }
    CFIndex n = CFArrayGetCount(list);
    dv_window *ws = calloc(n > 0 ? n : 1, sizeof(dv_window));
    if (ws == NULL) {
        CFRelease(list);
        return -1;
    }
    int count = 0;
    for (CFIndex i = 0; i < n; i++) {
        CFDictionaryRef d = CFArrayGetValueAtIndex(list, i);
        if (dv_number(d, kCGWindowLayer) != 0) {
            continue;
        }
        dv_window *w = &ws[count++];
        w->id = dv_number(d, kCGWindowNumber);
        CGRect r;
        CFDictionaryRef b = CFDictionaryGetValue(d, kCGWindowBounds);
        if (b != NULL && CGRectMakeWithDictionaryRepresentation(b, &r)) {
            w->x = r.origin.x;
            w->y = r.origin.y;
            w->width = r.size.width;
            w->height = r.size.height;
        }
        w->title = dv_copy_string(CFDictionaryGetValue(d, kCGWindowName));
        w->owner = dv_copy_string(CFDictionaryGetValue(d, kCGWindowOwnerName));
    }
    CFRelease(list);
    *out = ws;
    return count;
}

static void dv_free_windows(dv_window *ws, int n) {
    for (int i = 0; i < n; i++) {
        free(ws[i].title);
        free(ws[i].owner);
    }
    free(ws);
}
*/
import "C"
import (
	"fmt"
	"unsafe"

	"github.com/mj1618/desktop-vision/internal/platform"
)

// Lister implements platform.WindowLister using CGWindowListCopyWindowInfo.
type Lister struct{}

// ListWindows returns every on-screen application window, front to back.
func (l *Lister) ListWindows() ([]platform.RawWindow, error) {
	var cWindows *C.dv_window
	cCount := C.dv_list_windows(&cWindows)
	if cCount < 0 {
		return nil, fmt.Errorf("failed to enumerate windows")
	}
	defer C.dv_free_windows(cWindows, cCount)

	count := int(cCount)
	windows := make([]platform.RawWindow, 0, count)
	if count == 0 {
		return windows, nil
	}
	for _, cw := range unsafe.Slice(cWindows, count) {
		windows = append(windows, platform.RawWindow{
			ID:    platform.FormatWindowID(uint32(cw.id)),
			Title: goString(cw.title),
			Owner: goString(cw.owner),
			Bounds: platform.Bounds{
				X:      int(cw.x),
				Y:      int(cw.y),
				Width:  int(cw.width),
				Height: int(cw.height),
			},
		})
	}
	return windows, nil
}

func goString(s *C.char) string {
	if s == nil {
		return ""
	}
	return C.GoString(s)
}
