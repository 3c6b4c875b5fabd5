//go:build lcms2cgo

// Package prism opens generated profiles with Little CMS so they can be
// checked against an independent ICC implementation.
package prism

/*
#cgo LDFLAGS: -llcms2
#include <lcms2.h>
#include <stdlib.h>

// Forward declaration for Go error handler callback
extern void go_lcms2_error_handler(void*, int, char *);

// Bridge to call Go error handler from C
static void lcms2_error_handler(cmsContext ctx, cmsUInt32Number code, const char *text) {
    go_lcms2_error_handler(cmsGetContextUserData(ctx), code, (char*)text);
}

// Wrapper to set error handler
static void set_lcms2_error_handler(cmsContext ctx) {
    cmsSetLogErrorHandlerTHR(ctx, lcms2_error_handler);
}

static cmsHTRANSFORM rgb_to_xyz_transform(cmsContext ctx, cmsHPROFILE p, cmsUInt32Number intent) {
    cmsHPROFILE xyz = cmsCreateXYZProfileTHR(ctx);
    if (!xyz) return NULL;
    cmsHTRANSFORM t = cmsCreateTransformTHR(ctx, p, TYPE_RGB_DBL, xyz, TYPE_XYZ_DBL, intent, cmsFLAGS_NOCACHE | cmsFLAGS_NOOPTIMIZE);
    cmsCloseProfile(xyz);
    return t;
}

static cmsUInt32Number profile_description(cmsHPROFILE p, char *buf, cmsUInt32Number size) {
    return cmsGetProfileInfoASCII(p, cmsInfoDescription, "en", "US", buf, size);
}
*/
import "C"

import (
	"fmt"
	"runtime"
	"strings"
	"unsafe"

	"github.com/miruzo/iccgen/prism/icc"
)

type CMSProfile struct {
	DeviceColorSpace, PCSColorSpace icc.Signature
	ctx                             C.cmsContext
	p                               C.cmsHPROFILE
	error_messages                  []string
}

func (c *CMSProfile) Close() {
	if c.p != nil {
		C.cmsCloseProfile(c.p)
		c.p = nil
	}
	if c.ctx != nil {
		C.cmsDeleteContext(c.ctx)
		c.ctx = nil
	}
}

//export go_lcms2_error_handler
func go_lcms2_error_handler(ctx *C.void, code C.int, text *C.char) {
	profile := (*CMSProfile)(unsafe.Pointer(ctx))
	profile.error_messages = append(profile.error_messages, fmt.Sprintf("LCMS2 error: %d: %s", int(code), C.GoString(text)))
}

func (p *CMSProfile) call_func_with_error_handling(f func() string) error {
	p.error_messages = nil
	msg := f()
	if msg != "" {
		if len(p.error_messages) > 0 {
			return fmt.Errorf("%s: %s", msg, strings.Join(p.error_messages, "\n"))
		}
		return fmt.Errorf("%s", msg)
	}
	return nil
}

// CreateCMSProfile parses serialized profile data with Little CMS.
func CreateCMSProfile(data []byte) (ans *CMSProfile, err error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty data not allowed")
	}
	ans = &CMSProfile{}
	ans.ctx = C.cmsCreateContext(nil, unsafe.Pointer(ans))
	C.set_lcms2_error_handler(ans.ctx)
	cdata := C.CBytes(data)
	defer C.free(cdata)
	err = ans.call_func_with_error_handling(func() string {
		ans.p = C.cmsOpenProfileFromMemTHR(ans.ctx, cdata, C.cmsUInt32Number(len(data)))
		if ans.p == nil {
			return "failed to load ICC profile from provided data"
		}
		return ""
	})
	runtime.SetFinalizer(ans, func(obj any) {
		ans := obj.(*CMSProfile)
		ans.Close()
	})
	if ans.p != nil {
		ans.DeviceColorSpace = icc.Signature(C.cmsGetColorSpace(ans.p))
		ans.PCSColorSpace = icc.Signature(C.cmsGetPCS(ans.p))
	}
	return
}

func (p *CMSProfile) IsMatrixShaper() bool { return C.cmsIsMatrixShaper(p.p) != 0 }

func (p *CMSProfile) Version() float64 { return float64(C.cmsGetProfileVersion(p.p)) }

func (p *CMSProfile) DeviceClass() icc.Signature { return icc.Signature(C.cmsGetDeviceClass(p.p)) }

func (p *CMSProfile) Description() string {
	n := C.profile_description(p.p, nil, 0)
	if n == 0 {
		return ""
	}
	buf := (*C.char)(C.malloc(C.size_t(n)))
	defer C.free(unsafe.Pointer(buf))
	C.profile_description(p.p, buf, n)
	return C.GoString(buf)
}

// TransformRGBToXYZ maps triples of device RGB in [0, 1] to PCS XYZ, where
// the D50 white has Y = 1.
func (p *CMSProfile) TransformRGBToXYZ(rgb []float64, intent icc.RenderingIntent) (ans []float64, err error) {
	if len(rgb)%3 != 0 {
		return nil, fmt.Errorf("RGB input must be triples, got %d values", len(rgb))
	}
	var t C.cmsHTRANSFORM
	if err = p.call_func_with_error_handling(func() string {
		if t = C.rgb_to_xyz_transform(p.ctx, p.p, C.cmsUInt32Number(intent)); t == nil {
			return "failed to create RGB to XYZ transform"
		}
		return ""
	}); err != nil {
		return nil, err
	}
	defer C.cmsDeleteTransform(t)
	n := len(rgb) / 3
	if n == 0 {
		return nil, nil
	}
	in := (*C.double)(C.malloc(C.size_t(len(rgb)) * C.size_t(unsafe.Sizeof(C.double(0)))))
	defer C.free(unsafe.Pointer(in))
	out := (*C.double)(C.malloc(C.size_t(len(rgb)) * C.size_t(unsafe.Sizeof(C.double(0)))))
	defer C.free(unsafe.Pointer(out))
	ins := unsafe.Slice(in, len(rgb))
	for i, v := range rgb {
		ins[i] = C.double(v)
	}
	C.cmsDoTransform(t, unsafe.Pointer(in), unsafe.Pointer(out), C.cmsUInt32Number(n))
	ans = make([]float64, len(rgb))
	for i, v := range unsafe.Slice(out, len(rgb)) {
		ans[i] = float64(v)
	}
	return
}
