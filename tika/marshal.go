package tika

/*
#include <stdlib.h>
#include "bridge.h"
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// env wraps a per-thread JNIEnv handle. Valid only on the OS thread that
// attach returned it on, for the duration of that attachment.
type env struct {
	ptr *C.bridge_env
}

// Call arguments. cgo exposes the bridge_val union as raw bytes, so the
// constructors poke the right member through an unsafe pointer.

func objArg(r C.bridge_ref) C.bridge_val {
	var v C.bridge_val
	v.tag = 'L'
	*(*C.bridge_ref)(unsafe.Pointer(&v.v)) = r
	return v
}

func intArg(i int32) C.bridge_val {
	var v C.bridge_val
	v.tag = 'I'
	*(*C.int32_t)(unsafe.Pointer(&v.v)) = C.int32_t(i)
	return v
}

func boolArg(b bool) C.bridge_val {
	var v C.bridge_val
	v.tag = 'Z'
	var z C.uint8_t
	if b {
		z = 1
	}
	*(*C.uint8_t)(unsafe.Pointer(&v.v)) = z
	return v
}

func argsPtr(args []C.bridge_val) *C.bridge_val {
	if len(args) == 0 {
		return nil
	}
	return &args[0]
}

// translate maps a shim return code into an error. For BRIDGE_ERR_EXCEPTION
// the pending Java exception has already been described to stderr by the
// shim path; here it is cleared and its rendered text becomes the error,
// so the runtime stays usable for subsequent calls on this thread.
func (e env) translate(rc C.int, op string) error {
	switch rc {
	case C.BRIDGE_OK:
		return nil
	case C.BRIDGE_ERR_EXCEPTION:
		var cMsg *C.char
		C.bridge_exception_clear(e.ptr, &cMsg)
		msg := "unknown exception"
		if cMsg != nil {
			msg = C.GoString(cMsg)
			C.bridge_free_string(cMsg)
		}
		return fmt.Errorf("%w: %s: %s", ErrBridge, op, msg)
	case C.BRIDGE_ERR_LOOKUP:
		return fmt.Errorf("%w: %s: class or method not found", ErrBridge, op)
	case C.BRIDGE_ERR_NULL:
		return fmt.Errorf("%w: %s: unexpected null result", ErrBridge, op)
	default:
		return fmt.Errorf("%w: %s: call failed (code %d)", ErrBridge, op, int(rc))
	}
}

// newString copies s into a fresh Java string. Strings are created per
// call, never interned or cached; their local refs die with the call.
func (e env) newString(s string) (C.bridge_ref, error) {
	cs := C.CString(s)
	defer C.free(unsafe.Pointer(cs))
	var out C.bridge_ref
	if rc := C.bridge_new_string(e.ptr, cs, &out); rc != C.BRIDGE_OK {
		return nil, e.translate(rc, "new string")
	}
	return out, nil
}

// goString unwraps a Java string result. A null in a non-nullable position
// is an error, never an empty default.
func (e env) goString(ref C.bridge_ref, what string) (string, error) {
	var cs *C.char
	if rc := C.bridge_get_string(e.ptr, ref, &cs); rc != C.BRIDGE_OK {
		return "", e.translate(rc, "read "+what)
	}
	s := C.GoString(cs)
	C.bridge_free_string(cs)
	return s, nil
}

func (e env) callStaticObject(class, method, sig string, args ...C.bridge_val) (C.bridge_ref, error) {
	cClass := C.CString(class)
	cMethod := C.CString(method)
	cSig := C.CString(sig)
	defer func() {
		C.free(unsafe.Pointer(cClass))
		C.free(unsafe.Pointer(cMethod))
		C.free(unsafe.Pointer(cSig))
	}()
	var out C.bridge_ref
	rc := C.bridge_call_static_object(e.ptr, cClass, cMethod, cSig,
		argsPtr(args), C.int(len(args)), &out)
	if rc != C.BRIDGE_OK {
		return nil, e.translate(rc, class+"."+method)
	}
	return out, nil
}

func (e env) callObject(obj C.bridge_ref, method, sig string, args ...C.bridge_val) (C.bridge_ref, error) {
	cMethod := C.CString(method)
	cSig := C.CString(sig)
	defer func() {
		C.free(unsafe.Pointer(cMethod))
		C.free(unsafe.Pointer(cSig))
	}()
	var out C.bridge_ref
	rc := C.bridge_call_object(e.ptr, obj, cMethod, cSig,
		argsPtr(args), C.int(len(args)), &out)
	if rc != C.BRIDGE_OK {
		return nil, e.translate(rc, method)
	}
	return out, nil
}

func (e env) callInt(obj C.bridge_ref, method, sig string, args ...C.bridge_val) (int32, error) {
	cMethod := C.CString(method)
	cSig := C.CString(sig)
	defer func() {
		C.free(unsafe.Pointer(cMethod))
		C.free(unsafe.Pointer(cSig))
	}()
	var out C.int32_t
	rc := C.bridge_call_int(e.ptr, obj, cMethod, cSig,
		argsPtr(args), C.int(len(args)), &out)
	if rc != C.BRIDGE_OK {
		return 0, e.translate(rc, method)
	}
	return int32(out), nil
}

func (e env) callBool(obj C.bridge_ref, method, sig string, args ...C.bridge_val) (bool, error) {
	cMethod := C.CString(method)
	cSig := C.CString(sig)
	defer func() {
		C.free(unsafe.Pointer(cMethod))
		C.free(unsafe.Pointer(cSig))
	}()
	var out C.uint8_t
	rc := C.bridge_call_bool(e.ptr, obj, cMethod, cSig,
		argsPtr(args), C.int(len(args)), &out)
	if rc != C.BRIDGE_OK {
		return false, e.translate(rc, method)
	}
	return out != 0, nil
}

func (e env) callByte(obj C.bridge_ref, method, sig string, args ...C.bridge_val) (int8, error) {
	cMethod := C.CString(method)
	cSig := C.CString(sig)
	defer func() {
		C.free(unsafe.Pointer(cMethod))
		C.free(unsafe.Pointer(cSig))
	}()
	var out C.int8_t
	rc := C.bridge_call_byte(e.ptr, obj, cMethod, cSig,
		argsPtr(args), C.int(len(args)), &out)
	if rc != C.BRIDGE_OK {
		return 0, e.translate(rc, method)
	}
	return int8(out), nil
}

func (e env) callVoid(obj C.bridge_ref, method, sig string, args ...C.bridge_val) error {
	cMethod := C.CString(method)
	cSig := C.CString(sig)
	defer func() {
		C.free(unsafe.Pointer(cMethod))
		C.free(unsafe.Pointer(cSig))
	}()
	rc := C.bridge_call_void(e.ptr, obj, cMethod, cSig,
		argsPtr(args), C.int(len(args)))
	if rc != C.BRIDGE_OK {
		return e.translate(rc, method)
	}
	return nil
}

func (e env) newObject(class, sig string, args ...C.bridge_val) (C.bridge_ref, error) {
	cClass := C.CString(class)
	cSig := C.CString(sig)
	defer func() {
		C.free(unsafe.Pointer(cClass))
		C.free(unsafe.Pointer(cSig))
	}()
	var out C.bridge_ref
	rc := C.bridge_new_object(e.ptr, cClass, cSig,
		argsPtr(args), C.int(len(args)), &out)
	if rc != C.BRIDGE_OK {
		return nil, e.translate(rc, "new "+class)
	}
	return out, nil
}

func (e env) byteArrayFrom(data []byte) (C.bridge_ref, error) {
	var src *C.uint8_t
	if len(data) > 0 {
		src = (*C.uint8_t)(unsafe.Pointer(&data[0]))
	}
	var out C.bridge_ref
	rc := C.bridge_byte_array_from(e.ptr, src, C.int32_t(len(data)), &out)
	if rc != C.BRIDGE_OK {
		return nil, e.translate(rc, "new byte array")
	}
	return out, nil
}

func (e env) deleteLocal(ref C.bridge_ref) {
	C.bridge_delete_local_ref(e.ptr, ref)
}
