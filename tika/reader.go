package tika

/*
#include "bridge.h"
*/
import "C"

import (
	"fmt"
	"io"
	"unsafe"
)

// Reader streams extracted text out of a foreign java.io.InputStream. It
// implements io.ReadCloser.
//
// A Reader owns its stream handle exclusively: it must not be read from
// multiple goroutines concurrently. It performs no buffering of its own —
// every Read crosses the runtime boundary exactly once, so callers doing
// many small reads should wrap it in a bufio.Reader.
type Reader struct {
	stream C.bridge_ref // global ref, nil after Close
}

// newReader promotes the call-scoped stream ref to a global one so the
// stream survives the call frame that produced it and can be read from
// any attached thread.
func newReader(e env, stream C.bridge_ref) (*Reader, error) {
	var global C.bridge_ref
	if rc := C.bridge_global_ref(e.ptr, stream, &global); rc != C.BRIDGE_OK {
		return nil, e.translate(rc, "pin stream")
	}
	return &Reader{stream: global}, nil
}

// Read pulls at most len(p) bytes from the foreign stream. It issues one
// marshalled call to the stream's read method per invocation; the foreign
// -1 sentinel maps to io.EOF.
func (r *Reader) Read(p []byte) (int, error) {
	if r.stream == nil {
		return 0, fmt.Errorf("%w: read on closed stream", ErrIO)
	}
	if len(p) == 0 {
		return 0, nil
	}

	e, release, err := attach()
	if err != nil {
		return 0, err
	}
	defer release()

	var arr C.bridge_ref
	if rc := C.bridge_new_byte_array(e.ptr, C.int32_t(len(p)), &arr); rc != C.BRIDGE_OK {
		return 0, e.translate(rc, "alloc read buffer")
	}
	defer e.deleteLocal(arr)

	n, err := e.callInt(r.stream, "read", "([BII)I",
		objArg(arr), intArg(0), intArg(int32(len(p))))
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, io.EOF
	}
	if n == 0 {
		return 0, nil
	}

	rc := C.bridge_copy_byte_array(e.ptr, arr, (*C.uint8_t)(unsafe.Pointer(&p[0])), C.int32_t(n))
	if rc != C.BRIDGE_OK {
		return 0, e.translate(rc, "copy read buffer")
	}
	return int(n), nil
}

// Close closes the foreign stream and releases its handle. Closing an
// already-closed Reader is a no-op.
func (r *Reader) Close() error {
	if r.stream == nil {
		return nil
	}
	e, release, err := attach()
	if err != nil {
		return err
	}
	defer release()

	closeErr := e.callVoid(r.stream, "close", "()V")
	C.bridge_delete_global_ref(e.ptr, r.stream)
	r.stream = nil
	return closeErr
}
