package tika

/*
#include <stdlib.h>
#include "bridge.h"
*/
import "C"

import (
	"fmt"
	"os"
	"runtime"
	"sync"
	"unsafe"
)

// LibraryPathEnv overrides the java.library.path passed to the runtime at
// creation. Defaults to "." so companion shared libraries (libawt and
// friends) are found next to libtika_native.
const LibraryPathEnv = "TIKA_NATIVE_LIBRARY_PATH"

// vm returns the process-wide runtime isolate, creating it on first call.
// Creating a VM per call costs hundreds of milliseconds, so a single
// instance is shared for the process lifetime and never destroyed; the OS
// reclaims it at exit. First caller wins under concurrent first access;
// everyone else observes the fully-initialized instance.
//
// Creation failure is unrecoverable: there is no degraded mode without the
// runtime, so the process aborts.
var vm = sync.OnceValue(func() *C.bridge_vm {
	libPath := os.Getenv(LibraryPathEnv)
	if libPath == "" {
		libPath = "."
	}
	cPath := C.CString(libPath)
	defer C.free(unsafe.Pointer(cPath))

	var out *C.bridge_vm
	if rc := C.bridge_create_vm(cPath, &out); rc != C.BRIDGE_OK {
		panic(fmt.Sprintf("tika: creating the native runtime failed (code %d); "+
			"libtika_native and its library path must be locatable at process start", rc))
	}
	return out
})

// attach pins the calling goroutine to its OS thread and attaches that
// thread to the runtime. Attaching an already-attached thread is a no-op,
// so callers attach on every operation rather than pooling attachments.
// Threads are never detached; the runtime reclaims them at thread exit.
//
// The returned release func unpins the goroutine and must be called when
// the marshalled call sequence ends.
func attach() (env, func(), error) {
	runtime.LockOSThread()
	var e *C.bridge_env
	if rc := C.bridge_attach_thread(vm(), &e); rc != C.BRIDGE_OK {
		runtime.UnlockOSThread()
		return env{}, nil, fmt.Errorf("%w: attaching thread to runtime (code %d)", ErrBridge, rc)
	}
	return env{ptr: e}, runtime.UnlockOSThread, nil
}
