// Package tika bridges into the Apache Tika parsing toolkit compiled as a
// GraalVM native image (libtika_native).
//
// The bridge has three layers: a process-wide runtime isolate created once
// and shared by every caller (isolate.go), a call marshaller that converts
// Go values into Java objects and translates Java exceptions into errors
// (marshal.go, jconfig.go), and a streaming adapter that pulls extracted
// bytes out of a Java InputStream without buffering whole documents
// (reader.go). parse.go exposes the parse entry points the extractor
// orchestrates.
//
// Building requires the JNI header on the C include path, e.g.
//
//	CGO_CFLAGS="-I$JAVA_HOME/include -I$JAVA_HOME/include/linux"
//
// and libtika_native on the linker search path. Locating the library and
// its companion shared objects at process start is the deployment's job;
// failing to do so is a fatal startup error, not a per-call error.
package tika

/*
#cgo CFLAGS: -I${SRCDIR}
#cgo LDFLAGS: -ltika_native
#cgo linux LDFLAGS: -Wl,-rpath,$ORIGIN

#include "bridge.h"
*/
import "C"
