// Package entropy provides the trusted randomness used to settle matches.
//
// Inside the enclave the random device node is backed by hardware randomness
// (Gramine maps /dev/urandom to RDRAND), so reads from Device are attestable
// as unbiased. Randomness is a security property of settlement, not a
// best-effort input: a source that cannot deliver bytes aborts the process
// instead of degrading.
package entropy

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"
)

// DefaultDevicePath is the enclave-mapped random device node.
const DefaultDevicePath = "/dev/urandom"

// Source yields unpredictable bytes. It is trusted not to be biasable by the
// caller; anything satisfying io.Reader can stand in for tests.
type Source = io.Reader

// Device reads entropy from a device node. The file is opened per read so a
// single-shot invocation never holds a descriptor across the pipeline.
type Device struct {
	Path string
}

func (d Device) Read(p []byte) (int, error) {
	path := d.Path
	if path == "" {
		path = DefaultDevicePath
	}
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return io.ReadFull(f, p)
}

// System returns the operating system CSPRNG. Used outside the enclave and
// by tests.
func System() Source {
	return rand.Reader
}

// MustRead fills buf from src. Failure to produce entropy means the trusted
// execution guarantee no longer holds, so it aborts rather than returning.
func MustRead(src Source, buf []byte) {
	if _, err := io.ReadFull(src, buf); err != nil {
		panic(fmt.Sprintf("entropy: source failed to supply randomness: %v", err))
	}
}
