//go:build unix

package term

import (
	"io"
	"os"
	"sync"
	"time"

	"src.telm.sh/pkg/sys"
)

// A helper for reading single bytes from a file with a timeout, with
// out-of-band stop and wake controls.
type fileReader interface {
	// ReadByteWithTimeout reads one byte, waiting up to timeout. A negative
	// timeout means no timeout. It returns ErrTimeout when nothing arrives
	// in the window, ErrStopped after Stop, and ErrWake after Wake.
	ReadByteWithTimeout(timeout time.Duration) (byte, error)
	// Stop aborts any outstanding read. It blocks until the read returns.
	Stop() error
	// Wake interrupts any outstanding read with ErrWake.
	Wake() error
	// Close releases the resources allocated for the fileReader. It does
	// not close the underlying file.
	Close()
}

// Control bytes written to the control pipe.
const (
	ctrlStop = 'q'
	ctrlWake = 'w'
)

func newFileReader(file *os.File) (fileReader, error) {
	rCtrl, wCtrl, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	return &bReader{file: file, rCtrl: rCtrl, wCtrl: wCtrl}, nil
}

type bReader struct {
	file  *os.File
	rCtrl *os.File
	wCtrl *os.File
	// Held while a read is in progress, so that Stop can wait for the
	// outstanding read to finish.
	mutex sync.Mutex
}

func (r *bReader) ReadByteWithTimeout(timeout time.Duration) (byte, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	ready, err := sys.WaitForRead(timeout, r.file, r.rCtrl)
	if err != nil {
		return 0, err
	}
	if ready[1] {
		var b [1]byte
		r.rCtrl.Read(b[:])
		if b[0] == ctrlWake {
			return 0, ErrWake
		}
		return 0, ErrStopped
	}
	if !ready[0] {
		return 0, ErrTimeout
	}
	var b [1]byte
	nr, err := r.file.Read(b[:])
	if err != nil {
		return 0, err
	}
	if nr != 1 {
		return 0, io.ErrNoProgress
	}
	return b[0], nil
}

func (r *bReader) Stop() error {
	_, err := r.wCtrl.Write([]byte{ctrlStop})
	// Wait for any outstanding read to return.
	r.mutex.Lock()
	r.mutex.Unlock()
	return err
}

func (r *bReader) Wake() error {
	_, err := r.wCtrl.Write([]byte{ctrlWake})
	return err
}

func (r *bReader) Close() {
	r.rCtrl.Close()
	r.wCtrl.Close()
}
