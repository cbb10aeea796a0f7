package middleware

import "net/http"

// ResponseRecorder wraps ResponseWriter, captures the status code, and can
// run a hook just before the first byte is written (used to persist the
// session cookie while headers are still open).
type ResponseRecorder struct {
	http.ResponseWriter
	status      int
	wrote       bool
	beforeWrite func(http.ResponseWriter)
}

func NewResponseRecorder(w http.ResponseWriter) *ResponseRecorder {
	return &ResponseRecorder{ResponseWriter: w, status: http.StatusOK}
}

// SetBeforeWrite registers fn to run once before the first header/body write.
func (rw *ResponseRecorder) SetBeforeWrite(fn func(http.ResponseWriter)) {
	rw.beforeWrite = fn
}

func (rw *ResponseRecorder) WriteHeader(statusCode int) {
	rw.flushHook()
	rw.status = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (rw *ResponseRecorder) Write(b []byte) (int, error) {
	rw.flushHook()
	return rw.ResponseWriter.Write(b)
}

func (rw *ResponseRecorder) Status() int { return rw.status }

// Wrote reports whether any response byte or header has been written.
func (rw *ResponseRecorder) Wrote() bool { return rw.wrote }

func (rw *ResponseRecorder) flushHook() {
	if rw.wrote {
		return
	}
	rw.wrote = true
	if rw.beforeWrite != nil {
		rw.beforeWrite(rw.ResponseWriter)
	}
}
