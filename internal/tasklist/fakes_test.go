package tasklist

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"Todo/internal/taskapi"
)

type message struct {
	text string
	kind Kind
}

// fakeView records everything the controller asks of the UI.
type fakeView struct {
	mu       sync.Mutex
	input    string
	renders  [][]Row
	messages []message
	current  *message
	clears   int
	cleared  int
}

func (v *fakeView) RenderList(rows []Row) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.renders = append(v.renders, rows)
}

func (v *fakeView) ShowMessage(text string, kind Kind) {
	v.mu.Lock()
	defer v.mu.Unlock()
	m := message{text, kind}
	v.messages = append(v.messages, m)
	v.current = &m
}

func (v *fakeView) ClearMessage() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.current = nil
	v.clears++
}

func (v *fakeView) ReadInput() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.input
}

func (v *fakeView) ClearInput() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.input = ""
	v.cleared++
}

func (v *fakeView) setInput(s string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.input = s
}

func (v *fakeView) snapshot() (renders [][]Row, messages []message, current *message) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([][]Row(nil), v.renders...), append([]message(nil), v.messages...), v.current
}

// fakeTimers replaces time.AfterFunc; tests fire timers by hand.
type fakeTimers struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

func (ft *fakeTimers) afterFunc(d time.Duration, f func()) stopper {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	t := &fakeTimer{d: d, f: f}
	ft.timers = append(ft.timers, t)
	return t
}

func (ft *fakeTimers) at(i int) *fakeTimer {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	return ft.timers[i]
}

func (ft *fakeTimers) len() int {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	return len(ft.timers)
}

func answer(yes bool) Confirmer {
	return ConfirmFunc(func(context.Context, string) (bool, error) { return yes, nil })
}

func newController(api TaskAPI, view *fakeView, confirm Confirmer) (*Controller, *fakeTimers) {
	c := New(api, view, confirm, log.New(io.Discard, "", 0), 0)
	timers := &fakeTimers{}
	c.notes.afterFunc = timers.afterFunc
	return c, timers
}

// ---- scripted Task Service ----

type call struct {
	method string
	path   string
	body   string
}

type reply struct {
	status int
	body   string
}

// taskServer answers "METHOD /path" with scripted replies and records every call.
// Unscripted routes answer 404.
type taskServer struct {
	mu     sync.Mutex
	routes map[string]reply
	calls  []call
}

func newTaskServer(t *testing.T, routes map[string]reply) (*taskServer, *taskapi.Client) {
	t.Helper()
	ts := &taskServer{routes: routes}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		ts.mu.Lock()
		ts.calls = append(ts.calls, call{r.Method, r.URL.Path, string(b)})
		rp, ok := ts.routes[r.Method+" "+r.URL.Path]
		ts.mu.Unlock()
		if !ok {
			rp = reply{status: http.StatusNotFound, body: `{"error":"not found"}`}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(rp.status)
		_, _ = w.Write([]byte(rp.body))
	}))
	t.Cleanup(srv.Close)
	return ts, taskapi.New(srv.URL+"/api/todos", 2*time.Second)
}

func (ts *taskServer) recorded() []call {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return append([]call(nil), ts.calls...)
}

func (ts *taskServer) count(method string) int {
	n := 0
	for _, c := range ts.recorded() {
		if c.method == method {
			n++
		}
	}
	return n
}
