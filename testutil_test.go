package vscroll

// fakeHandle records every host-side mutation so tests can assert on the
// engine's writes.
type fakeHandle struct {
	id        int
	active    bool
	x, y      float64
	w, h      float64
	destroyed bool
}

func (h *fakeHandle) SetActive(active bool)       { h.active = active }
func (h *fakeHandle) SetPosition(x, y float64)    { h.x, h.y = x, y }
func (h *fakeHandle) SetSize(w, hh float64)       { h.w, h.h = w, hh }
func (h *fakeHandle) Size() (float64, float64)    { return h.w, h.h }
func (h *fakeHandle) Anchor() (float64, float64)  { return 0, 1 }
func (h *fakeHandle) Destroy()                    { h.destroyed = true }

// testHost wires a List to fake handles and counts renders per index.
type testHost struct {
	created []*fakeHandle
	renders map[int]int
	// onRender optionally mutates the handle, as a real render would.
	onRender func(h *fakeHandle, index int)
}

func newTestHost() *testHost {
	return &testHost{renders: make(map[int]int)}
}

func (th *testHost) factory(int) Handle {
	h := &fakeHandle{id: len(th.created)}
	th.created = append(th.created, h)
	return h
}

func (th *testHost) render(h Handle, index int) {
	th.renders[index]++
	if th.onRender != nil {
		th.onRender(h.(*fakeHandle), index)
	}
}

func (th *testHost) liveCount() int {
	live := 0
	for _, h := range th.created {
		if h.active {
			live++
		}
	}
	return live
}

func (th *testHost) apply(l *List) *List {
	return l.SetHandleFactory(th.factory).SetRenderFunc(th.render)
}
