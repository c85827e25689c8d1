package render

import "github.com/jengzang/mobility-map-backend/internal/models"

// ZoomEvent is fired when the viewport zoom changes
type ZoomEvent struct {
	From float64
	To   float64
}

type zoomSub struct {
	id int
	fn func(ZoomEvent)
}

type filterSub struct {
	id int
	fn func(models.FilterState)
}

// OnZoom registers fn for zoom changes. The returned function unsubscribes.
func (r *Renderer) OnZoom(fn func(ZoomEvent)) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextSubID++
	id := r.nextSubID
	r.zoomSubs = append(r.zoomSubs, zoomSub{id: id, fn: fn})

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, s := range r.zoomSubs {
			if s.id == id {
				r.zoomSubs = append(r.zoomSubs[:i:i], r.zoomSubs[i+1:]...)
				return
			}
		}
	}
}

// OnFilterChange registers fn for filter changes. The returned function
// unsubscribes.
func (r *Renderer) OnFilterChange(fn func(models.FilterState)) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextSubID++
	id := r.nextSubID
	r.filterSubs = append(r.filterSubs, filterSub{id: id, fn: fn})

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, s := range r.filterSubs {
			if s.id == id {
				r.filterSubs = append(r.filterSubs[:i:i], r.filterSubs[i+1:]...)
				return
			}
		}
	}
}

// zoomHandlers and filterHandlers copy the subscriber lists; callers hold r.mu
func (r *Renderer) zoomHandlers() []func(ZoomEvent) {
	out := make([]func(ZoomEvent), len(r.zoomSubs))
	for i, s := range r.zoomSubs {
		out[i] = s.fn
	}
	return out
}

func (r *Renderer) filterHandlers() []func(models.FilterState) {
	out := make([]func(models.FilterState), len(r.filterSubs))
	for i, s := range r.filterSubs {
		out[i] = s.fn
	}
	return out
}
