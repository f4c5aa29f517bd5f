package observer

import "github.com/reusedev/meme-hub/internal/consts"

type Observer interface {
	Update(event consts.Event, data any)
}

type Subject interface {
	Attach(o Observer)
	Notify(event consts.Event, data any)
}

// Observers fans an event out to every attached observer in attach order.
type Observers struct {
	list []Observer
}

func (s *Observers) Attach(o Observer) {
	if o != nil {
		s.list = append(s.list, o)
	}
}

func (s *Observers) Notify(event consts.Event, data any) {
	for _, o := range s.list {
		o.Update(event, data)
	}
}

// Func adapts a plain function to Observer.
type Func func(event consts.Event, data any)

func (f Func) Update(event consts.Event, data any) {
	f(event, data)
}
