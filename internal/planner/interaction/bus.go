package interaction

// EventKind 是控制器关心的指针事件种类。
type EventKind uint8

const (
	EventMove EventKind = iota + 1
	EventRelease
	EventLeave
	EventTouchCancel
)

func (k EventKind) String() string {
	switch k {
	case EventMove:
		return "move"
	case EventRelease:
		return "release"
	case EventLeave:
		return "leave"
	case EventTouchCancel:
		return "touchcancel"
	default:
		return "unknown"
	}
}

type Modality uint8

const (
	ModalityMouse Modality = iota
	ModalityTouch
)

// PointerEvent 的坐标是相对网格左上角的像素坐标。
type PointerEvent struct {
	Kind     EventKind
	X, Y     float64
	Modality Modality
}

type handler struct {
	id uint32
	fn func(PointerEvent)
}

// Bus 是输入事件的订阅表。会话通过它挂载监听，结束时逐个 Remove。
type Bus struct {
	nextID   uint32
	handlers map[EventKind][]handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[EventKind][]handler)}
}

// Handle 用来注销一次订阅，重复 Remove 无副作用。
type Handle struct {
	id   uint32
	kind EventKind
	bus  *Bus
}

func (b *Bus) Subscribe(kind EventKind, fn func(PointerEvent)) Handle {
	b.nextID++
	id := b.nextID
	b.handlers[kind] = append(b.handlers[kind], handler{id: id, fn: fn})
	return Handle{id: id, kind: kind, bus: b}
}

func (h Handle) Remove() {
	if h.bus == nil {
		return
	}
	hs := h.bus.handlers[h.kind]
	for i := range hs {
		if hs[i].id == h.id {
			h.bus.handlers[h.kind] = append(hs[:i:i], hs[i+1:]...)
			break
		}
	}
	if len(h.bus.handlers[h.kind]) == 0 {
		delete(h.bus.handlers, h.kind)
	}
}

// Publish 按订阅顺序分发。回调里可以注销自己或别人，分发基于快照。
func (b *Bus) Publish(ev PointerEvent) int {
	hs := b.handlers[ev.Kind]
	if len(hs) == 0 {
		return 0
	}
	snapshot := make([]handler, len(hs))
	copy(snapshot, hs)
	for _, h := range snapshot {
		if !b.alive(ev.Kind, h.id) {
			continue
		}
		h.fn(ev)
	}
	return len(snapshot)
}

func (b *Bus) ListenerCount() int {
	n := 0
	for _, hs := range b.handlers {
		n += len(hs)
	}
	return n
}

func (b *Bus) alive(kind EventKind, id uint32) bool {
	for _, h := range b.handlers[kind] {
		if h.id == id {
			return true
		}
	}
	return false
}
