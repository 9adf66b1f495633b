package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/go-theft-auto/listui"
)

// Translate maps a tcell event to a listui event. It reports false for
// events with no listui meaning.
func (r *Renderer) Translate(ev tcell.Event) (listui.Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		cols, rows := ev.Size()
		return listui.Resize(cols*r.cellW, rows*r.cellH), true
	case *tcell.EventKey:
		kind := keyToEvent(ev)
		return listui.Key(kind), kind != listui.EventNone
	}
	return listui.Event{}, false
}

func keyToEvent(ev *tcell.EventKey) listui.EventKind {
	switch ev.Key() {
	case tcell.KeyUp:
		return listui.EventUp
	case tcell.KeyDown:
		return listui.EventDown
	case tcell.KeyLeft:
		return listui.EventLeft
	case tcell.KeyRight:
		return listui.EventRight
	case tcell.KeyEnter:
		return listui.EventActivate
	case tcell.KeyEscape, tcell.KeyBackspace, tcell.KeyBackspace2:
		return listui.EventCancel
	case tcell.KeyCtrlC:
		return listui.EventQuit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'k', 'w':
			return listui.EventUp
		case 'j', 's':
			return listui.EventDown
		case 'h', 'a':
			return listui.EventLeft
		case 'l', 'd':
			return listui.EventRight
		case ' ':
			return listui.EventActivate
		case 'q':
			return listui.EventQuit
		}
	}
	return listui.EventNone
}

// Listen pushes translated screen events into queue until the screen is
// finalized. Run it on its own goroutine.
func (r *Renderer) Listen(queue *listui.EventQueue) {
	for {
		ev := r.screen.PollEvent()
		if ev == nil {
			return
		}
		if e, ok := r.Translate(ev); ok {
			queue.Push(e)
		}
	}
}
