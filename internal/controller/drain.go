package controller

import tea "github.com/charmbracelet/bubbletea"

// Drain runs cmd and every command it produces on the calling goroutine until
// none remain. Headless callers use it in place of a tea.Program; timers
// block for their full duration.
func (c *Controller) Drain(cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			queue = append(queue, c.Update(msg))
		}
	}
}
