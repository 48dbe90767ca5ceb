package engine

// fanout mirrors one line to every connected observer, best-effort — an
// observer whose outbound queue is full drops the message rather than
// stalling the core loop.
func (e *Engine) fanout(line string) {
	for _, sess := range e.observers {
		sess.Send(line)
	}
}
