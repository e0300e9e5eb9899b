package game

// Director plays a session in place of a human
type Director interface {
	/**
	 * Initialize the director
	 */
	Init(*Session)

	/**
	 * Decide the next actions to take. No actions means the director is stuck.
	 */
	Act() []CellAction

	/**
	 * Stop acting
	 */
	End()
}
