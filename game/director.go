package game

// Director plays the game in place of a human, by moving a virtual joystick
// and pressing a virtual button. It must never touch the board it is given
// beyond reading it; all input goes through the hardware it drives.
type Director interface {
	/**
	 * Called once the bomb is placed, before the first poll
	 */
	Init(*Board)

	/**
	 * Make a single move: aim, press, release or wait
	 */
	Act()

	/**
	 * Keep moving in the background until End() is called
	 */
	ActContinuously()

	/**
	 * Stop moving. Called when the bomb goes off; must be safe to call twice
	 */
	End()
}
