package app

// corpusChangedMsg signals filesystem activity in the corpus directory.
type corpusChangedMsg struct{}
