package search

// NoSelection is the open-but-unselected index.
const NoSelection = -1

// Selection models the suggestion list state: closed, or open with a selected
// index in {-1} ∪ [0, n-1]. Moves clamp at the ends; there is no wraparound.
type Selection struct {
	open  bool
	size  int
	index int
}

// Open activates the list over n suggestions with no row selected.
// n <= 0 closes it instead.
func (s *Selection) Open(n int) {
	if n <= 0 {
		s.Close()
		return
	}
	s.open = true
	s.size = n
	s.index = NoSelection
}

// Close deactivates the list and clears the selection. Used for Escape and
// for clicks outside the component.
func (s *Selection) Close() {
	s.open = false
	s.size = 0
	s.index = NoSelection
}

func (s *Selection) Down() {
	if !s.open {
		return
	}
	if s.index < s.size-1 {
		s.index++
	}
}

func (s *Selection) Up() {
	if !s.open {
		return
	}
	if s.index > NoSelection {
		s.index--
	}
}

// Enter resolves the enter key: a selected row commits that suggestion,
// otherwise the raw query is submitted as a full search. The list closes
// either way.
func (s *Selection) Enter() (index int, commit bool) {
	index, commit = s.index, s.open && s.index >= 0
	s.Close()
	return index, commit
}

func (s *Selection) IsOpen() bool { return s.open }

// Index reports the selected row, or NoSelection.
func (s *Selection) Index() int {
	if !s.open {
		return NoSelection
	}
	return s.index
}
