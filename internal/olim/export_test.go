package olim

// HeapValid exposes the heap/status consistency check to the external suite.
func HeapValid(s *Solver) bool { return s.heapValid() }
