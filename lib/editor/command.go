package editor

// Command is a named editing operation. Commands never see a disabled state:
// the editor checks IsEnabled before opening the change batch.
type Command interface {
	IsEnabled(s *State, opts Options) bool
	Value(s *State, opts Options) bool
	Execute(w *Writer, opts Options) error
}
