package carnet

import "fmt"

// ConfigurationError aborts a batch before any item is processed: no active
// template, more than one, an unparseable field map or an unreadable
// background.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "error de configuración: " + e.Reason
}

// InputError aborts a batch whose driver selection resolved to nothing.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return "error de entrada: " + e.Reason
}

// RenderError is a per-item failure: the batch logs it, counts it and moves
// on.
type RenderError struct {
	ConductorID string
	Err         error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("error al renderizar el carnet del conductor %s: %v", e.ConductorID, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// StorageError covers file writes. Per-item writes are recovered like render
// errors; a failed archive write is fatal for the whole session.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("error de almacenamiento (%s): %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
