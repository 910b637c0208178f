package catalog

import (
	"errors"
	"fmt"
)

// Errores de negocio del catálogo. El orquestador y la capa HTTP los mapean
// a la envolvente de respuesta con errors.Is / errors.As.
var (
	// ErrConflict: create sobre una clave que ya existe.
	ErrConflict = errors.New("el producto ya existe")

	// ErrNotFound: get/update/delete sobre una clave inexistente.
	ErrNotFound = errors.New("producto no encontrado")

	// ErrNothingToUpdate: el payload del update quedó vacío después de
	// descartar los campos clave.
	ErrNothingToUpdate = errors.New("body vacío; nada que actualizar")
)

// MissingFieldError señala un campo obligatorio ausente; nombra el campo.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("falta %s en el body", e.Field)
}

// StoreError envuelve una falla inesperada del almacén. El mensaje subyacente
// se expone al caller; el retry queda del lado del cliente.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("error de almacenamiento en %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
