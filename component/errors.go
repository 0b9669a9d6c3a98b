package component

import "errors"

var (
	ErrWrongType        = errors.New("component: wrong type")
	ErrReadOnly         = errors.New("component: property is read-only")
	ErrPropertyNotFound = errors.New("component: property not found")
)
