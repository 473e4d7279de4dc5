package ir

import (
	"fmt"

	"gotoc/internal/intern"
)

// LocationKind discriminates the Location variants.
type LocationKind uint8

const (
	// LocationNone is an unknown source location.
	LocationNone LocationKind = iota
	// LocationBuiltin marks code inside a builtin function.
	LocationBuiltin
	// LocationLoc is a span in user code.
	LocationLoc
	// LocationProperty carries a property class and description for checks
	// (assert, assume, cover).
	LocationProperty
	// LocationPropertyUnknown is a property without a usable source position.
	LocationPropertyUnknown
)

// Location is a source location attached to expressions, statements and
// symbols. Line and column numbers are 1-based; zero means absent.
type Location struct {
	Kind LocationKind
	File intern.StringID
	// Function is NoString for globals.
	Function      intern.StringID
	StartLine     uint64
	StartCol      uint64
	EndLine       uint64
	EndCol        uint64
	Comment       intern.StringID
	PropertyClass intern.StringID
}

func (l Location) IsNone() bool    { return l.Kind == LocationNone }
func (l Location) IsBuiltin() bool { return l.Kind == LocationBuiltin }

// Filename returns the file for user-code and property locations.
func (l Location) Filename() (intern.StringID, bool) {
	switch l.Kind {
	case LocationLoc, LocationProperty:
		return l.File, true
	}
	return intern.NoString, false
}

// Line returns the (start) line when one is known.
func (l Location) Line() (uint64, bool) {
	switch l.Kind {
	case LocationLoc, LocationProperty:
		return l.StartLine, true
	case LocationBuiltin:
		if l.StartLine != 0 {
			return l.StartLine, true
		}
	}
	return 0, false
}

// FunctionName returns the enclosing function, if any.
func (l Location) FunctionName() (intern.StringID, bool) {
	switch l.Kind {
	case LocationBuiltin:
		return l.Function, true
	case LocationLoc, LocationProperty:
		if l.Function != intern.NoString {
			return l.Function, true
		}
	}
	return intern.NoString, false
}

// ShortString renders "file:line" as closely as the variant allows, for
// logging.
func (l Location) ShortString(strs *intern.Interner) string {
	switch l.Kind {
	case LocationBuiltin:
		if l.StartLine != 0 {
			return fmt.Sprintf("<%s>:%d", strs.MustLookup(l.Function), l.StartLine)
		}
		return fmt.Sprintf("<%s>", strs.MustLookup(l.Function))
	case LocationLoc:
		return fmt.Sprintf("%s:%d", strs.MustLookup(l.File), l.StartLine)
	case LocationProperty, LocationPropertyUnknown:
		return fmt.Sprintf("%q:%q", strs.MustLookup(l.PropertyClass), strs.MustLookup(l.Comment))
	default:
		return "<none>"
	}
}

// NoLocation is the unknown source location.
func NoLocation() Location {
	return Location{Kind: LocationNone}
}

// BuiltinLocation marks code inside the named builtin function. line may be
// zero when unknown.
func BuiltinLocation(function intern.StringID, line uint64) Location {
	return Location{Kind: LocationBuiltin, Function: function, StartLine: line}
}

// NewLocation is a span in user code. function is NoString for globals;
// columns may be zero when unknown.
func NewLocation(file, function intern.StringID, startLine, startCol, endLine, endCol uint64) Location {
	return Location{
		Kind:      LocationLoc,
		File:      file,
		Function:  function,
		StartLine: startLine,
		StartCol:  startCol,
		EndLine:   endLine,
		EndCol:    endCol,
	}
}

// PropertyLocation is a check location with comment and property class.
func PropertyLocation(file, function intern.StringID, line, col uint64, comment, propertyClass intern.StringID) Location {
	return Location{
		Kind:          LocationProperty,
		File:          file,
		Function:      function,
		StartLine:     line,
		StartCol:      col,
		Comment:       comment,
		PropertyClass: propertyClass,
	}
}

// PropertyUnknownLocation is a check with no usable source position.
func PropertyUnknownLocation(comment, propertyClass intern.StringID) Location {
	return Location{Kind: LocationPropertyUnknown, Comment: comment, PropertyClass: propertyClass}
}

// WithProperty upgrades any location to a property location, falling back to
// the position-less variant when the receiver has no source position.
// Existing property locations are returned unchanged.
func (l Location) WithProperty(comment, propertyClass intern.StringID) Location {
	switch l.Kind {
	case LocationLoc:
		return PropertyLocation(l.File, l.Function, l.StartLine, l.StartCol, comment, propertyClass)
	case LocationProperty, LocationPropertyUnknown:
		return l
	default:
		return PropertyUnknownLocation(comment, propertyClass)
	}
}
