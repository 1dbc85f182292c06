package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// syntax, translated from parser errors
	SynInfo            Code = 2000
	SynInvalidToken    Code = 2001
	SynUnexpectedEOF   Code = 2002
	SynUnexpectedToken Code = 2003
	SynExtraToken      Code = 2004
	SynInvalid         Code = 2005

	// type binding and checking
	SemaInfo          Code = 3000
	SemaDuplicateType Code = 3001
	SemaUnboundType   Code = 3002
	SemaCircularType  Code = 3003
	SemaTooManyModes  Code = 3004
	SemaOnewayReturns Code = 3005
	SemaNonFuncMethod Code = 3006
	SemaNotService    Code = 3007
	SemaNestedClass   Code = 3008

	IOLoadFileError Code = 4001

	ProjInfo        Code = 5000
	ProjImportCycle Code = 5001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:        "Unknown error",
		SynInfo:            "Syntax information",
		SynInvalidToken:    "Invalid token",
		SynUnexpectedEOF:   "Unexpected end of input",
		SynUnexpectedToken: "Unexpected token",
		SynExtraToken:      "Extra token",
		SynInvalid:         "Invalid syntax",
		SemaInfo:           "Semantic information",
		SemaDuplicateType:  "Duplicate type name",
		SemaUnboundType:    "Unbound type identifier",
		SemaCircularType:   "Circular type definition",
		SemaTooManyModes:   "Function has more than one mode",
		SemaOnewayReturns:  "Oneway function has results",
		SemaNonFuncMethod:  "Method has a non-function type",
		SemaNotService:     "Not a service type",
		SemaNestedClass:    "Service constructor not supported",
		IOLoadFileError:    "I/O load file error",
		ProjInfo:           "Project information",
		ProjImportCycle:    "Import cycle detected",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
