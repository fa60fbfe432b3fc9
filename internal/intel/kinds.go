package intel

// Provider kind enumerations and their surface-space mappings. The tables
// are switches rather than lookup maps so that a new protocol kind is a
// compile-visible hole, not a silent dictionary miss; unknown values still
// land on a generic default.

// CompletionKind is the protocol-space completion item kind.
type CompletionKind int

// Protocol completion kinds.
const (
	CompletionKindText          CompletionKind = 1
	CompletionKindMethod        CompletionKind = 2
	CompletionKindFunction      CompletionKind = 3
	CompletionKindConstructor   CompletionKind = 4
	CompletionKindField         CompletionKind = 5
	CompletionKindVariable      CompletionKind = 6
	CompletionKindClass         CompletionKind = 7
	CompletionKindInterface     CompletionKind = 8
	CompletionKindModule        CompletionKind = 9
	CompletionKindProperty      CompletionKind = 10
	CompletionKindUnit          CompletionKind = 11
	CompletionKindValue         CompletionKind = 12
	CompletionKindEnum          CompletionKind = 13
	CompletionKindKeyword       CompletionKind = 14
	CompletionKindSnippet       CompletionKind = 15
	CompletionKindColor         CompletionKind = 16
	CompletionKindFile          CompletionKind = 17
	CompletionKindReference     CompletionKind = 18
	CompletionKindFolder        CompletionKind = 19
	CompletionKindEnumMember    CompletionKind = 20
	CompletionKindConstant      CompletionKind = 21
	CompletionKindStruct        CompletionKind = 22
	CompletionKindEvent         CompletionKind = 23
	CompletionKindOperator      CompletionKind = 24
	CompletionKindTypeParameter CompletionKind = 25
)

// SurfaceCompletionKind is the editing surface's completion kind.
type SurfaceCompletionKind int

// Surface completion kinds.
const (
	SurfaceCompletionText SurfaceCompletionKind = iota
	SurfaceCompletionMethod
	SurfaceCompletionFunction
	SurfaceCompletionConstructor
	SurfaceCompletionField
	SurfaceCompletionVariable
	SurfaceCompletionClass
	SurfaceCompletionInterface
	SurfaceCompletionModule
	SurfaceCompletionProperty
	SurfaceCompletionUnit
	SurfaceCompletionValue
	SurfaceCompletionEnum
	SurfaceCompletionKeyword
	SurfaceCompletionSnippet
	SurfaceCompletionColor
	SurfaceCompletionFile
	SurfaceCompletionReference
	SurfaceCompletionFolder
	SurfaceCompletionEnumMember
	SurfaceCompletionConstant
	SurfaceCompletionStruct
	SurfaceCompletionEvent
	SurfaceCompletionOperator
	SurfaceCompletionTypeParameter
)

// SurfaceKindForCompletion maps a protocol completion kind to the surface
// enumeration. Unknown kinds map to the generic text kind.
func SurfaceKindForCompletion(kind CompletionKind) SurfaceCompletionKind {
	switch kind {
	case CompletionKindText:
		return SurfaceCompletionText
	case CompletionKindMethod:
		return SurfaceCompletionMethod
	case CompletionKindFunction:
		return SurfaceCompletionFunction
	case CompletionKindConstructor:
		return SurfaceCompletionConstructor
	case CompletionKindField:
		return SurfaceCompletionField
	case CompletionKindVariable:
		return SurfaceCompletionVariable
	case CompletionKindClass:
		return SurfaceCompletionClass
	case CompletionKindInterface:
		return SurfaceCompletionInterface
	case CompletionKindModule:
		return SurfaceCompletionModule
	case CompletionKindProperty:
		return SurfaceCompletionProperty
	case CompletionKindUnit:
		return SurfaceCompletionUnit
	case CompletionKindValue:
		return SurfaceCompletionValue
	case CompletionKindEnum:
		return SurfaceCompletionEnum
	case CompletionKindKeyword:
		return SurfaceCompletionKeyword
	case CompletionKindSnippet:
		return SurfaceCompletionSnippet
	case CompletionKindColor:
		return SurfaceCompletionColor
	case CompletionKindFile:
		return SurfaceCompletionFile
	case CompletionKindReference:
		return SurfaceCompletionReference
	case CompletionKindFolder:
		return SurfaceCompletionFolder
	case CompletionKindEnumMember:
		return SurfaceCompletionEnumMember
	case CompletionKindConstant:
		return SurfaceCompletionConstant
	case CompletionKindStruct:
		return SurfaceCompletionStruct
	case CompletionKindEvent:
		return SurfaceCompletionEvent
	case CompletionKindOperator:
		return SurfaceCompletionOperator
	case CompletionKindTypeParameter:
		return SurfaceCompletionTypeParameter
	default:
		return SurfaceCompletionText
	}
}

// SymbolKind is the protocol-space document symbol kind.
type SymbolKind int

// Protocol symbol kinds.
const (
	SymbolKindFile          SymbolKind = 1
	SymbolKindModule        SymbolKind = 2
	SymbolKindNamespace     SymbolKind = 3
	SymbolKindPackage       SymbolKind = 4
	SymbolKindClass         SymbolKind = 5
	SymbolKindMethod        SymbolKind = 6
	SymbolKindProperty      SymbolKind = 7
	SymbolKindField         SymbolKind = 8
	SymbolKindConstructor   SymbolKind = 9
	SymbolKindEnum          SymbolKind = 10
	SymbolKindInterface     SymbolKind = 11
	SymbolKindFunction      SymbolKind = 12
	SymbolKindVariable      SymbolKind = 13
	SymbolKindConstant      SymbolKind = 14
	SymbolKindString        SymbolKind = 15
	SymbolKindNumber        SymbolKind = 16
	SymbolKindBoolean       SymbolKind = 17
	SymbolKindArray         SymbolKind = 18
	SymbolKindObject        SymbolKind = 19
	SymbolKindKey           SymbolKind = 20
	SymbolKindNull          SymbolKind = 21
	SymbolKindEnumMember    SymbolKind = 22
	SymbolKindStruct        SymbolKind = 23
	SymbolKindEvent         SymbolKind = 24
	SymbolKindOperator      SymbolKind = 25
	SymbolKindTypeParameter SymbolKind = 26
)

// SurfaceSymbolKind is the editing surface's symbol kind.
type SurfaceSymbolKind int

// Surface symbol kinds.
const (
	SurfaceSymbolFile SurfaceSymbolKind = iota
	SurfaceSymbolModule
	SurfaceSymbolNamespace
	SurfaceSymbolPackage
	SurfaceSymbolClass
	SurfaceSymbolMethod
	SurfaceSymbolProperty
	SurfaceSymbolField
	SurfaceSymbolConstructor
	SurfaceSymbolEnum
	SurfaceSymbolInterface
	SurfaceSymbolFunction
	SurfaceSymbolVariable
	SurfaceSymbolConstant
	SurfaceSymbolString
	SurfaceSymbolNumber
	SurfaceSymbolBoolean
	SurfaceSymbolArray
	SurfaceSymbolObject
	SurfaceSymbolKey
	SurfaceSymbolNull
	SurfaceSymbolEnumMember
	SurfaceSymbolStruct
	SurfaceSymbolEvent
	SurfaceSymbolOperator
	SurfaceSymbolTypeParameter
)

// SurfaceKindForSymbol maps a protocol symbol kind to the surface
// enumeration. Unknown kinds map to the generic variable kind.
func SurfaceKindForSymbol(kind SymbolKind) SurfaceSymbolKind {
	switch kind {
	case SymbolKindFile:
		return SurfaceSymbolFile
	case SymbolKindModule:
		return SurfaceSymbolModule
	case SymbolKindNamespace:
		return SurfaceSymbolNamespace
	case SymbolKindPackage:
		return SurfaceSymbolPackage
	case SymbolKindClass:
		return SurfaceSymbolClass
	case SymbolKindMethod:
		return SurfaceSymbolMethod
	case SymbolKindProperty:
		return SurfaceSymbolProperty
	case SymbolKindField:
		return SurfaceSymbolField
	case SymbolKindConstructor:
		return SurfaceSymbolConstructor
	case SymbolKindEnum:
		return SurfaceSymbolEnum
	case SymbolKindInterface:
		return SurfaceSymbolInterface
	case SymbolKindFunction:
		return SurfaceSymbolFunction
	case SymbolKindVariable:
		return SurfaceSymbolVariable
	case SymbolKindConstant:
		return SurfaceSymbolConstant
	case SymbolKindString:
		return SurfaceSymbolString
	case SymbolKindNumber:
		return SurfaceSymbolNumber
	case SymbolKindBoolean:
		return SurfaceSymbolBoolean
	case SymbolKindArray:
		return SurfaceSymbolArray
	case SymbolKindObject:
		return SurfaceSymbolObject
	case SymbolKindKey:
		return SurfaceSymbolKey
	case SymbolKindNull:
		return SurfaceSymbolNull
	case SymbolKindEnumMember:
		return SurfaceSymbolEnumMember
	case SymbolKindStruct:
		return SurfaceSymbolStruct
	case SymbolKindEvent:
		return SurfaceSymbolEvent
	case SymbolKindOperator:
		return SurfaceSymbolOperator
	case SymbolKindTypeParameter:
		return SurfaceSymbolTypeParameter
	default:
		return SurfaceSymbolVariable
	}
}
