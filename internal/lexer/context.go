package lexer

import "github.com/klauskaan/go-cal/pkg/token"

// Context names the current lexical mode. C/AL is not regular: the same
// byte sequence means different things in the object header, a property
// block, a CONTROLS grid, or a CODE section, so the lexer keeps an explicit
// stack of modes.
type Context int

const (
	ContextNormal Context = iota
	ContextObjectHeader
	ContextPropertyBlock
	ContextFieldsBlock
	ContextKeysBlock
	ContextControlsBlock
	ContextCodeSection
	ContextRDLDataSection
	ContextDotNetTypeLiteral
	ContextAutomationTypeLiteral
	ContextPreprocDirective
)

// String returns the context name used in traces and violations.
func (c Context) String() string {
	switch c {
	case ContextNormal:
		return "NORMAL"
	case ContextObjectHeader:
		return "OBJECT_HEADER"
	case ContextPropertyBlock:
		return "PROPERTY_BLOCK"
	case ContextFieldsBlock:
		return "FIELDS_BLOCK"
	case ContextKeysBlock:
		return "KEYS_BLOCK"
	case ContextControlsBlock:
		return "CONTROLS_BLOCK"
	case ContextCodeSection:
		return "CODE_SECTION"
	case ContextRDLDataSection:
		return "RDLDATA_SECTION"
	case ContextDotNetTypeLiteral:
		return "DOTNET_TYPE_LITERAL"
	case ContextAutomationTypeLiteral:
		return "AUTOMATION_TYPE_LITERAL"
	case ContextPreprocDirective:
		return "PREPROC_DIRECTIVE"
	}
	return "UNKNOWN"
}

// sectionContexts maps section keywords to the context their braced body
// runs in. Read-only after initialization.
var sectionContexts = map[token.TokenType]Context{
	token.OBJECT_PROPERTIES: ContextPropertyBlock,
	token.PROPERTIES:        ContextPropertyBlock,
	token.FIELDS:            ContextFieldsBlock,
	token.KEYS:              ContextKeysBlock,
	token.CONTROLS:          ContextControlsBlock,
	token.CODE:              ContextCodeSection,
	token.RDLDATA:           ContextRDLDataSection,
}

// isStructural reports whether a '{' in this context opens structure rather
// than a comment. Braces are comments only at the top lexical level and
// inside CODE section bodies.
func (c Context) isStructural() bool {
	switch c {
	case ContextNormal, ContextCodeSection:
		return false
	}
	return true
}

// TraceEventKind classifies trace events emitted to a TraceSink.
type TraceEventKind int

const (
	TraceToken TraceEventKind = iota
	TracePush
	TracePop
	TraceFlag
	TraceSkip
)

// String returns the event name used in audit output.
func (k TraceEventKind) String() string {
	switch k {
	case TraceToken:
		return "TOKEN"
	case TracePush:
		return "PUSH"
	case TracePop:
		return "POP"
	case TraceFlag:
		return "FLAG"
	case TraceSkip:
		return "SKIP"
	}
	return "EVENT"
}

// TraceEvent is a single lexer decision: a token emission, a context push
// or pop, a depth counter change, or a skipped region. Detail names the
// decision (token type, context, counter) and never carries source text;
// Value holds the raw token literal for token events and is the only
// field a sanitizing consumer needs to redact.
type TraceEvent struct {
	Kind   TraceEventKind
	Pos    token.Position
	Detail string
	Value  string
}

// TraceSink observes every lexer decision. Implementations must not retain
// the event beyond the call.
type TraceSink interface {
	Event(ev TraceEvent)
}

func (l *Lexer) emitTrace(kind TraceEventKind, pos token.Position, detail string) {
	if l.trace != nil {
		l.trace.Event(TraceEvent{Kind: kind, Pos: pos, Detail: detail})
	}
}

func (l *Lexer) emitTokenTrace(tok token.Token) {
	if l.trace != nil {
		l.trace.Event(TraceEvent{
			Kind:   TraceToken,
			Pos:    tok.Pos,
			Detail: tok.Type.String(),
			Value:  tok.Literal,
		})
	}
}
