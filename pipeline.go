package GoWebCore

import (
	"github.com/MeKo-Christian/GoWebCore/render"
	"github.com/MeKo-Christian/GoWebCore/tokenizer"
	"github.com/MeKo-Christian/GoWebCore/treebuilder"
)

// Pipeline coordinates progressive rendering: chunked input feeds the
// incremental tokenizer, and each flush rebuilds the tree and render list
// from the tokens seen so far.
//
// Rebuild-on-flush is the reference semantics: simple and correct. The
// token stream itself is produced incrementally and never re-tokenized.
type Pipeline struct {
	renderer *Renderer
	inc      *tokenizer.Incremental
	tokens   []tokenizer.Token
	ended    bool
}

// NewPipeline creates an empty pipeline.
func NewPipeline(opts ...Option) *Pipeline {
	return &Pipeline{
		renderer: NewRenderer(opts...),
		inc:      tokenizer.NewIncremental(),
	}
}

// Renderer returns the underlying renderer for stylesheet and viewport
// access.
func (p *Pipeline) Renderer() *Renderer {
	return p.renderer
}

// Feed appends a chunk of HTML input.
func (p *Pipeline) Feed(chunk string) {
	p.inc.Feed(chunk)
}

// Flush tokenizes the complete-tag prefix and returns the render result
// for everything parsed so far. Returns nil when no new tokens completed.
func (p *Pipeline) Flush() *render.ParseResult {
	newTokens := p.inc.Flush()
	if len(newTokens) == 0 {
		return nil
	}
	p.tokens = append(p.tokens, newTokens...)
	return p.rebuild()
}

// FeedAndFlush is the feed-then-flush convenience.
func (p *Pipeline) FeedAndFlush(chunk string) *render.ParseResult {
	p.Feed(chunk)
	return p.Flush()
}

// End drains the remaining input and returns the final render result.
func (p *Pipeline) End() *render.ParseResult {
	if !p.ended {
		p.tokens = append(p.tokens, p.inc.End()...)
		p.ended = true
	}
	return p.rebuild()
}

// Reset discards all pipeline state.
func (p *Pipeline) Reset() {
	p.inc.Reset()
	p.tokens = nil
	p.ended = false
}

// Tokens returns the tokens accumulated so far.
func (p *Pipeline) Tokens() []tokenizer.Token {
	return p.tokens
}

func (p *Pipeline) rebuild() *render.ParseResult {
	doc := treebuilder.Build(p.tokens)
	return p.renderer.RenderDocument(doc)
}

// EventType identifies a streaming token event.
type EventType int

// Streaming event types.
const (
	StartTagEvent EventType = iota
	EndTagEvent
	TextEvent
	CommentEvent
	DoctypeEvent
)

// String returns the name of the event type.
func (e EventType) String() string {
	names := [...]string{"StartTag", "EndTag", "Text", "Comment", "Doctype"}
	if int(e) < len(names) {
		return names[e]
	}
	return "Unknown"
}

// Event is one parsing event in the streaming API.
type Event struct {
	Type  EventType
	Name  string
	Attrs map[string]string
	Data  string
}

// StreamEvents returns a channel of parsing events for the input.
// The channel closes when tokenization completes.
func StreamEvents(html string) <-chan Event {
	ch := make(chan Event)
	go func() {
		defer close(ch)
		tok := tokenizer.New(html)
		for {
			token := tok.Next()
			switch token.Type {
			case tokenizer.StartTag:
				ch <- Event{
					Type:  StartTagEvent,
					Name:  token.Name,
					Attrs: tokenizer.AttrsToMap(token.Attrs),
				}
			case tokenizer.EndTag:
				ch <- Event{Type: EndTagEvent, Name: token.Name}
			case tokenizer.Character:
				ch <- Event{Type: TextEvent, Data: token.Data}
			case tokenizer.Comment:
				ch <- Event{Type: CommentEvent, Data: token.Data}
			case tokenizer.DOCTYPE:
				ch <- Event{Type: DoctypeEvent, Name: token.Name}
			case tokenizer.EOF:
				return
			}
		}
	}()
	return ch
}
