package tokenizer

import "strings"

// Incremental buffers chunked input and drives the tokenizer over the
// complete-tag prefix on each flush.
//
// Feed appends bytes to a carry buffer. Flush hands the tokenizer
// everything up to and including the last '>' and returns the tokens
// completed since the previous flush; a token is never returned twice.
// End drains the remainder, even if it stops mid-tag (the tokenizer
// recovers). The concatenation of all Flush and End results equals a
// single-pass tokenization of the concatenated input.
type Incremental struct {
	t     *Tokenizer
	carry strings.Builder

	// onTokens, when set, receives every newly completed token batch.
	onTokens func([]Token)
}

// NewIncremental creates an empty incremental parser.
func NewIncremental() *Incremental {
	return &Incremental{t: NewStreaming()}
}

// OnTokens registers a callback invoked with each batch of new tokens
// produced by Flush, FeedAndFlush, or End.
func (p *Incremental) OnTokens(fn func([]Token)) {
	p.onTokens = fn
}

// Feed appends a chunk of input to the carry buffer.
func (p *Incremental) Feed(chunk string) {
	p.carry.WriteString(chunk)
}

// Flush tokenizes the buffered input up to the last unambiguous boundary
// (the final '>') and returns the newly completed tokens. Input after the
// boundary stays buffered for the next flush.
func (p *Incremental) Flush() []Token {
	buf := p.carry.String()
	idx := strings.LastIndexByte(buf, '>')
	if idx < 0 {
		return nil
	}
	p.carry.Reset()
	p.carry.WriteString(buf[idx+1:])

	p.t.Append(buf[:idx+1])
	p.t.run()
	toks := p.t.takePending()
	p.deliver(toks)
	return toks
}

// FeedAndFlush is the feed-then-flush convenience.
func (p *Incremental) FeedAndFlush(chunk string) []Token {
	p.Feed(chunk)
	return p.Flush()
}

// End tokenizes whatever input remains, even mid-tag, and returns the
// final tokens. The EOF sentinel is not included.
func (p *Incremental) End() []Token {
	p.t.Append(p.carry.String())
	p.carry.Reset()
	p.t.Finish()
	p.t.run()

	toks := p.t.takePending()
	for i, tok := range toks {
		if tok.Type == EOF {
			toks = append(toks[:i], toks[i+1:]...)
			break
		}
	}
	p.deliver(toks)
	return toks
}

// Reset discards all buffered input and tokenizer state.
func (p *Incremental) Reset() {
	p.t = NewStreaming()
	p.carry.Reset()
}

// Errors returns the tokenizer parse errors collected so far.
func (p *Incremental) Errors() []ParseError {
	return p.t.Errors()
}

func (p *Incremental) deliver(toks []Token) {
	if p.onTokens != nil && len(toks) > 0 {
		p.onTokens(toks)
	}
}
