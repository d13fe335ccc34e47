package push

import "context"

// ChunkSize is the maximum number of tokens the provider accepts per batch.
const ChunkSize = 500

// Payload is the content shared by every outbound message of one dispatch.
type Payload struct {
	Title string
	Body  string
	Data  map[string]string
}

// Ticket is the per-token delivery outcome reported by the provider.
// Unregistered marks terminal failures (token no longer valid) that must
// trigger registry cleanup; other errors are transient and left alone.
type Ticket struct {
	Token        string
	OK           bool
	Unregistered bool
	Err          error
}

// Sender submits one batch of at most ChunkSize tokens to the push provider
// and returns a ticket per token. Implementations must not retry internally.
type Sender interface {
	Send(ctx context.Context, tokens []string, payload Payload) ([]Ticket, error)
}

// chunkTokens splits tokens into provider-sized batches.
func chunkTokens(tokens []string) [][]string {
	if len(tokens) == 0 {
		return nil
	}
	chunks := make([][]string, 0, (len(tokens)+ChunkSize-1)/ChunkSize)
	for len(tokens) > ChunkSize {
		chunks = append(chunks, tokens[:ChunkSize])
		tokens = tokens[ChunkSize:]
	}
	return append(chunks, tokens)
}
