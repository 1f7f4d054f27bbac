package usecase

import (
	"fmt"
	"strings"

	"github.com/dkotenko/knowledge-assistant/internal/core/domain"
)

const correctionSystemPrompt = `You are an AI assistant that corrects user queries for a search system. Your task is to rephrase the user's query to be clearer and more effective for retrieval.
**Instructions:**
- Fix typos and grammatical errors.
- **DO NOT** answer the question or generate code.
- Return **only** the rephrased query and nothing else.
**Examples:**
- User Query: "prnt helo wrld in c+"
- Corrected Query: "print hello world in c++"
- User Query: "how does OSI model work"
- Corrected Query: "Explain the layers of the OSI model"`

const textRewriteSystemPrompt = `You are an AI assistant that converts the user's text into proper format.
Correct typos, arrange words properly if they are not, and make the prompt meaningful.`

func buildRerankPrompt(query string, candidates []domain.RetrievedChunk) string {
	var blocks strings.Builder
	for i, candidate := range candidates {
		source := "unknown"
		if candidate.Meta != nil && candidate.Meta.Base().Source != "" {
			source = candidate.Meta.Base().Source
		}
		fmt.Fprintf(&blocks, "// Chunk [%d]\n// Source: %s\n%s\n\n", i, source, candidate.Content)
	}

	return fmt.Sprintf(`You are an expert assistant that identifies the most relevant documents to answer a query.

### Query
%s

### Candidate Chunks
%s
### Instructions
- Identify the chunks from the "Candidate Chunks" that are most relevant to the user's "Query".
- Return a comma-separated list of the original index numbers of the most relevant chunks (e.g., "1, 3, 4").
- **DO NOT** answer the query, summarize, or explain. Return only the list of numbers.`, query, blocks.String())
}

func buildSynthesisPrompt(contextText string) string {
	return fmt.Sprintf(`You are an expert AI assistant skilled at synthesizing information.
### Context
%s

### Task
Your goal is to organize and create a brief, structured summary from the provided context.

### Instructions
- **Do not directly answer the user's original query.**
- Instead, synthesize the information from the context into a well-organized and concise summary.
- Use clear headings, subheadings, and bullet points.
- Ensure the summary is objective and strictly based on the provided context.
- If there is code then print it in one code block and then explain that code.
- If the context does not contain relevant information, respond with: "No relevant information found to summarize for this topic."`, contextText)
}
