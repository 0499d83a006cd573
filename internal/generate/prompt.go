// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"bytes"
	"text/template"
)

// instructions is the fixed text placed ahead of the notes in every prompt.
const instructions = `
You are a helpful assistant tasked with converting markdown notes into flashcards. Here’s what you need to do:

1. **Read and Understand**:
   - Analyze the content of the provided markdown notes.
   - Identify the key points, definitions, or concepts that can be transformed into flashcard-style questions and answers.

2. **Generate Flashcards**:
   - For each concept, create a question and answer pair.
   - Use concise language for both the question and answer to ensure clarity.

3. **Formatting Requirements**:
   - Output the flashcards in a tab-delimited format, with the question and answer separated by a single tab (` + "`\\t`" + `).
   - Each flashcard should be on a new line.

4. **Markdown Content**:
Here are the notes (in markdown format) that you need to process:

`

// flashcardPromptTmpl renders the instructions followed by the notes exactly
// as aggregated.
var flashcardPromptTmpl = template.Must(template.New("flashcards").Parse(instructions + `{{.Notes}}`))

// RenderPrompt returns the full prompt for notes: the fixed instructions
// immediately followed by notes, unmodified.
func RenderPrompt(notes string) (string, error) {
	var buf bytes.Buffer
	if err := flashcardPromptTmpl.Execute(&buf, struct{ Notes string }{Notes: notes}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
