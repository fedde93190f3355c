package prompts

import "fmt"

// GetSiteGenerationPrompt returns the template for first-pass site
// generation. It takes the raw user prompt via fmt.Sprintf.
func GetSiteGenerationPrompt() string {
	return `Generate a complete, standalone HTML file for a website based on this description: "%s".
The HTML should include embedded CSS and JS. Make it responsive, modern, and visually appealing.
Don't include any placeholders or TODOs. Return ONLY the complete, valid HTML code.`
}

// Enhancement prompts embed only a bounded prefix of the current document so
// the instruction is not crowded out of the context window.
const maxContextChars = 1000

// GetEnhancementPrompt composes the modification request from the current
// HTML and the user's instruction.
func GetEnhancementPrompt(htmlContent, instruction string) string {
	snippet := htmlContent
	if len(snippet) > maxContextChars {
		snippet = snippet[:maxContextChars] + "..."
	}

	return fmt.Sprintf(`I have this HTML website:

%s

Please enhance it based on this instruction: "%s".
Return ONLY the complete, modified HTML code.`, snippet, instruction)
}
