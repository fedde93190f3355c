package ai

import (
	"fmt"
	"strings"
)

const doctype = "<!DOCTYPE html>"

// SanitizeHTML strips markdown code-fence wrappers from model output and
// guarantees the result carries an HTML5 DOCTYPE. It is pure and idempotent:
// applying it twice yields the same result as once. Inner document content
// is never altered.
func SanitizeHTML(raw string) string {
	out := strings.TrimSpace(raw)

	// Leading fence openers ("```" or "```html") occupy their own line.
	for strings.HasPrefix(out, "```") {
		if i := strings.Index(out, "\n"); i >= 0 {
			out = strings.TrimSpace(out[i+1:])
		} else {
			out = ""
		}
	}
	for strings.HasSuffix(out, "```") {
		out = strings.TrimSpace(strings.TrimSuffix(out, "```"))
	}

	// Empty content gets the bare DOCTYPE; a trailing newline here would be
	// trimmed away on a second pass and break idempotence.
	if out == "" {
		return doctype
	}
	if !strings.Contains(out, doctype) {
		out = doctype + "\n" + out
	}
	return out
}

// Fallback HTML in case the generation endpoint fails or returns degenerate
// output. Deterministic for a given prompt, no external dependencies.
const fallbackTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Generated Website</title>
  <style>
    body {
      font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
      line-height: 1.6;
      margin: 0;
      padding: 0;
      color: #333;
      background: linear-gradient(135deg, #f5f7fa 0%%, #c3cfe2 100%%);
      min-height: 100vh;
    }
    .container {
      width: 90%%;
      max-width: 1200px;
      margin: 0 auto;
      padding: 2rem;
    }
    header {
      text-align: center;
      padding: 2rem 0;
    }
    h1 {
      font-size: 2.5rem;
      margin-bottom: 1rem;
      color: #2d3748;
    }
    p {
      font-size: 1.1rem;
      margin-bottom: 1.5rem;
    }
    .content {
      background-color: white;
      border-radius: 8px;
      padding: 2rem;
      box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1);
    }
    footer {
      text-align: center;
      margin-top: 2rem;
      padding: 1rem 0;
      color: #718096;
    }
  </style>
</head>
<body>
  <div class="container">
    <header>
      <h1>Your Website</h1>
      <p>Based on: "%s"</p>
    </header>
    <div class="content">
      <p>This is a placeholder website. The AI generation service is temporarily unavailable. Your website would be based on your description: "%s"</p>
      <p>Please try again later or contact support if the issue persists.</p>
    </div>
    <footer>
      <p>Generated by Prompt2Site</p>
    </footer>
  </div>
</body>
</html>
`

// FallbackHTML returns a minimal standalone document embedding the prompt,
// substituted whenever generation cannot produce usable output.
func FallbackHTML(prompt string) string {
	return fmt.Sprintf(fallbackTemplate, prompt, prompt)
}
