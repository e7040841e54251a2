package book

import (
	"fmt"
	"strings"

	"github.com/agentic-research/codebook/internal/directive"
	"github.com/agentic-research/codebook/internal/engine"
	"github.com/agentic-research/codebook/internal/render"
)

const (
	fenceOpen       = "```codebook"
	fenceOpenHidden = "```codebook hidden"
	fenceClose      = "```"
)

// processChapter executes every directive fence in a chapter and returns
// the chapter markdown with each visible fence replaced by its snippet.
// Hidden fences run for their side effects and vanish from the output.
// The count of executed directives is reported for progress output.
func processChapter(e *engine.Engine, name string, src []byte) ([]byte, int, error) {
	lines := strings.Split(string(src), "\n")
	var (
		out      []string
		executed int
	)
	for i := 0; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed != fenceOpen && trimmed != fenceOpenHidden {
			out = append(out, lines[i])
			continue
		}

		hidden := trimmed == fenceOpenHidden
		start := i + 1
		end := -1
		for j := start; j < len(lines); j++ {
			if strings.TrimSpace(lines[j]) == fenceClose {
				end = j
				break
			}
		}
		if end < 0 {
			return nil, executed, fmt.Errorf("%s:%d: unterminated directive fence", name, i+1)
		}

		block := strings.Join(lines[start:end], "\n")
		ds, err := directive.Parse([]byte(block), fmt.Sprintf("%s:%d", name, start+1))
		if err != nil {
			return nil, executed, err
		}
		snippets, err := directive.Execute(e, ds)
		if err != nil {
			return nil, executed, err
		}
		executed += len(ds)

		if !hidden {
			for k, sn := range snippets {
				if k > 0 {
					out = append(out, "")
				}
				out = append(out, snippetLines(sn)...)
			}
		}
		i = end
	}
	return []byte(strings.Join(out, "\n")), executed, nil
}

// snippetLines renders one snippet as markdown lines. Append/prepend
// snippets become a single code fence; replace snippets become a
// before-fence, the transition prose, and an after-fence.
func snippetLines(sn directive.Snippet) []string {
	lang := render.ForPath(sn.File).Name
	if sn.Replace == nil {
		return fence(lang, sn.Text)
	}
	lines := fence(lang, sn.Replace.Before)
	lines = append(lines, "")
	if sn.Replace.Between != "" {
		lines = append(lines, sn.Replace.Between, "")
	}
	lines = append(lines, fence(lang, sn.Replace.After)...)
	return lines
}

func fence(lang, text string) []string {
	lines := []string{"```" + lang}
	lines = append(lines, strings.Split(strings.TrimRight(text, "\n"), "\n")...)
	lines = append(lines, "```")
	return lines
}
