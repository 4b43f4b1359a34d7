package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/0xilhan/Cult-scaner-v1/internal/models"
	"github.com/0xilhan/Cult-scaner-v1/internal/scanner"
	"github.com/nao1215/markdown"
)

// MarkdownWriter outputs the dossier as GitHub-flavored Markdown.
type MarkdownWriter struct {
	baseWriter
}

func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

func (w *MarkdownWriter) Write(result *models.Result) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, result)
	w.writeRoster(md, result)
	w.writeProfiles(md, result)
	w.writeSources(md, result)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, result *models.Result) {
	md.H1("Cult Scan: " + result.Protocol)
	md.PlainText("")
	md.PlainText(result.Summary)
	md.PlainText("")

	w.writeAlert(md, result)
}

// writeAlert flags the worst verdict in the team.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, result *models.Result) {
	counts := map[models.Verdict]int{}
	for _, p := range result.Profiles {
		counts[p.Verdict]++
	}

	switch {
	case counts[models.VerdictCultLeader] > 0:
		md.Cautionf("%d team member(s) diagnosed as CULT_LEADER.", counts[models.VerdictCultLeader])
	case counts[models.VerdictDanger] > 0:
		md.Warningf("%d team member(s) rated DANGER.", counts[models.VerdictDanger])
	case counts[models.VerdictCaution] > 0:
		md.Importantf("%d team member(s) warrant CAUTION.", counts[models.VerdictCaution])
	case len(result.Profiles) > 0:
		md.Tip("No red flags raised for this team.")
	default:
		md.Note("No team members could be identified.")
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writeRoster(md *markdown.Markdown, result *models.Result) {
	if len(result.Profiles) == 0 {
		return
	}

	md.H2("Roster")
	md.PlainText("")

	rows := make([][]string, len(result.Profiles))
	for i, p := range result.Profiles {
		rows[i] = []string{
			cell(p.Name),
			cell(p.Role),
			strconv.Itoa(p.CultScore) + "/10",
			string(p.Verdict),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Name", "Role", "Cult Score", "Verdict"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeProfiles(md *markdown.Markdown, result *models.Result) {
	for _, p := range result.Profiles {
		md.H2(p.Name)
		md.PlainText("")
		md.PlainTextf("**%s** · Cult Score %d/10 · %s", p.Role, p.CultScore, p.Verdict)
		md.PlainText("")

		sections := []struct {
			title string
			body  string
		}{
			{"Diagnosis", p.Diagnosis},
			{"Background", p.Background},
			{"Conspiracies", p.Conspiracies},
		}
		for _, s := range sections {
			if strings.TrimSpace(s.body) == "" {
				continue
			}
			md.PlainText("### " + s.title)
			md.PlainText("")
			md.PlainText(s.body)
			md.PlainText("")
		}

		if links := socialLinks(p.Socials); len(links) > 0 {
			md.BulletList(links...)
			md.PlainText("")
		}

		if portrait := portraitLine(p.ImageURL); portrait != "" {
			md.PlainText(portrait)
			md.PlainText("")
		}
	}
}

func (w *MarkdownWriter) writeSources(md *markdown.Markdown, result *models.Result) {
	md.H2("Sources")
	md.PlainText("")

	if len(result.Sources) == 0 {
		md.PlainText("No sources cited.")
		md.PlainText("")
		return
	}

	items := make([]string, len(result.Sources))
	for i, s := range result.Sources {
		items[i] = link(s.Title, s.URI)
	}
	md.BulletList(items...)
	md.PlainText("")
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Generated by an AI model with web search. Verify before you trust, or invest.*")
}

func socialLinks(s *models.Socials) []string {
	if s == nil {
		return nil
	}

	var links []string
	for _, entry := range []struct{ name, url string }{
		{"Twitter/X", s.Twitter},
		{"LinkedIn", s.LinkedIn},
		{"Telegram", s.Telegram},
		{"Farcaster", s.Farcaster},
	} {
		if entry.url != "" {
			links = append(links, link(entry.name, entry.url))
		}
	}
	return links
}

// Inline data URIs are too large for a readable document and are only mentioned.
func portraitLine(ref string) string {
	switch {
	case !scanner.HasUsableImage(ref):
		return ""
	case strings.HasPrefix(strings.ToLower(ref), "data:"):
		return "*Portrait: generated fallback image (inline).*"
	default:
		return fmt.Sprintf("![%s](%s)", "portrait", ref)
	}
}

func link(text, url string) string {
	return fmt.Sprintf("[%s](%s)", text, url)
}

// cell keeps a value from breaking the table layout.
func cell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}
